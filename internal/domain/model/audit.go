package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Audit outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Audited carrier actions.
const (
	ActionShipment = "shipment"
	ActionQuote    = "quote"
)

// AuditLogEntry is one row of shipment_logs: the outcome of one proxied carrier call.
// Rows are append-only.
type AuditLogEntry struct {
	ID                   int64           `json:"log_id"`
	LogType              string          `json:"log_type"`
	Action               string          `json:"action"`
	Outcome              string          `json:"outcome"`
	ErrorClass           string          `json:"error_class,omitempty"`
	StatusCode           int             `json:"status_code"`
	RequestID            string          `json:"request_id,omitempty"`
	RequestReference     string          `json:"request_reference,omitempty"`
	BookingRef           string          `json:"booking_ref,omitempty"`
	ShipperName          string          `json:"shipper_name,omitempty"`
	ShipperCompany       string          `json:"shipper_company,omitempty"`
	ShipperPhone         string          `json:"shipper_phone,omitempty"`
	ShipperCountry       string          `json:"shipper_country,omitempty"`
	ShipperAccountNumber string          `json:"shipper_account_number,omitempty"`
	ReceiverName         string          `json:"receiver_name,omitempty"`
	ReceiverCompany      string          `json:"receiver_company,omitempty"`
	ReceiverPhone        string          `json:"receiver_phone,omitempty"`
	ReceiverCountry      string          `json:"receiver_country,omitempty"`
	DutyAccountNumber    string          `json:"duty_account_number,omitempty"`
	TrackingNumber       string          `json:"respond_trackingnumber,omitempty"`
	Label                string          `json:"respond_label,omitempty"`
	Receipt              string          `json:"respond_receipt,omitempty"`
	Invoice              string          `json:"respond_invoice,omitempty"`
	Warnings             []string        `json:"warnings,omitempty"`
	RequestData          json.RawMessage `json:"request_data,omitempty" swaggertype:"object"`
	ResponseData         json.RawMessage `json:"response_data,omitempty" swaggertype:"object"`
	ErrorMessage         string          `json:"error_data,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// NewAuditLogEntry starts an entry for action with the given outcome.
func NewAuditLogEntry(action, outcome string) *AuditLogEntry {
	return &AuditLogEntry{
		LogType: action + "_" + outcome,
		Action:  action,
		Outcome: outcome,
	}
}

// AuditQuery filters shipment_logs for the admin search.
// Text filters accept "*" as a wildcard and match anywhere in the column.
type AuditQuery struct {
	TrackingNumber  string
	BookingRef      string
	ShipperName     string
	ReceiverName    string
	Reference       string
	AccountNumber   string
	Phone           string
	ShipperCountry  string
	ReceiverCountry string
	LogType         string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

const (
	// DefaultAuditLimit applies when no limit is given.
	DefaultAuditLimit = 100
	// MaxAuditLimit caps a single page.
	MaxAuditLimit = 1000
)

// Normalize clamps paging values.
func (q *AuditQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = DefaultAuditLimit
	}
	if q.Limit > MaxAuditLimit {
		q.Limit = MaxAuditLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// ContainsPattern turns a search term into an ILIKE pattern matching anywhere.
func ContainsPattern(term string) string {
	return "%" + strings.ReplaceAll(strings.TrimSpace(term), "*", "%") + "%"
}

// PrefixPattern turns a search term into an ILIKE prefix pattern.
func PrefixPattern(term string) string {
	return strings.TrimSpace(term) + "%"
}
