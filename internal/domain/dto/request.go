// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the carrier payloads and the audit model,
// providing binding and validation for the gateway's caller-facing API.
package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/thcfit/shipping-gateway/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// FlexFloat accepts a JSON number or a numeric string.
// Browser forms send dimensions as text; empty strings decode to zero.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*f = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt accepts a JSON integer or a numeric string such as "2".
// Empty strings decode to zero; fractional values are rejected.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	if float64(f) != math.Trunc(float64(f)) {
		return fmt.Errorf("invalid integer %v", float64(f))
	}
	*n = FlexInt(f)
	return nil
}

// ValidateAddressQuery is the query of GET /api/validate-address.
type ValidateAddressQuery struct {
	CountryCode string `form:"countryCode" binding:"required" example:"TH"`
	PostalCode  string `form:"postalCode" binding:"required_without_all=City CountyName" example:"10110"`
	City        string `form:"city" example:"Bangkok"`
	CountyName  string `form:"countyName"`
}

// MissingFields names the required parameters that are blank once trimmed.
// Binding has already rejected absent ones.
func (q ValidateAddressQuery) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(q.CountryCode) == "" {
		missing = append(missing, "countryCode")
	}
	if strings.TrimSpace(q.PostalCode) == "" && strings.TrimSpace(q.City) == "" && strings.TrimSpace(q.CountyName) == "" {
		missing = append(missing, "postalCode|city|countyName")
	}
	return missing
}

// QuotePackage is one parcel of a rate request.
type QuotePackage struct {
	Weight FlexFloat `json:"weight" swaggertype:"number" example:"2.5"`
	Length FlexFloat `json:"length" swaggertype:"number" example:"30"`
	Width  FlexFloat `json:"width" swaggertype:"number" example:"20"`
	Height FlexFloat `json:"height" swaggertype:"number" example:"10"`
} // @name QuotePackage

// QuoteRequest is the body of POST /api/quote.
//
// @Description Rate request built from the quote form
type QuoteRequest struct {
	OriginPostalCode      string         `json:"originPostalCode" example:"10110"`
	OriginCity            string         `json:"originCity" example:"Bangkok"`
	OriginCountry         string         `json:"originCountry" binding:"required" example:"TH"`
	DestinationPostalCode string         `json:"destinationPostalCode" example:"2000"`
	DestinationCity       string         `json:"destinationCity" example:"Sydney"`
	DestinationCountry    string         `json:"destinationCountry" binding:"required" example:"AU"`
	ShipDate              string         `json:"shipDate" binding:"required" example:"2025-07-01"`
	IsParcel              bool           `json:"isParcel" example:"true"`
	Packages              []QuotePackage `json:"packages" binding:"required,min=1"`
} // @name QuoteRequest

// MissingFields names the absent required fields.
func (r *QuoteRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.OriginCountry) == "" {
		missing = append(missing, "originCountry")
	}
	if strings.TrimSpace(r.DestinationCountry) == "" {
		missing = append(missing, "destinationCountry")
	}
	if strings.TrimSpace(r.ShipDate) == "" {
		missing = append(missing, "shipDate")
	}
	if len(r.Packages) == 0 {
		missing = append(missing, "packages")
	}
	return missing
}

// TrackQuery is the query of GET /api/track.
type TrackQuery struct {
	TrackingNumber string `form:"trackingNumber" binding:"required" example:"1234567890"`
}

// ReferenceDataQuery is the query of GET /api/reference-data.
type ReferenceDataQuery struct {
	DatasetName string `form:"datasetName" binding:"required" example:"country"`
}

// AuditLogQueryRequest is the query of GET /api/admin/logs.
type AuditLogQueryRequest struct {
	TrackingNumber  string `form:"trackingNumber"`
	BookingRef      string `form:"bookingRef"`
	ShipperName     string `form:"shipperName"`
	ReceiverName    string `form:"receiverName"`
	Reference       string `form:"reference"`
	AccountNumber   string `form:"accountNumber"`
	Phone           string `form:"phone"`
	ShipperCountry  string `form:"shipperCountry"`
	ReceiverCountry string `form:"receiverCountry"`
	LogType         string `form:"logType"`
	DateFrom        string `form:"dateFrom" example:"2025-07-01"`
	DateTo          string `form:"dateTo" example:"2025-07-31"`
	TimeFrom        string `form:"timeFrom" example:"08:00"`
	TimeTo          string `form:"timeTo" example:"18:00"`
	Limit           int    `form:"limit" example:"100"`
	Offset          int    `form:"offset" example:"0"`
}

// ToQuery converts the request into an AuditQuery. Dates are read in loc.
func (r *AuditLogQueryRequest) ToQuery(loc *time.Location) (model.AuditQuery, error) {
	q := model.AuditQuery{
		TrackingNumber:  r.TrackingNumber,
		BookingRef:      r.BookingRef,
		ShipperName:     r.ShipperName,
		ReceiverName:    r.ReceiverName,
		Reference:       r.Reference,
		AccountNumber:   r.AccountNumber,
		Phone:           r.Phone,
		ShipperCountry:  r.ShipperCountry,
		ReceiverCountry: r.ReceiverCountry,
		LogType:         r.LogType,
		Limit:           r.Limit,
		Offset:          r.Offset,
	}
	if r.DateFrom != "" {
		from, err := parseDateTime(r.DateFrom, r.TimeFrom, "00:00:00", loc)
		if err != nil {
			return q, &ValidationError{Field: "dateFrom", Message: err.Error()}
		}
		q.From = &from
	}
	if r.DateTo != "" {
		to, err := parseDateTime(r.DateTo, r.TimeTo, "23:59:59", loc)
		if err != nil {
			return q, &ValidationError{Field: "dateTo", Message: err.Error()}
		}
		q.To = &to
	}
	q.Normalize()
	return q, nil
}

func parseDateTime(date, clock, fallback string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = fallback
	}
	if strings.Count(clock, ":") == 1 {
		clock += fallback[5:]
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", strings.TrimSpace(date)+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be YYYY-MM-DD with optional HH:MM")
	}
	return t, nil
}

// RequestLogQuery is the query of GET /api/admin/request-logs.
type RequestLogQuery struct {
	RequestID string `form:"requestId"`
	Level     string `form:"level"`
	Method    string `form:"method"`
	Path      string `form:"path"`
	Action    string `form:"action"`
	Limit     int    `form:"limit"`
	Skip      int    `form:"skip"`
}

// ToOptions converts the query into repository options.
func (q RequestLogQuery) ToOptions() model.LogQueryOptions {
	limit := q.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	skip := q.Skip
	if skip < 0 {
		skip = 0
	}
	return model.LogQueryOptions{
		RequestID: q.RequestID,
		Level:     q.Level,
		Method:    q.Method,
		Path:      q.Path,
		Action:    q.Action,
		Limit:     limit,
		Skip:      skip,
	}
}
