package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/thcfit/shipping-gateway/internal/domain/model"
)

// AuditRepository stores shipment_logs rows in PostgreSQL.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(pg *Postgres) *AuditRepository {
	return &AuditRepository{db: pg.DB}
}

const auditColumns = `log_id, log_type, action, outcome, COALESCE(error_class, ''), status_code,
	COALESCE(request_id, ''), COALESCE(request_reference, ''), COALESCE(booking_ref, ''),
	COALESCE(shipper_name, ''), COALESCE(shipper_company, ''), COALESCE(shipper_phone, ''),
	COALESCE(shipper_country, ''), COALESCE(shipper_account_number, ''),
	COALESCE(receiver_name, ''), COALESCE(receiver_company, ''), COALESCE(receiver_phone, ''),
	COALESCE(receiver_country, ''), COALESCE(duty_account_number, ''),
	COALESCE(respond_trackingnumber, ''), COALESCE(respond_label, ''),
	COALESCE(respond_receipt, ''), COALESCE(respond_invoice, ''), warnings,
	request_data, response_data, COALESCE(error_data, ''), created_at`

// Insert appends one row and fills in its ID and creation time.
func (r *AuditRepository) Insert(ctx context.Context, entry *model.AuditLogEntry) error {
	query := `
		INSERT INTO shipment_logs (
			log_type, action, outcome, error_class, status_code, request_id,
			request_reference, booking_ref, shipper_name, shipper_company,
			shipper_phone, shipper_country, shipper_account_number,
			receiver_name, receiver_company, receiver_phone, receiver_country,
			duty_account_number, respond_trackingnumber, respond_label,
			respond_receipt, respond_invoice, warnings, request_data,
			response_data, error_data
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		RETURNING log_id, created_at
	`

	return r.db.QueryRowContext(ctx, query,
		entry.LogType,
		entry.Action,
		entry.Outcome,
		nullable(entry.ErrorClass),
		entry.StatusCode,
		nullable(entry.RequestID),
		nullable(entry.RequestReference),
		nullable(entry.BookingRef),
		nullable(entry.ShipperName),
		nullable(entry.ShipperCompany),
		nullable(entry.ShipperPhone),
		nullable(entry.ShipperCountry),
		nullable(entry.ShipperAccountNumber),
		nullable(entry.ReceiverName),
		nullable(entry.ReceiverCompany),
		nullable(entry.ReceiverPhone),
		nullable(entry.ReceiverCountry),
		nullable(entry.DutyAccountNumber),
		nullable(entry.TrackingNumber),
		nullable(entry.Label),
		nullable(entry.Receipt),
		nullable(entry.Invoice),
		pq.Array(entry.Warnings),
		jsonParam(entry.RequestData),
		jsonParam(entry.ResponseData),
		nullable(entry.ErrorMessage),
	).Scan(&entry.ID, &entry.CreatedAt)
}

// Query returns the rows matching q, newest first.
func (r *AuditRepository) Query(ctx context.Context, q model.AuditQuery) ([]*model.AuditLogEntry, error) {
	q.Normalize()
	where, args := buildAuditFilter(q)

	query := "SELECT " + auditColumns + " FROM shipment_logs" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*model.AuditLogEntry, 0)
	for rows.Next() {
		entry, err := scanAuditRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanAuditRow(rows *sql.Rows) (*model.AuditLogEntry, error) {
	var (
		e            model.AuditLogEntry
		warnings     pq.StringArray
		requestData  []byte
		responseData []byte
	)
	err := rows.Scan(
		&e.ID, &e.LogType, &e.Action, &e.Outcome, &e.ErrorClass, &e.StatusCode,
		&e.RequestID, &e.RequestReference, &e.BookingRef,
		&e.ShipperName, &e.ShipperCompany, &e.ShipperPhone,
		&e.ShipperCountry, &e.ShipperAccountNumber,
		&e.ReceiverName, &e.ReceiverCompany, &e.ReceiverPhone,
		&e.ReceiverCountry, &e.DutyAccountNumber,
		&e.TrackingNumber, &e.Label, &e.Receipt, &e.Invoice, &warnings,
		&requestData, &responseData, &e.ErrorMessage, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Warnings = warnings
	if len(requestData) > 0 {
		e.RequestData = json.RawMessage(requestData)
	}
	if len(responseData) > 0 {
		e.ResponseData = json.RawMessage(responseData)
	}
	return &e, nil
}

// buildAuditFilter renders q as a WHERE clause with positional arguments.
func buildAuditFilter(q model.AuditQuery) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.TrackingNumber != "" {
		clauses = append(clauses, "respond_trackingnumber ILIKE "+arg(model.ContainsPattern(q.TrackingNumber)))
	}
	if q.BookingRef != "" {
		clauses = append(clauses, "booking_ref ILIKE "+arg(model.ContainsPattern(q.BookingRef)))
	}
	if q.Reference != "" {
		clauses = append(clauses, "request_reference ILIKE "+arg(model.ContainsPattern(q.Reference)))
	}
	if q.ShipperName != "" {
		p := arg(model.ContainsPattern(q.ShipperName))
		clauses = append(clauses, "(shipper_name ILIKE "+p+" OR shipper_company ILIKE "+p+")")
	}
	if q.ReceiverName != "" {
		p := arg(model.ContainsPattern(q.ReceiverName))
		clauses = append(clauses, "(receiver_name ILIKE "+p+" OR receiver_company ILIKE "+p+")")
	}
	if q.AccountNumber != "" {
		p := arg(strings.TrimSpace(q.AccountNumber))
		clauses = append(clauses, "(shipper_account_number = "+p+" OR duty_account_number = "+p+")")
	}
	if q.Phone != "" {
		p := arg(model.ContainsPattern(q.Phone))
		clauses = append(clauses, "(shipper_phone ILIKE "+p+" OR receiver_phone ILIKE "+p+")")
	}
	if q.ShipperCountry != "" {
		clauses = append(clauses, "shipper_country ILIKE "+arg(model.PrefixPattern(q.ShipperCountry)))
	}
	if q.ReceiverCountry != "" {
		clauses = append(clauses, "receiver_country ILIKE "+arg(model.PrefixPattern(q.ReceiverCountry)))
	}
	if q.LogType != "" {
		clauses = append(clauses, "log_type = "+arg(q.LogType))
	}
	if q.From != nil {
		clauses = append(clauses, "created_at >= "+arg(*q.From))
	}
	if q.To != nil {
		clauses = append(clauses, "created_at <= "+arg(*q.To))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// jsonParam passes JSON as text; lib/pq would send []byte as bytea.
func jsonParam(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
