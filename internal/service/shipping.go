package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/domain/model"
	"github.com/thcfit/shipping-gateway/internal/logger"
	"github.com/thcfit/shipping-gateway/internal/metrics"
	"github.com/thcfit/shipping-gateway/internal/shipment"
)

// Carrier actions, used as metric and log labels.
const (
	ActionValidateAddress = "validate_address"
	ActionQuote           = model.ActionQuote
	ActionShipment        = model.ActionShipment
	ActionTrack           = "track"
	ActionReferenceData   = "reference_data"
)

// SupportedDataset is the only reference dataset the gateway forwards.
const SupportedDataset = "country"

// ShippingService is the carrier proxy: every operation validates its input,
// makes one upstream call and returns the carrier's body untouched.
type ShippingService interface {
	ValidateAddress(ctx context.Context, q dto.ValidateAddressQuery) (*carrier.Result, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (*carrier.Result, error)
	CreateShipment(ctx context.Context, payload []byte) (*carrier.Result, error)
	CreateShipmentFromForm(ctx context.Context, form shipment.Form) (*carrier.Result, error)
	Track(ctx context.Context, q dto.TrackQuery) (*carrier.Result, error)
	ReferenceData(ctx context.Context, q dto.ReferenceDataQuery) (*carrier.Result, error)
}

// ShippingServiceImpl implements ShippingService.
type ShippingServiceImpl struct {
	client  carrier.Doer
	audit   AuditService
	builder *shipment.Builder
	cfg     config.CarrierConfig
}

// NewShippingService creates a new shipping service.
func NewShippingService(client carrier.Doer, audit AuditService, builder *shipment.Builder, cfg config.CarrierConfig) *ShippingServiceImpl {
	if builder == nil {
		builder = shipment.NewBuilder(shipment.WithDefaultCurrency(cfg.DefaultCurrency))
	}
	return &ShippingServiceImpl{
		client:  client,
		audit:   audit,
		builder: builder,
		cfg:     cfg,
	}
}

// auditSpec maps one audited call onto an audit row.
type auditSpec struct {
	action string
	// describe fills the request-side columns.
	describe func(entry *model.AuditLogEntry)
	// summarize fills the response-side columns of a success and returns the documents to keep.
	summarize func(entry *model.AuditLogEntry, body []byte) []carrier.Document
}

// call is one parameterized proxied request.
type call struct {
	action string
	method string
	url    string
	auth   carrier.AuthStrategy
	query  url.Values
	body   []byte
	audit  *auditSpec
}

// ValidateAddress checks a postal location with the carrier.
func (s *ShippingServiceImpl) ValidateAddress(ctx context.Context, q dto.ValidateAddressQuery) (*carrier.Result, error) {
	if missing := q.MissingFields(); len(missing) > 0 {
		return nil, carrier.MissingParams(missing...)
	}

	query := url.Values{}
	query.Set("countryCode", strings.TrimSpace(q.CountryCode))
	setIfPresent(query, "postalCode", q.PostalCode)
	setIfPresent(query, "city", q.City)
	setIfPresent(query, "countyName", q.CountyName)

	return s.proxy(ctx, call{
		action: ActionValidateAddress,
		method: http.MethodGet,
		url:    s.cfg.AddressValidationURL,
		auth:   carrier.AuthAPIKey,
		query:  query,
	})
}

// Quote requests rates for the described parcels.
func (s *ShippingServiceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (*carrier.Result, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, carrier.MissingParams(missing...)
	}

	body, err := json.Marshal(s.ratePayload(req))
	if err != nil {
		return nil, carrier.Internal(fmt.Errorf("failed to encode rate request: %w", err))
	}

	return s.proxy(ctx, call{
		action: ActionQuote,
		method: http.MethodPost,
		url:    s.cfg.RatesURL,
		auth:   carrier.AuthBearer,
		body:   body,
		audit: &auditSpec{
			action: model.ActionQuote,
			describe: func(entry *model.AuditLogEntry) {
				entry.ShipperCountry = req.OriginCountry
				entry.ReceiverCountry = req.DestinationCountry
				entry.ShipperAccountNumber = s.cfg.QuoteAccount
			},
		},
	})
}

// CreateShipment forwards a pre-built shipment payload.
func (s *ShippingServiceImpl) CreateShipment(ctx context.Context, payload []byte) (*carrier.Result, error) {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return nil, carrier.MissingParams("body")
	}
	if !json.Valid(payload) {
		return nil, carrier.InvalidParam("body", "Request body must be valid JSON")
	}

	var parsed shipment.Payload
	// best effort: the carrier validates the payload, the audit row only needs the parties
	_ = json.Unmarshal(payload, &parsed)

	return s.proxy(ctx, call{
		action: ActionShipment,
		method: http.MethodPost,
		url:    s.cfg.ShipmentsURL,
		auth:   carrier.AuthBearer,
		body:   payload,
		audit:  shipmentAudit(&parsed),
	})
}

// CreateShipmentFromForm builds the payload from a shipping form and forwards it.
func (s *ShippingServiceImpl) CreateShipmentFromForm(ctx context.Context, form shipment.Form) (*carrier.Result, error) {
	if missing := form.MissingFields(); len(missing) > 0 {
		return nil, carrier.MissingParams(missing...)
	}

	payload, err := s.builder.Build(form)
	if err != nil {
		if errors.Is(err, shipment.ErrAttachmentUnreadable) {
			return nil, carrier.InvalidParam("attachment", "The attached document could not be read")
		}
		return nil, carrier.Internal(err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, carrier.Internal(fmt.Errorf("failed to encode shipment payload: %w", err))
	}

	return s.proxy(ctx, call{
		action: ActionShipment,
		method: http.MethodPost,
		url:    s.cfg.ShipmentsURL,
		auth:   carrier.AuthBearer,
		body:   body,
		audit:  shipmentAudit(payload),
	})
}

// Track looks up a shipment by tracking number.
func (s *ShippingServiceImpl) Track(ctx context.Context, q dto.TrackQuery) (*carrier.Result, error) {
	trackingNumber := strings.TrimSpace(q.TrackingNumber)
	if trackingNumber == "" {
		return nil, carrier.MissingParams("trackingNumber")
	}

	query := url.Values{}
	query.Set("trackingNumber", trackingNumber)

	return s.proxy(ctx, call{
		action: ActionTrack,
		method: http.MethodGet,
		url:    s.cfg.TrackingURL,
		auth:   carrier.AuthBearer,
		query:  query,
	})
}

// ReferenceData returns the carrier's country dataset.
func (s *ShippingServiceImpl) ReferenceData(ctx context.Context, q dto.ReferenceDataQuery) (*carrier.Result, error) {
	if q.DatasetName == "" {
		return nil, carrier.MissingParams("datasetName")
	}
	if q.DatasetName != SupportedDataset {
		return nil, carrier.InvalidParam("datasetName", `Required parameter "datasetName" must be set to "country"`)
	}

	query := url.Values{}
	query.Set("datasetName", q.DatasetName)

	return s.proxy(ctx, call{
		action: ActionReferenceData,
		method: http.MethodGet,
		url:    s.cfg.ReferenceDataURL,
		auth:   carrier.AuthBearer,
		query:  query,
	})
}

// proxy is the one routine behind every carrier operation.
func (s *ShippingServiceImpl) proxy(ctx context.Context, c call) (*carrier.Result, error) {
	requestID := RequestIDFromContext(ctx)
	log := logger.ForAction(c.action, requestID)

	if !s.configured(c) {
		log.Error().Msg("Carrier settings are incomplete")
		return nil, carrier.Misconfigured(c.action)
	}

	start := time.Now()
	result, err := s.client.Do(ctx, carrier.Request{
		Action: c.action,
		Method: c.method,
		URL:    c.url,
		Query:  c.query,
		Body:   c.body,
		Auth:   c.auth,
	})
	duration := time.Since(start)

	if err != nil {
		cerr := carrier.AsError(err)
		metrics.RecordCarrierCall(c.action, cerr.Kind.String(), duration)
		log.Warn().
			Err(err).
			Str("error_class", cerr.Kind.String()).
			Int("status_code", cerr.HTTPStatus()).
			Dur("duration", duration).
			Msg("Carrier call failed")
		s.recordFailure(ctx, c, requestID, cerr)
		return nil, cerr
	}

	metrics.RecordCarrierCall(c.action, model.OutcomeSuccess, duration)
	log.Info().
		Int("status_code", result.StatusCode).
		Dur("duration", duration).
		Msg("Carrier call succeeded")
	s.recordSuccess(ctx, c, requestID, result)
	return result, nil
}

func (s *ShippingServiceImpl) configured(c call) bool {
	if c.url == "" {
		return false
	}
	switch c.auth {
	case carrier.AuthAPIKey:
		return s.cfg.AddressValidationKey != ""
	default:
		return s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.TokenURL != ""
	}
}

func (s *ShippingServiceImpl) recordSuccess(ctx context.Context, c call, requestID string, result *carrier.Result) {
	if c.audit == nil || s.audit == nil {
		return
	}
	entry := newAuditEntry(c, requestID, model.OutcomeSuccess)
	entry.StatusCode = result.StatusCode
	entry.ResponseData = jsonOrNil(result.Body)

	var docs []carrier.Document
	if c.audit.summarize != nil {
		docs = c.audit.summarize(entry, result.Body)
	}
	s.audit.Record(ctx, entry, docs)
}

func (s *ShippingServiceImpl) recordFailure(ctx context.Context, c call, requestID string, cerr *carrier.Error) {
	if c.audit == nil || s.audit == nil {
		return
	}
	entry := newAuditEntry(c, requestID, model.OutcomeError)
	entry.StatusCode = cerr.HTTPStatus()
	entry.ErrorClass = cerr.Kind.String()
	entry.ErrorMessage = cerr.Message
	switch {
	case len(cerr.Details) > 0:
		entry.ResponseData = cerr.Details
	case cerr.Raw != "":
		// non-JSON bodies are kept as a JSON string
		entry.ResponseData, _ = json.Marshal(cerr.Raw)
	}
	s.audit.Record(ctx, entry, nil)
}

func newAuditEntry(c call, requestID, outcome string) *model.AuditLogEntry {
	entry := model.NewAuditLogEntry(c.audit.action, outcome)
	entry.RequestID = requestID
	entry.RequestData = jsonOrNil(c.body)
	if c.audit.describe != nil {
		c.audit.describe(entry)
	}
	return entry
}

// shipmentAudit maps a shipment payload and the carrier's answer onto an audit row.
func shipmentAudit(p *shipment.Payload) *auditSpec {
	return &auditSpec{
		action: model.ActionShipment,
		describe: func(entry *model.AuditLogEntry) {
			shipper := p.CustomerDetails.ShipperDetails
			receiver := p.CustomerDetails.ReceiverDetails

			entry.ShipperName = shipper.ContactInformation.FullName
			entry.ShipperCompany = shipper.ContactInformation.CompanyName
			entry.ShipperPhone = shipper.ContactInformation.Phone
			entry.ShipperCountry = shipper.PostalAddress.CountryCode
			entry.ReceiverName = receiver.ContactInformation.FullName
			entry.ReceiverCompany = receiver.ContactInformation.CompanyName
			entry.ReceiverPhone = receiver.ContactInformation.Phone
			entry.ReceiverCountry = receiver.PostalAddress.CountryCode

			for _, a := range p.Accounts {
				switch a.TypeCode {
				case shipment.AccountShipper:
					entry.ShipperAccountNumber = a.Number
				case shipment.AccountDutiesTaxes:
					entry.DutyAccountNumber = a.Number
				}
			}
			if len(p.CustomerReferences) > 0 {
				entry.RequestReference = p.CustomerReferences[0].Value
			}
		},
		summarize: func(entry *model.AuditLogEntry, body []byte) []carrier.Document {
			summary := carrier.SummarizeShipment(body)
			entry.TrackingNumber = summary.TrackingNumber
			entry.BookingRef = summary.DispatchConfirmationNumber
			entry.Warnings = summary.Warnings
			return summary.Documents
		},
	}
}

type ratePayload struct {
	CustomerDetails              rateCustomerDetails `json:"customerDetails"`
	PlannedShippingDateAndTime   string              `json:"plannedShippingDateAndTime"`
	UnitOfMeasurement            string              `json:"unitOfMeasurement"`
	IsCustomsDeclarable          bool                `json:"isCustomsDeclarable"`
	RequestAllValueAddedServices bool                `json:"requestAllValueAddedServices"`
	Packages                     []shipment.Package  `json:"packages"`
	Accounts                     []shipment.Account  `json:"accounts"`
}

type rateCustomerDetails struct {
	ShipperDetails  shipment.PostalAddress `json:"shipperDetails"`
	ReceiverDetails shipment.PostalAddress `json:"receiverDetails"`
}

func (s *ShippingServiceImpl) ratePayload(req dto.QuoteRequest) ratePayload {
	packages := make([]shipment.Package, 0, len(req.Packages))
	for _, p := range req.Packages {
		packages = append(packages, shipment.Package{
			Weight: float64(p.Weight),
			Dimensions: shipment.Dimensions{
				Length: float64(p.Length),
				Width:  float64(p.Width),
				Height: float64(p.Height),
			},
		})
	}

	return ratePayload{
		CustomerDetails: rateCustomerDetails{
			ShipperDetails: shipment.PostalAddress{
				PostalCode:  req.OriginPostalCode,
				CityName:    req.OriginCity,
				CountryCode: req.OriginCountry,
			},
			ReceiverDetails: shipment.PostalAddress{
				PostalCode:  req.DestinationPostalCode,
				CityName:    req.DestinationCity,
				CountryCode: req.DestinationCountry,
			},
		},
		PlannedShippingDateAndTime:   s.builder.PlannedDateTime(req.ShipDate),
		UnitOfMeasurement:            "metric",
		IsCustomsDeclarable:          req.IsParcel,
		RequestAllValueAddedServices: false,
		Packages:                     packages,
		Accounts: []shipment.Account{
			{TypeCode: shipment.AccountShipper, Number: s.cfg.QuoteAccount},
		},
	}
}

func setIfPresent(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

func jsonOrNil(body []byte) json.RawMessage {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}
