package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/i18n"
	"github.com/thcfit/shipping-gateway/internal/middleware"
	"github.com/thcfit/shipping-gateway/internal/service"
)

// ShippingHandler provides the carrier proxy routes. Successful carrier
// responses are relayed byte for byte; failures go to the error handler.
type ShippingHandler struct {
	shipping service.ShippingService
}

// NewShippingHandler creates a new shipping handler.
func NewShippingHandler(shipping service.ShippingService) *ShippingHandler {
	return &ShippingHandler{shipping: shipping}
}

// ValidateAddress handles GET /api/validate-address.
//
// @Summary      Validate a postal location
// @Description  Checks a country plus postal code, city or county against the carrier's postal-location service
// @Tags         Carrier
// @Produce      json
// @Param        countryCode query string true  "ISO country code" example(TH)
// @Param        postalCode  query string false "Postal code" example(10110)
// @Param        city        query string false "City name"
// @Param        countyName  query string false "County name"
// @Success      200 {object} object "Carrier response, forwarded verbatim"
// @Failure      400 {object} dto.ErrorResponse "Missing required parameters"
// @Failure      500 {object} dto.ErrorResponse "Server configuration error"
// @Failure      502 {object} dto.ErrorResponse "Carrier failure"
// @Security     ApiKeyAuth
// @Router       /api/validate-address [get]
func (h *ShippingHandler) ValidateAddress(c *gin.Context) {
	middleware.SetAction(c, service.ActionValidateAddress)

	var q dto.ValidateAddressQuery
	if err := NewRequestBuilder(c).BindQuery(&q); err != nil {
		rejectInput(c, i18n.ErrKeyInvalidRequest, err)
		return
	}
	h.respond(c, func() (*carrier.Result, error) {
		return h.shipping.ValidateAddress(c.Request.Context(), q)
	})
}

// Quote handles POST /api/quote.
//
// @Summary      Get a rate quote
// @Description  Builds a rate request from the summary body and returns the carrier's quotes
// @Tags         Carrier
// @Accept       json
// @Produce      json
// @Param        request body dto.QuoteRequest true "Quote request"
// @Success      200 {object} object "Carrier response, forwarded verbatim"
// @Failure      400 {object} dto.ErrorResponse "Missing required parameters"
// @Failure      502 {object} dto.ErrorResponse "Carrier failure"
// @Security     ApiKeyAuth
// @Router       /api/quote [post]
func (h *ShippingHandler) Quote(c *gin.Context) {
	middleware.SetAction(c, service.ActionQuote)

	var req dto.QuoteRequest
	if err := NewRequestBuilder(c).Bind(&req); err != nil {
		rejectInput(c, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	h.respond(c, func() (*carrier.Result, error) {
		return h.shipping.Quote(c.Request.Context(), req)
	})
}

// CreateShipment handles POST /api/ship with a pre-built carrier payload.
//
// @Summary      Create a shipment
// @Description  Forwards a complete carrier shipment payload and records the outcome in the audit log
// @Tags         Carrier
// @Accept       json
// @Produce      json
// @Param        request body object true "Carrier shipment payload"
// @Success      201 {object} object "Carrier response, forwarded verbatim"
// @Failure      400 {object} dto.ErrorResponse "Invalid body"
// @Failure      502 {object} dto.ErrorResponse "Carrier failure"
// @Security     ApiKeyAuth
// @Router       /api/ship [post]
func (h *ShippingHandler) CreateShipment(c *gin.Context) {
	middleware.SetAction(c, service.ActionShipment)

	body, err := c.GetRawData()
	if err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	h.respond(c, func() (*carrier.Result, error) {
		return h.shipping.CreateShipment(c.Request.Context(), body)
	})
}

// CreateShipmentFromForm handles POST /api/shipments/form.
//
// @Summary      Create a shipment from the booking form
// @Description  Accepts the browser form as JSON, or as multipart with the JSON in "form" and an optional "attachment" file, builds the carrier payload and books it
// @Tags         Carrier
// @Accept       json,mpfd
// @Produce      json
// @Param        form       formData string true  "Shipment form as JSON"
// @Param        attachment formData file   false "Document sent with the shipment"
// @Success      201 {object} object "Carrier response, forwarded verbatim"
// @Failure      400 {object} dto.ErrorResponse "Invalid form"
// @Failure      502 {object} dto.ErrorResponse "Carrier failure"
// @Security     ApiKeyAuth
// @Router       /api/shipments/form [post]
func (h *ShippingHandler) CreateShipmentFromForm(c *gin.Context) {
	middleware.SetAction(c, service.ActionShipment)

	form, err := bindShipmentForm(c)
	if err != nil {
		NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidForm,
			map[string]interface{}{"field": formField}, err)
		return
	}
	h.respond(c, func() (*carrier.Result, error) {
		return h.shipping.CreateShipmentFromForm(c.Request.Context(), form)
	})
}

// Track handles GET /api/track.
//
// @Summary      Track a shipment
// @Tags         Carrier
// @Produce      json
// @Param        trackingNumber query string true "Carrier tracking number" example(1234567890)
// @Success      200 {object} object "Carrier response, forwarded verbatim"
// @Failure      400 {object} dto.ErrorResponse "Missing tracking number"
// @Failure      502 {object} dto.ErrorResponse "Carrier failure"
// @Security     ApiKeyAuth
// @Router       /api/track [get]
func (h *ShippingHandler) Track(c *gin.Context) {
	middleware.SetAction(c, service.ActionTrack)

	var q dto.TrackQuery
	if err := NewRequestBuilder(c).BindQuery(&q); err != nil {
		rejectInput(c, i18n.ErrKeyInvalidRequest, err)
		return
	}
	h.respond(c, func() (*carrier.Result, error) {
		return h.shipping.Track(c.Request.Context(), q)
	})
}

// ReferenceData handles GET /api/reference-data.
//
// @Summary      Fetch reference data
// @Description  Only the "country" dataset is forwarded
// @Tags         Carrier
// @Produce      json
// @Param        datasetName query string true "Dataset name" example(country)
// @Success      200 {object} object "Carrier response, forwarded verbatim"
// @Failure      400 {object} dto.ErrorResponse "Unsupported dataset"
// @Failure      502 {object} dto.ErrorResponse "Carrier failure"
// @Security     ApiKeyAuth
// @Router       /api/reference-data [get]
func (h *ShippingHandler) ReferenceData(c *gin.Context) {
	middleware.SetAction(c, service.ActionReferenceData)

	var q dto.ReferenceDataQuery
	if err := NewRequestBuilder(c).BindQuery(&q); err != nil {
		rejectInput(c, i18n.ErrKeyInvalidRequest, err)
		return
	}
	h.respond(c, func() (*carrier.Result, error) {
		return h.shipping.ReferenceData(c.Request.Context(), q)
	})
}

// rejectInput answers a failed bind. Missing parameters go through the error
// handler like every other caller-input error; malformed input is answered here.
func rejectInput(c *gin.Context, messageKey string, err error) {
	if cerr := missingParams(err); cerr != nil {
		_ = c.Error(cerr)
		return
	}
	NewResponseBuilder(c).Error(http.StatusBadRequest, messageKey, err)
}

func (h *ShippingHandler) respond(c *gin.Context, call func() (*carrier.Result, error)) {
	result, err := call()
	if err != nil {
		_ = c.Error(err)
		return
	}
	NewResponseBuilder(c).Forward(result)
}
