package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/i18n"
	"github.com/thcfit/shipping-gateway/internal/logger"
	"github.com/thcfit/shipping-gateway/internal/middleware"
	"github.com/thcfit/shipping-gateway/internal/service"
)

// adminZone is the zone admin date filters are entered in.
var adminZone = time.FixedZone("ICT", 7*60*60)

// AdminHandler provides the admin login and log search routes.
type AdminHandler struct {
	admins   service.AdminService
	audit    service.AuditService
	requests service.LoggingService
	sink     *middleware.AsyncLogger
	loc      *time.Location
}

// AdminHandlerOption configures an AdminHandler.
type AdminHandlerOption func(*AdminHandler)

// WithActivitySink records login failures in the request-log store.
func WithActivitySink(sink *middleware.AsyncLogger) AdminHandlerOption {
	return func(h *AdminHandler) {
		h.sink = sink
	}
}

// WithLocation overrides the zone of the audit date filters.
func WithLocation(loc *time.Location) AdminHandlerOption {
	return func(h *AdminHandler) {
		if loc != nil {
			h.loc = loc
		}
	}
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admins service.AdminService, audit service.AuditService, requests service.LoggingService, opts ...AdminHandlerOption) *AdminHandler {
	h := &AdminHandler{
		admins:   admins,
		audit:    audit,
		requests: requests,
		loc:      adminZone,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Login handles POST /api/admin/login.
//
// @Summary      Admin login
// @Description  Checks admin credentials and returns a signed access token
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Admin credentials"
// @Success      200 {object} dto.LoginResponse "Access token"
// @Failure      400 {object} dto.ErrorResponse "Missing username or password"
// @Failure      401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure      503 {object} dto.ErrorResponse "Admin store not enabled"
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.LoginRequest](c)
	if err != nil {
		var validationErr *dto.ValidationError
		var bindingErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErr):
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyMissingParameters,
				map[string]interface{}{"fields": []string{validationErr.Field}}, err)
			return
		case errors.As(err, &bindingErrs):
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyMissingParameters,
				map[string]interface{}{"fields": invalidFields(bindingErrs)}, err)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	resp, err := h.admins.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.Set(string(middleware.AdminKey), resp.User.Username)
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.LogActivity(h.sink, c, "Failed admin login", err, map[string]interface{}{
			"username": strings.TrimSpace(req.Username),
		})
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, nil)
	case errors.Is(err, service.ErrAdminStoreUnavailable):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyStoreUnavailable, err)
	case errors.Is(err, service.ErrSigningKeyMissing):
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyServerConfig, err)
	default:
		log := logger.Logger()
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("Admin login failed")
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// AuditLogs handles GET /api/admin/logs.
//
// @Summary      Search the shipment audit log
// @Description  Filters are case-insensitive substring matches; dates are read in Asia/Bangkok time
// @Tags         Admin
// @Produce      json
// @Param        trackingNumber  query string false "Tracking number"
// @Param        bookingRef      query string false "Pickup booking reference"
// @Param        shipperName     query string false "Shipper name"
// @Param        receiverName    query string false "Receiver name"
// @Param        reference       query string false "Customer reference"
// @Param        accountNumber   query string false "Carrier account"
// @Param        phone           query string false "Shipper or receiver phone"
// @Param        shipperCountry  query string false "Shipper country"
// @Param        receiverCountry query string false "Receiver country"
// @Param        logType         query string false "Log type" example(shipment_success)
// @Param        dateFrom        query string false "First day, YYYY-MM-DD"
// @Param        dateTo          query string false "Last day, YYYY-MM-DD"
// @Param        timeFrom        query string false "Start time, HH:MM"
// @Param        timeTo          query string false "End time, HH:MM"
// @Param        limit           query int    false "Page size, max 1000"
// @Param        offset          query int    false "Rows to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditLogPage}
// @Failure      400 {object} dto.ErrorResponse "Invalid date"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      503 {object} dto.ErrorResponse "Audit store not enabled"
// @Security     BearerAuth
// @Router       /api/admin/logs [get]
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.AuditLogQueryRequest
	if err := NewRequestBuilder(c).BindQuery(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	q, err := req.ToQuery(h.loc)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest,
				map[string]interface{}{"field": validationErr.Field}, err)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	rows, err := h.audit.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrAuditStoreUnavailable) {
			builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyStoreUnavailable, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.AuditLogPage{
		Items:  rows,
		Count:  len(rows),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

// RequestLogs handles GET /api/admin/request-logs.
//
// @Summary      Search operational request logs
// @Tags         Admin
// @Produce      json
// @Param        requestId query string false "Request ID"
// @Param        level     query string false "Log level"
// @Param        method    query string false "HTTP method"
// @Param        path      query string false "Path substring"
// @Param        action    query string false "Carrier action" example(shipment)
// @Param        limit     query int    false "Page size, max 500"
// @Param        skip      query int    false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditLogPage}
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      503 {object} dto.ErrorResponse "Request-log store not enabled"
// @Security     BearerAuth
// @Router       /api/admin/request-logs [get]
func (h *AdminHandler) RequestLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.RequestLogQuery
	if err := NewRequestBuilder(c).BindQuery(&q); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	opts := q.ToOptions()

	entries, err := h.requests.QueryLogs(c.Request.Context(), opts)
	if err != nil {
		if errors.Is(err, service.ErrRequestLogsDisabled) {
			builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyStoreUnavailable, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.AuditLogPage{
		Items:  entries,
		Count:  len(entries),
		Limit:  opts.Limit,
		Offset: opts.Skip,
	})
}
