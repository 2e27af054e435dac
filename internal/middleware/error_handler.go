package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thcfit/shipping-gateway/internal/carrier"
	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/i18n"
	"github.com/thcfit/shipping-gateway/internal/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// A *carrier.Error answers with its own status and a normalized body;
// anything else is a 500 with a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		requestID := GetRequestID(c)

		var cerr *carrier.Error
		isCarrier := errors.As(err, &cerr)

		log := logger.Logger()
		event := log.Error()
		if isCarrier && cerr.Kind == carrier.KindCallerInput {
			event = log.Warn()
		}
		event.
			Str("request_id", requestID).
			Str("action", GetAction(c)).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Err(err).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}

		locale := i18n.GetLocale(c)
		if !isCarrier {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, locale)
			c.JSON(http.StatusInternalServerError, dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
			return
		}

		status, resp := CarrierErrorResponse(cerr, locale)
		c.JSON(status, resp.WithRequestID(requestID))
	}
}

// CarrierErrorResponse maps a carrier error onto the status and body answered to the caller.
// English responses keep the classified message; other locales get the translated one.
func CarrierErrorResponse(cerr *carrier.Error, locale string) (int, dto.ErrorResponse) {
	status := cerr.HTTPStatus()

	message := cerr.Message
	if message == "" || (locale != "" && locale != i18n.DefaultLocale) {
		message = i18n.GetTranslator().Translate(carrierMessageKey(cerr), locale)
	}

	resp := dto.NewError(carrierErrorCode(cerr, status), message)
	if len(cerr.Fields) > 0 {
		resp = resp.WithDetail("fields", cerr.Fields)
	}
	if len(cerr.Details) > 0 {
		resp = resp.WithDetail("carrier", json.RawMessage(cerr.Details))
	}
	if cerr.Raw != "" {
		resp = resp.WithDetail("raw", cerr.Raw)
	}
	if cerr.Status != 0 && cerr.Kind != carrier.KindCallerInput && cerr.Kind != carrier.KindConfiguration {
		resp = resp.WithDetail("carrier_status", cerr.Status)
	}
	return status, resp
}

func carrierErrorCode(cerr *carrier.Error, status int) string {
	switch cerr.Kind {
	case carrier.KindCallerInput:
		return dto.ErrCodeInvalidRequest
	case carrier.KindConfiguration:
		return dto.ErrCodeConfiguration
	case carrier.KindAuthentication:
		return dto.ErrCodeCarrierAuth
	case carrier.KindProtocol:
		switch status {
		case http.StatusServiceUnavailable:
			return dto.ErrCodeUnavailable
		case http.StatusGatewayTimeout:
			return dto.ErrCodeTimeout
		}
		return dto.ErrCodeCarrierProtocol
	case carrier.KindApplication:
		return dto.ErrCodeCarrierApplication
	default:
		return dto.ErrCodeInternal
	}
}

func carrierMessageKey(cerr *carrier.Error) string {
	switch cerr.Kind {
	case carrier.KindCallerInput:
		switch {
		case len(cerr.Fields) == 1 && cerr.Fields[0] == "attachment":
			return i18n.ErrKeyAttachment
		case len(cerr.Fields) == 1 && cerr.Fields[0] == "datasetName" && !strings.HasPrefix(cerr.Message, "Missing"):
			return i18n.ErrKeyUnsupportedDataset
		case strings.HasPrefix(cerr.Message, "Missing"):
			return i18n.ErrKeyMissingParameters
		}
		return i18n.ErrKeyInvalidRequest
	case carrier.KindConfiguration:
		return i18n.ErrKeyServerConfig
	case carrier.KindAuthentication:
		return i18n.ErrKeyCarrierAuth
	case carrier.KindProtocol:
		switch cerr.Status {
		case http.StatusServiceUnavailable:
			return i18n.ErrKeyCarrierUnavailable
		case http.StatusGatewayTimeout:
			return i18n.ErrKeyCarrierTimeout
		}
		return i18n.ErrKeyCarrierInvalidBody
	case carrier.KindApplication:
		return i18n.ErrKeyCarrierRejected
	default:
		return i18n.ErrKeyInternalError
	}
}
