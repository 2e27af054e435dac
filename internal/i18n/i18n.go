// Package i18n translates user-facing error messages (English and Thai).
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the caller names no supported language.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the caller's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator over the built-in catalog.
func NewTranslator() *Translator {
	return &Translator{messages: getDefaultMessages()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale. Keys missing from locale
// fall back to DefaultLocale, and unknown keys are returned unchanged.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first supported base language from Accept-Language,
// in the order the caller listed them. Quality values are not ranked.
func GetLocale(c *gin.Context) string {
	translator := GetTranslator()
	for _, part := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		tag, _, _ := strings.Cut(part, ";")
		base, _, _ := strings.Cut(strings.TrimSpace(tag), "-")
		base = strings.ToLower(base)
		if base != "" && translator.Supports(base) {
			return base
		}
	}
	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":          "Invalid request",
			"error.invalid_request_body":     "Invalid request body",
			"error.internal_error":           "An unexpected error occurred",
			"error.unauthorized":             "Unauthorized",
			"error.invalid_credentials":      "Invalid username or password",
			"error.api_key_required":         "API key is required",
			"error.invalid_api_key":          "Invalid API key",
			"error.not_found":                "Not found",
			"error.method_not_allowed":       "Method not allowed",
			"error.rate_limit_exceeded":      "Too many requests, please try again later",
			"error.invalid_token":            "Invalid or expired token",
			"error.token_required":           "Authentication token is required",
			"error.missing_parameters":       "Missing required parameters",
			"error.unsupported_dataset":      "Unsupported reference dataset",
			"error.invalid_form":             "Invalid shipment form",
			"error.attachment_unreadable":    "The attached document could not be read",
			"error.server_configuration":     "Server configuration error",
			"error.store_unavailable":        "Log storage is not available",
			"error.carrier.authentication":   "Could not authenticate with the carrier",
			"error.carrier.invalid_response": "Received an invalid response from the carrier",
			"error.carrier.rejected":         "The carrier rejected the request",
			"error.carrier.unavailable":      "The carrier is currently unavailable",
			"error.carrier.timeout":          "The carrier did not respond in time",
		},
		"th": {
			"error.invalid_request":          "คำขอไม่ถูกต้อง",
			"error.invalid_request_body":     "ข้อมูลคำขอไม่ถูกต้อง",
			"error.internal_error":           "เกิดข้อผิดพลาดที่ไม่คาดคิด",
			"error.unauthorized":             "ไม่ได้รับอนุญาต",
			"error.invalid_credentials":      "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
			"error.api_key_required":         "ต้องระบุ API key",
			"error.invalid_api_key":          "API key ไม่ถูกต้อง",
			"error.not_found":                "ไม่พบข้อมูล",
			"error.method_not_allowed":       "ไม่รองรับเมธอดนี้",
			"error.rate_limit_exceeded":      "มีคำขอมากเกินไป กรุณาลองใหม่ภายหลัง",
			"error.invalid_token":            "โทเค็นไม่ถูกต้องหรือหมดอายุ",
			"error.token_required":           "ต้องระบุโทเค็นสำหรับยืนยันตัวตน",
			"error.missing_parameters":       "ขาดพารามิเตอร์ที่จำเป็น",
			"error.unsupported_dataset":      "ไม่รองรับชุดข้อมูลอ้างอิงนี้",
			"error.invalid_form":             "ข้อมูลแบบฟอร์มการจัดส่งไม่ถูกต้อง",
			"error.attachment_unreadable":    "ไม่สามารถอ่านเอกสารแนบได้",
			"error.server_configuration":     "การตั้งค่าเซิร์ฟเวอร์ไม่ถูกต้อง",
			"error.store_unavailable":        "ระบบจัดเก็บบันทึกไม่พร้อมใช้งาน",
			"error.carrier.authentication":   "ไม่สามารถยืนยันตัวตนกับผู้ให้บริการขนส่งได้",
			"error.carrier.invalid_response": "ได้รับการตอบกลับที่ไม่ถูกต้องจากผู้ให้บริการขนส่ง",
			"error.carrier.rejected":         "ผู้ให้บริการขนส่งปฏิเสธคำขอ",
			"error.carrier.unavailable":      "ผู้ให้บริการขนส่งไม่พร้อมให้บริการในขณะนี้",
			"error.carrier.timeout":          "ผู้ให้บริการขนส่งไม่ตอบกลับภายในเวลาที่กำหนด",
		},
	}
}
