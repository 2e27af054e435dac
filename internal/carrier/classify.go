package carrier

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	messageInvalidResponse = "Received an invalid response from the carrier"
	messageRejected        = "The carrier rejected the request"
)

// Result is a successful upstream response, forwarded verbatim.
type Result struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Classify sorts an upstream response into success, protocol or application failure.
func Classify(resp *Response) (*Result, error) {
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || !json.Valid(body) {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		return nil, &Error{
			Kind:    KindProtocol,
			Status:  status,
			Message: messageInvalidResponse,
			Raw:     string(resp.Body),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindApplication,
			Status:  resp.StatusCode,
			Message: ExtractMessage(body),
			Details: json.RawMessage(body),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &Result{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        resp.Body,
	}, nil
}

// ExtractMessage builds a readable message from a carrier error body:
// detail, else message, then every additionalDetails entry, joined with "; ".
// The raw body is returned when none of those are present.
func ExtractMessage(body []byte) string {
	var fields struct {
		Detail            json.RawMessage   `json:"detail"`
		Message           json.RawMessage   `json:"message"`
		AdditionalDetails []json.RawMessage `json:"additionalDetails"`
	}
	raw := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &fields); err != nil {
		if raw == "" {
			return messageRejected
		}
		return raw
	}

	var parts []string
	if s := textOf(fields.Detail); s != "" {
		parts = append(parts, s)
	} else if s := textOf(fields.Message); s != "" {
		parts = append(parts, s)
	}
	for _, d := range fields.AdditionalDetails {
		if s := textOf(d); s != "" {
			parts = append(parts, s)
		}
	}

	if len(parts) == 0 {
		if raw == "" {
			return messageRejected
		}
		return raw
	}
	return strings.Join(parts, "; ")
}

// textOf reads a JSON string, or the message/detail field of an object.
func textOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if m := strings.TrimSpace(obj.Message); m != "" {
			return m
		}
		return strings.TrimSpace(obj.Detail)
	}
	return ""
}
