package carrier

import (
	"encoding/json"
	"strings"
)

// ShipmentSummary holds the identifiers pulled out of a successful create-shipment response.
type ShipmentSummary struct {
	TrackingNumber             string
	DispatchConfirmationNumber string
	PackageTrackingNumbers     []string
	Documents                  []Document
	Warnings                   []string
}

// Document is one carrier-generated file, base64 encoded.
type Document struct {
	TypeCode    string `json:"typeCode"`
	ImageFormat string `json:"imageFormat"`
	Content     string `json:"content"`
}

// Document returns the first document of the given type, if any.
func (s ShipmentSummary) Document(typeCode string) (Document, bool) {
	for _, d := range s.Documents {
		if strings.EqualFold(d.TypeCode, typeCode) {
			return d, true
		}
	}
	return Document{}, false
}

type shipmentResponse struct {
	ShipmentTrackingNumber      string   `json:"shipmentTrackingNumber"`
	DispatchConfirmationNumber  string   `json:"dispatchConfirmationNumber"`
	DispatchConfirmationNumbers []string `json:"dispatchConfirmationNumbers"`
	Packages                    []struct {
		TrackingNumber string `json:"trackingNumber"`
	} `json:"packages"`
	Documents []Document      `json:"documents"`
	Warnings  json.RawMessage `json:"warnings"`
}

// SummarizeShipment extracts identifiers from a create-shipment body.
// Unexpected shapes yield an empty summary rather than an error.
func SummarizeShipment(body []byte) ShipmentSummary {
	var resp shipmentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ShipmentSummary{}
	}

	summary := ShipmentSummary{
		TrackingNumber:             resp.ShipmentTrackingNumber,
		DispatchConfirmationNumber: resp.DispatchConfirmationNumber,
		Documents:                  resp.Documents,
		Warnings:                   warningsOf(resp.Warnings),
	}
	if summary.DispatchConfirmationNumber == "" && len(resp.DispatchConfirmationNumbers) > 0 {
		summary.DispatchConfirmationNumber = resp.DispatchConfirmationNumbers[0]
	}
	for _, p := range resp.Packages {
		if p.TrackingNumber != "" {
			summary.PackageTrackingNumbers = append(summary.PackageTrackingNumbers, p.TrackingNumber)
		}
	}
	return summary
}

// warningsOf accepts both a list of strings and a list of {message} objects.
func warningsOf(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := textOf(raw); s != "" {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range items {
		if s := textOf(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
