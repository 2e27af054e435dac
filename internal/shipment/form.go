package shipment

import (
	"io"
	"strings"

	"github.com/thcfit/shipping-gateway/internal/domain/dto"
)

// Form is the typed shipping form submitted by the browser UI.
type Form struct {
	IsDocument              bool `json:"isDocument"`
	PickupRequested         bool `json:"pickupRequested"`
	CreateInvoice           bool `json:"createInvoice"`
	ProformaInvoice         bool `json:"proformaInvoice"`
	ReceiverPaysTaxes       bool `json:"receiverPaysTaxes"`
	InsuranceRequested      bool `json:"insuranceRequested"`
	DocumentUploadRequested bool `json:"documentUploadRequested"`

	ShipDate   string `json:"shipDate"`
	PickupDate string `json:"pickupDate"`

	ShipperAccount string `json:"shipperAccount"`
	DutiesAccount  string `json:"dutiesAccount"`

	Shipper  Party `json:"shipper"`
	Receiver Party `json:"receiver"`

	DocumentDescription string `json:"documentDescription"`
	Summary             string `json:"summary"`
	Incoterm            string `json:"incoterm"`
	InvoiceNumber       string `json:"invoiceNumber"`
	DocumentReference   string `json:"documentReference"`
	PackageReference    string `json:"packageReference"`

	LineItems []LineItem     `json:"lineItems"`
	Pieces    []PackagePiece `json:"pieces"`

	InsuranceValue    dto.FlexFloat `json:"insuranceValue"`
	InsuranceCurrency string        `json:"insuranceCurrency"`

	// PickupWindow is nil when the time-range control was not rendered.
	PickupWindow       *TimeRange `json:"pickupWindow,omitempty"`
	PickupLocation     string     `json:"pickupLocation"`
	PickupInstructions string     `json:"pickupInstructions"`
	Pickup             Party      `json:"pickup"`

	Attachment *Attachment `json:"-"`
}

// Party is an address plus contact block.
type Party struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Address3    string `json:"address3"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

// LineItem is one customs-declarable article. Numbers arrive as text from
// the browser form as often as not.
type LineItem struct {
	Description        string        `json:"description"`
	Value              dto.FlexFloat `json:"value"`
	Currency           string        `json:"currency"`
	Quantity           dto.FlexInt   `json:"quantity"`
	Unit               string        `json:"unit"`
	ManufactureCountry string        `json:"manufactureCountry"`
	CommodityCode      string        `json:"commodityCode"`
	Weight             dto.FlexFloat `json:"weight"`
}

// PackagePiece describes Quantity identical parcels.
type PackagePiece struct {
	Weight   dto.FlexFloat `json:"weight"`
	Length   dto.FlexFloat `json:"length"`
	Width    dto.FlexFloat `json:"width"`
	Height   dto.FlexFloat `json:"height"`
	Quantity dto.FlexInt   `json:"quantity"`
}

// TimeRange holds the two handles of the pickup time slider.
// Values are either "h:mm am/pm" or minutes since midnight.
type TimeRange struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Attachment is an uploaded document waiting to be encoded.
type Attachment struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// IsPackage reports whether the form describes a package shipment.
func (f Form) IsPackage() bool {
	return !f.IsDocument
}

// Reference returns the customer reference entered for the active mode.
func (f Form) Reference() string {
	if f.IsDocument {
		return strings.TrimSpace(f.DocumentReference)
	}
	return strings.TrimSpace(f.PackageReference)
}

// MissingFields lists the required fields that were left blank.
func (f Form) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(f.ShipDate) == "" && !(f.PickupRequested && strings.TrimSpace(f.PickupDate) != "") {
		missing = append(missing, "shipDate")
	}
	if strings.TrimSpace(f.ShipperAccount) == "" {
		missing = append(missing, "shipperAccount")
	}
	if strings.TrimSpace(f.Shipper.CountryCode) == "" {
		missing = append(missing, "shipper.countryCode")
	}
	if strings.TrimSpace(f.Receiver.CountryCode) == "" {
		missing = append(missing, "receiver.countryCode")
	}
	if f.IsPackage() && len(f.Pieces) == 0 {
		missing = append(missing, "pieces")
	}
	return missing
}

func quantityOf(q dto.FlexInt) int {
	if q <= 0 {
		return 1
	}
	return int(q)
}
