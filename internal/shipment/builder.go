// Package shipment turns the browser shipping form into the carrier's
// create-shipment payload.
package shipment

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	defaultCurrency    = "THB"
	defaultShipTime    = "09:00:00"
	defaultZoneLabel   = "GMT+07:00"
	documentFallback   = "Documents"
	packageFallback    = "Shipment details"
	unitMetric         = "metric"
	referenceCustomer  = "CU"
	documentImageType  = "INV"
	commodityInbound   = "inbound"
	exportReasonPerm   = "permanent"
	invoiceCommercial  = "commercial"
	invoiceProforma    = "proforma"
	outputPrinterDPI   = 300
	outputEncodingPDF  = "pdf"
	declaredValueScale = 3
)

// documentPackage is the carrier's fixed placeholder parcel for document shipments.
var documentPackage = Package{
	Weight:     0.5,
	Dimensions: Dimensions{Length: 1, Width: 38, Height: 48},
}

// Builder assembles payloads. It holds no per-request state and is safe for concurrent use.
type Builder struct {
	defaultCurrency string
	shipTime        string
	zoneLabel       string
}

// Option configures a Builder.
type Option func(*Builder)

// WithDefaultCurrency sets the currency used when no line item names one.
func WithDefaultCurrency(currency string) Option {
	return func(b *Builder) {
		if currency != "" {
			b.defaultCurrency = currency
		}
	}
}

// WithShipTime sets the fixed time of day and zone label appended to the planned date.
func WithShipTime(timeOfDay, zoneLabel string) Option {
	return func(b *Builder) {
		if timeOfDay != "" {
			b.shipTime = timeOfDay
		}
		if zoneLabel != "" {
			b.zoneLabel = zoneLabel
		}
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		defaultCurrency: defaultCurrency,
		shipTime:        defaultShipTime,
		zoneLabel:       defaultZoneLabel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the create-shipment payload for form.
// The only failure is an unreadable attachment, in which case no payload is returned.
func (b *Builder) Build(form Form) (*Payload, error) {
	p := &Payload{
		PlannedShippingDateAndTime: b.plannedDate(form),
		ProductCode:                ProductPackage,
		Accounts:                   buildAccounts(form),
		CustomerDetails: CustomerDetails{
			ShipperDetails:  partyDetails(form.Shipper, form.Shipper.CountryCode),
			ReceiverDetails: partyDetails(form.Receiver, form.Receiver.CountryCode),
		},
		OutputImageProperties: buildOutputImages(form),
	}
	if form.IsDocument {
		p.ProductCode = ProductDocument
	}

	if form.IsDocument {
		p.Content = documentContent(form)
	} else {
		p.Content = b.packageContent(form)
	}

	if ref := form.Reference(); ref != "" {
		p.CustomerReferences = []CustomerReference{{TypeCode: referenceCustomer, Value: ref}}
	}

	if form.DocumentUploadRequested {
		p.ValueAddedServices = append(p.ValueAddedServices, ValueAddedService{ServiceCode: ServicePaperlessTrade})
		if form.Attachment != nil {
			content, err := encodeAttachment(form.Attachment)
			if err != nil {
				return nil, err
			}
			p.DocumentImages = []DocumentImage{{
				TypeCode:    documentImageType,
				ImageFormat: ImageFormat(form.Attachment.Name),
				Content:     content,
			}}
		}
	}

	if form.InsuranceRequested {
		p.ValueAddedServices = append(p.ValueAddedServices, b.insuranceService(form, p.Content))
	}

	p.Pickup = buildPickup(form)
	return p, nil
}

func (b *Builder) plannedDate(form Form) string {
	date := strings.TrimSpace(form.ShipDate)
	if form.PickupRequested && strings.TrimSpace(form.PickupDate) != "" {
		date = strings.TrimSpace(form.PickupDate)
	}
	return b.PlannedDateTime(date)
}

// PlannedDateTime formats date the way the carrier expects a planned shipping time.
func (b *Builder) PlannedDateTime(date string) string {
	return strings.TrimSpace(date) + "T" + b.shipTime + " " + b.zoneLabel
}

func buildAccounts(form Form) []Account {
	accounts := []Account{{TypeCode: AccountShipper, Number: form.ShipperAccount}}
	duties := strings.TrimSpace(form.DutiesAccount)
	if form.IsPackage() && !form.ReceiverPaysTaxes && duties != "" {
		accounts = append(accounts, Account{TypeCode: AccountDutiesTaxes, Number: duties})
	}
	return accounts
}

func partyDetails(party Party, country string) PartyDetails {
	return PartyDetails{
		PostalAddress: PostalAddress{
			PostalCode:   strings.TrimSpace(party.PostalCode),
			CityName:     strings.TrimSpace(party.City),
			CountryCode:  strings.TrimSpace(country),
			AddressLine1: strings.TrimSpace(party.Address1),
			AddressLine2: strings.TrimSpace(party.Address2),
			AddressLine3: strings.TrimSpace(party.Address3),
		},
		ContactInformation: ContactInformation{
			FullName:    party.Name,
			CompanyName: party.Company,
			Phone:       party.Phone,
			Email:       strings.TrimSpace(party.Email),
		},
	}
}

func documentContent(form Form) Content {
	description := strings.TrimSpace(form.DocumentDescription)
	if description == "" {
		description = documentFallback
	}
	return Content{
		Packages:            []Package{documentPackage},
		IsCustomsDeclarable: false,
		Description:         description,
		UnitOfMeasurement:   unitMetric,
	}
}

func (b *Builder) packageContent(form Form) Content {
	value, currency := b.declaredValue(form)
	return Content{
		Packages:              expandPieces(form.Pieces),
		IsCustomsDeclarable:   true,
		DeclaredValue:         value,
		DeclaredValueCurrency: currency,
		Description:           packageDescription(form),
		Incoterm:              strings.TrimSpace(form.Incoterm),
		UnitOfMeasurement:     unitMetric,
		ExportDeclaration:     exportDeclaration(form),
	}
}

func packageDescription(form Form) string {
	if len(form.LineItems) > 1 && strings.TrimSpace(form.Summary) != "" {
		return strings.TrimSpace(form.Summary)
	}
	if len(form.LineItems) > 0 && strings.TrimSpace(form.LineItems[0].Description) != "" {
		return strings.TrimSpace(form.LineItems[0].Description)
	}
	return packageFallback
}

// declaredValue prefers an explicit insured value, otherwise sums the line items.
func (b *Builder) declaredValue(form Form) (float64, string) {
	if form.InsuranceRequested && form.InsuranceValue > 0 {
		currency := strings.TrimSpace(form.InsuranceCurrency)
		if currency == "" {
			currency = b.lineItemCurrency(form)
		}
		return float64(form.InsuranceValue), currency
	}

	total := decimal.Zero
	for _, item := range form.LineItems {
		qty := decimal.NewFromInt(int64(quantityOf(item.Quantity)))
		total = total.Add(decimal.NewFromFloat(float64(item.Value)).Mul(qty))
	}
	return total.Round(declaredValueScale).InexactFloat64(), b.lineItemCurrency(form)
}

func (b *Builder) lineItemCurrency(form Form) string {
	if len(form.LineItems) > 0 {
		if c := strings.TrimSpace(form.LineItems[0].Currency); c != "" {
			return c
		}
	}
	return b.defaultCurrency
}

func (b *Builder) insuranceService(form Form, content Content) ValueAddedService {
	if form.IsDocument {
		return ValueAddedService{ServiceCode: ServiceDocumentInsurance}
	}
	return ValueAddedService{
		ServiceCode: ServicePackageInsurance,
		Value:       content.DeclaredValue,
		Currency:    content.DeclaredValueCurrency,
	}
}

func expandPieces(pieces []PackagePiece) []Package {
	packages := make([]Package, 0, len(pieces))
	for _, piece := range pieces {
		pkg := Package{
			Weight: float64(piece.Weight),
			Dimensions: Dimensions{
				Length: float64(piece.Length),
				Width:  float64(piece.Width),
				Height: float64(piece.Height),
			},
		}
		for i := 0; i < quantityOf(piece.Quantity); i++ {
			packages = append(packages, pkg)
		}
	}
	return packages
}

func exportDeclaration(form Form) *ExportDeclaration {
	decl := &ExportDeclaration{LineItems: make([]ExportLineItem, 0, len(form.LineItems))}

	totalWeight := decimal.Zero
	for i, item := range form.LineItems {
		qty := quantityOf(item.Quantity)
		line := ExportLineItem{
			Number:      i + 1,
			Description: item.Description,
			Price:       float64(item.Value),
			Quantity: Quantity{
				Value:             qty,
				UnitOfMeasurement: item.Unit,
			},
			ExportReasonType:    exportReasonPerm,
			ManufacturerCountry: item.ManufactureCountry,
			Weight: ItemWeight{
				NetValue:   float64(item.Weight),
				GrossValue: float64(item.Weight),
			},
		}
		if code := strings.TrimSpace(item.CommodityCode); code != "" {
			line.CommodityCodes = []CommodityCode{{TypeCode: commodityInbound, Value: code}}
		}
		decl.LineItems = append(decl.LineItems, line)
		totalWeight = totalWeight.Add(decimal.NewFromFloat(float64(item.Weight)).Mul(decimal.NewFromInt(int64(qty))))
	}

	if number := strings.TrimSpace(form.InvoiceNumber); number != "" {
		weight := totalWeight.Round(declaredValueScale).InexactFloat64()
		decl.Invoice = &Invoice{
			Number:           number,
			Date:             strings.TrimSpace(form.ShipDate),
			TotalNetWeight:   weight,
			TotalGrossWeight: weight,
		}
	}
	return decl
}

func buildPickup(form Form) Pickup {
	if !form.PickupRequested {
		return Pickup{IsRequested: false}
	}
	if form.PickupWindow == nil {
		return Pickup{IsRequested: true}
	}
	closeTime, err := ParseCloseTime(form.PickupWindow.Close)
	if err != nil {
		return Pickup{IsRequested: true}
	}

	details := partyDetails(form.Pickup, form.Shipper.CountryCode)
	details.ContactInformation.Email = ""
	pickup := Pickup{
		IsRequested:   true,
		CloseTime:     closeTime,
		Location:      strings.TrimSpace(form.PickupLocation),
		PickupDetails: &details,
	}
	if instructions := strings.TrimSpace(form.PickupInstructions); instructions != "" {
		pickup.SpecialInstructions = []SpecialInstruction{{Value: instructions}}
	}
	return pickup
}

func buildOutputImages(form Form) OutputImageProperties {
	options := []ImageOption{
		{TypeCode: ImageLabel, IsRequested: true},
		{TypeCode: ImageWaybill, IsRequested: true},
		{TypeCode: ImageReceipt, IsRequested: true},
	}
	if form.IsPackage() && form.CreateInvoice {
		invoiceType := invoiceCommercial
		if form.ProformaInvoice {
			invoiceType = invoiceProforma
		}
		options = append(options, ImageOption{TypeCode: ImageInvoice, InvoiceType: invoiceType, IsRequested: true})
	}
	return OutputImageProperties{
		PrinterDPI:     outputPrinterDPI,
		EncodingFormat: outputEncodingPDF,
		ImageOptions:   options,
	}
}
