package shipment

// Payload is the carrier's create-shipment request body.
type Payload struct {
	PlannedShippingDateAndTime string                `json:"plannedShippingDateAndTime"`
	Pickup                     Pickup                `json:"pickup"`
	ProductCode                string                `json:"productCode"`
	Accounts                   []Account             `json:"accounts"`
	ValueAddedServices         []ValueAddedService   `json:"valueAddedServices,omitempty"`
	OutputImageProperties      OutputImageProperties `json:"outputImageProperties"`
	CustomerReferences         []CustomerReference   `json:"customerReferences,omitempty"`
	CustomerDetails            CustomerDetails       `json:"customerDetails"`
	Content                    Content               `json:"content"`
	DocumentImages             []DocumentImage       `json:"documentImages,omitempty"`
}

// Product codes.
const (
	ProductDocument = "D"
	ProductPackage  = "P"
)

// Account type codes.
const (
	AccountShipper     = "shipper"
	AccountDutiesTaxes = "duties-taxes"
)

// Value-added service codes.
const (
	ServicePaperlessTrade    = "WY"
	ServiceDocumentInsurance = "IB"
	ServicePackageInsurance  = "II"
)

type Account struct {
	TypeCode string `json:"typeCode"`
	Number   string `json:"number"`
}

type ValueAddedService struct {
	ServiceCode string  `json:"serviceCode"`
	Value       float64 `json:"value,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

type CustomerReference struct {
	TypeCode string `json:"typeCode"`
	Value    string `json:"value"`
}

type CustomerDetails struct {
	ShipperDetails  PartyDetails `json:"shipperDetails"`
	ReceiverDetails PartyDetails `json:"receiverDetails"`
}

type PartyDetails struct {
	PostalAddress      PostalAddress      `json:"postalAddress"`
	ContactInformation ContactInformation `json:"contactInformation"`
}

type PostalAddress struct {
	PostalCode   string `json:"postalCode,omitempty"`
	CityName     string `json:"cityName,omitempty"`
	CountryCode  string `json:"countryCode,omitempty"`
	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	AddressLine3 string `json:"addressLine3,omitempty"`
}

type ContactInformation struct {
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
}

type Content struct {
	Packages              []Package          `json:"packages"`
	IsCustomsDeclarable   bool               `json:"isCustomsDeclarable"`
	DeclaredValue         float64            `json:"declaredValue,omitempty"`
	DeclaredValueCurrency string             `json:"declaredValueCurrency,omitempty"`
	Description           string             `json:"description"`
	Incoterm              string             `json:"incoterm,omitempty"`
	UnitOfMeasurement     string             `json:"unitOfMeasurement"`
	ExportDeclaration     *ExportDeclaration `json:"exportDeclaration,omitempty"`
}

type Package struct {
	Weight     float64    `json:"weight"`
	Dimensions Dimensions `json:"dimensions"`
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ExportDeclaration struct {
	LineItems []ExportLineItem `json:"lineItems"`
	Invoice   *Invoice         `json:"invoice,omitempty"`
}

type ExportLineItem struct {
	Number              int             `json:"number"`
	Description         string          `json:"description"`
	Price               float64         `json:"price"`
	Quantity            Quantity        `json:"quantity"`
	CommodityCodes      []CommodityCode `json:"commodityCodes,omitempty"`
	ExportReasonType    string          `json:"exportReasonType"`
	ManufacturerCountry string          `json:"manufacturerCountry"`
	Weight              ItemWeight      `json:"weight"`
}

type Quantity struct {
	Value             int    `json:"value"`
	UnitOfMeasurement string `json:"unitOfMeasurement"`
}

type CommodityCode struct {
	TypeCode string `json:"typeCode"`
	Value    string `json:"value"`
}

type ItemWeight struct {
	NetValue   float64 `json:"netValue"`
	GrossValue float64 `json:"grossValue"`
}

type Invoice struct {
	Number           string  `json:"number"`
	Date             string  `json:"date"`
	TotalNetWeight   float64 `json:"totalNetWeight"`
	TotalGrossWeight float64 `json:"totalGrossWeight"`
}

type DocumentImage struct {
	TypeCode    string `json:"typeCode"`
	ImageFormat string `json:"imageFormat"`
	Content     string `json:"content"`
}

// Pickup is either {isRequested:false}, {isRequested:true} or a full pickup block.
type Pickup struct {
	IsRequested         bool                 `json:"isRequested"`
	CloseTime           string               `json:"closeTime,omitempty"`
	Location            string               `json:"location,omitempty"`
	SpecialInstructions []SpecialInstruction `json:"specialInstructions,omitempty"`
	PickupDetails       *PartyDetails        `json:"pickupDetails,omitempty"`
}

type SpecialInstruction struct {
	Value string `json:"value"`
}

type OutputImageProperties struct {
	PrinterDPI     int           `json:"printerDPI"`
	EncodingFormat string        `json:"encodingFormat"`
	ImageOptions   []ImageOption `json:"imageOptions"`
}

type ImageOption struct {
	TypeCode    string `json:"typeCode"`
	InvoiceType string `json:"invoiceType,omitempty"`
	IsRequested bool   `json:"isRequested"`
}

// Output document type codes.
const (
	ImageLabel   = "label"
	ImageWaybill = "waybillDoc"
	ImageReceipt = "receipt"
	ImageInvoice = "invoice"
)
