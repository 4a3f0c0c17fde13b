package domain

// PaymentMethod distinguishes card and bank-draft submissions where a
// vendor supports both (ImportSale, MI).
type PaymentMethod string

const (
	PayByCard  PaymentMethod = "card"
	PayByCheck PaymentMethod = "check"
)

// Offer: one line of a multi-offer submission (Sublytics).
type Offer struct {
	OfferID  string `json:"offer_id"`
	Quantity int    `json:"quantity"`
}

// Submission: canonical purchase intent handed to the orchestrator.
// One struct for all projects; the per-project required-field set is
// enforced by the orchestrator and the adapter, not by the type.
type Submission struct {
	Project Project `json:"-"`
	UserID  string  `json:"-"`

	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address1       string `json:"address1"`
	Address2       string `json:"address2,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	Country        string `json:"country,omitempty"`
	Phone          string `json:"phone"`
	SecondaryPhone string `json:"secondary_phone,omitempty"`
	Email          string `json:"email,omitempty"`
	DOB            string `json:"dob,omitempty"`    // MM/DD/YYYY, PSOnline only
	Gender         string `json:"gender,omitempty"` // M|F, PSOnline only

	SourceCode  string  `json:"source_code"`
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	SessionID   string  `json:"session_id"`
	Amount      float64 `json:"amount,omitempty"`

	PaymentMethod  PaymentMethod `json:"payment_method,omitempty"`
	CardNumber     string        `json:"card_number,omitempty"`
	CardExpiration string        `json:"card_expiration,omitempty"` // MMYY
	CardExpMonth   string        `json:"card_exp_month,omitempty"`  // Sublytics: 2 digits
	CardExpYear    string        `json:"card_exp_year,omitempty"`   // Sublytics: 4 digits
	CVV            string        `json:"cvv,omitempty"`
	Issuer         string        `json:"issuer,omitempty"`

	CheckingAccountName string `json:"checking_account_name,omitempty"`
	RoutingNumber       string `json:"routing_number,omitempty"`
	AccountNumber       string `json:"account_number,omitempty"`
	CheckingConsent     bool   `json:"checking_consent,omitempty"`
	EsignConsent        bool   `json:"esign_consent,omitempty"`

	// Sempris extras.
	VendorID          string `json:"vendor_id,omitempty"`
	ClientOrderNumber string `json:"client_order_number,omitempty"`
	PitchID           string `json:"pitch_id,omitempty"`

	// Sublytics extras.
	CustomerID      string  `json:"customer_id,omitempty"`
	PaymentMethodID int     `json:"payment_method_id,omitempty"`
	CampaignID      string  `json:"campaign_id,omitempty"`
	Offers          []Offer `json:"offers,omitempty"`
	ShippingSame    bool    `json:"shipping_same"`
	ShipFirstName   string  `json:"ship_first_name,omitempty"`
	ShipLastName    string  `json:"ship_last_name,omitempty"`
	ShipAddress1    string  `json:"ship_address1,omitempty"`
	ShipAddress2    string  `json:"ship_address2,omitempty"`
	ShipCity        string  `json:"ship_city,omitempty"`
	ShipState       string  `json:"ship_state,omitempty"`
	ShipZip         string  `json:"ship_zip,omitempty"`
	ShipCountry     string  `json:"ship_country,omitempty"`
}
