package domain

import "time"

// Project identifies which vendor integration produced an order record.
type Project string

const (
	ProjectFRP        Project = "FRP"        // Radius disposition check, card
	ProjectSC         Project = "SC"         // Sempris
	ProjectMDI        Project = "MDI"        // PSOnline
	ProjectHPP        Project = "HPP"        // Sublytics
	ProjectImportSale Project = "IMPORTSALE" // ImportSale pass-through
	ProjectMI         Project = "MI"         // Radius disposition check, bank draft
)

// Valid reports whether p is one of the known projects.
func (p Project) Valid() bool {
	switch p {
	case ProjectFRP, ProjectSC, ProjectMDI, ProjectHPP, ProjectImportSale, ProjectMI:
		return true
	}
	return false
}

// Status: lifecycle state of an order record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
	StatusFailed     Status = "failed"
)

// GatewayResponse holds the payment-gateway sub-record some vendors
// (Sublytics) return alongside the transaction result. Preserved for audit.
type GatewayResponse struct {
	TransactionID string `json:"transaction_id,omitempty"`
	GatewayID     string `json:"gateway_id,omitempty"`
	AuthCode      string `json:"auth_code,omitempty"`
	ResponseText  string `json:"response_text,omitempty"`
}

// Extensions: vendor-specific fields that have no canonical slot.
// Stored as jsonb, shape depends on Project.
type Extensions struct {
	VendorID          string           `json:"vendor_id,omitempty"`          // SC
	ClientOrderNumber string           `json:"client_order_number,omitempty"` // SC
	PitchID           string           `json:"pitch_id,omitempty"`            // SC
	Gateway           *GatewayResponse `json:"gateway_response,omitempty"`    // HPP
	CheckingConsent   bool             `json:"checking_consent,omitempty"`    // MI
	EsignConsent      bool             `json:"esign_consent,omitempty"`       // MI
	Extra             map[string]any   `json:"extra,omitempty"`
}

// Order: the canonical order record: one row per submission attempt,
// uniform across vendors. Append-only once the status is terminal.
type Order struct {
	OrderUID string  `json:"order_uid"`
	Project  Project `json:"project"`
	UserID   string  `json:"user_id"`

	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address1       string `json:"address1"`
	Address2       string `json:"address2,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	Phone          string `json:"phone"`
	SecondaryPhone string `json:"secondary_phone,omitempty"`
	Email          string `json:"email,omitempty"`

	SourceCode  string `json:"source_code"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	SessionID   string `json:"session_id"`

	CardNumber     string `json:"card_number,omitempty"`
	CardLast4      string `json:"card_last4,omitempty"`
	CardExpiration string `json:"card_expiration,omitempty"` // MMYY
	CVV            string `json:"cvv,omitempty"`
	Issuer         string `json:"issuer,omitempty"`

	CheckingAccountName string `json:"checking_account_name,omitempty"`
	RoutingNumber       string `json:"routing_number,omitempty"`
	AccountNumber       string `json:"account_number,omitempty"`

	Extensions Extensions `json:"extensions,omitempty"`

	Status             Status    `json:"status"`
	ValidationStatus   bool      `json:"validation_status"`
	ValidationMessage  string    `json:"validation_message,omitempty"`
	ValidationResponse string    `json:"validation_response,omitempty"`
	ValidationDate     time.Time `json:"validation_date"`

	CreatedAt time.Time `json:"created_at"`
}

// Last4 returns the last 4 characters of a card number ("" when shorter).
func Last4(cardNumber string) string {
	if len(cardNumber) < 4 {
		return ""
	}
	return cardNumber[len(cardNumber)-4:]
}
