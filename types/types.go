package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the payment request a session is opened against. It is
// created once by the invoice provider and never mutated afterwards.
type Invoice struct {
	// Amount in the invoice's base currency.
	Amount decimal.Decimal `json:"amount"`

	// Currency the invoice is denominated in (e.g. "EUR").
	Currency string `json:"currency" validate:"required,len=3"`

	// Description of what is being paid for.
	Description string `json:"description"`

	// Recipient is the display name of the party requesting payment.
	Recipient string `json:"recipient" validate:"required"`

	// PayerEmail receives the one-time verification code.
	PayerEmail string `json:"payerEmail" validate:"required,email"`

	// DueDate of the invoice.
	DueDate time.Time `json:"dueDate"`
}

// Validate checks that the Invoice contains all required fields.
func (i *Invoice) Validate() error {
	if !i.Amount.IsPositive() {
		return fmt.Errorf("invoice amount must be positive")
	}

	if i.Currency == "" {
		return fmt.Errorf("invoice.currency is required")
	}

	if i.Recipient == "" {
		return fmt.Errorf("invoice.recipient is required")
	}

	if i.PayerEmail == "" || !strings.Contains(i.PayerEmail, "@") {
		return fmt.Errorf("invoice.payerEmail must be a valid email address")
	}

	return nil
}

// PaymentMethod is one concrete way to pay, sourced from the catalog.
// Methods are immutable reference data and never change at runtime.
type PaymentMethod struct {
	// Name of the method as shown to the payer (e.g. "Open Banking").
	Name string `json:"method" validate:"required"`

	// Provider executing the payment (e.g. "Stripe").
	Provider string `json:"provider" validate:"required"`

	// Currencies the method can settle in. Never empty.
	Currencies []string `json:"currencies" validate:"required,min=1"`

	// Fee descriptor: a fixed percentage ("0.99%"), a range
	// ("3.53% - 4.16%"), or "-" for no fee.
	Fee string `json:"fee"`

	// AdditionalFee is an advisory surcharge note shown next to the
	// fee (e.g. "+2% for international cards"). Display only.
	AdditionalFee string `json:"additional_fee,omitempty"`

	// Address is the receiving address or provider token. Its
	// semantics depend on the payment family.
	Address string `json:"address" validate:"required"`
}

// Supports reports whether the method can settle in the given currency.
func (m *PaymentMethod) Supports(currency string) bool {
	for _, c := range m.Currencies {
		if c == currency {
			return true
		}
	}
	return false
}

// Key identifies a method within a catalog. Name alone is not unique
// because one provider may back several methods.
func (m *PaymentMethod) Key() string {
	return m.Name + "/" + m.Provider
}

// Quote is the priced outcome of selecting a payment method.
type Quote struct {
	// Base amount from the invoice.
	Base decimal.Decimal `json:"base"`

	// Total payable after the method's fee, rounded for the target
	// currency (2 places for fiat display, 6 for crypto).
	Total decimal.Decimal `json:"total"`

	// Currency the total is denominated in.
	Currency string `json:"currency"`

	// FeeNote is the method's raw fee descriptor, advisory text.
	FeeNote string `json:"feeNote"`

	// AdditionalFeeNote carries the surcharge note, if any.
	AdditionalFeeNote string `json:"additionalFeeNote,omitempty"`
}

// VerificationResult is the outcome of a one-time code check.
type VerificationResult struct {
	// Valid indicates the submitted code matched.
	Valid bool `json:"valid"`

	// InvalidReason explains a failed check, empty otherwise.
	InvalidReason string `json:"invalidReason,omitempty"`

	// Attempts counts submissions so far, including this one.
	Attempts int `json:"attempts"`
}

// Config contains the injected collaborator data the flow needs: the
// expected one-time code (generated and delivered out of band by a
// notification service) and optional tuning.
type Config struct {
	// ExpectedCode the payer must submit to pass verification.
	ExpectedCode string `json:"expectedCode" validate:"required"`

	// LogLevel for the default zap logger ("debug", "info", ...).
	LogLevel string `json:"logLevel,omitempty"`

	// EnableMetrics switches the Prometheus recorder on.
	EnableMetrics bool `json:"enableMetrics,omitempty"`

	// Extra holds deployment-specific data.
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if c.ExpectedCode == "" {
		return fmt.Errorf("config.expectedCode is required")
	}
	return nil
}

// Error types
type PayFlowError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *PayFlowError) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrVerificationRejected = "VERIFICATION_REJECTED"
	ErrNoMethodsAvailable   = "NO_METHODS_AVAILABLE"
	ErrInvalidFeeSpec       = "INVALID_FEE_SPEC"
	ErrInvalidTransition    = "INVALID_TRANSITION"
	ErrUnsupportedFamily    = "UNSUPPORTED_FAMILY"
	ErrInvalidInvoice       = "INVALID_INVOICE"
	ErrInvalidCatalog       = "INVALID_CATALOG"
	ErrConfigError          = "CONFIG_ERROR"
)

// CodeOf extracts the payflow error code from err, or "" if err is not
// a PayFlowError.
func CodeOf(err error) string {
	if pf, ok := err.(*PayFlowError); ok {
		return pf.Code
	}
	return ""
}
