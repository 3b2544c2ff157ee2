// Package presentation builds the view models a UI renders for each
// flow step. Rendering, clipboard access, QR drawing and link opening
// happen outside the core; the view models only carry strings.
package presentation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/w3are/payflow/catalog"
	"github.com/w3are/payflow/fees"
	"github.com/w3are/payflow/flow"
	"github.com/w3are/payflow/types"
)

// maskMarker replaces the hidden part of the payer's email local part.
const maskMarker = "***"

// MaskEmail masks an email for display: the first two characters of the
// local part are kept, the remainder is replaced with a fixed marker,
// the domain stays unchanged. Local parts shorter than two characters
// show nothing before the "@".
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return maskMarker
	}

	local, domain := email[:at], email[at:]
	if len(local) < 2 {
		return maskMarker + domain
	}
	return local[:2] + maskMarker + domain
}

// FamilyOption is one selectable payment family with its fee hint.
type FamilyOption struct {
	Family types.Family `json:"family"`

	// Label is the payer-facing name of the family.
	Label string `json:"label"`

	// FeeHint summarizes the family's fee spread, e.g.
	// "0.99% to 4.16% fees".
	FeeHint string `json:"feeHint,omitempty"`
}

// MethodRow is one selectable method with its priced total.
type MethodRow struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	Total         string `json:"total"`
	FeeNote       string `json:"feeNote"`
	AdditionalFee string `json:"additionalFee,omitempty"`
}

// View is the step-tagged render model for a session. Only the fields
// for the current step are populated.
type View struct {
	Step types.Step `json:"step"`

	// Invoice header, shown on every step.
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"`

	// VerifyEmail step.
	MaskedEmail string `json:"maskedEmail,omitempty"`
	CodeError   string `json:"codeError,omitempty"`

	// ChooseFamily step.
	Families []FamilyOption `json:"families,omitempty"`

	// ChooseCurrency step.
	Currencies []string `json:"currencies,omitempty"`

	// ChooseMethod step.
	Methods            []MethodRow `json:"methods,omitempty"`
	NoMethodsAvailable bool        `json:"noMethodsAvailable,omitempty"`

	// Confirm step.
	FeeNote       string `json:"feeNote,omitempty"`
	AdditionalFee string `json:"additionalFee,omitempty"`
	Total         string `json:"total,omitempty"`
	FeeIncluded   bool   `json:"feeIncluded,omitempty"`

	// Confirm step, crypto only.
	SendAmount string `json:"sendAmount,omitempty"`
	Address    string `json:"address,omitempty"`
	QRPayload  string `json:"qrPayload,omitempty"`
	WalletLink string `json:"walletLink,omitempty"`
}

// Presenter builds views from sessions. It reads the catalog for the
// family and currency steps.
type Presenter struct {
	catalog *catalog.Catalog
}

func NewPresenter(cat *catalog.Catalog) *Presenter {
	return &Presenter{catalog: cat}
}

// ViewFor renders the session's current step.
func (p *Presenter) ViewFor(s *flow.Session) *View {
	invoice := s.Invoice()
	view := &View{
		Step:        s.Step(),
		Recipient:   invoice.Recipient,
		Amount:      invoice.Amount.StringFixed(fees.FiatPlaces),
		Currency:    invoice.Currency,
		Description: invoice.Description,
	}
	if !invoice.DueDate.IsZero() {
		view.DueDate = invoice.DueDate.Format("January 2, 2006")
	}

	switch s.Step() {
	case types.StepVerifyEmail:
		view.MaskedEmail = MaskEmail(invoice.PayerEmail)
		view.CodeError = s.CodeError()

	case types.StepChooseFamily:
		for _, family := range types.Families() {
			view.Families = append(view.Families, FamilyOption{
				Family:  family,
				Label:   familyLabel(family),
				FeeHint: p.feeHint(family),
			})
		}

	case types.StepChooseCurrency:
		view.Currencies = p.catalog.Currencies(s.Family())

	case types.StepChooseMethod:
		candidates, _ := s.Candidates()
		view.NoMethodsAvailable = s.NoMethodsAvailable()
		for _, method := range candidates {
			view.Methods = append(view.Methods, p.methodRow(invoice.Amount, method, s))
		}

	case types.StepConfirm, types.StepCompleted:
		p.fillConfirm(view, s)
	}

	return view
}

func (p *Presenter) methodRow(amount decimal.Decimal, method types.PaymentMethod, s *flow.Session) MethodRow {
	row := MethodRow{
		Key:           method.Key(),
		Name:          method.Name,
		Provider:      method.Provider,
		FeeNote:       method.Fee,
		AdditionalFee: method.AdditionalFee,
	}

	// Candidates are pre-screened for priceability, so this only fails
	// on a catalog changed mid-session.
	if total, err := fees.ComputeTotal(amount, &method, s.Family()); err == nil {
		row.Total = total.StringFixed(int32(fees.Places(s.Family()))) + " " + s.Currency()
	}
	return row
}

func (p *Presenter) fillConfirm(view *View, s *flow.Session) {
	quote := s.Quote()
	method := s.Method()
	if quote == nil || method == nil {
		return
	}

	view.FeeNote = quote.FeeNote
	view.AdditionalFee = quote.AdditionalFeeNote
	view.Total = quote.Total.StringFixed(int32(fees.Places(s.Family()))) + " " + quote.Currency
	view.FeeIncluded = true

	if s.Family().IsCrypto() {
		view.SendAmount = quote.Total.StringFixed(fees.CryptoPlaces) + " " + quote.Currency
		view.Address = method.Address
		view.QRPayload = method.Address
		view.WalletLink = fmt.Sprintf("https://%s.org/address/%s",
			strings.ToLower(quote.Currency), method.Address)
	}
}

// feeHint summarizes the family's fee spread across its methods, e.g.
// "0.99% to 4.16% fees". Families with a single flat rate collapse to
// "0% fees".
func (p *Presenter) feeHint(family types.Family) string {
	var min, max decimal.Decimal
	first := true

	for _, method := range p.catalog.MethodsForFamily(family) {
		spec, err := fees.Parse(method.Fee)
		if err != nil {
			continue
		}
		if first || spec.Min.LessThan(min) {
			min = spec.Min
		}
		if first || spec.Max.GreaterThan(max) {
			max = spec.Max
		}
		first = false
	}

	if first {
		return ""
	}
	if min.Equal(max) {
		return fmt.Sprintf("%s%% fees", min.String())
	}
	return fmt.Sprintf("%s%% to %s%% fees", min.String(), max.String())
}

func familyLabel(family types.Family) string {
	switch family {
	case types.FamilyFiat:
		return "Card or Bank Transfer"
	case types.FamilyCrypto:
		return "Pay with Crypto"
	default:
		return family.String()
	}
}
