// Package fees parses catalog fee descriptors and prices invoice
// amounts with them.
package fees

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/w3are/payflow/types"
)

// Rounding precision per family: two places for fiat display, six for
// crypto send amounts.
const (
	FiatPlaces   = 2
	CryptoPlaces = 6
)

var oneHundred = decimal.NewFromInt(100)

// FeeSpec is a parsed fee descriptor. Catalog fee strings are either a
// single percentage ("0.99%"), a percentage range ("3.53% - 4.16%"), or
// "-" / "" meaning no fee.
type FeeSpec struct {
	// Min is the percentage applied when pricing. For a single
	// percentage Min == Max.
	Min decimal.Decimal

	// Max is the upper bound of a range, equal to Min otherwise.
	Max decimal.Decimal

	// IsRange marks a range descriptor. The raw range string stays
	// advisory display text; totals always use the lower bound.
	IsRange bool
}

// Percent returns the percentage used for pricing. Ranges price at the
// lower bound so the payer is never quoted more than the provider can
// charge at minimum; the displayed fee note still shows the full range.
func (f FeeSpec) Percent() decimal.Decimal {
	return f.Min
}

// Parse parses a catalog fee descriptor into a FeeSpec.
func Parse(spec string) (FeeSpec, error) {
	s := strings.TrimSpace(spec)

	if s == "" || s == "-" {
		return FeeSpec{}, nil
	}

	if lo, hi, ok := splitRange(s); ok {
		min, err := parsePercent(lo)
		if err != nil {
			return FeeSpec{}, invalidSpec(spec, err)
		}
		max, err := parsePercent(hi)
		if err != nil {
			return FeeSpec{}, invalidSpec(spec, err)
		}
		if max.LessThan(min) {
			return FeeSpec{}, invalidSpec(spec, fmt.Errorf("range upper bound below lower bound"))
		}
		return FeeSpec{Min: min, Max: max, IsRange: true}, nil
	}

	pct, err := parsePercent(s)
	if err != nil {
		return FeeSpec{}, invalidSpec(spec, err)
	}
	return FeeSpec{Min: pct, Max: pct}, nil
}

// ComputeTotal prices amount with the method's fee descriptor, rounded
// for the target family. Additional-fee notes are advisory text and are
// never folded into the numeric total.
func ComputeTotal(amount decimal.Decimal, method *types.PaymentMethod, family types.Family) (decimal.Decimal, error) {
	spec, err := Parse(method.Fee)
	if err != nil {
		return decimal.Zero, err
	}

	multiplier := decimal.NewFromInt(1).Add(spec.Percent().Div(oneHundred))
	total := amount.Mul(multiplier)

	return total.Round(int32(Places(family))), nil
}

// Places returns the rounding precision for the family.
func Places(family types.Family) int {
	if family.IsCrypto() {
		return CryptoPlaces
	}
	return FiatPlaces
}

func splitRange(s string) (lo, hi string, ok bool) {
	// Only percent ranges use a spaced dash; a leading "-" is a bare
	// no-fee marker handled earlier.
	parts := strings.SplitN(s, " - ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func parsePercent(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return decimal.Zero, fmt.Errorf("missing %% suffix in %q", s)
	}

	pct, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage %q: %w", s, err)
	}

	if pct.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative percentage %q", s)
	}

	return pct, nil
}

func invalidSpec(spec string, cause error) error {
	return &types.PayFlowError{
		Code:    types.ErrInvalidFeeSpec,
		Message: fmt.Sprintf("unparseable fee descriptor %q: %v", spec, cause),
	}
}
