// Package catalog holds the reference data for payment families and
// their methods, and the currency filtering that drives method choice.
package catalog

import (
	"github.com/w3are/payflow/types"
)

// Catalog maps payment families to their ordered method lists. It is
// fixed at construction time and treated as a pure read afterwards.
type Catalog struct {
	methods map[types.Family][]types.PaymentMethod
}

// New builds a catalog from family-keyed method lists. The input map is
// copied so later mutation by the caller cannot affect the catalog.
func New(methods map[types.Family][]types.PaymentMethod) *Catalog {
	copied := make(map[types.Family][]types.PaymentMethod, len(methods))
	for family, list := range methods {
		copied[family] = append([]types.PaymentMethod(nil), list...)
	}
	return &Catalog{methods: copied}
}

// MethodsForFamily returns the family's methods in catalog order. An
// unknown or empty family yields an empty list, not an error. The
// returned slice is a copy; callers may reorder it freely.
func (c *Catalog) MethodsForFamily(family types.Family) []types.PaymentMethod {
	list, ok := c.methods[family]
	if !ok {
		return []types.PaymentMethod{}
	}
	return append([]types.PaymentMethod(nil), list...)
}

// Currencies returns the ordered union of settlement currencies offered
// by the family's methods, first occurrence wins. This list drives the
// currency selection step.
func (c *Catalog) Currencies(family types.Family) []string {
	seen := make(map[string]bool)
	var currencies []string

	for _, method := range c.methods[family] {
		for _, cur := range method.Currencies {
			if !seen[cur] {
				seen[cur] = true
				currencies = append(currencies, cur)
			}
		}
	}

	return currencies
}

// FilterByCurrency returns exactly the methods whose currency set
// includes currency, preserving input order. Zero matches yield an
// empty list; "no methods available" is a normal state for the flow to
// surface, not an error here.
func FilterByCurrency(methods []types.PaymentMethod, currency string) []types.PaymentMethod {
	filtered := make([]types.PaymentMethod, 0, len(methods))
	for _, method := range methods {
		if method.Supports(currency) {
			filtered = append(filtered, method)
		}
	}
	return filtered
}
