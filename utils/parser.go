package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/w3are/payflow/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ParseInvoice parses and validates an Invoice from JSON, as supplied
// by the invoice provider collaborator.
func ParseInvoice(data []byte) (*types.Invoice, error) {
	var invoice types.Invoice

	if err := json.Unmarshal(data, &invoice); err != nil {
		return nil, &types.PayFlowError{
			Code:    types.ErrInvalidInvoice,
			Message: fmt.Sprintf("failed to parse invoice: %v", err),
		}
	}

	// Validate using struct tags
	if err := validate.Struct(&invoice); err != nil {
		return nil, &types.PayFlowError{
			Code:    types.ErrInvalidInvoice,
			Message: fmt.Sprintf("invoice validation failed: %v", err),
		}
	}

	if err := invoice.Validate(); err != nil {
		return nil, &types.PayFlowError{
			Code:    types.ErrInvalidInvoice,
			Message: err.Error(),
		}
	}

	return &invoice, nil
}

// ParseCatalog parses a family-keyed method catalog from JSON, as
// supplied by the catalog loader collaborator. Every method must pass
// struct-tag validation; families may be absent but not malformed.
func ParseCatalog(data []byte) (map[types.Family][]types.PaymentMethod, error) {
	var raw map[types.Family][]types.PaymentMethod

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &types.PayFlowError{
			Code:    types.ErrInvalidCatalog,
			Message: fmt.Sprintf("failed to parse catalog: %v", err),
		}
	}

	for family, methods := range raw {
		if !family.IsValid() {
			return nil, &types.PayFlowError{
				Code:    types.ErrInvalidCatalog,
				Message: fmt.Sprintf("unknown payment family %q", family),
			}
		}

		for i := range methods {
			if err := validate.Struct(&methods[i]); err != nil {
				return nil, &types.PayFlowError{
					Code:    types.ErrInvalidCatalog,
					Message: fmt.Sprintf("invalid method %q in family %s: %v", methods[i].Name, family, err),
				}
			}
		}
	}

	return raw, nil
}

// SerializeQuote converts a Quote to JSON.
func SerializeQuote(quote *types.Quote) ([]byte, error) {
	return json.Marshal(quote)
}

// SerializeVerificationResult converts a VerificationResult to JSON.
func SerializeVerificationResult(result *types.VerificationResult) ([]byte, error) {
	return json.Marshal(result)
}
