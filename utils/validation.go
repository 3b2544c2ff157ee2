package utils

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ValidateAmount checks if an amount string is a valid non-negative
// decimal.
func ValidateAmount(amount string) (*decimal.Decimal, error) {
	if amount == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	if dec.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	return &dec, nil
}

// ValidateReceivingAddress sanity-checks a crypto method's receiving
// address for the given settlement currency. Catalog loaders call this
// before admitting crypto entries; fiat addresses are provider tokens
// and are not checked here.
func ValidateReceivingAddress(address, currency string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	switch strings.ToUpper(currency) {
	case "ETH", "USDT":
		// EVM-style 0x addresses.
		if !common.IsHexAddress(address) {
			return fmt.Errorf("%s address must be a 20-byte hex address", currency)
		}

	case "BTC":
		// Legacy base58 or bech32; length and alphabet check only.
		if len(address) < 26 || len(address) > 62 {
			return fmt.Errorf("BTC address has invalid length")
		}
		if !isBase58String(address) && !strings.HasPrefix(address, "bc1") {
			return fmt.Errorf("BTC address must be base58 or bech32")
		}

	default:
		return fmt.Errorf("unsupported currency for address validation: %s", currency)
	}

	return nil
}

// MaskCode masks a one-time code for logging, keeping only its length
// visible.
func MaskCode(code string) string {
	return strings.Repeat("*", len(code))
}

// isBase58String checks if a string contains only base58 characters
func isBase58String(s string) bool {
	const base58Chars = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	for _, c := range s {
		if !strings.ContainsRune(base58Chars, c) {
			return false
		}
	}
	return true
}
