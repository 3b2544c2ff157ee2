package catalog

import (
	"github.com/w3are/payflow/types"
)

// Default returns the built-in method catalog. Deployments with their
// own provider agreements load a catalog via utils.ParseCatalog instead.
func Default() *Catalog {
	return New(map[types.Family][]types.PaymentMethod{
		types.FamilyFiat: {
			{
				Name:       "Bank Transfer (SEPA)",
				Provider:   "Clear Junction",
				Currencies: []string{"EUR"},
				Fee:        "0.99%",
				Address:    "DE12345678901234567890",
			},
			{
				Name:          "Card (Visa, Mastercard)",
				Provider:      "Stripe",
				Currencies:    []string{"EUR", "USD", "GBP"},
				Fee:           "3.53% - 4.16%",
				AdditionalFee: "+2% for international cards",
				Address:       "stripe_token_card",
			},
			{
				Name:          "Apple Pay",
				Provider:      "Stripe",
				Currencies:    []string{"EUR", "USD", "GBP"},
				Fee:           "3.53% - 4.16%",
				AdditionalFee: "+2% for international cards",
				Address:       "stripe_token_apple",
			},
			{
				Name:          "Google Pay",
				Provider:      "Stripe",
				Currencies:    []string{"EUR", "USD", "GBP"},
				Fee:           "3.53% - 4.16%",
				AdditionalFee: "+2% for international cards",
				Address:       "stripe_token_google",
			},
			{
				Name:       "Open Banking",
				Provider:   "Volt",
				Currencies: []string{"EUR"},
				Fee:        "0.99%",
				Address:    "volt_payment_url",
			},
		},
		types.FamilyCrypto: {
			{
				Name:       "Bitcoin",
				Provider:   "Coinbase Commerce",
				Currencies: []string{"BTC"},
				Fee:        "0%",
				Address:    "bitcoin_wallet_address",
			},
			{
				Name:       "Ethereum",
				Provider:   "Coinbase Commerce",
				Currencies: []string{"ETH"},
				Fee:        "0%",
				Address:    "ethereum_wallet_address",
			},
			{
				Name:       "Tether (USDT)",
				Provider:   "Coinbase Commerce",
				Currencies: []string{"USDT"},
				Fee:        "0%",
				Address:    "usdt_wallet_address",
			},
		},
	})
}
