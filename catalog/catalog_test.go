package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w3are/payflow/types"
)

func TestMethodsForFamily_Deterministic(t *testing.T) {
	cat := Default()

	first := cat.MethodsForFamily(types.FamilyFiat)
	second := cat.MethodsForFamily(types.FamilyFiat)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestMethodsForFamily_UnknownFamilyIsEmpty(t *testing.T) {
	cat := Default()

	methods := cat.MethodsForFamily(types.Family("voucher"))

	assert.Empty(t, methods)
	assert.NotNil(t, methods)
}

func TestMethodsForFamily_ReturnsCopy(t *testing.T) {
	cat := Default()

	methods := cat.MethodsForFamily(types.FamilyFiat)
	methods[0].Name = "tampered"

	assert.NotEqual(t, "tampered", cat.MethodsForFamily(types.FamilyFiat)[0].Name)
}

func TestNew_CopiesInput(t *testing.T) {
	source := map[types.Family][]types.PaymentMethod{
		types.FamilyFiat: {{Name: "SEPA", Provider: "Clear Junction", Currencies: []string{"EUR"}, Fee: "0.99%", Address: "DE1"}},
	}
	cat := New(source)

	source[types.FamilyFiat][0].Name = "tampered"

	assert.Equal(t, "SEPA", cat.MethodsForFamily(types.FamilyFiat)[0].Name)
}

func TestFilterByCurrency_MembershipProperty(t *testing.T) {
	cat := Default()

	for _, family := range types.Families() {
		methods := cat.MethodsForFamily(family)
		for _, currency := range cat.Currencies(family) {
			filtered := FilterByCurrency(methods, currency)

			for _, method := range filtered {
				assert.True(t, method.Supports(currency))
			}
			for _, method := range methods {
				if method.Supports(currency) {
					assert.Contains(t, filtered, method)
				}
			}
		}
	}
}

func TestFilterByCurrency_PreservesOrder(t *testing.T) {
	cat := Default()

	filtered := FilterByCurrency(cat.MethodsForFamily(types.FamilyFiat), "EUR")

	require.Len(t, filtered, 5)
	assert.Equal(t, "Bank Transfer (SEPA)", filtered[0].Name)
	assert.Equal(t, "Open Banking", filtered[4].Name)
}

func TestFilterByCurrency_NoMatchesIsEmptyNotError(t *testing.T) {
	cat := Default()

	filtered := FilterByCurrency(cat.MethodsForFamily(types.FamilyCrypto), "EUR")

	assert.Empty(t, filtered)
	assert.NotNil(t, filtered)
}

func TestFilterByCurrency_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterByCurrency(nil, "EUR"))
}

func TestCurrencies_OrderedUnionFirstOccurrenceWins(t *testing.T) {
	cat := Default()

	assert.Equal(t, []string{"EUR", "USD", "GBP"}, cat.Currencies(types.FamilyFiat))
	assert.Equal(t, []string{"BTC", "ETH", "USDT"}, cat.Currencies(types.FamilyCrypto))
	assert.Empty(t, cat.Currencies(types.Family("voucher")))
}
