package payflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w3are/payflow/catalog"
	"github.com/w3are/payflow/flow"
	"github.com/w3are/payflow/types"
	"github.com/w3are/payflow/verification"
)

func testInvoice() types.Invoice {
	return types.Invoice{
		Amount:      decimal.NewFromInt(1000),
		Currency:    "EUR",
		Description: "UX/UI Consulting - 100 hours of brand identity design",
		Recipient:   "James Walker",
		PayerEmail:  "john.doe@example.com",
		DueDate:     time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrConfigError, types.CodeOf(err))

	_, err = New(&types.Config{})
	require.Error(t, err)
	assert.Equal(t, types.ErrConfigError, types.CodeOf(err))
}

func TestEndToEnd_Fiat(t *testing.T) {
	pf, err := NewWithDefaults("123456")
	require.NoError(t, err)

	session, err := pf.NewSession(testInvoice())
	require.NoError(t, err)

	result, err := pf.SubmitCode(session, "123456")
	require.NoError(t, err)
	require.True(t, result.Valid)

	require.NoError(t, pf.SelectFamily(session, types.FamilyFiat))
	require.NoError(t, pf.SelectCurrency(session, "EUR"))
	require.NoError(t, pf.SelectMethod(session, "Bank Transfer (SEPA)"))

	quote := session.Quote()
	require.NotNil(t, quote)
	// 1000 at 0.99% settles at 1000 * 1.0099.
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("1009.90")), "got %s", quote.Total)

	require.NoError(t, pf.Pay(session))
	assert.True(t, session.Completed())
}

func TestEndToEnd_Crypto(t *testing.T) {
	executed := false
	pf, err := New(
		&types.Config{ExpectedCode: "123456"},
		WithExecutor(func(s *flow.Session) error {
			executed = true
			return nil
		}),
	)
	require.NoError(t, err)

	session, err := pf.NewSession(testInvoice())
	require.NoError(t, err)

	_, err = pf.SubmitCode(session, " 123456 ")
	require.NoError(t, err)

	require.NoError(t, pf.SelectFamily(session, types.FamilyCrypto))
	require.NoError(t, pf.SelectCurrency(session, "BTC"))
	require.NoError(t, pf.SelectMethod(session, "Bitcoin"))

	view := pf.ViewFor(session)
	assert.NotEmpty(t, view.Address)
	assert.Equal(t, "1000.000000 BTC", view.SendAmount)
	// The send amount carries crypto precision; the invoice header
	// keeps the fiat display rounding.
	assert.Equal(t, "1000.00", view.Amount)

	require.NoError(t, pf.Pay(session))
	assert.True(t, executed)
}

func TestEndToEnd_VerificationPolicyVeto(t *testing.T) {
	deadline := time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)
	pf, err := New(
		&types.Config{ExpectedCode: "123456"},
		WithVerificationPolicy(verification.ExpiryPolicy{Deadline: deadline}),
		WithClock(func() time.Time { return deadline.Add(time.Hour) }),
	)
	require.NoError(t, err)

	session, err := pf.NewSession(testInvoice())
	require.NoError(t, err)

	result, err := pf.SubmitCode(session, "123456")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.InvalidReason, "expired")
	assert.Equal(t, types.StepVerifyEmail, session.Step())
}

func TestWithCatalog_ReplacesBuiltIn(t *testing.T) {
	custom := catalog.New(map[types.Family][]types.PaymentMethod{
		types.FamilyFiat: {
			{Name: "Wire", Provider: "Acme", Currencies: []string{"CHF"}, Fee: "1%", Address: "CH1"},
		},
	})
	pf, err := New(&types.Config{ExpectedCode: "123456"}, WithCatalog(custom))
	require.NoError(t, err)

	assert.Equal(t, []string{"CHF"}, pf.Catalog().Currencies(types.FamilyFiat))
	assert.Empty(t, pf.Catalog().MethodsForFamily(types.FamilyCrypto))
}
