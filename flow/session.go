package flow

import (
	"github.com/google/uuid"
	"github.com/w3are/payflow/types"
)

// Session is the mutable per-payer state of one flow interaction. It is
// created when the payer opens the invoice link and discarded when the
// flow completes or is abandoned; nothing is persisted. A session is
// owned by a single interaction and is not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	invoice types.Invoice

	step     types.Step
	attempts int

	// codeError holds the last verification failure reason for
	// display. Cleared on each new submission.
	codeError string

	family   types.Family
	currency string
	method   *types.PaymentMethod

	// candidates is derived from (family, currency) and recomputed on
	// every currency selection. computed distinguishes an empty result
	// from "not yet computed".
	candidates []types.PaymentMethod
	computed   bool

	quote *types.Quote
}

func newSession(invoice types.Invoice) *Session {
	return &Session{
		id:      uuid.New(),
		invoice: invoice,
		step:    types.StepVerifyEmail,
	}
}

// ID of the session.
func (s *Session) ID() uuid.UUID { return s.id }

// Invoice the session was opened against.
func (s *Session) Invoice() types.Invoice { return s.invoice }

// Step the session is currently at.
func (s *Session) Step() types.Step { return s.step }

// Attempts counts code submissions so far.
func (s *Session) Attempts() int { return s.attempts }

// CodeError is the last verification failure reason, empty after a
// successful submission.
func (s *Session) CodeError() string { return s.codeError }

// Family chosen by the payer, empty until the family step is passed.
func (s *Session) Family() types.Family { return s.family }

// Currency chosen by the payer, empty until the currency step is passed.
func (s *Session) Currency() string { return s.currency }

// Method chosen by the payer, nil until the method step is passed.
func (s *Session) Method() *types.PaymentMethod {
	if s.method == nil {
		return nil
	}
	m := *s.method
	return &m
}

// Candidates is the currency-filtered method list for the current
// (family, currency) pair. The second return is false while the list
// has not been computed for the current step yet.
func (s *Session) Candidates() ([]types.PaymentMethod, bool) {
	if !s.computed {
		return nil, false
	}
	return append([]types.PaymentMethod(nil), s.candidates...), true
}

// NoMethodsAvailable reports the explicit "nothing to offer" condition:
// the candidate list has been computed for the chosen currency and came
// back empty. Distinct from the list not having been computed yet.
func (s *Session) NoMethodsAvailable() bool {
	return s.computed && len(s.candidates) == 0
}

// Quote for the chosen method, nil before the method step is passed.
func (s *Session) Quote() *types.Quote {
	if s.quote == nil {
		return nil
	}
	q := *s.quote
	return &q
}

// Completed reports whether the flow has reached its terminal step.
func (s *Session) Completed() bool {
	return s.step.Terminal()
}

func (s *Session) candidate(key string) *types.PaymentMethod {
	for i := range s.candidates {
		if s.candidates[i].Key() == key || s.candidates[i].Name == key {
			return &s.candidates[i]
		}
	}
	return nil
}

// clearFrom discards everything captured at and after the given step,
// keeping earlier choices intact.
func (s *Session) clearFrom(step types.Step) {
	switch step {
	case types.StepChooseFamily:
		s.family = ""
		fallthrough
	case types.StepChooseCurrency:
		s.currency = ""
		s.candidates = nil
		s.computed = false
		fallthrough
	case types.StepChooseMethod:
		s.method = nil
		fallthrough
	case types.StepConfirm:
		s.quote = nil
	}
}
