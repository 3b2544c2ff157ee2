// Package flow implements the step state machine that walks a payer
// from identity verification to payment confirmation.
package flow

import (
	"fmt"
	"time"

	"github.com/w3are/payflow/catalog"
	"github.com/w3are/payflow/fees"
	"github.com/w3are/payflow/logger"
	"github.com/w3are/payflow/metrics"
	"github.com/w3are/payflow/types"
	"github.com/w3are/payflow/verification"
)

// Executor is invoked on the Confirm -> Completed transition. Actual
// payment execution happens outside the core; the default executor does
// nothing.
type Executor func(session *Session) error

// Controller owns the transition rules between flow steps. It is
// stateless across sessions; all per-payer state lives on the Session.
type Controller struct {
	catalog  *catalog.Catalog
	gate     *verification.Gate
	expected string
	executor Executor
	logger   logger.Logger
	metrics  metrics.Recorder
}

// NewController wires the flow against its collaborators. A nil
// executor completes the flow without side effects.
func NewController(
	cat *catalog.Catalog,
	gate *verification.Gate,
	expectedCode string,
	executor Executor,
	log logger.Logger,
	rec metrics.Recorder,
) *Controller {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Controller{
		catalog:  cat,
		gate:     gate,
		expected: expectedCode,
		executor: executor,
		logger:   log,
		metrics:  rec,
	}
}

// NewSession opens a session for the invoice, starting at the
// verification step.
func (c *Controller) NewSession(invoice types.Invoice) (*Session, error) {
	if err := invoice.Validate(); err != nil {
		return nil, &types.PayFlowError{
			Code:    types.ErrInvalidInvoice,
			Message: fmt.Sprintf("invalid invoice: %v", err),
		}
	}

	session := newSession(invoice)
	c.logger.Info("session opened", map[string]any{
		"session": session.id.String(),
		"amount":  invoice.Amount.String(),
	})
	return session, nil
}

// SubmitCode runs the submitted one-time code through the verification
// gate. A rejected code keeps the session at the verification step with
// the failure reason recorded; the payer may retry.
func (c *Controller) SubmitCode(s *Session, code string) (*types.VerificationResult, error) {
	if s.step != types.StepVerifyEmail {
		return nil, c.invalidTransition(s, types.EventSubmitCode, "code submitted outside verification step")
	}

	started := time.Now()
	result := c.gate.Verify(code, c.expected, s.attempts)
	s.attempts = result.Attempts
	c.metrics.ObserveLatency("verify", time.Since(started), map[string]string{"step": s.step.String()})

	if !result.Valid {
		s.codeError = result.InvalidReason
		c.count(s, types.EventSubmitCode, "rejected")
		return result, nil
	}

	s.codeError = ""
	s.step = types.StepChooseFamily
	c.count(s, types.EventSubmitCode, "ok")
	return result, nil
}

// SelectFamily records the payer's family choice and moves to currency
// selection, clearing any downstream choices from an earlier pass.
func (c *Controller) SelectFamily(s *Session, family types.Family) error {
	if s.step != types.StepChooseFamily {
		return c.invalidTransition(s, types.EventSelectFamily, "family selected outside family step")
	}

	if !family.IsValid() {
		return &types.PayFlowError{
			Code:    types.ErrUnsupportedFamily,
			Message: fmt.Sprintf("unsupported payment family: %s", family),
		}
	}

	s.clearFrom(types.StepChooseCurrency)
	s.family = family
	s.step = types.StepChooseCurrency
	c.count(s, types.EventSelectFamily, "ok")
	return nil
}

// SelectCurrency records the settlement currency and recomputes the
// candidate method list for the (family, currency) pair. The transition
// succeeds even when the list comes back empty; the session then
// reports NoMethodsAvailable and the payer must navigate back.
func (c *Controller) SelectCurrency(s *Session, currency string) error {
	if s.step != types.StepChooseCurrency {
		return c.invalidTransition(s, types.EventSelectCurrency, "currency selected outside currency step")
	}

	// Guard: the family must offer currencies at all. The picked
	// currency itself may still match zero methods; that is a normal
	// state the method step surfaces as NoMethodsAvailable.
	if len(c.catalog.Currencies(s.family)) == 0 {
		return c.invalidTransition(s, types.EventSelectCurrency,
			fmt.Sprintf("family %s offers no currencies", s.family))
	}
	if currency == "" {
		return c.invalidTransition(s, types.EventSelectCurrency, "empty currency")
	}

	s.clearFrom(types.StepChooseMethod)
	s.currency = currency
	s.candidates = c.priceable(catalog.FilterByCurrency(c.catalog.MethodsForFamily(s.family), currency), s.family)
	s.computed = true
	s.step = types.StepChooseMethod

	if s.NoMethodsAvailable() {
		c.logger.Warn("no methods available", map[string]any{
			"session":  s.id.String(),
			"family":   s.family.String(),
			"currency": currency,
		})
	}
	c.count(s, types.EventSelectCurrency, "ok")
	return nil
}

// SelectMethod records the method choice and prices the invoice with
// the method's fee. key accepts the method name or its name/provider
// key. The method must be in the current candidate list.
func (c *Controller) SelectMethod(s *Session, key string) error {
	if s.step != types.StepChooseMethod {
		return c.invalidTransition(s, types.EventSelectMethod, "method selected outside method step")
	}

	if s.NoMethodsAvailable() {
		return &types.PayFlowError{
			Code:    types.ErrNoMethodsAvailable,
			Message: fmt.Sprintf("no payment methods available for %s in %s", s.currency, s.family),
		}
	}

	method := s.candidate(key)
	if method == nil {
		return c.invalidTransition(s, types.EventSelectMethod,
			fmt.Sprintf("method %q is not in the candidate list", key))
	}

	total, err := fees.ComputeTotal(s.invoice.Amount, method, s.family)
	if err != nil {
		// Unpriceable methods are filtered out of candidates, so this
		// indicates the catalog changed underneath the session.
		return err
	}

	chosen := *method
	s.method = &chosen
	s.quote = &types.Quote{
		Base:              s.invoice.Amount,
		Total:             total,
		Currency:          s.currency,
		FeeNote:           method.Fee,
		AdditionalFeeNote: method.AdditionalFee,
	}
	s.step = types.StepConfirm
	c.count(s, types.EventSelectMethod, "ok")
	return nil
}

// Back returns to the previous step, discarding the choice made at the
// step being returned to and everything after it. Earlier choices are
// retained; derived state is recomputed on the next forward pass.
func (c *Controller) Back(s *Session) error {
	var target types.Step

	switch s.step {
	case types.StepChooseCurrency:
		target = types.StepChooseFamily
	case types.StepChooseMethod:
		target = types.StepChooseCurrency
	case types.StepConfirm:
		target = types.StepChooseMethod
	default:
		return c.invalidTransition(s, types.EventBack, "no previous step to return to")
	}

	s.clearFrom(target)
	s.step = target
	c.count(s, types.EventBack, "ok")
	return nil
}

// Pay fires the terminal transition. It requires a chosen method with a
// computed quote and hands off to the payment executor collaborator.
func (c *Controller) Pay(s *Session) error {
	if s.step != types.StepConfirm || s.method == nil || s.quote == nil {
		return c.invalidTransition(s, types.EventPay, "pay fired without a confirmed method")
	}

	if c.executor != nil {
		if err := c.executor(s); err != nil {
			// The session stays at Confirm; the payer may retry.
			c.count(s, types.EventPay, "failed")
			return err
		}
	}

	s.step = types.StepCompleted
	c.count(s, types.EventPay, "ok")
	c.logger.Info("session completed", map[string]any{
		"session": s.id.String(),
		"method":  s.method.Key(),
		"total":   s.quote.Total.String(),
	})
	return nil
}

// priceable drops methods whose fee descriptor fails to parse. A
// malformed catalog entry excludes that method from display instead of
// breaking the whole flow.
func (c *Controller) priceable(methods []types.PaymentMethod, family types.Family) []types.PaymentMethod {
	kept := methods[:0]
	for _, method := range methods {
		if _, err := fees.Parse(method.Fee); err != nil {
			c.logger.Warn("excluding method with malformed fee descriptor", map[string]any{
				"method": method.Key(),
				"fee":    method.Fee,
				"family": family.String(),
			})
			continue
		}
		kept = append(kept, method)
	}
	return kept
}

// invalidTransition surfaces a guard failure. These indicate a
// presentation-layer bug, so they are logged as errors; the session is
// left untouched and stays resumable.
func (c *Controller) invalidTransition(s *Session, event types.Event, reason string) error {
	c.logger.Error("invalid transition", map[string]any{
		"session": s.id.String(),
		"step":    s.step.String(),
		"event":   event.String(),
		"reason":  reason,
	})
	c.count(s, event, "invalid")
	return &types.PayFlowError{
		Code:    types.ErrInvalidTransition,
		Message: reason,
		Data:    map[string]string{"step": s.step.String(), "event": event.String()},
	}
}

func (c *Controller) count(s *Session, event types.Event, outcome string) {
	c.metrics.IncCounter("transition", map[string]string{
		"step":    s.step.String(),
		"event":   event.String(),
		"outcome": outcome,
	})
}
