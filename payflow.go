// Package payflow implements a guided, multi-step payment-method
// selection flow: one-time code verification, payment family and
// currency choice, currency-filtered method selection, and a final
// confirmation with payment instructions.
package payflow

import (
	"fmt"

	"github.com/w3are/payflow/catalog"
	"github.com/w3are/payflow/flow"
	"github.com/w3are/payflow/logger"
	"github.com/w3are/payflow/metrics"
	"github.com/w3are/payflow/presentation"
	"github.com/w3are/payflow/types"
	"github.com/w3are/payflow/verification"
)

// PayFlow is the main struct that wires the flow controller against its
// collaborators: the catalog, the verification gate and policy, the
// payment executor, logging and metrics.
type PayFlow struct {
	controller *flow.Controller
	presenter  *presentation.Presenter
	catalog    *catalog.Catalog
	config     *types.Config

	log      logger.Logger
	recorder metrics.Recorder
	policy   verification.Policy
	clock    verification.Clock
	executor flow.Executor
}

// New creates a PayFlow instance with the given configuration. The
// expected one-time code and the catalog are injected rather than
// compiled in, so deployments and tests supply their own fixtures.
func New(config *types.Config, opts ...Option) (*PayFlow, error) {
	if config == nil {
		return nil, &types.PayFlowError{
			Code:    types.ErrConfigError,
			Message: "config is required",
		}
	}
	if err := config.Validate(); err != nil {
		return nil, &types.PayFlowError{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("invalid config: %v", err),
		}
	}

	p := &PayFlow{
		config:   config,
		catalog:  catalog.Default(),
		log:      logger.NoopLogger{},
		recorder: metrics.NoopRecorder{},
	}

	if config.LogLevel != "" {
		p.log = logger.NewZapLogger(config.LogLevel)
	}
	if config.EnableMetrics {
		p.recorder = metrics.NewPrometheusRecorder()
	}

	for _, opt := range opts {
		opt(p)
	}

	gate := verification.NewGate(p.policy, p.clock)
	p.controller = flow.NewController(p.catalog, gate, config.ExpectedCode, p.executor, p.log, p.recorder)
	p.presenter = presentation.NewPresenter(p.catalog)

	return p, nil
}

// NewWithDefaults creates a PayFlow instance with the built-in catalog
// and no verification policy. expectedCode is the one-time code the
// notification collaborator delivered to the payer.
func NewWithDefaults(expectedCode string) (*PayFlow, error) {
	return New(&types.Config{ExpectedCode: expectedCode})
}

// NewSession opens a flow session for the invoice, starting at the
// email verification step.
func (p *PayFlow) NewSession(invoice types.Invoice) (*flow.Session, error) {
	return p.controller.NewSession(invoice)
}

// SubmitCode forwards a one-time code submission to the controller.
func (p *PayFlow) SubmitCode(s *flow.Session, code string) (*types.VerificationResult, error) {
	return p.controller.SubmitCode(s, code)
}

// SelectFamily forwards a family choice to the controller.
func (p *PayFlow) SelectFamily(s *flow.Session, family types.Family) error {
	return p.controller.SelectFamily(s, family)
}

// SelectCurrency forwards a settlement currency choice to the
// controller.
func (p *PayFlow) SelectCurrency(s *flow.Session, currency string) error {
	return p.controller.SelectCurrency(s, currency)
}

// SelectMethod forwards a method choice to the controller.
func (p *PayFlow) SelectMethod(s *flow.Session, key string) error {
	return p.controller.SelectMethod(s, key)
}

// Back navigates one step backwards.
func (p *PayFlow) Back(s *flow.Session) error {
	return p.controller.Back(s)
}

// Pay fires the terminal transition and invokes the payment executor.
func (p *PayFlow) Pay(s *flow.Session) error {
	return p.controller.Pay(s)
}

// ViewFor renders the presentation view model for the session's
// current step.
func (p *PayFlow) ViewFor(s *flow.Session) *presentation.View {
	return p.presenter.ViewFor(s)
}

// Catalog exposes the wired method catalog as a pure read.
func (p *PayFlow) Catalog() *catalog.Catalog {
	return p.catalog
}

// Version information
const (
	Version = "1.0.0"
)
