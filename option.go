package payflow

import (
	"github.com/w3are/payflow/catalog"
	"github.com/w3are/payflow/flow"
	"github.com/w3are/payflow/logger"
	"github.com/w3are/payflow/metrics"
	"github.com/w3are/payflow/verification"
)

type Option func(*PayFlow)

func WithLogger(l logger.Logger) Option {
	return func(p *PayFlow) {
		p.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(p *PayFlow) {
		p.recorder = r
	}
}

// WithCatalog replaces the built-in method catalog, e.g. with one
// loaded through utils.ParseCatalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(p *PayFlow) {
		p.catalog = c
	}
}

// WithVerificationPolicy installs a veto hook on code submissions
// (rate limiting, lockout, expiry).
func WithVerificationPolicy(policy verification.Policy) Option {
	return func(p *PayFlow) {
		p.policy = policy
	}
}

// WithClock overrides the wall clock the verification policy sees.
func WithClock(clock verification.Clock) Option {
	return func(p *PayFlow) {
		p.clock = clock
	}
}

// WithExecutor installs the payment executor invoked on the terminal
// pay transition.
func WithExecutor(executor flow.Executor) Option {
	return func(p *PayFlow) {
		p.executor = executor
	}
}
