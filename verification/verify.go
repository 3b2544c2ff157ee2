// Package verification implements the one-time code gate that guards
// entry into the payment flow.
package verification

import (
	"fmt"
	"strings"
	"time"

	"github.com/w3are/payflow/types"
)

// Policy is consulted before each verification attempt and may veto it.
// Rate limiting, lockout and code expiry live behind this hook; the
// gate itself only compares codes.
type Policy interface {
	// Allow returns an error to veto the attempt. attempts counts
	// prior submissions, at is the wall-clock time of this one.
	Allow(attempts int, at time.Time) error
}

// Clock supplies the current time so expiry policies are testable.
type Clock func() time.Time

// Gate validates submitted one-time codes against the expected value.
// It never generates or dispatches codes; that is the notification
// collaborator's job.
type Gate struct {
	policy Policy
	clock  Clock
}

// NewGate creates a gate with the given policy. A nil policy admits
// every attempt.
func NewGate(policy Policy, clock Clock) *Gate {
	if policy == nil {
		policy = NoPolicy{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &Gate{policy: policy, clock: clock}
}

// Verify checks submitted against expected after trimming surrounding
// whitespace from the submission. attempts counts prior submissions for
// this session. The returned result reports the attempt count including
// this one; a policy veto or a mismatch is a recoverable user-facing
// state, not an error.
func (g *Gate) Verify(submitted, expected string, attempts int) *types.VerificationResult {
	result := &types.VerificationResult{Attempts: attempts + 1}

	if err := g.policy.Allow(attempts, g.clock()); err != nil {
		result.InvalidReason = err.Error()
		return result
	}

	if strings.TrimSpace(submitted) != expected {
		result.InvalidReason = "invalid code"
		return result
	}

	result.Valid = true
	return result
}

// NoPolicy admits every attempt.
type NoPolicy struct{}

func (NoPolicy) Allow(int, time.Time) error { return nil }

// MaxAttemptsPolicy vetoes attempts once the limit is reached.
type MaxAttemptsPolicy struct {
	Limit int
}

func (p MaxAttemptsPolicy) Allow(attempts int, _ time.Time) error {
	if attempts >= p.Limit {
		return fmt.Errorf("too many attempts, request a new code")
	}
	return nil
}

// ExpiryPolicy vetoes attempts after the code's deadline has passed.
type ExpiryPolicy struct {
	Deadline time.Time
}

func (p ExpiryPolicy) Allow(_ int, at time.Time) error {
	if at.After(p.Deadline) {
		return fmt.Errorf("code expired, request a new code")
	}
	return nil
}

// Chain combines policies; the first veto wins.
type Chain []Policy

func (c Chain) Allow(attempts int, at time.Time) error {
	for _, p := range c {
		if err := p.Allow(attempts, at); err != nil {
			return err
		}
	}
	return nil
}
