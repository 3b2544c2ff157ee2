package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ExactMatch(t *testing.T) {
	gate := NewGate(nil, nil)

	result := gate.Verify("123456", "123456", 0)

	assert.True(t, result.Valid)
	assert.Empty(t, result.InvalidReason)
	assert.Equal(t, 1, result.Attempts)
}

func TestVerify_TrimsSubmission(t *testing.T) {
	gate := NewGate(nil, nil)

	result := gate.Verify(" 123456 ", "123456", 0)

	assert.True(t, result.Valid)
}

func TestVerify_WrongCodeRejected(t *testing.T) {
	gate := NewGate(nil, nil)

	result := gate.Verify("000000", "123456", 0)

	assert.False(t, result.Valid)
	assert.Equal(t, "invalid code", result.InvalidReason)
	assert.Equal(t, 1, result.Attempts)
}

func TestVerify_ExpectedCodeIsNotTrimmed(t *testing.T) {
	// Trimming applies to the submission only; an expected code with
	// surrounding whitespace is a configuration mistake upstream.
	gate := NewGate(nil, nil)

	result := gate.Verify("123456", " 123456 ", 0)

	assert.False(t, result.Valid)
}

func TestVerify_PolicyVetoWins(t *testing.T) {
	gate := NewGate(MaxAttemptsPolicy{Limit: 3}, nil)

	result := gate.Verify("123456", "123456", 3)

	require.False(t, result.Valid)
	assert.Contains(t, result.InvalidReason, "too many attempts")
	assert.Equal(t, 4, result.Attempts)
}

func TestVerify_MaxAttemptsBelowLimit(t *testing.T) {
	gate := NewGate(MaxAttemptsPolicy{Limit: 3}, nil)

	result := gate.Verify("123456", "123456", 2)

	assert.True(t, result.Valid)
}

func TestVerify_ExpiredCode(t *testing.T) {
	deadline := time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return deadline.Add(time.Minute) }
	gate := NewGate(ExpiryPolicy{Deadline: deadline}, clock)

	result := gate.Verify("123456", "123456", 0)

	require.False(t, result.Valid)
	assert.Contains(t, result.InvalidReason, "expired")
}

func TestVerify_NotYetExpired(t *testing.T) {
	deadline := time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return deadline.Add(-time.Minute) }
	gate := NewGate(ExpiryPolicy{Deadline: deadline}, clock)

	result := gate.Verify("123456", "123456", 0)

	assert.True(t, result.Valid)
}

func TestChain_FirstVetoWins(t *testing.T) {
	deadline := time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)
	policy := Chain{
		MaxAttemptsPolicy{Limit: 5},
		ExpiryPolicy{Deadline: deadline},
	}

	err := policy.Allow(5, deadline.Add(time.Minute))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many attempts")
}

func TestChain_AllAllow(t *testing.T) {
	deadline := time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)
	policy := Chain{
		MaxAttemptsPolicy{Limit: 5},
		ExpiryPolicy{Deadline: deadline},
	}

	assert.NoError(t, policy.Allow(0, deadline.Add(-time.Minute)))
}
