package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartClaim_OverwritesExisting(t *testing.T) {
	c := newTestCore(newFakeClock())

	c.StartClaim(900, 1)
	claim := c.StartClaim(900, 2)
	assert.Equal(t, int64(2), claim.UserID)

	got, ok := c.ClaimOf(900)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.UserID)
}

func TestStartClaim_DirectBypassesExclusivity(t *testing.T) {
	c := newTestCore(newFakeClock())

	// Two operators may claim the same user through the direct path; only
	// the queue scan enforces exclusivity.
	c.StartClaim(900, 1)
	c.StartClaim(901, 1)

	claims := c.ActiveClaims()
	assert.Equal(t, int64(1), claims[900])
	assert.Equal(t, int64(1), claims[901])
}

func TestEndClaim(t *testing.T) {
	c := newTestCore(newFakeClock())

	assert.False(t, c.EndClaim(900))
	c.StartClaim(900, 1)
	assert.True(t, c.EndClaim(900))
	_, ok := c.ClaimOf(900)
	assert.False(t, ok)
}

func TestClaimNext_RecordsClaimTime(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	fillQueue(t, c, 1, 1)

	_, err := c.ClaimNext(900)
	require.NoError(t, err)
	claim, ok := c.ClaimOf(900)
	require.True(t, ok)
	assert.Equal(t, clock.Now(), claim.Since)
}
