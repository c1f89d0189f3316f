package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitN(t *testing.T, c *Core, clock *fakeClock, userID int64, n int) {
	t.Helper()
	registerVerified(c, userID)
	for i := 0; i < n; i++ {
		_, _, err := c.AcceptSubmission(userID, textPayload(fmt.Sprintf("message %d", i)))
		require.NoError(t, err)
		clock.Advance(2 * time.Minute) // past the cooldown
	}
}

func TestMarkOneAnswered_OldestFirst(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	submitN(t, c, clock, 1, 3)

	require.True(t, c.MarkOneAnswered(1))
	entries := c.UserHistory(1, 0)
	assert.True(t, entries[0].Answered)
	assert.False(t, entries[1].Answered)
	assert.False(t, entries[2].Answered)

	require.True(t, c.MarkOneAnswered(1))
	require.True(t, c.MarkOneAnswered(1))
	assert.False(t, c.MarkOneAnswered(1))
	assert.Equal(t, 0, c.UnansweredCount(1))
}

func TestMarkAllAnswered(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	submitN(t, c, clock, 1, 4)
	require.True(t, c.MarkOneAnswered(1))

	assert.Equal(t, 3, c.MarkAllAnswered(1))
	assert.Equal(t, 0, c.UnansweredCount(1))
	assert.Equal(t, 0, c.MarkAllAnswered(1))
}

func TestUserHistory_LimitKeepsMostRecent(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	submitN(t, c, clock, 1, 5)

	entries := c.UserHistory(1, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "message 3", entries[0].Text)
	assert.Equal(t, "message 4", entries[1].Text)
}

func TestEfficiency(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	assert.Equal(t, 0.0, c.Efficiency())

	submitN(t, c, clock, 1, 3)
	require.True(t, c.MarkOneAnswered(1))

	// 1 of 3 answered, rounded to one decimal.
	assert.Equal(t, 33.3, c.Efficiency())

	c.MarkAllAnswered(1)
	assert.Equal(t, 100.0, c.Efficiency())
}

func TestClearHistory(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	submitN(t, c, clock, 1, 2)
	submitN(t, c, clock, 2, 3)

	users, entries := c.HistoryTotals()
	assert.Equal(t, 2, users)
	assert.Equal(t, 5, entries)

	users, entries = c.ClearHistory()
	assert.Equal(t, 2, users)
	assert.Equal(t, 5, entries)
	assert.Empty(t, c.UserHistory(1, 0))
}
