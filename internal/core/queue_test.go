package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// fillQueue enqueues one accepted message per user id starting at base.
func fillQueue(t *testing.T, c *Core, base int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := base + int64(i)
		registerVerified(c, id)
		_, _, err := c.AcceptSubmission(id, textPayload(fmt.Sprintf("message from %d", id)))
		require.NoError(t, err)
	}
}

func TestEnqueue_EvictsOldestAtCapacity(t *testing.T) {
	c := newTestCore(newFakeClock())
	require.NoError(t, c.SetMaxQueueSize(10))

	fillQueue(t, c, 1, 10)
	assert.Equal(t, 10, c.QueueDepth())

	registerVerified(c, 100)
	_, pos, err := c.AcceptSubmission(100, textPayload("newest message"))
	require.NoError(t, err)
	assert.Equal(t, 10, pos)
	assert.Equal(t, 10, c.QueueDepth())

	// User 1's ticket is gone, but the history entry survives.
	view := c.QueueView()
	assert.Equal(t, int64(2), view[0].UserID)
	assert.Equal(t, int64(100), view[len(view)-1].UserID)
	assert.Len(t, c.UserHistory(1, 0), 1)
}

func TestClaimNext_EmptyQueue(t *testing.T) {
	c := newTestCore(newFakeClock())

	_, err := c.ClaimNext(900)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeQueueEmpty))
}

func TestClaimNext_SkipsAlreadyClaimedUsers(t *testing.T) {
	c := newTestCore(newFakeClock())
	fillQueue(t, c, 1, 3)

	first, err := c.ClaimNext(900)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.UserID)

	// User 1 is claimed by 900, so the next operator gets user 2.
	second, err := c.ClaimNext(901)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.UserID)
}

func TestClaimNext_WindowBound(t *testing.T) {
	c := newTestCore(newFakeClock())
	require.NoError(t, c.SetMaxQueueSize(100))
	fillQueue(t, c, 1, 25)

	// Claim the first ClaimScanWindow users with distinct operators. The
	// 21st operator finds nothing even though eligible tickets wait deeper.
	for op := int64(0); op < ClaimScanWindow; op++ {
		_, err := c.ClaimNext(900 + op)
		require.NoError(t, err)
	}

	_, err := c.ClaimNext(999)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeQueueEmpty))
	assert.Equal(t, 25, c.QueueDepth())
}

func TestRemoveIfHead(t *testing.T) {
	c := newTestCore(newFakeClock())
	fillQueue(t, c, 1, 3)

	// Only the head's user can be removed this way.
	assert.False(t, c.RemoveIfHead(2))
	assert.True(t, c.RemoveIfHead(1))
	assert.Equal(t, 2, c.QueueDepth())
	assert.False(t, c.RemoveIfHead(1))
}

func TestRejectAll_SweepsEveryTicketOfUser(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	registerVerified(c, 1)
	registerVerified(c, 2)

	for i := 0; i < 3; i++ {
		_, _, err := c.AcceptSubmission(1, textPayload("message from one"))
		require.NoError(t, err)
		_, _, err = c.AcceptSubmission(2, textPayload("message from two"))
		require.NoError(t, err)
		clock.Advance(2 * time.Minute)
	}

	removed := c.RejectAll(1)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 3, c.QueueDepth())
	for _, ticket := range c.QueueView() {
		assert.Equal(t, int64(2), ticket.UserID)
	}

	assert.Equal(t, 0, c.RejectAll(1))
}

func TestClearQueue(t *testing.T) {
	c := newTestCore(newFakeClock())
	fillQueue(t, c, 1, 4)

	assert.Equal(t, 4, c.ClearQueue())
	assert.Equal(t, 0, c.QueueDepth())
	assert.Equal(t, 0, c.ClearQueue())
}

func TestOldestTicketAge(t *testing.T) {
	clock := newFakeClock()
	c := newTestCore(clock)
	assert.Equal(t, time.Duration(0), c.OldestTicketAge())

	fillQueue(t, c, 1, 1)
	clock.Advance(7 * time.Minute)
	assert.Equal(t, 7*time.Minute, c.OldestTicketAge())
}
