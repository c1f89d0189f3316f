package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-bot/internal/domain"
	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// ClaimScanWindow bounds how many queue entries ClaimNext inspects. Claim
// latency stays O(window) regardless of queue depth; eligible tickets beyond
// the window wait for an earlier one to drain.
const ClaimScanWindow = 20

func (c *Core) enqueueLocked(userID int64, payload domain.Payload) domain.Ticket {
	if len(c.queue) >= c.settings.MaxQueueSize {
		// Silent drop of the oldest entry. The evicted user keeps their
		// history entry and is not told.
		c.queue = c.queue[1:]
	}

	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		UserID:      userID,
		Payload:     payload,
		SubmittedAt: c.now(),
	}
	c.queue = append(c.queue, ticket)
	c.appendHistoryLocked(userID, payload.Summary())
	return ticket
}

// ClaimNext scans the queue oldest-first, bounded to the first
// ClaimScanWindow entries, and hands the operator the first ticket whose
// user is not already claimed by anyone. The claim is recorded before
// returning.
func (c *Core) ClaimNext(operatorID int64) (domain.Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	window := c.queue
	if len(window) > ClaimScanWindow {
		window = window[:ClaimScanWindow]
	}
	for _, ticket := range window {
		if c.userClaimedLocked(ticket.UserID) {
			continue
		}
		c.claims[operatorID] = domain.Claim{
			OperatorID: operatorID,
			UserID:     ticket.UserID,
			Since:      c.now(),
		}
		return ticket, nil
	}
	return domain.Ticket{}, apperrors.NewQueueEmpty()
}

// RemoveIfHead pops the queue head if it belongs to userID. Only the head is
// considered: multiple outstanding submissions from one user drain one at a
// time, oldest first.
func (c *Core) RemoveIfHead(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 || c.queue[0].UserID != userID {
		return false
	}
	c.queue = c.queue[1:]
	return true
}

// RejectAll removes every queued entry for userID and reports how many were
// dropped.
func (c *Core) RejectAll(userID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.queue[:0]
	removed := 0
	for _, ticket := range c.queue {
		if ticket.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, ticket)
	}
	c.queue = kept
	return removed
}

// ClearQueue drops all entries and returns the count removed.
func (c *Core) ClearQueue() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.queue)
	c.queue = nil
	return removed
}

// QueueDepth returns the number of pending tickets.
func (c *Core) QueueDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// QueueView returns a copy of the pending tickets, oldest first.
func (c *Core) QueueView() []domain.Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := make([]domain.Ticket, len(c.queue))
	copy(view, c.queue)
	return view
}

// OldestTicketAge reports how long the head of the queue has been waiting,
// 0 on an empty queue.
func (c *Core) OldestTicketAge() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return 0
	}
	return c.now().Sub(c.queue[0].SubmittedAt)
}
