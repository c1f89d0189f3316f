package core

import (
	"github.com/spec-kit/support-bot/internal/domain"
)

// StartClaim records a claim by operatorID on userID, overwriting any claim
// the operator already holds. There is intentionally no check that the user
// is queued or unclaimed: manual triggers (answering from a history view or
// an inline action) may target any user directly, and can therefore overlap
// with another operator's claim. Only the automatic ClaimNext path enforces
// claim uniqueness.
func (c *Core) StartClaim(operatorID, userID int64) domain.Claim {
	c.mu.Lock()
	defer c.mu.Unlock()

	claim := domain.Claim{OperatorID: operatorID, UserID: userID, Since: c.now()}
	c.claims[operatorID] = claim
	return claim
}

// EndClaim clears the operator's claim. Reports false when there was none.
func (c *Core) EndClaim(operatorID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.claims[operatorID]
	if ok {
		delete(c.claims, operatorID)
	}
	return ok
}

// ClaimOf returns the operator's active claim, if any.
func (c *Core) ClaimOf(operatorID int64) (domain.Claim, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	claim, ok := c.claims[operatorID]
	return claim, ok
}

// ActiveClaims returns a read-only copy of operator → claimed user.
func (c *Core) ActiveClaims() map[int64]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := make(map[int64]int64, len(c.claims))
	for op, claim := range c.claims {
		view[op] = claim.UserID
	}
	return view
}

func (c *Core) userClaimedLocked(userID int64) bool {
	for _, claim := range c.claims {
		if claim.UserID == userID {
			return true
		}
	}
	return false
}
