package core

import (
	"slices"

	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// SeedRoster installs the admin and operator list from configuration, but
// only when the restored snapshot carried no roster. The snapshot is the
// authority once it exists.
func (c *Core) SeedRoster(adminID int64, operatorIDs []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.adminID != 0 || len(c.operators) > 0 {
		return
	}
	c.adminID = adminID
	for _, id := range operatorIDs {
		if !slices.Contains(c.operators, id) {
			c.operators = append(c.operators, id)
		}
	}
	if adminID != 0 && !slices.Contains(c.operators, adminID) {
		c.operators = append(c.operators, adminID)
	}
}

// AddOperator registers a new operator id.
func (c *Core) AddOperator(operatorID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.operators, operatorID) {
		return apperrors.NewOperatorExists(operatorID)
	}
	c.operators = append(c.operators, operatorID)
	return nil
}

// RemoveOperator drops an operator. The admin and the last remaining
// operator cannot be removed.
func (c *Core) RemoveOperator(operatorID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if operatorID == c.adminID {
		return apperrors.NewCannotRemoveAdmin()
	}
	idx := slices.Index(c.operators, operatorID)
	if idx < 0 {
		return apperrors.NewOperatorNotFound(operatorID)
	}
	if len(c.operators) <= 1 {
		return apperrors.NewCannotRemoveLastOperator()
	}
	c.operators = slices.Delete(c.operators, idx, idx+1)
	return nil
}

// Operators returns the roster in registration order.
func (c *Core) Operators() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(c.operators))
	copy(out, c.operators)
	return out
}

// AdminID returns the configured admin identity.
func (c *Core) AdminID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adminID
}

// IsOperator reports roster membership.
func (c *Core) IsOperator(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.operators, id)
}

// IsAdmin reports whether id is the admin.
func (c *Core) IsAdmin(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return id != 0 && id == c.adminID
}
