// Package core owns all mutable bot state: users and their identity-gate
// progress, the bounded ticket queue, operator claims, the append-only
// history ledger, operator stats, answer templates, runtime settings and the
// operator roster. Every store lives behind one mutex; the inbound event
// path mutates serially and the snapshot path reads a consistent copy under
// the same lock.
package core

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/spec-kit/support-bot/internal/domain"
)

// Options allows tests to pin the clock and the captcha randomness.
type Options struct {
	Now  func() time.Time
	IntN func(n int) int
}

// Core is the single state owner.
type Core struct {
	mu   sync.Mutex
	now  func() time.Time
	intn func(n int) int

	users     map[int64]*domain.User
	userOrder []int64

	queue  []domain.Ticket
	claims map[int64]domain.Claim

	history map[int64][]domain.HistoryEntry

	stats      map[int64]*domain.OperatorStat
	statsOrder []int64

	templates map[string]domain.AnswerTemplate
	settings  domain.Settings

	adminID   int64
	operators []int64
}

// New creates an empty Core with default settings.
func New(opts Options) *Core {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IntN == nil {
		opts.IntN = rand.IntN
	}
	return &Core{
		now:       opts.Now,
		intn:      opts.IntN,
		users:     make(map[int64]*domain.User),
		claims:    make(map[int64]domain.Claim),
		history:   make(map[int64][]domain.HistoryEntry),
		stats:     make(map[int64]*domain.OperatorStat),
		templates: make(map[string]domain.AnswerTemplate),
		settings:  domain.DefaultSettings(),
	}
}

// UserCount returns the number of known users.
func (c *Core) UserCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.users)
}

// UserIDs returns every known user id in first-seen order.
func (c *Core) UserIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int64, len(c.userOrder))
	copy(ids, c.userOrder)
	return ids
}

// UserInfo returns a copy of the user record.
func (c *Core) UserInfo(userID int64) (domain.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.users[userID]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

func (c *Core) userLocked(userID int64) *domain.User {
	if u, ok := c.users[userID]; ok {
		return u
	}
	return nil
}
