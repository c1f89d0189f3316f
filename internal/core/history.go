package core

import (
	"math"

	"github.com/spec-kit/support-bot/internal/domain"
)

func (c *Core) appendHistoryLocked(userID int64, text string) {
	c.history[userID] = append(c.history[userID], domain.HistoryEntry{
		Text: text,
		Time: c.now().Unix(),
	})
}

// MarkOneAnswered flips the oldest unanswered entry for the user. Reports
// false when every entry is already answered or the user has no history.
func (c *Core) MarkOneAnswered(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.history[userID]
	for i := range entries {
		if !entries[i].Answered {
			entries[i].Answered = true
			return true
		}
	}
	return false
}

// MarkAllAnswered flips every entry for the user, returning how many flipped.
func (c *Core) MarkAllAnswered(userID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.history[userID]
	flipped := 0
	for i := range entries {
		if !entries[i].Answered {
			entries[i].Answered = true
			flipped++
		}
	}
	return flipped
}

// UnansweredCount counts the user's entries still awaiting an answer.
func (c *Core) UnansweredCount(userID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, entry := range c.history[userID] {
		if !entry.Answered {
			count++
		}
	}
	return count
}

// UserHistory returns up to limit of the user's most recent entries, oldest
// first. limit <= 0 returns everything.
func (c *Core) UserHistory(userID int64, limit int) []domain.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.history[userID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]domain.HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

// Efficiency is answered/submitted across all users as a percentage, rounded
// to one decimal. 0 when nothing has been submitted.
func (c *Core) Efficiency() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	submitted, answered := 0, 0
	for _, entries := range c.history {
		for _, entry := range entries {
			submitted++
			if entry.Answered {
				answered++
			}
		}
	}
	if submitted == 0 {
		return 0
	}
	return math.Round(float64(answered)/float64(submitted)*1000) / 10
}

// HistoryTotals reports (users with history, total entries).
func (c *Core) HistoryTotals() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := 0
	for _, list := range c.history {
		entries += len(list)
	}
	return len(c.history), entries
}

// ClearHistory drops every user's history, reporting (users, entries)
// removed.
func (c *Core) ClearHistory() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	users := len(c.history)
	entries := 0
	for _, list := range c.history {
		entries += len(list)
	}
	c.history = make(map[int64][]domain.HistoryEntry)
	return users, entries
}
