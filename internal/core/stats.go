package core

import (
	"sort"

	"github.com/spec-kit/support-bot/internal/domain"
)

// RecordAnswer increments the operator's answered counter, creating the
// stats entry on first answer, and returns the new total.
func (c *Core) RecordAnswer(operatorID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	stat, ok := c.stats[operatorID]
	if !ok {
		stat = &domain.OperatorStat{}
		c.stats[operatorID] = stat
		c.statsOrder = append(c.statsOrder, operatorID)
	}
	stat.Answered++
	return stat.Answered
}

// RecordResponseTime appends a response-time sample for the operator.
func (c *Core) RecordResponseTime(operatorID int64, seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stat, ok := c.stats[operatorID]
	if !ok {
		stat = &domain.OperatorStat{}
		c.stats[operatorID] = stat
		c.statsOrder = append(c.statsOrder, operatorID)
	}
	stat.ResponseSeconds = append(stat.ResponseSeconds, seconds)
}

// StatOf returns a copy of the operator's stats entry.
func (c *Core) StatOf(operatorID int64) (domain.OperatorStat, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stat, ok := c.stats[operatorID]
	if !ok {
		return domain.OperatorStat{}, false
	}
	return *stat, true
}

// Ranking orders operators by answered count descending. Ties keep the
// insertion order of the stats entries, so the earlier-active operator wins.
func (c *Core) Ranking() []domain.RankedOperator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rankingLocked()
}

func (c *Core) rankingLocked() []domain.RankedOperator {
	ranked := make([]domain.RankedOperator, 0, len(c.statsOrder))
	for _, id := range c.statsOrder {
		ranked = append(ranked, domain.RankedOperator{
			OperatorID: id,
			Answered:   c.stats[id].Answered,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Answered > ranked[j].Answered
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Rank returns the operator's 1-indexed ranking position, or size+1 when the
// operator has no stats entry yet.
func (c *Core) Rank(operatorID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.rankingLocked() {
		if r.OperatorID == operatorID {
			return r.Rank
		}
	}
	return len(c.stats) + 1
}

// TotalAnswered sums answered counts across all operators.
func (c *Core) TotalAnswered() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, stat := range c.stats {
		total += stat.Answered
	}
	return total
}

// ResetStats clears every operator's stats, reporting (operators, answers)
// dropped.
func (c *Core) ResetStats() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ops := len(c.stats)
	answers := 0
	for _, stat := range c.stats {
		answers += stat.Answered
	}
	c.stats = make(map[int64]*domain.OperatorStat)
	c.statsOrder = nil
	return ops, answers
}
