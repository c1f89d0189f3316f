package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/observability"
)

// OpsHandler exposes a read-only operational view of the bot state.
type OpsHandler struct {
	core    *core.Core
	metrics *observability.Metrics
}

// NewOpsHandler returns a new handler instance.
func NewOpsHandler(c *core.Core, metrics *observability.Metrics) *OpsHandler {
	return &OpsHandler{core: c, metrics: metrics}
}

// Overview reports the queue, history and settings state in one view.
func (h *OpsHandler) Overview(c *fiber.Ctx) error {
	usersWithHistory, entries := h.core.HistoryTotals()
	return c.JSON(fiber.Map{
		"users":              h.core.UserCount(),
		"queue_depth":        h.core.QueueDepth(),
		"oldest_age_s":       h.core.OldestTicketAge().Seconds(),
		"users_with_history": usersWithHistory,
		"history_entries":    entries,
		"efficiency":   h.core.Efficiency(),
		"settings":     h.core.Settings(),
		"counters":     h.metrics.Snapshot(),
	})
}

// Ranking reports operators ordered by answer count.
func (h *OpsHandler) Ranking(c *fiber.Ctx) error {
	ranking := h.core.Ranking()
	out := make([]fiber.Map, 0, len(ranking))
	for _, r := range ranking {
		out = append(out, fiber.Map{
			"operator_id": r.OperatorID,
			"answered":    r.Answered,
			"rank":        r.Rank,
		})
	}
	return c.JSON(fiber.Map{"ranking": out, "total_answered": h.core.TotalAnswered()})
}

// Claims reports the active operator-to-user claims.
func (h *OpsHandler) Claims(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"claims": h.core.ActiveClaims()})
}
