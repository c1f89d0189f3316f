// Package worker runs the periodic snapshot safety net. Mutating operations
// snapshot immediately through SaveNow; the cron schedule catches anything
// missed and retries failed writes on the next tick.
package worker

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/observability"
	"github.com/spec-kit/support-bot/internal/persistence"
)

// SnapshotWorker persists core state on demand and on a timer.
type SnapshotWorker struct {
	core    *core.Core
	store   *persistence.SnapshotStore
	metrics *observability.Metrics
	logger  *zap.Logger
	cron    *cron.Cron
}

// NewSnapshotWorker creates the worker.
func NewSnapshotWorker(c *core.Core, store *persistence.SnapshotStore, metrics *observability.Metrics, logger *zap.Logger) *SnapshotWorker {
	return &SnapshotWorker{
		core:    c,
		store:   store,
		metrics: metrics,
		logger:  logger,
		cron:    cron.New(),
	}
}

// SaveNow takes a consistent snapshot and writes it. A failed write is
// logged and left for the next trigger; it never propagates.
func (w *SnapshotWorker) SaveNow() {
	doc := w.core.Snapshot()
	if err := w.store.Save(doc); err != nil {
		w.metrics.RecordSnapshot(false)
		w.logger.Warn("snapshot write failed", zap.String("path", w.store.Path()), zap.Error(err))
		return
	}
	w.metrics.RecordSnapshot(true)
	w.logger.Debug("snapshot written", zap.String("path", w.store.Path()))
}

// Start schedules the periodic snapshot every intervalMinutes and runs the
// scheduler for the process lifetime.
func (w *SnapshotWorker) Start(intervalMinutes int) error {
	if intervalMinutes <= 0 {
		intervalMinutes = 5
	}
	if _, err := w.cron.AddFunc(fmt.Sprintf("@every %dm", intervalMinutes), w.SaveNow); err != nil {
		return fmt.Errorf("schedule snapshot: %w", err)
	}
	w.cron.Start()
	w.logger.Info("snapshot worker started", zap.Int("interval_minutes", intervalMinutes))
	return nil
}

// Stop halts the scheduler and writes one final snapshot.
func (w *SnapshotWorker) Stop() {
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
	w.SaveNow()
}
