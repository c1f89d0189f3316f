package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/domain"
	"github.com/spec-kit/support-bot/internal/events"
	"github.com/spec-kit/support-bot/internal/observability"
	"github.com/spec-kit/support-bot/internal/transport"
)

// broadcastPace spaces consecutive broadcast sends to stay under transport
// flood limits.
const broadcastPace = 100 * time.Millisecond

// AdminService covers roster mutation, runtime settings, templates,
// broadcast and bulk cleanup.
type AdminService struct {
	core       *core.Core
	notifier   transport.Notifier
	dispatcher events.Dispatcher
	snapshots  Snapshotter
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AdminDependencies bundles collaborators.
type AdminDependencies struct {
	Core       *core.Core
	Notifier   transport.Notifier
	Dispatcher events.Dispatcher
	Snapshots  Snapshotter
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAdminService creates the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		core:       deps.Core,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		snapshots:  deps.Snapshots,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// AddOperator registers an operator id.
func (a *AdminService) AddOperator(operatorID int64) error {
	if err := a.core.AddOperator(operatorID); err != nil {
		return err
	}
	a.logger.Info("operator added", zap.Int64("operator_id", operatorID))
	a.snapshots.SaveNow()
	return nil
}

// RemoveOperator drops an operator id.
func (a *AdminService) RemoveOperator(operatorID int64) error {
	if err := a.core.RemoveOperator(operatorID); err != nil {
		return err
	}
	a.logger.Info("operator removed", zap.Int64("operator_id", operatorID))
	a.snapshots.SaveNow()
	return nil
}

// Broadcast sends text to every known user, once each, paced. Failures are
// counted, logged and never retried.
func (a *AdminService) Broadcast(ctx context.Context, text string) (sent, failed int) {
	for _, userID := range a.core.UserIDs() {
		select {
		case <-ctx.Done():
			return sent, failed
		default:
		}
		if err := a.notifier.Send(userID, "Announcement:\n\n"+text); err != nil {
			failed++
			a.metrics.RecordDelivery(false)
			a.logger.Warn("broadcast undelivered", zap.Int64("user_id", userID), zap.Error(err))
		} else {
			sent++
			a.metrics.RecordDelivery(true)
		}
		time.Sleep(broadcastPace)
	}
	a.logger.Info("broadcast finished", zap.Int("sent", sent), zap.Int("failed", failed))
	return sent, failed
}

// Toggle flips one boolean setting by name and snapshots.
func (a *AdminService) toggle(apply func() bool, name string) bool {
	value := apply()
	a.logger.Info("setting toggled", zap.String("setting", name), zap.Bool("value", value))
	a.snapshots.SaveNow()
	return value
}

func (a *AdminService) ToggleAutoGreet() bool {
	return a.toggle(a.core.ToggleAutoGreet, "auto_greet")
}

func (a *AdminService) ToggleNotifyOperators() bool {
	return a.toggle(a.core.ToggleNotifyOperators, "notify_operators")
}

func (a *AdminService) ToggleCaptcha() bool {
	return a.toggle(a.core.ToggleCaptcha, "captcha_enabled")
}

func (a *AdminService) ToggleWorkHours() bool {
	return a.toggle(a.core.ToggleWorkHours, "work_hours_enabled")
}

// SetMaxQueueSize validates and stores the queue capacity.
func (a *AdminService) SetMaxQueueSize(size int) error {
	if err := a.core.SetMaxQueueSize(size); err != nil {
		return err
	}
	a.snapshots.SaveNow()
	return nil
}

// SetCooldownSeconds validates and stores the anti-flood cooldown.
func (a *AdminService) SetCooldownSeconds(seconds int) error {
	if err := a.core.SetCooldownSeconds(seconds); err != nil {
		return err
	}
	a.snapshots.SaveNow()
	return nil
}

// SetWorkHoursStart validates and stores the opening hour.
func (a *AdminService) SetWorkHoursStart(hour int) error {
	if err := a.core.SetWorkHoursStart(hour); err != nil {
		return err
	}
	a.snapshots.SaveNow()
	return nil
}

// SetWorkHoursEnd validates and stores the closing hour.
func (a *AdminService) SetWorkHoursEnd(hour int) error {
	if err := a.core.SetWorkHoursEnd(hour); err != nil {
		return err
	}
	a.snapshots.SaveNow()
	return nil
}

// AddTemplate stores a new answer template and returns its key.
func (a *AdminService) AddTemplate(name, text string) string {
	key := a.core.AddTemplate(name, text)
	a.snapshots.SaveNow()
	return key
}

// UpdateTemplate replaces a template body.
func (a *AdminService) UpdateTemplate(key, text string) error {
	if err := a.core.UpdateTemplate(key, text); err != nil {
		return err
	}
	a.snapshots.SaveNow()
	return nil
}

// DeleteTemplate removes a template, returning its name.
func (a *AdminService) DeleteTemplate(key string) (string, error) {
	name, err := a.core.DeleteTemplate(key)
	if err != nil {
		return "", err
	}
	a.snapshots.SaveNow()
	return name, nil
}

// Templates lists stored templates.
func (a *AdminService) Templates() []core.TemplateKeyed {
	return a.core.Templates()
}

// ClearQueue drops every pending ticket and announces the cleanup.
func (a *AdminService) ClearQueue(ctx context.Context, actorID int64) int {
	removed := a.core.ClearQueue()
	a.logger.Info("queue cleared", zap.Int64("actor_id", actorID), zap.Int("removed", removed))
	_ = a.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventQueueCleared,
		Timestamp: time.Now(),
		Payload:   events.QueueClearedPayload{ClearedBy: actorID, Removed: removed},
	})
	a.snapshots.SaveNow()
	return removed
}

// ClearHistory drops every user's history, reporting (users, entries).
func (a *AdminService) ClearHistory(actorID int64) (int, int) {
	users, entries := a.core.ClearHistory()
	a.logger.Info("history cleared",
		zap.Int64("actor_id", actorID),
		zap.Int("users", users),
		zap.Int("entries", entries))
	a.snapshots.SaveNow()
	return users, entries
}

// ResetStats drops operator counters, reporting (operators, answers).
func (a *AdminService) ResetStats(actorID int64) (int, int) {
	ops, answers := a.core.ResetStats()
	a.logger.Info("stats reset",
		zap.Int64("actor_id", actorID),
		zap.Int("operators", ops),
		zap.Int("answers", answers))
	a.snapshots.SaveNow()
	return ops, answers
}

// SettingsView returns the current settings for display.
func (a *AdminService) SettingsView() domain.Settings {
	return a.core.Settings()
}
