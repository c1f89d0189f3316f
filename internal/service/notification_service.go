package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/events"
	"github.com/spec-kit/support-bot/internal/observability"
	"github.com/spec-kit/support-bot/internal/transport"
)

// NotificationService fans domain events out to operators through the
// transport. Each recipient gets one delivery attempt; failures are logged
// and never abort the loop.
type NotificationService struct {
	core       *core.Core
	notifier   transport.Notifier
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NotificationDependencies bundles collaborators.
type NotificationDependencies struct {
	Core       *core.Core
	Notifier   transport.Notifier
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		core:       deps.Core,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageQueued, n.handleMessageQueued)
	n.dispatcher.Subscribe(events.EventQueueCleared, n.handleQueueCleared)
}

func (n *NotificationService) handleMessageQueued(ctx context.Context, event events.Event) error {
	if !n.core.Settings().NotifyOperators {
		return nil
	}
	payload, ok := event.Payload.(events.MessageQueuedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}

	text := fmt.Sprintf("NEW MESSAGE #%d\n\n%s\n\nMessage:\n%s\n\nIn queue: %d",
		payload.QueuePosition, payload.UserInfo, payload.Ticket.Payload.Summary(), payload.QueueDepth)
	actions := ticketActions(payload.Ticket.UserID)

	for _, operatorID := range n.core.Operators() {
		if err := n.notifier.SendWithActions(operatorID, text, actions); err != nil {
			n.metrics.RecordDelivery(false)
			n.logger.Warn("operator notification undelivered",
				zap.Int64("operator_id", operatorID),
				zap.String("ticket_id", payload.Ticket.ID),
				zap.Error(err))
			continue
		}
		n.metrics.RecordDelivery(true)
	}
	return nil
}

func (n *NotificationService) handleQueueCleared(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.QueueClearedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}

	text := fmt.Sprintf("Queue cleared by the admin. %d messages removed.", payload.Removed)
	for _, operatorID := range n.core.Operators() {
		if operatorID == payload.ClearedBy {
			continue
		}
		if err := n.notifier.Send(operatorID, text); err != nil {
			n.metrics.RecordDelivery(false)
			n.logger.Warn("cleanup notice undelivered", zap.Int64("operator_id", operatorID), zap.Error(err))
			continue
		}
		n.metrics.RecordDelivery(true)
	}
	return nil
}

// AnnounceRestart tells every operator the bot is back up.
func (n *NotificationService) AnnounceRestart() {
	for _, operatorID := range n.core.Operators() {
		if err := n.notifier.Send(operatorID, "Bot restarted and ready."); err != nil {
			n.logger.Warn("restart notice undelivered", zap.Int64("operator_id", operatorID), zap.Error(err))
		}
	}
}

// ticketActions builds the inline action set attached to a ticket
// notification. ActionID encodes the verb and the target user id.
func ticketActions(userID int64) []transport.Action {
	id := strconv.FormatInt(userID, 10)
	return []transport.Action{
		{Label: "Reply", ActionID: "reply_" + id},
		{Label: "Solved", ActionID: "solve_" + id},
		{Label: "Reject", ActionID: "reject_" + id},
		{Label: "History", ActionID: "history_" + id},
	}
}
