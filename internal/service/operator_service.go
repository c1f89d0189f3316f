package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/domain"
	"github.com/spec-kit/support-bot/internal/events"
	"github.com/spec-kit/support-bot/internal/transport"
	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// OperatorService drives the operator side of the ticket lifecycle: claims,
// answers, resolutions and rejections.
type OperatorService struct {
	core       *core.Core
	notifier   transport.Notifier
	dispatcher events.Dispatcher
	snapshots  Snapshotter
	logger     *zap.Logger
}

// OperatorDependencies bundles collaborators.
type OperatorDependencies struct {
	Core       *core.Core
	Notifier   transport.Notifier
	Dispatcher events.Dispatcher
	Snapshots  Snapshotter
	Logger     *zap.Logger
}

// NewOperatorService creates the service.
func NewOperatorService(deps OperatorDependencies) *OperatorService {
	return &OperatorService{
		core:       deps.Core,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		snapshots:  deps.Snapshots,
		logger:     deps.Logger,
	}
}

// TakeNext claims the oldest unclaimed ticket for the operator.
func (o *OperatorService) TakeNext(operatorID int64) (domain.Ticket, error) {
	ticket, err := o.core.ClaimNext(operatorID)
	if err != nil {
		return domain.Ticket{}, err
	}
	o.logger.Info("ticket claimed",
		zap.Int64("operator_id", operatorID),
		zap.Int64("user_id", ticket.UserID),
		zap.String("ticket_id", ticket.ID))
	return ticket, nil
}

// StartDirectClaim force-claims a user for the operator, bypassing the
// queue. Used by the inline "reply" action and the history shortcut.
func (o *OperatorService) StartDirectClaim(operatorID, userID int64) domain.Claim {
	return o.core.StartClaim(operatorID, userID)
}

// ResetClaim releases the operator's active claim without answering.
func (o *OperatorService) ResetClaim(operatorID int64) bool {
	return o.core.EndClaim(operatorID)
}

// ActiveClaim returns the operator's current claim.
func (o *OperatorService) ActiveClaim(operatorID int64) (domain.Claim, bool) {
	return o.core.ClaimOf(operatorID)
}

// SendAnswer delivers the operator's text to the claimed user and settles
// the ticket: history marked, stats bumped, queue head removed, claim ended.
func (o *OperatorService) SendAnswer(ctx context.Context, operatorID int64, text string) (int, error) {
	claim, ok := o.core.ClaimOf(operatorID)
	if !ok {
		return 0, apperrors.NewClaimRequired()
	}

	if err := o.notifier.Send(claim.UserID, renderAnswer(text)); err != nil {
		return 0, apperrors.NewDeliveryFailed(claim.UserID, err)
	}

	o.core.MarkOneAnswered(claim.UserID)
	answered := o.core.RecordAnswer(operatorID)
	o.core.RecordResponseTime(operatorID, time.Since(claim.Since).Seconds())
	o.core.RemoveIfHead(claim.UserID)
	o.core.EndClaim(operatorID)

	o.logger.Info("answer sent",
		zap.Int64("operator_id", operatorID),
		zap.Int64("user_id", claim.UserID),
		zap.Int("answered_total", answered))

	_ = o.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAnswerSent,
		UserID:    claim.UserID,
		Timestamp: time.Now(),
		Payload:   events.AnswerSentPayload{OperatorID: operatorID, Answered: answered},
	})
	o.snapshots.SaveNow()
	return answered, nil
}

// SendTemplate answers the claimed user with a stored template body.
func (o *OperatorService) SendTemplate(ctx context.Context, operatorID int64, key string) (domain.AnswerTemplate, error) {
	tpl, err := o.core.Template(key)
	if err != nil {
		return domain.AnswerTemplate{}, err
	}
	if _, err := o.SendAnswer(ctx, operatorID, tpl.Text); err != nil {
		return domain.AnswerTemplate{}, err
	}
	return tpl, nil
}

// SendAnswerMedia forwards an operator's media reply to the claimed user.
// Media replies do not settle the ticket; the closing text answer does.
func (o *OperatorService) SendAnswerMedia(operatorID int64, kind domain.MessageKind, fileID, caption string) error {
	claim, ok := o.core.ClaimOf(operatorID)
	if !ok {
		return apperrors.NewClaimRequired()
	}
	if err := o.notifier.SendMedia(claim.UserID, kind, fileID, caption); err != nil {
		return apperrors.NewDeliveryFailed(claim.UserID, err)
	}
	return nil
}

// Resolve marks the user's whole history answered and tells the user.
func (o *OperatorService) Resolve(ctx context.Context, operatorID, userID int64) int {
	flipped := o.core.MarkAllAnswered(userID)

	if err := o.notifier.Send(userID, "Your question was marked as solved. Write to us again any time."); err != nil {
		o.logger.Warn("resolve notice undelivered", zap.Int64("user_id", userID), zap.Error(err))
	}

	o.logger.Info("ticket resolved",
		zap.Int64("operator_id", operatorID),
		zap.Int64("user_id", userID),
		zap.Int("entries_flipped", flipped))

	_ = o.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketResolved,
		UserID:    userID,
		Timestamp: time.Now(),
	})
	o.snapshots.SaveNow()
	return flipped
}

// Reject sweeps every queued entry for the user and tells the user.
func (o *OperatorService) Reject(ctx context.Context, operatorID, userID int64) int {
	removed := o.core.RejectAll(userID)

	if err := o.notifier.Send(userID, "Your message was rejected. Please state your question more clearly."); err != nil {
		o.logger.Warn("reject notice undelivered", zap.Int64("user_id", userID), zap.Error(err))
	}

	o.logger.Info("ticket rejected",
		zap.Int64("operator_id", operatorID),
		zap.Int64("user_id", userID),
		zap.Int("removed", removed))

	_ = o.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketRejected,
		UserID:    userID,
		Timestamp: time.Now(),
	})
	o.snapshots.SaveNow()
	return removed
}

// History returns the user's most recent entries for the operator view.
func (o *OperatorService) History(userID int64, limit int) []domain.HistoryEntry {
	return o.core.UserHistory(userID, limit)
}

// OperatorOverview summarizes one operator for the stats screen.
type OperatorOverview struct {
	Answered      int
	Rank          int
	TotalAnswered int
	QueueDepth    int
}

// Overview assembles the operator's statistics.
func (o *OperatorService) Overview(operatorID int64) OperatorOverview {
	stat, _ := o.core.StatOf(operatorID)
	return OperatorOverview{
		Answered:      stat.Answered,
		Rank:          o.core.Rank(operatorID),
		TotalAnswered: o.core.TotalAnswered(),
		QueueDepth:    o.core.QueueDepth(),
	}
}

// InfoPanel summarizes the whole system for the operator info panel.
type InfoPanel struct {
	QueueDepth      int
	OldestAgeMin    float64
	EfficiencyPct   float64
	AutoGreet       bool
	CaptchaEnabled  bool
	WorkHoursActive bool
}

// Panel assembles the info panel values.
func (o *OperatorService) Panel() InfoPanel {
	settings := o.core.Settings()
	return InfoPanel{
		QueueDepth:      o.core.QueueDepth(),
		OldestAgeMin:    o.core.OldestTicketAge().Minutes(),
		EfficiencyPct:   o.core.Efficiency(),
		AutoGreet:       settings.AutoGreet,
		CaptchaEnabled:  settings.CaptchaEnabled,
		WorkHoursActive: settings.WorkHoursEnabled,
	}
}

func renderAnswer(text string) string {
	return "Operator answer:\n\n" + text
}
