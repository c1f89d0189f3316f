package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/domain"
	"github.com/spec-kit/support-bot/internal/events"
	"github.com/spec-kit/support-bot/internal/observability"
	"github.com/spec-kit/support-bot/internal/transport"
)

// Snapshotter persists the current state. Services call it after every
// mutation that touches persisted entities.
type Snapshotter interface {
	SaveNow()
}

// SupportService drives the end-user side: registration, the identity gate
// and message submission.
type SupportService struct {
	core       *core.Core
	dispatcher events.Dispatcher
	snapshots  Snapshotter
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// SupportDependencies bundles collaborators.
type SupportDependencies struct {
	Core       *core.Core
	Dispatcher events.Dispatcher
	Snapshots  Snapshotter
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewSupportService creates the service.
func NewSupportService(deps SupportDependencies) *SupportService {
	return &SupportService{
		core:       deps.Core,
		dispatcher: deps.Dispatcher,
		snapshots:  deps.Snapshots,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// Register creates or refreshes the user and returns the gate outcome.
func (s *SupportService) Register(userID int64, username, firstName string) core.RegisterResult {
	res := s.core.Register(userID, username, firstName)
	if res.Created {
		s.logger.Info("user registered",
			zap.Int64("user_id", userID),
			zap.String("gate", string(res.State)))
		s.snapshots.SaveNow()
	}
	return res
}

// ChallengeQuestion returns the pending captcha question, issuing a fresh
// one when the in-flight challenge was lost to a restart.
func (s *SupportService) ChallengeQuestion(userID int64) (string, bool) {
	return s.core.EnsureChallenge(userID)
}

// VerifyChallenge checks a captcha answer. On mismatch the same question is
// kept for re-display.
func (s *SupportService) VerifyChallenge(userID int64, raw string) error {
	if err := s.core.SubmitChallengeAnswer(userID, raw); err != nil {
		return err
	}
	s.logger.Info("user verified", zap.Int64("user_id", userID))
	s.snapshots.SaveNow()
	return nil
}

// Submit runs the admission pipeline for one inbound submission and, on
// acceptance, fans the new ticket out through the dispatcher and snapshots.
func (s *SupportService) Submit(ctx context.Context, ev transport.InboundEvent) (domain.Ticket, int, error) {
	ticket, position, err := s.core.AcceptSubmission(ev.UserID, ev.Payload())
	if err != nil {
		return domain.Ticket{}, 0, err
	}

	s.metrics.RecordInbound(string(ev.Kind))
	s.logger.Info("message queued",
		zap.Int64("user_id", ev.UserID),
		zap.String("ticket_id", ticket.ID),
		zap.String("kind", string(ev.Kind)),
		zap.Int("position", position))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMessageQueued,
		UserID:    ev.UserID,
		Timestamp: time.Now(),
		Payload: events.MessageQueuedPayload{
			Ticket:        ticket,
			QueuePosition: position,
			QueueDepth:    s.core.QueueDepth(),
			UserInfo:      s.FormatUserInfo(ev.UserID),
		},
	})
	s.snapshots.SaveNow()
	return ticket, position, nil
}

// UserOverview summarizes a user for the stats screen.
type UserOverview struct {
	MessagesSent int
	Unanswered   int
	DaysInSystem int
}

// Overview assembles the user's own statistics.
func (s *SupportService) Overview(userID int64) (UserOverview, bool) {
	u, ok := s.core.UserInfo(userID)
	if !ok {
		return UserOverview{}, false
	}
	days := int(time.Since(u.JoinedTime()).Hours() / 24)
	return UserOverview{
		MessagesSent: u.MessagesSent,
		Unanswered:   s.core.UnansweredCount(userID),
		DaysInSystem: days,
	}, true
}

// FormatUserInfo renders the sender block shown to operators.
func (s *SupportService) FormatUserInfo(userID int64) string {
	info := fmt.Sprintf("ID: %d", userID)
	if u, ok := s.core.UserInfo(userID); ok {
		if u.FirstName != "" {
			info += "\nName: " + u.FirstName
		}
		if u.Username != "" {
			info += "\n@" + u.Username
		}
	}
	return info
}
