package service

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/domain"
	"github.com/spec-kit/support-bot/internal/events"
	"github.com/spec-kit/support-bot/internal/observability"
	"github.com/spec-kit/support-bot/internal/transport"
)

type sentMessage struct {
	TargetID int64
	Text     string
	Actions  []transport.Action
	Kind     domain.MessageKind
	FileID   string
}

// fakeNotifier records outbound deliveries and can fail per recipient.
type fakeNotifier struct {
	sent    []sentMessage
	failFor map[int64]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[int64]bool)}
}

func (f *fakeNotifier) Send(targetID int64, text string) error {
	if f.failFor[targetID] {
		return fmt.Errorf("recipient %d unreachable", targetID)
	}
	f.sent = append(f.sent, sentMessage{TargetID: targetID, Text: text})
	return nil
}

func (f *fakeNotifier) SendWithActions(targetID int64, text string, actions []transport.Action) error {
	if f.failFor[targetID] {
		return fmt.Errorf("recipient %d unreachable", targetID)
	}
	f.sent = append(f.sent, sentMessage{TargetID: targetID, Text: text, Actions: actions})
	return nil
}

func (f *fakeNotifier) SendMedia(targetID int64, kind domain.MessageKind, fileID, caption string) error {
	if f.failFor[targetID] {
		return fmt.Errorf("recipient %d unreachable", targetID)
	}
	f.sent = append(f.sent, sentMessage{TargetID: targetID, Text: caption, Kind: kind, FileID: fileID})
	return nil
}

// sentTo filters recorded deliveries by recipient.
func (f *fakeNotifier) sentTo(targetID int64) []sentMessage {
	var out []sentMessage
	for _, m := range f.sent {
		if m.TargetID == targetID {
			out = append(out, m)
		}
	}
	return out
}

// fakeSnapshots counts SaveNow calls.
type fakeSnapshots struct {
	saves int
}

func (f *fakeSnapshots) SaveNow() {
	f.saves++
}

// testEnv wires every service against one core with fakes at the edges.
type testEnv struct {
	core      *core.Core
	notifier  *fakeNotifier
	snapshots *fakeSnapshots
	metrics   *observability.Metrics
	support   *SupportService
	operators *OperatorService
	admin     *AdminService
	notify    *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	state := core.New(core.Options{})
	notifier := newFakeNotifier()
	snapshots := &fakeSnapshots{}
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	env := &testEnv{
		core:      state,
		notifier:  notifier,
		snapshots: snapshots,
		metrics:   metrics,
	}
	env.support = NewSupportService(SupportDependencies{
		Core: state, Dispatcher: dispatcher, Snapshots: snapshots, Metrics: metrics, Logger: logger,
	})
	env.operators = NewOperatorService(OperatorDependencies{
		Core: state, Notifier: notifier, Dispatcher: dispatcher, Snapshots: snapshots, Logger: logger,
	})
	env.admin = NewAdminService(AdminDependencies{
		Core: state, Notifier: notifier, Dispatcher: dispatcher, Snapshots: snapshots, Metrics: metrics, Logger: logger,
	})
	env.notify = NewNotificationService(NotificationDependencies{
		Core: state, Notifier: notifier, Dispatcher: dispatcher, Metrics: metrics, Logger: logger,
	})
	env.notify.RegisterHandlers()
	return env
}

// verifiedUser registers userID with the captcha suspended so the gate lands
// on VERIFIED directly.
func (e *testEnv) verifiedUser(userID int64) {
	captchaOn := e.core.Settings().CaptchaEnabled
	if captchaOn {
		e.core.ToggleCaptcha()
	}
	e.core.Register(userID, fmt.Sprintf("user%d", userID), "User")
	if captchaOn {
		e.core.ToggleCaptcha()
	}
}

func textEvent(userID int64, text string) transport.InboundEvent {
	return transport.InboundEvent{
		UserID:    userID,
		Kind:      domain.MessageKindText,
		Text:      text,
		Username:  fmt.Sprintf("user%d", userID),
		FirstName: "User",
	}
}
