// Package transport defines the shapes the core exchanges with the message
// transport. The concrete transport (Telegram) lives in a subpackage; the
// services only see these contracts.
package transport

import "github.com/spec-kit/support-bot/internal/domain"

// InboundEvent is one delivered user or operator message.
type InboundEvent struct {
	UserID    int64
	Kind      domain.MessageKind
	Text      string
	Caption   string
	FileID    string
	Username  string
	FirstName string
}

// Payload converts the event into the core submission payload.
func (e InboundEvent) Payload() domain.Payload {
	return domain.Payload{
		Kind:    e.Kind,
		Text:    e.Text,
		FileID:  e.FileID,
		Caption: e.Caption,
	}
}

// Action is one interactive button attached to an outbound notification.
type Action struct {
	Label    string
	ActionID string
}

// Notifier delivers rendered text and media to a numeric identity. Delivery
// is attempted once; failure is reported per recipient and never retried.
type Notifier interface {
	Send(targetID int64, text string) error
	SendWithActions(targetID int64, text string, actions []Action) error
	SendMedia(targetID int64, kind domain.MessageKind, fileID, caption string) error
}
