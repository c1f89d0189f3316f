package events

import (
	"time"

	"github.com/spec-kit/support-bot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMessageQueued  EventType = "message_queued"
	EventAnswerSent     EventType = "answer_sent"
	EventTicketResolved EventType = "ticket_resolved"
	EventTicketRejected EventType = "ticket_rejected"
	EventQueueCleared   EventType = "queue_cleared"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// MessageQueuedPayload accompanies EventMessageQueued.
type MessageQueuedPayload struct {
	Ticket        domain.Ticket `json:"ticket"`
	QueuePosition int           `json:"queue_position"`
	QueueDepth    int           `json:"queue_depth"`
	UserInfo      string        `json:"user_info"`
}

// AnswerSentPayload accompanies EventAnswerSent.
type AnswerSentPayload struct {
	OperatorID int64 `json:"operator_id"`
	Answered   int   `json:"answered"`
}

// QueueClearedPayload accompanies EventQueueCleared.
type QueueClearedPayload struct {
	ClearedBy int64 `json:"cleared_by"`
	Removed   int   `json:"removed"`
}
