package domain

import "time"

// MessageKind enumerates inbound payload kinds.
type MessageKind string

const (
	MessageKindText     MessageKind = "text"
	MessageKindPhoto    MessageKind = "photo"
	MessageKindVideo    MessageKind = "video"
	MessageKindDocument MessageKind = "document"
	MessageKindVoice    MessageKind = "voice"
)

// Payload carries the content of a user submission. Text holds the message
// body for text submissions; media submissions carry a transport file id and
// an optional caption instead.
type Payload struct {
	Kind    MessageKind `json:"kind"`
	Text    string      `json:"text,omitempty"`
	FileID  string      `json:"file_id,omitempty"`
	Caption string      `json:"caption,omitempty"`
}

// Summary renders the payload the way it is stored in the history ledger.
func (p Payload) Summary() string {
	if p.Kind == MessageKindText {
		return p.Text
	}
	s := "[" + string(p.Kind) + "]"
	if p.Caption != "" {
		s += " " + p.Caption
	}
	return s
}

// Ticket is one queued, unanswered user submission awaiting operator action.
type Ticket struct {
	ID          string
	UserID      int64
	Payload     Payload
	SubmittedAt time.Time
}
