package domain

import "time"

// GateState enumerates the identity-gate states for an end-user.
type GateState string

const (
	GateStateNew        GateState = "NEW"
	GateStateChallenged GateState = "CHALLENGED"
	GateStateVerified   GateState = "VERIFIED"
)

// User is the domain model for anonymous end-users who submit messages.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username,omitempty"`
	FirstName      string    `json:"first_name,omitempty"`
	Gate           GateState `json:"gate"`
	MessagesSent   int       `json:"messages_sent"`
	LastAcceptedAt int64     `json:"last_accepted_at"`
	JoinedAt       int64     `json:"joined_at"`

	// Pending challenge. Deliberately not persisted: a restart simply
	// re-issues a fresh challenge to a CHALLENGED user.
	ChallengeQuestion string `json:"-"`
	ChallengeAnswer   int    `json:"-"`
}

// Verified reports whether the user has passed the identity gate.
func (u *User) Verified() bool {
	return u.Gate == GateStateVerified
}

// JoinedTime converts the stored unix timestamp.
func (u *User) JoinedTime() time.Time {
	return time.Unix(u.JoinedAt, 0)
}
