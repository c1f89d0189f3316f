package domain

import "time"

// Claim is an operator's exclusive, revocable hold on a user's pending
// ticket. An operator holds at most one claim at a time.
type Claim struct {
	OperatorID int64
	UserID     int64
	Since      time.Time
}
