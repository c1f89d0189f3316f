package domain

// HistoryEntry is one submitted message in a user's append-only history.
// The answered flag flips false→true exactly once and never reverts.
type HistoryEntry struct {
	Text     string `json:"text"`
	Time     int64  `json:"time"`
	Answered bool   `json:"answered"`
}
