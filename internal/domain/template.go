package domain

// AnswerTemplate is a canned operator reply, keyed by a short
// operator-assigned string.
type AnswerTemplate struct {
	Name string `json:"name"`
	Text string `json:"text"`
}
