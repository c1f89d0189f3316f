package domain

// OperatorStat tracks per-operator counters. Answered is monotonically
// non-decreasing except on an explicit stats reset.
type OperatorStat struct {
	Answered        int       `json:"answered"`
	ResponseSeconds []float64 `json:"response_seconds,omitempty"`
}

// RankedOperator pairs an operator with its position in the answered-count
// ranking.
type RankedOperator struct {
	OperatorID int64
	Answered   int
	Rank       int
}
