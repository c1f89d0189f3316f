package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAnswer(t *testing.T) {
	c := newTestCore(newFakeClock())

	assert.Equal(t, 1, c.RecordAnswer(900))
	assert.Equal(t, 2, c.RecordAnswer(900))
	assert.Equal(t, 1, c.RecordAnswer(901))
	assert.Equal(t, 3, c.TotalAnswered())
}

func TestRanking_DescendingWithStableTies(t *testing.T) {
	c := newTestCore(newFakeClock())

	// 901 answers most; 900 and 902 tie and keep first-answer order.
	c.RecordAnswer(900)
	c.RecordAnswer(901)
	c.RecordAnswer(901)
	c.RecordAnswer(902)

	ranking := c.Ranking()
	require.Len(t, ranking, 3)
	assert.Equal(t, int64(901), ranking[0].OperatorID)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, int64(900), ranking[1].OperatorID)
	assert.Equal(t, int64(902), ranking[2].OperatorID)
	assert.Equal(t, 3, ranking[2].Rank)
}

func TestRank_UnknownOperatorGoesLast(t *testing.T) {
	c := newTestCore(newFakeClock())
	c.RecordAnswer(900)
	c.RecordAnswer(901)

	assert.Equal(t, 3, c.Rank(999))
}

func TestRecordResponseTime(t *testing.T) {
	c := newTestCore(newFakeClock())
	c.RecordAnswer(900)
	c.RecordResponseTime(900, 12.5)

	stat, ok := c.StatOf(900)
	require.True(t, ok)
	assert.Equal(t, []float64{12.5}, stat.ResponseSeconds)
}

func TestResetStats(t *testing.T) {
	c := newTestCore(newFakeClock())
	c.RecordAnswer(900)
	c.RecordAnswer(900)
	c.RecordAnswer(901)

	ops, answers := c.ResetStats()
	assert.Equal(t, 2, ops)
	assert.Equal(t, 3, answers)
	assert.Equal(t, 0, c.TotalAnswered())
	assert.Empty(t, c.Ranking())
}
