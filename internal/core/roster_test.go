package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

func TestSeedRoster(t *testing.T) {
	c := newTestCore(newFakeClock())
	c.SeedRoster(900, []int64{901, 902})

	assert.Equal(t, int64(900), c.AdminID())
	assert.Equal(t, []int64{901, 902, 900}, c.Operators())
	assert.True(t, c.IsOperator(900))
	assert.True(t, c.IsAdmin(900))
	assert.False(t, c.IsAdmin(901))
	assert.False(t, c.IsAdmin(0))
}

func TestSeedRoster_SnapshotWins(t *testing.T) {
	c := newTestCore(newFakeClock())
	c.SeedRoster(900, []int64{901})

	// A second seed (e.g. changed env vars) does not override.
	c.SeedRoster(555, []int64{556})
	assert.Equal(t, int64(900), c.AdminID())
}

func TestAddOperator(t *testing.T) {
	c := newTestCore(newFakeClock())
	c.SeedRoster(900, nil)

	require.NoError(t, c.AddOperator(901))
	err := c.AddOperator(901)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOperatorExists))
}

func TestRemoveOperator(t *testing.T) {
	c := newTestCore(newFakeClock())
	c.SeedRoster(900, []int64{901})

	err := c.RemoveOperator(900)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCannotRemoveAdmin))

	err = c.RemoveOperator(777)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOperatorNotFound))

	require.NoError(t, c.RemoveOperator(901))
	assert.False(t, c.IsOperator(901))
}

func TestRemoveOperator_LastOne(t *testing.T) {
	c := newTestCore(newFakeClock())
	// No admin configured, single operator.
	c.SeedRoster(0, []int64{901})

	err := c.RemoveOperator(901)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCannotRemoveLastOp))
}
