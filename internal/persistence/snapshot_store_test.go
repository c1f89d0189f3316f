package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/domain"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot_data.json")
	return NewSnapshotStore(path, zap.NewNop())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	doc := core.EmptyDocument()
	doc.Users["42"] = domain.User{ID: 42, Username: "alice", Gate: domain.GateStateVerified, MessagesSent: 3}
	doc.Settings.CooldownSeconds = 120
	doc.Roster.AdminID = 900
	doc.Roster.Operators = []int64{900, 901}

	require.NoError(t, store.Save(doc))

	loaded := store.Load()
	assert.Equal(t, doc.Users["42"], loaded.Users["42"])
	assert.Equal(t, 120, loaded.Settings.CooldownSeconds)
	assert.Equal(t, []int64{900, 901}, loaded.Roster.Operators)
}

func TestSave_ReplacesExistingFile(t *testing.T) {
	store := newTestStore(t)

	doc := core.EmptyDocument()
	require.NoError(t, store.Save(doc))

	doc.Settings.MaxQueueSize = 500
	require.NoError(t, store.Save(doc))

	assert.Equal(t, 500, store.Load().Settings.MaxQueueSize)
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	store := newTestStore(t)

	doc := store.Load()
	assert.Empty(t, doc.Users)
	assert.Equal(t, domain.DefaultSettings(), doc.Settings)
}

func TestLoad_CorruptFileStartsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	doc := store.Load()
	assert.Empty(t, doc.Users)
	assert.Equal(t, domain.DefaultSettings(), doc.Settings)
}

func TestCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Check())

	gone := NewSnapshotStore(filepath.Join(t.TempDir(), "missing", "bot_data.json"), zap.NewNop())
	assert.Error(t, gone.Check())
}
