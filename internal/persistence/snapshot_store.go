// Package persistence stores the full bot state as one JSON document on
// disk. Write failures degrade to "skip this snapshot"; read failures
// degrade to "start empty". Neither is ever fatal.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
)

// SnapshotStore reads and writes the durable state document.
type SnapshotStore struct {
	path   string
	logger *zap.Logger
}

// NewSnapshotStore creates a store writing to path.
func NewSnapshotStore(path string, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{path: path, logger: logger}
}

// Path returns the document location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Check verifies the snapshot directory exists, for readiness probes.
func (s *SnapshotStore) Check() error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat snapshot dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("snapshot dir %s is not a directory", dir)
	}
	return nil
}

// Save serializes the document and replaces the file via temp-file+rename so
// a crash mid-write never truncates the previous snapshot.
func (s *SnapshotStore) Save(doc core.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads the document, merging stored values over defaults. A missing
// file yields the default document; a corrupt file is logged and also yields
// the default document.
func (s *SnapshotStore) Load() core.Document {
	doc := core.EmptyDocument()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no snapshot found, starting empty", zap.String("path", s.path))
		} else {
			s.logger.Warn("snapshot unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("snapshot corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return core.EmptyDocument()
	}

	s.logger.Info("snapshot restored",
		zap.String("path", s.path),
		zap.Int("users", len(doc.Users)),
		zap.Int("templates", len(doc.AnswerTemplates)))
	return doc
}
