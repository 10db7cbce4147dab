// Package wrongnote keeps the deduplicated list of missed questions in a
// flat JSON file.
package wrongnote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/fincert/internal/question"
)

// Store is a file-backed wrong-note list. Every change rewrites the whole
// file; the mutex serializes writers within the process.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// New returns a store for path. The file is created on the first Add.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current list. A missing or unreadable file reads as an
// empty list; corruption is logged, not returned.
func (s *Store) Load() ([]question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Len returns the number of stored notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load())
}

// Add appends q unless a note with the same ID exists. It reports whether
// the list changed.
func (s *Store) Add(q question.Question) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.load()
	for _, n := range notes {
		if n.ID == q.ID {
			return false, nil
		}
	}
	notes = append(notes, q)
	if err := s.save(notes); err != nil {
		return false, err
	}
	s.logger.Debug("wrong note added", zap.Stringer("question", q.ID), zap.Int("total", len(notes)))
	return true, nil
}

// Remove deletes the note with id, if present.
func (s *Store) Remove(id question.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.load()
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return false, nil
	}
	if err := s.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes the backing file. Clearing an absent store is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear wrong notes: %w", err)
	}
	s.logger.Info("wrong notes cleared", zap.String("path", s.path))
	return nil
}

func (s *Store) load() []question.Question {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("wrong notes unreadable", zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var notes []question.Question
	if err := json.Unmarshal(data, &notes); err != nil {
		s.logger.Warn("wrong notes corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return notes
}

// save writes the list through a temp file so a crash never leaves a
// half-written store behind.
func (s *Store) save(notes []question.Question) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if notes == nil {
		notes = []question.Question{}
	}
	if err := enc.Encode(notes); err != nil {
		return fmt.Errorf("encode wrong notes: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create wrong notes dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".wrong_notes-*.json")
	if err != nil {
		return fmt.Errorf("write wrong notes: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write wrong notes: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write wrong notes: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write wrong notes: %w", err)
	}
	return nil
}
