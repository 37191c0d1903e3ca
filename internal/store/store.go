// Package store owns the task collection and its persisted form: a flat
// JSON array rewritten in full after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound reports an id that matches no task in the collection.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyTitle reports a title that is empty after trimming.
	ErrEmptyTitle = errors.New("task title cannot be empty")
)

// Store holds the in-memory task collection and is the sole writer of the
// backing file. Not safe for concurrent use; the app is single-threaded by
// design and exactly one process is assumed to hold the file at a time.
type Store struct {
	path  string
	tasks []Task
}

// Open loads the task file at path, creating the parent directory if
// needed. A missing file or one whose content does not parse yields an
// empty collection, never an error: corrupt state is recovered from, not
// surfaced as fatal.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, nil
	}
	if jsonErr := json.Unmarshal(data, &s.tasks); jsonErr != nil {
		s.tasks = nil
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Tasks returns a snapshot of the collection in insertion order. Callers
// may not mutate the returned slice's tasks to change store state.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Save rewrites the backing file with the full collection. Mutating
// operations call it automatically; callers only need it to force a
// rewrite of an untouched collection.
func (s *Store) Save() error {
	return s.save()
}

// save rewrites the backing file with the full collection. The write goes
// through a temp file in the same directory and a rename, so a crash
// mid-write leaves the previous content intact.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

// DefaultPath returns ~/.config/taskdeck/tasks.json (per-OS config dir).
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "taskdeck", "tasks.json"), nil
}
