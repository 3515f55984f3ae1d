package draftstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store maps human-friendly labels to provider draft ids in a JSON file.
// Access is read-then-write without locking; the tool runs one invocation at
// a time for a single local user.
type Store struct {
	path string
}

// New creates a Store backed by the given file. The file is created on the
// first Put.
func New(path string) *Store {
	return &Store{path: path}
}

// Entry is one label mapping, used for sorted listings.
type Entry struct {
	Label   string
	DraftID string
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading draft store %s: %w", s.path, err)
	}
	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid draft store %s: %w", s.path, err)
	}
	return m, nil
}

func (s *Store) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating draft store directory: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding draft store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing draft store %s: %w", s.path, err)
	}
	return nil
}

// Put records a label mapping, replacing any previous id under that label.
func (s *Store) Put(label, draftID string) error {
	if label == "" {
		return fmt.Errorf("label is required")
	}
	if draftID == "" {
		return fmt.Errorf("draft id is required")
	}
	m, err := s.load()
	if err != nil {
		return err
	}
	m[label] = draftID
	return s.save(m)
}

// Get resolves a label to a draft id.
func (s *Store) Get(label string) (string, error) {
	m, err := s.load()
	if err != nil {
		return "", err
	}
	id, ok := m[label]
	if !ok {
		return "", fmt.Errorf("no draft recorded under label %q", label)
	}
	return id, nil
}

// Delete removes a label mapping. Deleting an absent label is not an error.
func (s *Store) Delete(label string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[label]; !ok {
		return nil
	}
	delete(m, label)
	return s.save(m)
}

// DeleteByID removes every label pointing at the given draft id. Used after
// a draft has been sent and its id has become invalid.
func (s *Store) DeleteByID(draftID string) error {
	m, err := s.load()
	if err != nil {
		return err
	}
	changed := false
	for label, id := range m {
		if id == draftID {
			delete(m, label)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(m)
}

// List returns all label mappings sorted by label.
func (s *Store) List() ([]Entry, error) {
	m, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(m))
	for label, id := range m {
		entries = append(entries, Entry{Label: label, DraftID: id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Label < entries[j].Label })
	return entries, nil
}
