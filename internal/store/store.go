package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/mindwell-backend/internal/models"
)

// Defaults applied when a create request omits optional fields.
const (
	DefaultMood          = "neutral"
	DefaultMoodScore     = 5
	DefaultWellnessScore = 50
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("entry not found")

// ValidationError reports invalid client input (maps to HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// document is the on-disk layout: a single JSON object holding every entry.
type document struct {
	Entries []models.JournalEntry `json:"entries"`
}

// Store is a file-backed journal entry collection. Every mutation reads the
// whole file, applies the change in memory, and writes the whole file back
// under a single-writer lock, with an atomic temp-then-rename replace so a
// crash mid-write never leaves a truncated file.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open prepares a store backed by the given JSON file, creating an empty
// document if the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(document{Entries: []models.JournalEntry{}}); err != nil {
			return nil, err
		}
		return s, nil
	}
	// Validate the existing file up front so a corrupt store fails at startup.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return document{Entries: []models.JournalEntry{}}, nil
	}
	if err != nil {
		return document{}, fmt.Errorf("store: reading %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		// Back up the corrupt file so it can be inspected, then abort.
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		return document{}, fmt.Errorf("store: corrupt JSON in %s (backed up to %s): %w", s.path, backupPath, err)
	}
	if doc.Entries == nil {
		doc.Entries = []models.JournalEntry{}
	}
	return doc, nil
}

func (s *Store) save(doc document) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("store: creating directories: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshalling JSON: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("store: writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("store: renaming temp file: %w", err)
	}
	return nil
}

// Create validates the params, assigns an id and timestamps, and persists the
// new entry before returning it.
func (s *Store) Create(p models.CreateEntryParams) (models.JournalEntry, error) {
	if strings.TrimSpace(p.Content) == "" {
		return models.JournalEntry{}, &ValidationError{Msg: "content is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.JournalEntry{}, err
	}

	mood := p.Mood
	if mood == "" {
		mood = DefaultMood
	}
	moodScore := DefaultMoodScore
	if p.MoodScore != nil {
		moodScore = *p.MoodScore
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	entry := models.JournalEntry{
		ID:              uuid.NewString(),
		Content:         p.Content,
		Mood:            mood,
		MoodScore:       moodScore,
		Tags:            tags,
		WellnessScore:   DefaultWellnessScore,
		AIInsights:      "",
		Recommendations: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	doc.Entries = append(doc.Entries, entry)
	if err := s.save(doc); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// List returns every entry, most recent first.
func (s *Store) List() ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := doc.Entries
	sortNewestFirst(entries)
	return entries, nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *Store) Get(id string) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.JournalEntry{}, err
	}
	for _, e := range doc.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, ErrNotFound
}

// Update applies only the fields set in upd, refreshes updatedAt, and
// persists the collection. Returns ErrNotFound for an unknown id.
func (s *Store) Update(id string, upd models.EntryUpdate) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.JournalEntry{}, err
	}

	idx := -1
	for i, e := range doc.Entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.JournalEntry{}, ErrNotFound
	}

	entry := doc.Entries[idx]
	if upd.Content != nil {
		entry.Content = *upd.Content
	}
	if upd.Mood != nil {
		entry.Mood = *upd.Mood
	}
	if upd.MoodScore != nil {
		entry.MoodScore = *upd.MoodScore
	}
	if upd.Tags != nil {
		entry.Tags = *upd.Tags
	}
	if upd.WellnessScore != nil {
		entry.WellnessScore = *upd.WellnessScore
	}
	if upd.AIInsights != nil {
		entry.AIInsights = *upd.AIInsights
	}
	if upd.Recommendations != nil {
		entry.Recommendations = *upd.Recommendations
	}
	entry.UpdatedAt = time.Now()

	doc.Entries[idx] = entry
	if err := s.save(doc); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Delete removes the entry with the given id. An id that was never present
// is reported as ErrNotFound by comparing the collection size before and
// after the filter.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	before := len(doc.Entries)
	kept := doc.Entries[:0]
	for _, e := range doc.Entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	doc.Entries = kept
	if len(doc.Entries) == before {
		return ErrNotFound
	}
	return s.save(doc)
}

// ListByDateRange returns entries whose createdAt falls within the closed
// range [start, end], most recent first.
func (s *Store) ListByDateRange(start, end time.Time) ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	matched := make([]models.JournalEntry, 0)
	for _, e := range doc.Entries {
		if e.CreatedAt.Before(start) || e.CreatedAt.After(end) {
			continue
		}
		matched = append(matched, e)
	}
	sortNewestFirst(matched)
	return matched, nil
}

func sortNewestFirst(entries []models.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
