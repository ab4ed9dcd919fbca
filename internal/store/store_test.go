package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mindwell/mindwell-backend/internal/models"
	"github.com/mindwell/mindwell-backend/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return s
}

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func tagsPtr(v []string) *[]string { return &v }

func TestCreateRequiresContent(t *testing.T) {
	s := newStore(t)

	_, err := s.Create(models.CreateEntryParams{})
	require.Error(t, err)
	var vErr *store.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = s.Create(models.CreateEntryParams{Content: "   "})
	require.ErrorAs(t, err, &vErr)
}

func TestCreateDefaults(t *testing.T) {
	s := newStore(t)

	entry, err := s.Create(models.CreateEntryParams{Content: "slept well, long walk"})
	require.NoError(t, err)

	require.NotEmpty(t, entry.ID)
	require.Equal(t, "slept well, long walk", entry.Content)
	require.Equal(t, store.DefaultMood, entry.Mood)
	require.Equal(t, store.DefaultMoodScore, entry.MoodScore)
	require.Equal(t, []string{}, entry.Tags)
	require.Equal(t, store.DefaultWellnessScore, entry.WellnessScore)
	require.Empty(t, entry.AIInsights)
	require.Equal(t, []string{}, entry.Recommendations)
	require.Equal(t, entry.CreatedAt, entry.UpdatedAt)
	require.False(t, entry.CreatedAt.IsZero())
}

func TestCreateRoundTrip(t *testing.T) {
	s := newStore(t)

	entry, err := s.Create(models.CreateEntryParams{
		Content:   "rough day at work",
		Mood:      "anxious",
		MoodScore: intPtr(3),
		Tags:      []string{"work", "stress"},
	})
	require.NoError(t, err)

	got, err := s.Get(entry.ID)
	require.NoError(t, err)
	require.Equal(t, "rough day at work", got.Content)
	require.Equal(t, "anxious", got.Mood)
	require.Equal(t, 3, got.MoodScore)
	require.Equal(t, []string{"work", "stress"}, got.Tags)
}

func TestListNewestFirst(t *testing.T) {
	s := newStore(t)

	first, err := s.Create(models.CreateEntryParams{Content: "first"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Create(models.CreateEntryParams{Content: "second"})
	require.NoError(t, err)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, second.ID, entries[0].ID)
	require.Equal(t, first.ID, entries[1].ID)
}

func TestGetNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.Get("nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdatePartial(t *testing.T) {
	s := newStore(t)

	entry, err := s.Create(models.CreateEntryParams{
		Content:   "a calm evening",
		Mood:      "calm",
		MoodScore: intPtr(7),
		Tags:      []string{"evening"},
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := s.Update(entry.ID, models.EntryUpdate{Mood: strPtr("content")})
	require.NoError(t, err)

	require.Equal(t, "content", updated.Mood)
	require.Equal(t, entry.Content, updated.Content)
	require.Equal(t, entry.MoodScore, updated.MoodScore)
	require.Equal(t, entry.Tags, updated.Tags)
	require.Equal(t, entry.WellnessScore, updated.WellnessScore)
	require.True(t, updated.UpdatedAt.After(entry.UpdatedAt))
	require.Equal(t, entry.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdateInsightFields(t *testing.T) {
	s := newStore(t)

	entry, err := s.Create(models.CreateEntryParams{Content: "journaling again"})
	require.NoError(t, err)

	updated, err := s.Update(entry.ID, models.EntryUpdate{
		WellnessScore:   intPtr(72),
		AIInsights:      strPtr("You seem to be doing better."),
		Recommendations: tagsPtr([]string{"try a short walk"}),
	})
	require.NoError(t, err)
	require.Equal(t, 72, updated.WellnessScore)
	require.Equal(t, "You seem to be doing better.", updated.AIInsights)
	require.Equal(t, []string{"try a short walk"}, updated.Recommendations)
}

func TestUpdateNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.Update("missing", models.EntryUpdate{Mood: strPtr("happy")})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newStore(t)

	entry, err := s.Create(models.CreateEntryParams{Content: "to be removed"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(entry.ID))

	entries, err := s.List()
	require.NoError(t, err)
	require.Empty(t, entries)

	require.ErrorIs(t, s.Delete(entry.ID), store.ErrNotFound)
}

func TestDeleteNeverPresent(t *testing.T) {
	s := newStore(t)
	require.ErrorIs(t, s.Delete("never-existed"), store.ErrNotFound)
}

func TestListByDateRange(t *testing.T) {
	s := newStore(t)

	entry, err := s.Create(models.CreateEntryParams{Content: "today"})
	require.NoError(t, err)

	now := time.Now()
	in, err := s.ListByDateRange(now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, in, 1)
	require.Equal(t, entry.ID, in[0].ID)

	out, err := s.ListByDateRange(now.AddDate(0, 0, -10), now.AddDate(0, 0, -5))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := store.Open(path)
	require.NoError(t, err)
	entry, err := s.Create(models.CreateEntryParams{Content: "durable"})
	require.NoError(t, err)

	reopened, err := store.Open(path)
	require.NoError(t, err)
	got, err := reopened.Get(entry.ID)
	require.NoError(t, err)
	require.Equal(t, "durable", got.Content)
}

func TestOpenCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	_, err := store.Open(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"entries":[]}`, string(data))
}

func TestOpenCorruptFileBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.Open(path)
	require.Error(t, err)

	_, statErr := os.Stat(path + ".corrupt")
	require.NoError(t, statErr)
}
