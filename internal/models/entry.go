package models

import "time"

// JournalEntry is one journal submission with its mood labels and the
// wellness fields filled in later by the AI analysis.
type JournalEntry struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	Mood            string    `json:"mood"`
	MoodScore       int       `json:"moodScore"`
	Tags            []string  `json:"tags"`
	WellnessScore   int       `json:"wellnessScore"`
	AIInsights      string    `json:"aiInsights"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateEntryParams carries the client-supplied fields for a new entry.
// Content is required; everything else falls back to defaults.
type CreateEntryParams struct {
	Content   string   `json:"content"`
	Mood      string   `json:"mood"`
	MoodScore *int     `json:"moodScore"`
	Tags      []string `json:"tags"`
}

// EntryUpdate is a partial update: only non-nil fields are applied.
type EntryUpdate struct {
	Content         *string   `json:"content"`
	Mood            *string   `json:"mood"`
	MoodScore       *int      `json:"moodScore"`
	Tags            *[]string `json:"tags"`
	WellnessScore   *int      `json:"wellnessScore"`
	AIInsights      *string   `json:"aiInsights"`
	Recommendations *[]string `json:"recommendations"`
}
