package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mindwell/mindwell-backend/internal/models"
)

// DeleteEntryResponse confirms a successful delete.
type DeleteEntryResponse struct {
	Message string `json:"message"`
}

// ListEntries returns every journal entry, newest first.
func ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := entryStore.List()
	if err != nil {
		writeStoreError(w, err, "Error fetching entries")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetEntry returns one entry by id.
func GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := entryStore.Get(id)
	if err != nil {
		writeStoreError(w, err, "Error fetching entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// CreateEntry creates a new journal entry. Content is required.
func CreateEntry(w http.ResponseWriter, r *http.Request) {
	var params models.CreateEntryParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := entryStore.Create(params)
	if err != nil {
		writeStoreError(w, err, "Error creating entry")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateEntry applies a partial update to one entry.
func UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.EntryUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := entryStore.Update(id, upd)
	if err != nil {
		writeStoreError(w, err, "Error updating entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry removes one entry.
func DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := entryStore.Delete(id); err != nil {
		writeStoreError(w, err, "Error deleting entry")
		return
	}
	writeJSON(w, http.StatusOK, DeleteEntryResponse{Message: "Entry deleted successfully"})
}

// GetEntriesByDateRange returns entries created within the closed range of
// whole calendar days given by the start and end path parameters.
func GetEntriesByDateRange(w http.ResponseWriter, r *http.Request) {
	start, ok := parseRangeBound(chi.URLParam(r, "start"), false)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid start date", nil)
		return
	}
	end, ok := parseRangeBound(chi.URLParam(r, "end"), true)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid end date", nil)
		return
	}

	entries, err := entryStore.ListByDateRange(start, end)
	if err != nil {
		writeStoreError(w, err, "Error fetching entries by date range")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// parseRangeBound accepts a calendar date or an RFC 3339 timestamp. A bare
// date used as the end bound is normalized to the last instant of that day
// so the range stays inclusive.
func parseRangeBound(s string, isEnd bool) (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		if isEnd {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
