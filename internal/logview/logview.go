// Package logview prepares the interaction log for display: topic filtering,
// urgency flagging, newest-first ordering and clamped pagination. It never
// mutates the store's records.
package logview

import (
	"sort"
	"strings"

	"coteach/internal/classify"
	"coteach/internal/store"
)

// DefaultPageSize matches the original dashboard's recent-log window.
const DefaultPageSize = 5

// Entry is one displayable log row. Urgent is derived at display time and is
// never persisted.
type Entry struct {
	store.Interaction
	Urgent bool
}

// DefaultUrgencyKeywords returns the built-in urgency trigger list.
func DefaultUrgencyKeywords() []string {
	return []string{"urgent", "exam", "confused", "hard", "fail", "help"}
}

// IsUrgent reports whether the text contains any urgency keyword,
// case-insensitively.
func IsUrgent(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Page filters records by topic, flags urgency, sorts newest-first and
// returns the requested page along with the total page count.
//
// The filter accepts a topic name or the "All" sentinel; unknown values are
// treated as "All". A page index outside [0, totalPages-1] is clamped, so a
// stale cursor after a filter change lands on a valid page instead of
// erroring. totalPages is at least 1 even for an empty result.
func Page(records []store.Interaction, filter string, urgentKeywords []string, pageIndex, pageSize int) ([]Entry, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	topic, filtered := classify.ParseTopic(filter)

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		if filtered && rec.Topic != topic {
			continue
		}
		entries = append(entries, Entry{
			Interaction: rec,
			Urgent:      IsUrgent(rec.Text, urgentKeywords),
		})
	}

	// Newest first; the reversal happens on the filtered set.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})

	totalPages := (len(entries) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex >= totalPages {
		pageIndex = totalPages - 1
	}

	start := pageIndex * pageSize
	if start >= len(entries) {
		return []Entry{}, totalPages
	}
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end], totalPages
}
