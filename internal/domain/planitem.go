package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DayPlanItem is one activity on a trip day. Content is a rich-text document
// validated and sanitized upstream; this package treats it as an opaque
// string. StartTime/EndTime are zero-padded "HH:mm" strings; the fixed
// width is what makes lexicographic comparison equivalent to chronological
// comparison in SortPlanItems.
type DayPlanItem struct {
	ID        uuid.UUID `json:"id"`
	TripDayID uuid.UUID `json:"trip_day_id"`
	Content   string    `json:"content"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`
	Location  *Location `json:"location,omitempty"`
	Link      string    `json:"link,omitempty"`
	Cost      *float64  `json:"cost,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortPlanItems orders items the way they appear in the day's timeline:
// by start time (timed items before untimed ones), then by creation time,
// then by ID. The ID tiebreak makes the order total: no two items ever
// compare equal, so the sort is deterministic across calls.
func SortPlanItems(items []DayPlanItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		switch {
		case a.StartTime != nil && b.StartTime == nil:
			return true
		case a.StartTime == nil && b.StartTime != nil:
			return false
		case a.StartTime != nil && b.StartTime != nil && *a.StartTime != *b.StartTime:
			return *a.StartTime < *b.StartTime
		}

		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}
