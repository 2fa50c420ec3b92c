package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripDay is one calendar day of a trip. For a given trip the set of day
// dates is exactly the inclusive range [trip.StartDate, trip.EndDate], with
// DayIndex running 1..N in date order. A day's ID is stable for as long as
// its calendar date stays inside the trip's range; that stability is what
// keeps accommodation, plan items and segments attached across date edits.
type TripDay struct {
	ID       uuid.UUID `json:"id"`
	TripID   uuid.UUID `json:"trip_id"`
	Date     time.Time `json:"date"` // UTC midnight
	DayIndex int       `json:"day_index"`
}

// NormalizeDate truncates t to UTC midnight. All date comparisons in the
// reconciler go through this first; comparing raw timestamps would make
// time-of-day drift look like a different calendar day.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey returns the ISO calendar-date string ("2006-01-02") used as the
// map key when matching existing days against a new date range.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DateRange returns every calendar date in [start, end] inclusive,
// normalized to UTC midnight. start must not be after end (validated by the
// caller); a start == end range yields exactly one date.
func DateRange(start, end time.Time) []time.Time {
	start = NormalizeDate(start)
	end = NormalizeDate(end)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DayUpdate renumbers or re-dates an existing day in place, keeping its ID.
type DayUpdate struct {
	ID       uuid.UUID
	Date     time.Time
	DayIndex int
}

// DayCreate is a new day to insert for a date the trip did not cover before.
type DayCreate struct {
	Date     time.Time
	DayIndex int
}

// DayReconciliation is the change set that moves an existing day list onto a
// new date range. Applying Update + Create + Delete (in one transaction)
// restores the invariant that days cover exactly the range with dense
// 1-based indexes, while preserving the ID of every day whose calendar date
// survives the change.
type DayReconciliation struct {
	Update []DayUpdate
	Create []DayCreate
	Delete []uuid.UUID
}

// DayCount returns the number of days the trip has after the change set is
// applied.
func (r DayReconciliation) DayCount(existing int) int {
	return existing + len(r.Create) - len(r.Delete)
}

// Empty reports whether applying the reconciliation would be a no-op.
// Reconciling a trip onto the range it already covers yields an empty set.
func (r DayReconciliation) Empty() bool {
	return len(r.Update) == 0 && len(r.Create) == 0 && len(r.Delete) == 0
}

// PlanDayReconciliation computes the change set for moving existing onto the
// inclusive range [newStart, newEnd]. Matching is by calendar date, not by
// index: shifting a five-day trip forward one day keeps days 2-5 (with new
// indexes) and only drops day 1 and adds a new final day.
//
// Days whose stored date and index already match the target are left out of
// Update, so reconciling onto an unchanged range produces an empty set.
func PlanDayReconciliation(existing []TripDay, newStart, newEnd time.Time) DayReconciliation {
	byDate := make(map[string]TripDay, len(existing))
	for _, d := range existing {
		byDate[DateKey(d.Date)] = d
	}

	var rec DayReconciliation
	target := make(map[string]struct{})

	for i, date := range DateRange(newStart, newEnd) {
		idx := i + 1
		key := DateKey(date)
		target[key] = struct{}{}

		day, ok := byDate[key]
		if !ok {
			rec.Create = append(rec.Create, DayCreate{Date: date, DayIndex: idx})
			continue
		}
		if day.DayIndex != idx || !day.Date.Equal(date) {
			rec.Update = append(rec.Update, DayUpdate{ID: day.ID, Date: date, DayIndex: idx})
		}
	}

	for _, d := range existing {
		if _, ok := target[DateKey(d.Date)]; !ok {
			rec.Delete = append(rec.Delete, d.ID)
		}
	}

	return rec
}

// DayDetail is the read model for the day listing endpoint: a day plus
// everything attached to it. Items are in timeline order.
type DayDetail struct {
	TripDay
	Accommodation *Accommodation  `json:"accommodation,omitempty"`
	Items         []DayPlanItem   `json:"items"`
	Segments      []TravelSegment `json:"segments"`
}
