package domain

import "github.com/google/uuid"

// AnchorType discriminates the two kinds of timeline anchors.
type AnchorType string

const (
	AnchorAccommodation AnchorType = "accommodation"
	AnchorPlanItem      AnchorType = "day_plan_item"
)

// Valid reports whether t is one of the known anchor types.
func (t AnchorType) Valid() bool {
	return t == AnchorAccommodation || t == AnchorPlanItem
}

// AnchorRef identifies an anchor by type and ID. Travel segments store two
// of these; adjacency checks match on both fields.
type AnchorRef struct {
	Type AnchorType `json:"type"`
	ID   uuid.UUID  `json:"id"`
}

// Anchor is one entry of a day's timeline: a fixed point the traveller
// moves between. Label carries a human-readable name for UI rendering and
// Location (when present) allows route estimation between anchors.
type Anchor struct {
	Type     AnchorType `json:"type"`
	ID       uuid.UUID  `json:"id"`
	Label    string     `json:"label"`
	Location *Location  `json:"location,omitempty"`
}

// Ref returns the AnchorRef identifying a.
func (a Anchor) Ref() AnchorRef {
	return AnchorRef{Type: a.Type, ID: a.ID}
}

// BuildTimeline assembles the ordered anchor list for a single day:
//
//  1. the previous day's accommodation, if any (where the traveller woke up);
//  2. the day's plan items sorted by SortPlanItems;
//  3. the day's own accommodation, if any.
//
// items is sorted in place. The result may be empty.
func BuildTimeline(prevAccommodation *Accommodation, items []DayPlanItem, accommodation *Accommodation) []Anchor {
	timeline := make([]Anchor, 0, len(items)+2)

	if prevAccommodation != nil {
		timeline = append(timeline, accommodationAnchor(*prevAccommodation))
	}

	SortPlanItems(items)
	for _, it := range items {
		timeline = append(timeline, Anchor{
			Type:     AnchorPlanItem,
			ID:       it.ID,
			Label:    it.Content,
			Location: it.Location,
		})
	}

	if accommodation != nil {
		timeline = append(timeline, accommodationAnchor(*accommodation))
	}

	return timeline
}

func accommodationAnchor(a Accommodation) Anchor {
	return Anchor{
		Type:     AnchorAccommodation,
		ID:       a.ID,
		Label:    a.Name,
		Location: a.Location,
	}
}

// Adjacency is the outcome of checking a candidate segment against a timeline.
type Adjacency int

const (
	// AdjacencyOK: to immediately follows from in the timeline.
	AdjacencyOK Adjacency = iota
	// AdjacencyMissing: at least one of the anchors is not in the timeline.
	AdjacencyMissing
	// AdjacencyNotAdjacent: both anchors exist but are not consecutive
	// (including to before from, and from == to).
	AdjacencyNotAdjacent
)

// CheckAdjacent reports whether to directly follows from in timeline.
// An empty timeline always yields AdjacencyMissing.
func CheckAdjacent(from, to AnchorRef, timeline []Anchor) Adjacency {
	fromIdx := anchorIndex(from, timeline)
	toIdx := anchorIndex(to, timeline)
	if fromIdx < 0 || toIdx < 0 {
		return AdjacencyMissing
	}
	if toIdx == fromIdx+1 {
		return AdjacencyOK
	}
	return AdjacencyNotAdjacent
}

func anchorIndex(ref AnchorRef, timeline []Anchor) int {
	for i, a := range timeline {
		if a.ID == ref.ID && a.Type == ref.Type {
			return i
		}
	}
	return -1
}
