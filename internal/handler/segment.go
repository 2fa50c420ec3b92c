package handler

import (
	"net/http"

	"github.com/tripfolio/backend/internal/domain"
)

// segmentRequest is the body of the segment create and update endpoints.
// From and to must reference two consecutive anchors of the day's timeline;
// the service rejects anything else with a 404 (unknown anchor) or 422
// (known but not adjacent).
type segmentRequest struct {
	From            domain.AnchorRef     `json:"from"`
	To              domain.AnchorRef     `json:"to"`
	Mode            domain.TransportMode `json:"mode"`
	DurationMinutes int                  `json:"duration_minutes"`
	DistanceMeters  *int                 `json:"distance_meters,omitempty"`
	Link            string               `json:"link,omitempty"`
}

// CreateSegment handles POST /api/trips/{tripID}/days/{dayID}/segments.
func (s *Server) CreateSegment(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	dayID, ok := pathUUID(r, "dayID")
	if !ok {
		notFound(w, "day not found")
		return
	}
	var req segmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	seg, err := s.svc.Segments.Create(r.Context(), uid, tripID, domain.TravelSegment{
		TripDayID:       dayID,
		From:            req.From,
		To:              req.To,
		Mode:            req.Mode,
		DurationMinutes: req.DurationMinutes,
		DistanceMeters:  req.DistanceMeters,
		Link:            req.Link,
	})
	if err != nil {
		serviceError(w, err, "day not found")
		return
	}

	writeJSON(w, http.StatusCreated, seg)
}

// UpdateSegment handles PUT /api/trips/{tripID}/days/{dayID}/segments/{segmentID}.
// Adjacency is re-checked against the current timeline even when the anchors
// did not change, since the timeline may have.
func (s *Server) UpdateSegment(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	dayID, ok := pathUUID(r, "dayID")
	if !ok {
		notFound(w, "day not found")
		return
	}
	segmentID, ok := pathUUID(r, "segmentID")
	if !ok {
		notFound(w, "segment not found")
		return
	}
	var req segmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.svc.Segments.Update(r.Context(), uid, tripID, domain.TravelSegment{
		ID:              segmentID,
		TripDayID:       dayID,
		From:            req.From,
		To:              req.To,
		Mode:            req.Mode,
		DurationMinutes: req.DurationMinutes,
		DistanceMeters:  req.DistanceMeters,
		Link:            req.Link,
	})
	if err != nil {
		serviceError(w, err, "segment not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteSegment handles DELETE /api/trips/{tripID}/days/{dayID}/segments/{segmentID}.
func (s *Server) DeleteSegment(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	dayID, ok := pathUUID(r, "dayID")
	if !ok {
		notFound(w, "day not found")
		return
	}
	segmentID, ok := pathUUID(r, "segmentID")
	if !ok {
		notFound(w, "segment not found")
		return
	}

	if err := s.svc.Segments.Delete(r.Context(), uid, tripID, dayID, segmentID); err != nil {
		serviceError(w, err, "segment not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
