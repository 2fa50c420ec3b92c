package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripfolio/backend/internal/domain"
)

// tripRequest is the body of POST /api/trips and PUT /api/trips/{tripID}.
// Dates are "2006-01-02" strings, parsed by the oapi date type.
type tripRequest struct {
	Name      string             `json:"name"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

// tripResponse is the trip representation every trip endpoint returns.
// DayCount is only set on the mutating endpoints, which know the
// post-reconciliation count without another query.
type tripResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	HeroImageID *uuid.UUID         `json:"hero_image_id,omitempty"`
	DayCount    int                `json:"day_count,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, dayCount, err := s.svc.Trips.Create(r.Context(), domain.Trip{
		UserID:    uid,
		Name:      req.Name,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	})
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created, dayCount))
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.svc.Trips.ListPaged(r.Context(), uid, params)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t, 0)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"pagination": map[string]int{
			"page":  params.Page,
			"limit": params.Limit,
			"total": int(total),
		},
	})
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}

	trip, err := s.svc.Trips.GetByID(r.Context(), uid, tripID)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip, 0))
}

// UpdateTrip handles PUT /api/trips/{tripID}. Changing the date range
// reconciles the trip's days onto it: days whose calendar date survives keep
// their ID and content.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, dayCount, err := s.svc.Trips.Update(r.Context(), domain.Trip{
		ID:        tripID,
		UserID:    uid,
		Name:      req.Name,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	})
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated, dayCount))
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}

	if err := s.svc.Trips.Delete(r.Context(), uid, tripID); err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// tripToResponse converts a domain.Trip into the wire representation.
func tripToResponse(t domain.Trip, dayCount int) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Name:        t.Name,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		HeroImageID: t.HeroImageID,
		DayCount:    dayCount,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
