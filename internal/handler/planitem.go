package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
)

// planItemRequest is the body of the item create and update endpoints.
// Times are zero-padded "HH:mm" strings.
type planItemRequest struct {
	Content   string           `json:"content"`
	StartTime *string          `json:"start_time,omitempty"`
	EndTime   *string          `json:"end_time,omitempty"`
	Location  *domain.Location `json:"location,omitempty"`
	Link      string           `json:"link,omitempty"`
	Cost      *float64         `json:"cost,omitempty"`
}

// CreateItem handles POST /api/trips/{tripID}/days/{dayID}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
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
	var req planItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := s.svc.Items.Create(r.Context(), uid, tripID, planItemFromRequest(req, dayID))
	if err != nil {
		serviceError(w, err, "day not found")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/trips/{tripID}/days/{dayID}/items/{itemID}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
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
	itemID, ok := pathUUID(r, "itemID")
	if !ok {
		notFound(w, "item not found")
		return
	}
	var req planItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item := planItemFromRequest(req, dayID)
	item.ID = itemID
	updated, err := s.svc.Items.Update(r.Context(), uid, tripID, item)
	if err != nil {
		serviceError(w, err, "item not found")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteItem handles DELETE /api/trips/{tripID}/days/{dayID}/items/{itemID}.
// Travel segments anchored to the item are removed with it.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
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
	itemID, ok := pathUUID(r, "itemID")
	if !ok {
		notFound(w, "item not found")
		return
	}

	if err := s.svc.Items.Delete(r.Context(), uid, tripID, dayID, itemID); err != nil {
		serviceError(w, err, "item not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func planItemFromRequest(req planItemRequest, dayID uuid.UUID) domain.DayPlanItem {
	return domain.DayPlanItem{
		TripDayID: dayID,
		Content:   req.Content,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Link:      req.Link,
		Cost:      req.Cost,
	}
}
