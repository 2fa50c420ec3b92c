package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
)

// imageRequest is the body of POST .../images. The file bytes are uploaded
// to external storage out of band; file_key references the stored object.
type imageRequest struct {
	FileKey string `json:"file_key"`
	Alt     string `json:"alt,omitempty"`
}

// imageOrderRequest is the body of PUT .../images/order. Order must name
// every image of the trip exactly once.
type imageOrderRequest struct {
	Order []uuid.UUID `json:"order"`
}

// heroRequest is the body of PUT .../images/hero. A null image_id clears
// the hero.
type heroRequest struct {
	ImageID *uuid.UUID `json:"image_id"`
}

// AddImage handles POST /api/trips/{tripID}/images.
func (s *Server) AddImage(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	var req imageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	img, err := s.svc.Images.Add(r.Context(), uid, domain.TripImage{
		TripID:  tripID,
		FileKey: req.FileKey,
		Alt:     req.Alt,
	})
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, img)
}

// ListImages handles GET /api/trips/{tripID}/images.
func (s *Server) ListImages(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}

	images, err := s.svc.Images.ListByTrip(r.Context(), uid, tripID)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": images})
}

// ReorderImages handles PUT /api/trips/{tripID}/images/order.
func (s *Server) ReorderImages(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	var req imageOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.svc.Images.Reorder(r.Context(), uid, tripID, req.Order); err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetHeroImage handles PUT /api/trips/{tripID}/images/hero.
func (s *Server) SetHeroImage(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	var req heroRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.svc.Images.SetHero(r.Context(), uid, tripID, req.ImageID); err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteImage handles DELETE /api/trips/{tripID}/images/{imageID}.
func (s *Server) DeleteImage(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	imageID, ok := pathUUID(r, "imageID")
	if !ok {
		notFound(w, "image not found")
		return
	}

	if err := s.svc.Images.Delete(r.Context(), uid, tripID, imageID); err != nil {
		serviceError(w, err, "image not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
