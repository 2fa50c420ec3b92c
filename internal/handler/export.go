package handler

import (
	"net/http"

	"github.com/tripfolio/backend/internal/domain"
)

// ExportTrip handles GET /api/trips/{tripID}/export.
// The response is a self-contained document that POST /api/trips/import
// accepts; entity IDs inside it are aliases, not live references.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}

	doc, err := s.svc.Export.Export(r.Context(), uid, tripID)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="trip-export.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// ImportTrip handles POST /api/trips/import. A fresh trip is created from
// the document; nothing in the caller's existing trips is touched.
func (s *Server) ImportTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var doc domain.TripExport
	if !decodeBody(w, r, &doc) {
		return
	}

	trip, dayCount, err := s.svc.Export.Import(r.Context(), uid, doc)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(trip, dayCount))
}
