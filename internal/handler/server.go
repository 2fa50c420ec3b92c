// Package handler implements the HTTP handlers for the Tripfolio API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies. Routing is plain chi; request and
// response DTOs live next to the handlers that use them.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, int, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, int, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// DayServicer serves the day read models.
type DayServicer interface {
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.DayDetail, error)
}

// TimelineServicer serves a day's derived anchor timeline.
type TimelineServicer interface {
	Get(ctx context.Context, userID, tripID, dayID uuid.UUID) ([]domain.Anchor, error)
}

// AccommodationServicer defines the operations for a day's single stay.
type AccommodationServicer interface {
	Upsert(ctx context.Context, userID, tripID uuid.UUID, a domain.Accommodation) (domain.Accommodation, error)
	Delete(ctx context.Context, userID, tripID, dayID uuid.UUID) error
}

// PlanItemServicer defines the operations for day plan items.
type PlanItemServicer interface {
	Create(ctx context.Context, userID, tripID uuid.UUID, item domain.DayPlanItem) (domain.DayPlanItem, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, item domain.DayPlanItem) (domain.DayPlanItem, error)
	Delete(ctx context.Context, userID, tripID, dayID, itemID uuid.UUID) error
}

// SegmentServicer defines the operations for travel segments.
type SegmentServicer interface {
	Create(ctx context.Context, userID, tripID uuid.UUID, seg domain.TravelSegment) (domain.TravelSegment, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, seg domain.TravelSegment) (domain.TravelSegment, error)
	Delete(ctx context.Context, userID, tripID, dayID, segmentID uuid.UUID) error
}

// ImageServicer defines the trip gallery operations.
type ImageServicer interface {
	Add(ctx context.Context, userID uuid.UUID, img domain.TripImage) (domain.TripImage, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TripImage, error)
	Reorder(ctx context.Context, userID, tripID uuid.UUID, orderedIDs []uuid.UUID) error
	SetHero(ctx context.Context, userID, tripID uuid.UUID, imageID *uuid.UUID) error
	Delete(ctx context.Context, userID, tripID, imageID uuid.UUID) error
}

// ExportServicer defines the trip export/import operations.
type ExportServicer interface {
	Export(ctx context.Context, userID, tripID uuid.UUID) (domain.TripExport, error)
	Import(ctx context.Context, userID uuid.UUID, doc domain.TripExport) (domain.Trip, int, error)
}

// Services bundles everything a full Server needs. Handler tests fill in
// only the field under test.
type Services struct {
	Trips          TripServicer
	Days           DayServicer
	Timeline       TimelineServicer
	Accommodations AccommodationServicer
	Items          PlanItemServicer
	Segments       SegmentServicer
	Images         ImageServicer
	Export         ExportServicer
}

// Server holds the handler dependencies. Methods are in domain-specific
// files but all operate on this struct.
type Server struct {
	svc Services
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{svc: svc}
}

// Routes builds the chi router for the API. Everything under /api requires
// authentication via the given middleware; /healthz and /openapi.yaml stay
// public for probes and documentation tooling.
func (s *Server) Routes(auth func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(auth)

		api.Route("/trips", func(trips chi.Router) {
			trips.Get("/", s.ListTrips)
			trips.Post("/", s.CreateTrip)
			trips.Post("/import", s.ImportTrip)

			trips.Route("/{tripID}", func(trip chi.Router) {
				trip.Get("/", s.GetTrip)
				trip.Put("/", s.UpdateTrip)
				trip.Delete("/", s.DeleteTrip)
				trip.Get("/export", s.ExportTrip)
				trip.Get("/days", s.ListDays)

				trip.Route("/days/{dayID}", func(day chi.Router) {
					day.Get("/timeline", s.GetTimeline)
					day.Put("/accommodation", s.PutAccommodation)
					day.Delete("/accommodation", s.DeleteAccommodation)
					day.Post("/items", s.CreateItem)
					day.Put("/items/{itemID}", s.UpdateItem)
					day.Delete("/items/{itemID}", s.DeleteItem)
					day.Post("/segments", s.CreateSegment)
					day.Put("/segments/{segmentID}", s.UpdateSegment)
					day.Delete("/segments/{segmentID}", s.DeleteSegment)
				})

				trip.Route("/images", func(images chi.Router) {
					images.Get("/", s.ListImages)
					images.Post("/", s.AddImage)
					images.Put("/order", s.ReorderImages)
					images.Put("/hero", s.SetHeroImage)
					images.Delete("/{imageID}", s.DeleteImage)
				})
			})
		})
	})

	return r
}
