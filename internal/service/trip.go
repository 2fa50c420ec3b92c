// Package service contains the business logic for the Tripfolio API.
// Services validate inputs, enforce domain rules, and orchestrate repo
// calls. Multi-statement writes always go through a repo.TxRunner so a
// partial failure never leaves a trip half-reconciled. No SQL lives here.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// TripService implements business logic for Trip operations, including the
// day reconciler that keeps a trip's day rows matching its date range.
type TripService struct {
	db    repo.TxRunner
	trips repo.TripRepo
	days  repo.DayRepo
}

// NewTripService constructs a TripService. db is used for the transactional
// create/update paths; trips and days serve the read-only paths.
func NewTripService(db repo.TxRunner, trips repo.TripRepo, days repo.DayRepo) *TripService {
	return &TripService{db: db, trips: trips, days: days}
}

// Create validates and persists a new trip along with one day row per
// calendar date in its range. Returns the trip and the day count.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, int, error) {
	trip.StartDate = domain.NormalizeDate(trip.StartDate)
	trip.EndDate = domain.NormalizeDate(trip.EndDate)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, 0, err
	}

	var (
		created  domain.Trip
		dayCount int
	)
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		var err error
		created, err = r.Trips.Create(ctx, trip)
		if err != nil {
			return err
		}

		dates := domain.DateRange(created.StartDate, created.EndDate)
		for i, date := range dates {
			if _, err := r.Days.Create(ctx, domain.DayCreate{Date: date, DayIndex: i + 1}, created.ID); err != nil {
				return err
			}
		}
		dayCount = len(dates)
		return nil
	})
	if err != nil {
		return domain.Trip{}, 0, fmt.Errorf("service.TripService.Create: %w", err)
	}

	return created, dayCount, nil
}

// Update validates the new trip fields and reconciles the day set onto the
// new date range in a single transaction: days whose calendar date survives
// keep their ID (and everything attached to them), days that fell out of
// range are deleted with their content, and newly covered dates get fresh
// empty days. Returns the updated trip and the final day count.
//
// Returns domain.ErrNotFound if the trip does not exist for that user and
// domain.ErrValidation for rule violations. Any repo error aborts the whole
// transaction, leaving the previous day set untouched.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, int, error) {
	trip.StartDate = domain.NormalizeDate(trip.StartDate)
	trip.EndDate = domain.NormalizeDate(trip.EndDate)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, 0, err
	}

	var (
		updated  domain.Trip
		dayCount int
	)
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		// Scoped existence check; also the point where a concurrent
		// reconciliation of the same trip serializes, since the row update
		// below locks the trip row for the rest of the transaction.
		if _, err := r.Trips.GetByID(ctx, trip.UserID, trip.ID); err != nil {
			return err
		}

		var err error
		updated, err = r.Trips.Update(ctx, trip)
		if err != nil {
			return err
		}

		existing, err := r.Days.ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}

		rec := domain.PlanDayReconciliation(existing, updated.StartDate, updated.EndDate)
		dayCount = rec.DayCount(len(existing))

		if err := r.Days.Delete(ctx, rec.Delete); err != nil {
			return err
		}
		for _, u := range rec.Update {
			if err := r.Days.Update(ctx, u); err != nil {
				return err
			}
		}
		for _, c := range rec.Create {
			if _, err := r.Days.Create(ctx, c, trip.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, 0, fmt.Errorf("service.TripService.Update: %w", err)
	}

	return updated, dayCount, nil
}

// GetByID returns a single trip, scoped to the user.
func (s *TripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListPaged returns one page of the user's trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Delete removes a trip and, via cascade, all its days and their content.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := s.trips.Delete(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces rules common to Create and Update. Dates must
// already be normalized to UTC midnight.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
