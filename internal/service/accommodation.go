package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// AccommodationService implements business logic for a day's single stay.
type AccommodationService struct {
	db   repo.TxRunner
	days repo.DayRepo
}

// NewAccommodationService constructs an AccommodationService.
func NewAccommodationService(db repo.TxRunner, days repo.DayRepo) *AccommodationService {
	return &AccommodationService{db: db, days: days}
}

// Upsert validates the stay, verifies the day exists for the user, then
// inserts or replaces the day's accommodation.
// Returns domain.ErrNotFound if the day does not exist for that user and
// domain.ErrValidation for rule violations.
func (s *AccommodationService) Upsert(ctx context.Context, userID, tripID uuid.UUID, a domain.Accommodation) (domain.Accommodation, error) {
	if err := validateAccommodation(a); err != nil {
		return domain.Accommodation{}, err
	}

	var result domain.Accommodation
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Days.Get(ctx, userID, tripID, a.TripDayID); err != nil {
			return err
		}
		var err error
		result, err = r.Accommodations.Upsert(ctx, a)
		return err
	})
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("service.AccommodationService.Upsert: %w", err)
	}
	return result, nil
}

// Delete removes the day's accommodation along with any travel segments
// anchored to it: without the stay, those segments no longer connect two
// points of any timeline.
// Returns domain.ErrNotFound if the day has no accommodation.
func (s *AccommodationService) Delete(ctx context.Context, userID, tripID, dayID uuid.UUID) error {
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Days.Get(ctx, userID, tripID, dayID); err != nil {
			return err
		}
		acc, err := r.Accommodations.GetByDay(ctx, dayID)
		if err != nil {
			return err
		}
		ref := domain.AnchorRef{Type: domain.AnchorAccommodation, ID: acc.ID}
		if _, err := r.Segments.DeleteByAnchor(ctx, ref); err != nil {
			return err
		}
		return r.Accommodations.DeleteByDay(ctx, dayID)
	})
	if err != nil {
		return fmt.Errorf("service.AccommodationService.Delete: %w", err)
	}
	return nil
}

// validateAccommodation enforces rules common to insert and replace.
func validateAccommodation(a domain.Accommodation) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: status must be planned or booked", domain.ErrValidation)
	}
	if err := validateClockTime("check_in", a.CheckIn); err != nil {
		return err
	}
	if err := validateClockTime("check_out", a.CheckOut); err != nil {
		return err
	}
	if err := validateCost(a.Cost); err != nil {
		return err
	}
	return validateLocation(a.Location)
}
