package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// PlanItemService implements business logic for day plan items.
// Content arrives as an already-sanitized rich-text document; this service
// only checks it is present.
type PlanItemService struct {
	db   repo.TxRunner
	days repo.DayRepo
}

// NewPlanItemService constructs a PlanItemService.
func NewPlanItemService(db repo.TxRunner, days repo.DayRepo) *PlanItemService {
	return &PlanItemService{db: db, days: days}
}

// Create validates the item, verifies the day exists for the user, then persists.
func (s *PlanItemService) Create(ctx context.Context, userID, tripID uuid.UUID, item domain.DayPlanItem) (domain.DayPlanItem, error) {
	if err := validatePlanItem(item); err != nil {
		return domain.DayPlanItem{}, err
	}

	var result domain.DayPlanItem
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Days.Get(ctx, userID, tripID, item.TripDayID); err != nil {
			return err
		}
		var err error
		result, err = r.Items.Create(ctx, item)
		return err
	})
	if err != nil {
		return domain.DayPlanItem{}, fmt.Errorf("service.PlanItemService.Create: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to an existing item.
// Returns domain.ErrNotFound if the day or item does not exist for the user.
func (s *PlanItemService) Update(ctx context.Context, userID, tripID uuid.UUID, item domain.DayPlanItem) (domain.DayPlanItem, error) {
	if err := validatePlanItem(item); err != nil {
		return domain.DayPlanItem{}, err
	}

	var result domain.DayPlanItem
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Days.Get(ctx, userID, tripID, item.TripDayID); err != nil {
			return err
		}
		var err error
		result, err = r.Items.Update(ctx, item)
		return err
	})
	if err != nil {
		return domain.DayPlanItem{}, fmt.Errorf("service.PlanItemService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an item along with any travel segments anchored to it.
// Returns domain.ErrNotFound if the day or item does not exist for the user.
func (s *PlanItemService) Delete(ctx context.Context, userID, tripID, dayID, itemID uuid.UUID) error {
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Days.Get(ctx, userID, tripID, dayID); err != nil {
			return err
		}
		ref := domain.AnchorRef{Type: domain.AnchorPlanItem, ID: itemID}
		if _, err := r.Segments.DeleteByAnchor(ctx, ref); err != nil {
			return err
		}
		return r.Items.Delete(ctx, dayID, itemID)
	})
	if err != nil {
		return fmt.Errorf("service.PlanItemService.Delete: %w", err)
	}
	return nil
}

// validatePlanItem enforces rules common to Create and Update.
func validatePlanItem(item domain.DayPlanItem) error {
	if strings.TrimSpace(item.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if err := validateClockTime("start_time", item.StartTime); err != nil {
		return err
	}
	if err := validateClockTime("end_time", item.EndTime); err != nil {
		return err
	}
	if err := validateTimeOrder(item.StartTime, item.EndTime); err != nil {
		return err
	}
	if err := validateCost(item.Cost); err != nil {
		return err
	}
	return validateLocation(item.Location)
}
