package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// DayService serves the day read models. Day lifecycle (create/renumber/
// delete) belongs to the reconciler in TripService; nothing here mutates.
type DayService struct {
	repos repo.Repos
}

// NewDayService constructs a DayService over the given repos.
func NewDayService(repos repo.Repos) *DayService {
	return &DayService{repos: repos}
}

// ListByTrip returns all days of a trip in index order, each with its
// accommodation, plan items (timeline order), and travel segments.
// Returns domain.ErrNotFound if the trip does not exist for that user.
func (s *DayService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.DayDetail, error) {
	if _, err := s.repos.Trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTrip: %w", err)
	}

	days, err := s.repos.Days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTrip: %w", err)
	}

	details := make([]domain.DayDetail, 0, len(days))
	for _, day := range days {
		detail, err := s.dayDetail(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("service.DayService.ListByTrip: %w", err)
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *DayService) dayDetail(ctx context.Context, day domain.TripDay) (domain.DayDetail, error) {
	detail := domain.DayDetail{TripDay: day, Items: []domain.DayPlanItem{}, Segments: []domain.TravelSegment{}}

	acc, err := s.repos.Accommodations.GetByDay(ctx, day.ID)
	switch {
	case err == nil:
		detail.Accommodation = &acc
	case !errors.Is(err, domain.ErrNotFound):
		return domain.DayDetail{}, err
	}

	items, err := s.repos.Items.ListByDay(ctx, day.ID)
	if err != nil {
		return domain.DayDetail{}, err
	}
	if items != nil {
		detail.Items = items
	}

	segs, err := s.repos.Segments.ListByDay(ctx, day.ID)
	if err != nil {
		return domain.DayDetail{}, err
	}
	if segs != nil {
		detail.Segments = segs
	}

	return detail, nil
}
