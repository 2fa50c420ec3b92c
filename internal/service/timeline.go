package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// TimelineService exposes a day's derived anchor timeline to the HTTP layer.
// Segment writes do not go through this service; they rebuild the timeline
// inside their own transaction so validation and write cannot race.
type TimelineService struct {
	repos repo.Repos
}

// NewTimelineService constructs a TimelineService over the given repos.
func NewTimelineService(repos repo.Repos) *TimelineService {
	return &TimelineService{repos: repos}
}

// Get returns the ordered anchor timeline for a day, scoped to the user.
// Returns domain.ErrNotFound if the day does not exist for that user.
func (s *TimelineService) Get(ctx context.Context, userID, tripID, dayID uuid.UUID) ([]domain.Anchor, error) {
	day, err := s.repos.Days.Get(ctx, userID, tripID, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.TimelineService.Get: %w", err)
	}

	timeline, err := buildDayTimeline(ctx, s.repos, day)
	if err != nil {
		return nil, fmt.Errorf("service.TimelineService.Get: %w", err)
	}
	return timeline, nil
}

// buildDayTimeline assembles the anchor timeline for an already-resolved
// day: the previous day's accommodation (where the traveller woke up), the
// day's plan items in timeline order, then the day's own accommodation.
// Shared by TimelineService and the segment write paths, which call it with
// transaction-bound repos.
func buildDayTimeline(ctx context.Context, r repo.Repos, day domain.TripDay) ([]domain.Anchor, error) {
	var prevAccommodation *domain.Accommodation
	prevDay, err := r.Days.Previous(ctx, day.TripID, day.DayIndex)
	switch {
	case err == nil:
		acc, err := r.Accommodations.GetByDay(ctx, prevDay.ID)
		switch {
		case err == nil:
			prevAccommodation = &acc
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	case !errors.Is(err, domain.ErrNotFound):
		// The trip's first day has no previous day; anything else is real.
		return nil, err
	}

	items, err := r.Items.ListByDay(ctx, day.ID)
	if err != nil {
		return nil, err
	}

	var accommodation *domain.Accommodation
	acc, err := r.Accommodations.GetByDay(ctx, day.ID)
	switch {
	case err == nil:
		accommodation = &acc
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	return domain.BuildTimeline(prevAccommodation, items, accommodation), nil
}
