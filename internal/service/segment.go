package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// RouteEstimator estimates travel between two coordinates. The OSRM-backed
// implementation lives outside this module; a nil estimator simply means
// segment durations must be supplied by the caller.
type RouteEstimator interface {
	Estimate(ctx context.Context, from, to domain.Location, mode domain.TransportMode) (RouteEstimate, error)
}

// RouteEstimate is a routing engine's answer for one segment.
type RouteEstimate struct {
	DurationMinutes int
	DistanceMeters  int
}

// SegmentService implements the adjacency-gated travel segment writes.
// Create and Update rebuild the day's timeline inside the same transaction
// as the write, so a plan item deleted between validation and commit cannot
// produce a segment that skips an anchor.
type SegmentService struct {
	db        repo.TxRunner
	estimator RouteEstimator // may be nil
}

// NewSegmentService constructs a SegmentService. estimator may be nil.
func NewSegmentService(db repo.TxRunner, estimator RouteEstimator) *SegmentService {
	return &SegmentService{db: db, estimator: estimator}
}

// Create validates the segment against the day's current timeline and
// persists it. The distinct failure modes matter to callers:
//   - domain.ErrNotFound: the day does not exist for this user;
//   - domain.ErrAnchorMissing: an endpoint is not in the timeline;
//   - domain.ErrNotAdjacent: both endpoints exist but are not consecutive;
//   - domain.ErrValidation: bad mode or duration.
func (s *SegmentService) Create(ctx context.Context, userID, tripID uuid.UUID, seg domain.TravelSegment) (domain.TravelSegment, error) {
	if err := validateSegment(seg); err != nil {
		return domain.TravelSegment{}, err
	}

	var result domain.TravelSegment
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		day, err := r.Days.Get(ctx, userID, tripID, seg.TripDayID)
		if err != nil {
			return err
		}

		timeline, err := buildDayTimeline(ctx, r, day)
		if err != nil {
			return err
		}
		if err := ensureAdjacent(seg.From, seg.To, timeline); err != nil {
			return err
		}

		seg, err = s.fillEstimate(ctx, seg, timeline)
		if err != nil {
			return err
		}

		result, err = r.Segments.Create(ctx, seg)
		return err
	})
	if err != nil {
		return domain.TravelSegment{}, fmt.Errorf("service.SegmentService.Create: %w", err)
	}
	return result, nil
}

// Update re-validates adjacency for the (possibly changed) anchors and
// persists the new segment fields. Same failure modes as Create.
func (s *SegmentService) Update(ctx context.Context, userID, tripID uuid.UUID, seg domain.TravelSegment) (domain.TravelSegment, error) {
	if err := validateSegment(seg); err != nil {
		return domain.TravelSegment{}, err
	}

	var result domain.TravelSegment
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		day, err := r.Days.Get(ctx, userID, tripID, seg.TripDayID)
		if err != nil {
			return err
		}
		if _, err := r.Segments.GetByID(ctx, seg.TripDayID, seg.ID); err != nil {
			return err
		}

		timeline, err := buildDayTimeline(ctx, r, day)
		if err != nil {
			return err
		}
		if err := ensureAdjacent(seg.From, seg.To, timeline); err != nil {
			return err
		}

		result, err = r.Segments.Update(ctx, seg)
		return err
	})
	if err != nil {
		return domain.TravelSegment{}, fmt.Errorf("service.SegmentService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a segment.
// Returns domain.ErrNotFound if the day or segment does not exist for the user.
func (s *SegmentService) Delete(ctx context.Context, userID, tripID, dayID, segmentID uuid.UUID) error {
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Days.Get(ctx, userID, tripID, dayID); err != nil {
			return err
		}
		return r.Segments.Delete(ctx, dayID, segmentID)
	})
	if err != nil {
		return fmt.Errorf("service.SegmentService.Delete: %w", err)
	}
	return nil
}

// ensureAdjacent maps the pure adjacency check onto the error taxonomy.
func ensureAdjacent(from, to domain.AnchorRef, timeline []domain.Anchor) error {
	switch domain.CheckAdjacent(from, to, timeline) {
	case domain.AdjacencyOK:
		return nil
	case domain.AdjacencyMissing:
		return domain.ErrAnchorMissing
	default:
		return domain.ErrNotAdjacent
	}
}

// fillEstimate asks the routing engine for duration/distance when the caller
// supplied no duration and both anchors carry coordinates. Estimator errors
// degrade to a validation error rather than a server failure: the caller can
// always retry with an explicit duration.
func (s *SegmentService) fillEstimate(ctx context.Context, seg domain.TravelSegment, timeline []domain.Anchor) (domain.TravelSegment, error) {
	if seg.DurationMinutes > 0 || s.estimator == nil {
		return seg, nil
	}

	fromLoc := anchorLocation(seg.From, timeline)
	toLoc := anchorLocation(seg.To, timeline)
	if fromLoc == nil || toLoc == nil {
		return seg, nil
	}

	est, err := s.estimator.Estimate(ctx, *fromLoc, *toLoc, seg.Mode)
	if err != nil {
		return domain.TravelSegment{}, fmt.Errorf("%w: duration is required (route estimation failed)", domain.ErrValidation)
	}
	seg.DurationMinutes = est.DurationMinutes
	if seg.DistanceMeters == nil {
		d := est.DistanceMeters
		seg.DistanceMeters = &d
	}
	return seg, nil
}

func anchorLocation(ref domain.AnchorRef, timeline []domain.Anchor) *domain.Location {
	for _, a := range timeline {
		if a.ID == ref.ID && a.Type == ref.Type {
			return a.Location
		}
	}
	return nil
}

// validateSegment enforces rules common to Create and Update.
func validateSegment(seg domain.TravelSegment) error {
	if !seg.From.Type.Valid() || !seg.To.Type.Valid() {
		return fmt.Errorf("%w: anchor type must be accommodation or day_plan_item", domain.ErrValidation)
	}
	if !seg.Mode.Valid() {
		return fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, seg.Mode)
	}
	if seg.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", domain.ErrValidation)
	}
	if seg.DistanceMeters != nil && *seg.DistanceMeters < 0 {
		return fmt.Errorf("%w: distance must not be negative", domain.ErrValidation)
	}
	return nil
}
