package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripfolio/backend/internal/domain"
)

// SegmentRepo defines the persistence operations for TravelSegments.
// The adjacency rule is enforced by the service layer inside the same
// transaction as these writes; the repo itself stores what it is given.
type SegmentRepo interface {
	// Create inserts a new segment and returns the persisted record.
	Create(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error)

	// GetByID retrieves a single segment by ID, scoped to the given dayID.
	// Returns domain.ErrNotFound if no such segment exists under that day.
	GetByID(ctx context.Context, dayID, segmentID uuid.UUID) (domain.TravelSegment, error)

	// ListByDay returns all segments of a day ordered by creation time.
	ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.TravelSegment, error)

	// Update overwrites the mutable fields of a segment, scoped to its dayID.
	// Returns domain.ErrNotFound if no such segment exists under that day.
	Update(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error)

	// Delete removes a segment by ID, scoped to the given dayID.
	// Returns domain.ErrNotFound if no such segment exists under that day.
	Delete(ctx context.Context, dayID, segmentID uuid.UUID) error

	// DeleteByAnchor removes every segment that references ref as either
	// endpoint, across all days. Used when an anchor is deleted: a segment
	// to a gone anchor no longer connects two timeline entries. Returns the
	// number of segments removed.
	DeleteByAnchor(ctx context.Context, ref domain.AnchorRef) (int64, error)
}

// pgSegmentRepo is the Postgres implementation of SegmentRepo.
type pgSegmentRepo struct {
	db db
}

// NewSegmentRepo constructs a SegmentRepo backed by the provided db connection.
func NewSegmentRepo(db db) SegmentRepo {
	return &pgSegmentRepo{db: db}
}

const segmentColumns = `id, trip_day_id, from_type, from_id, to_type, to_id, mode, duration_minutes, distance_meters, link, created_at, updated_at`

func (r *pgSegmentRepo) Create(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error) {
	const q = `
		INSERT INTO travel_segments (trip_day_id, from_type, from_id, to_type, to_id, mode, duration_minutes, distance_meters, link)
		VALUES (@trip_day_id, @from_type, @from_id, @to_type, @to_id, @mode, @duration_minutes, @distance_meters, @link)
		RETURNING ` + segmentColumns

	result, err := scanSegment(r.db.QueryRow(ctx, q, segmentArgs(seg)))
	if err != nil {
		return domain.TravelSegment{}, fmt.Errorf("repo.SegmentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgSegmentRepo) GetByID(ctx context.Context, dayID, segmentID uuid.UUID) (domain.TravelSegment, error) {
	const q = `SELECT ` + segmentColumns + ` FROM travel_segments WHERE id = @id AND trip_day_id = @trip_day_id`

	result, err := scanSegment(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": segmentID, "trip_day_id": dayID}))
	if err != nil {
		return domain.TravelSegment{}, fmt.Errorf("repo.SegmentRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgSegmentRepo) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.TravelSegment, error) {
	const q = `
		SELECT ` + segmentColumns + `
		FROM travel_segments
		WHERE trip_day_id = @trip_day_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_day_id": dayID})
	if err != nil {
		return nil, fmt.Errorf("repo.SegmentRepo.ListByDay: %w", err)
	}
	defer rows.Close()

	var segs []domain.TravelSegment
	for rows.Next() {
		sg, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SegmentRepo.ListByDay: scan: %w", err)
		}
		segs = append(segs, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SegmentRepo.ListByDay: rows: %w", err)
	}

	return segs, nil
}

func (r *pgSegmentRepo) Update(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error) {
	const q = `
		UPDATE travel_segments
		SET from_type        = @from_type,
		    from_id          = @from_id,
		    to_type          = @to_type,
		    to_id            = @to_id,
		    mode             = @mode,
		    duration_minutes = @duration_minutes,
		    distance_meters  = @distance_meters,
		    link             = @link,
		    updated_at       = now()
		WHERE id = @id AND trip_day_id = @trip_day_id
		RETURNING ` + segmentColumns

	args := segmentArgs(seg)
	args["id"] = seg.ID

	result, err := scanSegment(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelSegment{}, fmt.Errorf("repo.SegmentRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgSegmentRepo) Delete(ctx context.Context, dayID, segmentID uuid.UUID) error {
	const q = `DELETE FROM travel_segments WHERE id = @id AND trip_day_id = @trip_day_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": segmentID, "trip_day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.SegmentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SegmentRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSegmentRepo) DeleteByAnchor(ctx context.Context, ref domain.AnchorRef) (int64, error) {
	const q = `
		DELETE FROM travel_segments
		WHERE (from_type = @type AND from_id = @id)
		   OR (to_type = @type AND to_id = @id)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"type": ref.Type, "id": ref.ID})
	if err != nil {
		return 0, fmt.Errorf("repo.SegmentRepo.DeleteByAnchor: %w", err)
	}
	return tag.RowsAffected(), nil
}

func segmentArgs(seg domain.TravelSegment) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_day_id":      seg.TripDayID,
		"from_type":        seg.From.Type,
		"from_id":          seg.From.ID,
		"to_type":          seg.To.Type,
		"to_id":            seg.To.ID,
		"mode":             seg.Mode,
		"duration_minutes": seg.DurationMinutes,
		"distance_meters":  seg.DistanceMeters,
		"link":             seg.Link,
	}
}

// scanSegment maps a single database row into a domain.TravelSegment.
func scanSegment(s scanner) (domain.TravelSegment, error) {
	var (
		sg       domain.TravelSegment
		id       pgtype.UUID
		dayID    pgtype.UUID
		fromID   pgtype.UUID
		toID     pgtype.UUID
		distance pgtype.Int4
	)

	err := s.Scan(&id, &dayID, &sg.From.Type, &fromID, &sg.To.Type, &toID,
		&sg.Mode, &sg.DurationMinutes, &distance, &sg.Link, &sg.CreatedAt, &sg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TravelSegment{}, domain.ErrNotFound
		}
		return domain.TravelSegment{}, err
	}

	sg.ID = uuid.UUID(id.Bytes)
	sg.TripDayID = uuid.UUID(dayID.Bytes)
	sg.From.ID = uuid.UUID(fromID.Bytes)
	sg.To.ID = uuid.UUID(toID.Bytes)
	if distance.Valid {
		d := int(distance.Int32)
		sg.DistanceMeters = &d
	}

	return sg, nil
}
