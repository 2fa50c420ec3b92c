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

// PlanItemRepo defines the persistence operations for DayPlanItems.
// Single-item reads and writes are scoped by dayID; callers resolve the day
// through DayRepo.Get first, which applies the user/trip scoping.
type PlanItemRepo interface {
	// Create inserts a new plan item and returns the persisted record.
	Create(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error)

	// GetByID retrieves a single item by ID, scoped to the given dayID.
	// Returns domain.ErrNotFound if no such item exists under that day.
	GetByID(ctx context.Context, dayID, itemID uuid.UUID) (domain.DayPlanItem, error)

	// ListByDay returns all items of a day in timeline order: start_time
	// ascending with NULLs last, then created_at, then id.
	ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.DayPlanItem, error)

	// Update overwrites the mutable fields of an item, scoped to its dayID.
	// Returns domain.ErrNotFound if no such item exists under that day.
	Update(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error)

	// Delete removes an item by ID, scoped to the given dayID.
	// Returns domain.ErrNotFound if no such item exists under that day.
	Delete(ctx context.Context, dayID, itemID uuid.UUID) error
}

// pgPlanItemRepo is the Postgres implementation of PlanItemRepo.
type pgPlanItemRepo struct {
	db db
}

// NewPlanItemRepo constructs a PlanItemRepo backed by the provided db connection.
func NewPlanItemRepo(db db) PlanItemRepo {
	return &pgPlanItemRepo{db: db}
}

const planItemColumns = `id, trip_day_id, content, start_time, end_time, lat, lng, loc_label, link, cost, created_at, updated_at`

func (r *pgPlanItemRepo) Create(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error) {
	// created_at is normally DB-assigned; the trip importer passes explicit
	// values so the creation-order tiebreak of untimed items survives import.
	const q = `
		INSERT INTO day_plan_items (trip_day_id, content, start_time, end_time, lat, lng, loc_label, link, cost, created_at)
		VALUES (@trip_day_id, @content, @start_time, @end_time, @lat, @lng, @loc_label, @link, @cost, coalesce(@created_at, now()))
		RETURNING ` + planItemColumns

	args := pgx.NamedArgs{
		"trip_day_id": item.TripDayID,
		"content":     item.Content,
		"start_time":  item.StartTime,
		"end_time":    item.EndTime,
		"link":        item.Link,
		"cost":        item.Cost,
		"created_at":  nil,
	}
	if !item.CreatedAt.IsZero() {
		args["created_at"] = item.CreatedAt
	}
	addLocationArgs(args, item.Location)

	result, err := scanPlanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayPlanItem{}, fmt.Errorf("repo.PlanItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlanItemRepo) GetByID(ctx context.Context, dayID, itemID uuid.UUID) (domain.DayPlanItem, error) {
	const q = `SELECT ` + planItemColumns + ` FROM day_plan_items WHERE id = @id AND trip_day_id = @trip_day_id`

	result, err := scanPlanItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "trip_day_id": dayID}))
	if err != nil {
		return domain.DayPlanItem{}, fmt.Errorf("repo.PlanItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPlanItemRepo) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.DayPlanItem, error) {
	// Same ordering as domain.SortPlanItems, so lists render in timeline order.
	const q = `
		SELECT ` + planItemColumns + `
		FROM day_plan_items
		WHERE trip_day_id = @trip_day_id
		ORDER BY start_time ASC NULLS LAST, created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_day_id": dayID})
	if err != nil {
		return nil, fmt.Errorf("repo.PlanItemRepo.ListByDay: %w", err)
	}
	defer rows.Close()

	var items []domain.DayPlanItem
	for rows.Next() {
		it, err := scanPlanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlanItemRepo.ListByDay: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlanItemRepo.ListByDay: rows: %w", err)
	}

	return items, nil
}

func (r *pgPlanItemRepo) Update(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error) {
	const q = `
		UPDATE day_plan_items
		SET content    = @content,
		    start_time = @start_time,
		    end_time   = @end_time,
		    lat        = @lat,
		    lng        = @lng,
		    loc_label  = @loc_label,
		    link       = @link,
		    cost       = @cost,
		    updated_at = now()
		WHERE id = @id AND trip_day_id = @trip_day_id
		RETURNING ` + planItemColumns

	args := pgx.NamedArgs{
		"id":          item.ID,
		"trip_day_id": item.TripDayID,
		"content":     item.Content,
		"start_time":  item.StartTime,
		"end_time":    item.EndTime,
		"link":        item.Link,
		"cost":        item.Cost,
	}
	addLocationArgs(args, item.Location)

	result, err := scanPlanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayPlanItem{}, fmt.Errorf("repo.PlanItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgPlanItemRepo) Delete(ctx context.Context, dayID, itemID uuid.UUID) error {
	const q = `DELETE FROM day_plan_items WHERE id = @id AND trip_day_id = @trip_day_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "trip_day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.PlanItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPlanItem maps a single database row into a domain.DayPlanItem.
func scanPlanItem(s scanner) (domain.DayPlanItem, error) {
	var (
		it       domain.DayPlanItem
		id       pgtype.UUID
		dayID    pgtype.UUID
		start    pgtype.Text
		end      pgtype.Text
		lat, lng pgtype.Float8
		label    pgtype.Text
		cost     pgtype.Float8
	)

	err := s.Scan(&id, &dayID, &it.Content, &start, &end, &lat, &lng, &label,
		&it.Link, &cost, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DayPlanItem{}, domain.ErrNotFound
		}
		return domain.DayPlanItem{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.TripDayID = uuid.UUID(dayID.Bytes)
	if start.Valid {
		v := start.String
		it.StartTime = &v
	}
	if end.Valid {
		v := end.String
		it.EndTime = &v
	}
	it.Location = scanLocation(lat, lng, label)
	if cost.Valid {
		c := cost.Float64
		it.Cost = &c
	}

	return it, nil
}
