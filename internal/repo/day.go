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

// DayRepo defines the persistence operations for TripDays. Writes are only
// ever issued by the day reconciler running inside a transaction; reads back
// the scoped Get plus the previous-day lookup the timeline builder needs.
type DayRepo interface {
	// Create inserts a new day row and returns the persisted record.
	Create(ctx context.Context, c domain.DayCreate, tripID uuid.UUID) (domain.TripDay, error)

	// Get retrieves a single day by ID, scoped to the owning user and trip.
	// Returns domain.ErrNotFound if no such day exists for that user.
	Get(ctx context.Context, userID, tripID, dayID uuid.UUID) (domain.TripDay, error)

	// ListByTrip returns all days of a trip ordered by day_index ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error)

	// Previous returns the trip's day with the greatest day_index strictly
	// below dayIndex. Returns domain.ErrNotFound for the trip's first day.
	Previous(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.TripDay, error)

	// Update renumbers or re-dates an existing day in place, keeping its ID.
	// Returns domain.ErrNotFound if the day does not exist.
	Update(ctx context.Context, u domain.DayUpdate) error

	// Delete removes the given days, cascading to their accommodation, plan
	// items, and travel segments.
	Delete(ctx context.Context, dayIDs []uuid.UUID) error
}

// pgDayRepo is the Postgres implementation of DayRepo.
type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

func (r *pgDayRepo) Create(ctx context.Context, c domain.DayCreate, tripID uuid.UUID) (domain.TripDay, error) {
	const q = `
		INSERT INTO trip_days (trip_id, date, day_index)
		VALUES (@trip_id, @date, @day_index)
		RETURNING id, trip_id, date, day_index`

	args := pgx.NamedArgs{
		"trip_id":   tripID,
		"date":      c.Date,
		"day_index": c.DayIndex,
	}

	day, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.DayRepo.Create: %w", err)
	}
	return day, nil
}

func (r *pgDayRepo) Get(ctx context.Context, userID, tripID, dayID uuid.UUID) (domain.TripDay, error) {
	const q = `
		SELECT d.id, d.trip_id, d.date, d.day_index
		FROM trip_days d
		JOIN trips t ON t.id = d.trip_id
		WHERE d.id = @id AND d.trip_id = @trip_id AND t.user_id = @user_id`

	args := pgx.NamedArgs{"id": dayID, "trip_id": tripID, "user_id": userID}

	day, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.DayRepo.Get: %w", err)
	}
	return day, nil
}

func (r *pgDayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error) {
	const q = `
		SELECT id, trip_id, date, day_index
		FROM trip_days
		WHERE trip_id = @trip_id
		ORDER BY day_index`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var days []domain.TripDay
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayRepo.ListByTrip: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: rows: %w", err)
	}

	return days, nil
}

func (r *pgDayRepo) Previous(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.TripDay, error) {
	// day_index is unique per trip, so "the day immediately before" is the
	// single row below dayIndex; date DESC only matters if that invariant is
	// ever relaxed.
	const q = `
		SELECT id, trip_id, date, day_index
		FROM trip_days
		WHERE trip_id = @trip_id AND day_index < @day_index
		ORDER BY day_index DESC, date DESC
		LIMIT 1`

	args := pgx.NamedArgs{"trip_id": tripID, "day_index": dayIndex}

	day, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.DayRepo.Previous: %w", err)
	}
	return day, nil
}

func (r *pgDayRepo) Update(ctx context.Context, u domain.DayUpdate) error {
	const q = `
		UPDATE trip_days
		SET date = @date, day_index = @day_index
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": u.ID, "date": u.Date, "day_index": u.DayIndex})
	if err != nil {
		return fmt.Errorf("repo.DayRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDayRepo) Delete(ctx context.Context, dayIDs []uuid.UUID) error {
	if len(dayIDs) == 0 {
		return nil
	}

	const q = `DELETE FROM trip_days WHERE id = ANY(@ids)`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"ids": dayIDs}); err != nil {
		return fmt.Errorf("repo.DayRepo.Delete: %w", err)
	}
	return nil
}

// scanDay maps a single database row into a domain.TripDay.
func scanDay(s scanner) (domain.TripDay, error) {
	var (
		d      domain.TripDay
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &date, &d.DayIndex)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripDay{}, domain.ErrNotFound
		}
		return domain.TripDay{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	d.Date = date.Time
	return d, nil
}
