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

// AccommodationRepo defines the persistence operations for Accommodations.
// A day has at most one accommodation; Upsert replaces any existing stay.
// Callers resolve the day through DayRepo.Get first, which applies the
// user/trip scoping; these methods trust the dayID they are given.
type AccommodationRepo interface {
	// Upsert inserts the day's accommodation or overwrites the existing one,
	// returning the persisted record.
	Upsert(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)

	// GetByDay returns the day's accommodation.
	// Returns domain.ErrNotFound if the day has none.
	GetByDay(ctx context.Context, dayID uuid.UUID) (domain.Accommodation, error)

	// DeleteByDay removes the day's accommodation.
	// Returns domain.ErrNotFound if the day has none.
	DeleteByDay(ctx context.Context, dayID uuid.UUID) error
}

// pgAccommodationRepo is the Postgres implementation of AccommodationRepo.
type pgAccommodationRepo struct {
	db db
}

// NewAccommodationRepo constructs an AccommodationRepo backed by the provided db connection.
func NewAccommodationRepo(db db) AccommodationRepo {
	return &pgAccommodationRepo{db: db}
}

const accommodationColumns = `id, trip_day_id, name, status, cost, link, check_in, check_out, lat, lng, loc_label, created_at, updated_at`

func (r *pgAccommodationRepo) Upsert(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	const q = `
		INSERT INTO accommodations (trip_day_id, name, status, cost, link, check_in, check_out, lat, lng, loc_label)
		VALUES (@trip_day_id, @name, @status, @cost, @link, @check_in, @check_out, @lat, @lng, @loc_label)
		ON CONFLICT (trip_day_id) DO UPDATE
		SET name       = excluded.name,
		    status     = excluded.status,
		    cost       = excluded.cost,
		    link       = excluded.link,
		    check_in   = excluded.check_in,
		    check_out  = excluded.check_out,
		    lat        = excluded.lat,
		    lng        = excluded.lng,
		    loc_label  = excluded.loc_label,
		    updated_at = now()
		RETURNING ` + accommodationColumns

	args := pgx.NamedArgs{
		"trip_day_id": a.TripDayID,
		"name":        a.Name,
		"status":      a.Status,
		"cost":        a.Cost,
		"link":        a.Link,
		"check_in":    a.CheckIn,
		"check_out":   a.CheckOut,
	}
	addLocationArgs(args, a.Location)

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.Upsert: %w", err)
	}
	return result, nil
}

func (r *pgAccommodationRepo) GetByDay(ctx context.Context, dayID uuid.UUID) (domain.Accommodation, error) {
	const q = `SELECT ` + accommodationColumns + ` FROM accommodations WHERE trip_day_id = @trip_day_id`

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_day_id": dayID}))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.GetByDay: %w", err)
	}
	return result, nil
}

func (r *pgAccommodationRepo) DeleteByDay(ctx context.Context, dayID uuid.UUID) error {
	const q = `DELETE FROM accommodations WHERE trip_day_id = @trip_day_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.AccommodationRepo.DeleteByDay: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AccommodationRepo.DeleteByDay: %w", domain.ErrNotFound)
	}
	return nil
}

// addLocationArgs spreads an optional location over the lat/lng/loc_label
// named args; nil writes NULLs for all three (the all-or-nothing CHECK).
func addLocationArgs(args pgx.NamedArgs, loc *domain.Location) {
	if loc == nil {
		args["lat"], args["lng"], args["loc_label"] = nil, nil, nil
		return
	}
	args["lat"], args["lng"], args["loc_label"] = loc.Lat, loc.Lng, loc.Label
}

// scanLocation rebuilds an optional Location from nullable columns.
// The CHECK constraint guarantees all three are set together.
func scanLocation(lat, lng pgtype.Float8, label pgtype.Text) *domain.Location {
	if !lat.Valid {
		return nil
	}
	return &domain.Location{Lat: lat.Float64, Lng: lng.Float64, Label: label.String}
}

// scanAccommodation maps a single database row into a domain.Accommodation.
func scanAccommodation(s scanner) (domain.Accommodation, error) {
	var (
		a        domain.Accommodation
		id       pgtype.UUID
		dayID    pgtype.UUID
		cost     pgtype.Float8
		checkIn  pgtype.Text
		checkOut pgtype.Text
		lat, lng pgtype.Float8
		label    pgtype.Text
	)

	err := s.Scan(&id, &dayID, &a.Name, &a.Status, &cost, &a.Link,
		&checkIn, &checkOut, &lat, &lng, &label, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Accommodation{}, domain.ErrNotFound
		}
		return domain.Accommodation{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripDayID = uuid.UUID(dayID.Bytes)
	if cost.Valid {
		c := cost.Float64
		a.Cost = &c
	}
	if checkIn.Valid {
		v := checkIn.String
		a.CheckIn = &v
	}
	if checkOut.Valid {
		v := checkOut.String
		a.CheckOut = &v
	}
	a.Location = scanLocation(lat, lng, label)

	return a, nil
}
