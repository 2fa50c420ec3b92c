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

// ImageRepo defines the persistence operations for trip image metadata.
// Image bytes live in external storage; this repo only tracks gallery rows.
type ImageRepo interface {
	// Create inserts a new image row and returns the persisted record.
	Create(ctx context.Context, img domain.TripImage) (domain.TripImage, error)

	// ListByTrip returns all images of a trip ordered by sort_order.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripImage, error)

	// Reorder rewrites sort_order so the images appear in the order of
	// orderedIDs. IDs not belonging to the trip are ignored by the WHERE
	// clause; the returned count lets the caller detect that.
	Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) (int64, error)

	// Delete removes an image row by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no such image exists under that trip.
	Delete(ctx context.Context, tripID, imageID uuid.UUID) error
}

// pgImageRepo is the Postgres implementation of ImageRepo.
type pgImageRepo struct {
	db db
}

// NewImageRepo constructs an ImageRepo backed by the provided db connection.
func NewImageRepo(db db) ImageRepo {
	return &pgImageRepo{db: db}
}

func (r *pgImageRepo) Create(ctx context.Context, img domain.TripImage) (domain.TripImage, error) {
	// New images go to the end of the gallery.
	const q = `
		INSERT INTO trip_images (trip_id, file_key, alt, sort_order)
		VALUES (
			@trip_id, @file_key, @alt,
			(SELECT coalesce(max(sort_order) + 1, 0) FROM trip_images WHERE trip_id = @trip_id)
		)
		RETURNING id, trip_id, file_key, alt, sort_order, created_at`

	args := pgx.NamedArgs{
		"trip_id":  img.TripID,
		"file_key": img.FileKey,
		"alt":      img.Alt,
	}

	result, err := scanImage(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripImage{}, fmt.Errorf("repo.ImageRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgImageRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripImage, error) {
	const q = `
		SELECT id, trip_id, file_key, alt, sort_order, created_at
		FROM trip_images
		WHERE trip_id = @trip_id
		ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ImageRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var images []domain.TripImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ImageRepo.ListByTrip: scan: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ImageRepo.ListByTrip: rows: %w", err)
	}

	return images, nil
}

func (r *pgImageRepo) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) (int64, error) {
	const q = `
		UPDATE trip_images
		SET sort_order = ord.pos - 1
		FROM unnest(@ids::uuid[]) WITH ORDINALITY AS ord(id, pos)
		WHERE trip_images.id = ord.id AND trip_images.trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"ids": orderedIDs, "trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.ImageRepo.Reorder: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgImageRepo) Delete(ctx context.Context, tripID, imageID uuid.UUID) error {
	const q = `DELETE FROM trip_images WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": imageID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ImageRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ImageRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanImage maps a single database row into a domain.TripImage.
func scanImage(s scanner) (domain.TripImage, error) {
	var (
		img    domain.TripImage
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &img.FileKey, &img.Alt, &img.SortOrder, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripImage{}, domain.ErrNotFound
		}
		return domain.TripImage{}, err
	}

	img.ID = uuid.UUID(id.Bytes)
	img.TripID = uuid.UUID(tripID.Bytes)
	return img, nil
}
