package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// ImageService implements gallery metadata operations. Upload and storage
// of the actual bytes happen outside this service; FileKey is an opaque
// reference into that store.
type ImageService struct {
	db     repo.TxRunner
	trips  repo.TripRepo
	images repo.ImageRepo
}

// NewImageService constructs an ImageService.
func NewImageService(db repo.TxRunner, trips repo.TripRepo, images repo.ImageRepo) *ImageService {
	return &ImageService{db: db, trips: trips, images: images}
}

// Add appends an image to the trip's gallery.
// Returns domain.ErrNotFound if the trip does not exist for that user.
func (s *ImageService) Add(ctx context.Context, userID uuid.UUID, img domain.TripImage) (domain.TripImage, error) {
	if strings.TrimSpace(img.FileKey) == "" {
		return domain.TripImage{}, fmt.Errorf("%w: file_key is required", domain.ErrValidation)
	}

	var result domain.TripImage
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, userID, img.TripID); err != nil {
			return err
		}
		var err error
		result, err = r.Images.Create(ctx, img)
		return err
	})
	if err != nil {
		return domain.TripImage{}, fmt.Errorf("service.ImageService.Add: %w", err)
	}
	return result, nil
}

// ListByTrip returns the trip's gallery in sort order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ImageService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TripImage, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.ImageService.ListByTrip: %w", err)
	}

	images, err := s.images.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ImageService.ListByTrip: %w", err)
	}
	if images == nil {
		images = []domain.TripImage{}
	}
	return images, nil
}

// Reorder rewrites the gallery order to match orderedIDs, which must name
// every image of the trip exactly once.
func (s *ImageService) Reorder(ctx context.Context, userID, tripID uuid.UUID, orderedIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate image id %s", domain.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, userID, tripID); err != nil {
			return err
		}
		existing, err := r.Images.ListByTrip(ctx, tripID)
		if err != nil {
			return err
		}
		if len(existing) != len(orderedIDs) {
			return fmt.Errorf("%w: order must list all %d images", domain.ErrValidation, len(existing))
		}

		updated, err := r.Images.Reorder(ctx, tripID, orderedIDs)
		if err != nil {
			return err
		}
		if updated != int64(len(orderedIDs)) {
			return fmt.Errorf("%w: unknown image id in order", domain.ErrValidation)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.ImageService.Reorder: %w", err)
	}
	return nil
}

// SetHero points the trip's hero image at imageID, or clears it when nil.
func (s *ImageService) SetHero(ctx context.Context, userID, tripID uuid.UUID, imageID *uuid.UUID) error {
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if imageID != nil {
			images, err := r.Images.ListByTrip(ctx, tripID)
			if err != nil {
				return err
			}
			if !containsImage(images, *imageID) {
				return fmt.Errorf("%w: image does not belong to trip", domain.ErrValidation)
			}
		}
		return r.Trips.SetHeroImage(ctx, userID, tripID, imageID)
	})
	if err != nil {
		return fmt.Errorf("service.ImageService.SetHero: %w", err)
	}
	return nil
}

// Delete removes an image row. The hero reference, if it pointed here, is
// cleared by the ON DELETE SET NULL constraint.
func (s *ImageService) Delete(ctx context.Context, userID, tripID, imageID uuid.UUID) error {
	err := s.db.InTx(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, userID, tripID); err != nil {
			return err
		}
		return r.Images.Delete(ctx, tripID, imageID)
	})
	if err != nil {
		return fmt.Errorf("service.ImageService.Delete: %w", err)
	}
	return nil
}

func containsImage(images []domain.TripImage, id uuid.UUID) bool {
	for _, img := range images {
		if img.ID == id {
			return true
		}
	}
	return false
}
