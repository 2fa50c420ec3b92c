package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
	"github.com/tripfolio/backend/internal/service"
)

type imageFixture struct {
	userID uuid.UUID
	tripID uuid.UUID
	gallery []domain.TripImage

	trips  *mockTripRepo
	images *mockImageRepo

	heroSet   bool
	heroValue *uuid.UUID
	reordered []uuid.UUID
}

func newImageFixture(galleryLen int) *imageFixture {
	f := &imageFixture{userID: uuid.New(), tripID: uuid.New()}
	for i := 0; i < galleryLen; i++ {
		f.gallery = append(f.gallery, domain.TripImage{ID: uuid.New(), TripID: f.tripID, SortOrder: i})
	}
	f.trips = &mockTripRepo{
		getByID: func(_ context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
			if userID != f.userID || tripID != f.tripID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return domain.Trip{ID: tripID, UserID: userID}, nil
		},
		setHeroImage: func(_ context.Context, _, _ uuid.UUID, imageID *uuid.UUID) error {
			f.heroSet = true
			f.heroValue = imageID
			return nil
		},
	}
	f.images = &mockImageRepo{
		create: func(_ context.Context, img domain.TripImage) (domain.TripImage, error) {
			img.ID = uuid.New()
			return img, nil
		},
		listByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.TripImage, error) {
			return f.gallery, nil
		},
		reorder: func(_ context.Context, _ uuid.UUID, orderedIDs []uuid.UUID) (int64, error) {
			matched := int64(0)
			for _, id := range orderedIDs {
				for _, img := range f.gallery {
					if img.ID == id {
						matched++
						break
					}
				}
			}
			f.reordered = orderedIDs
			return matched, nil
		},
	}
	return f
}

func (f *imageFixture) service() *service.ImageService {
	tx := &mockTxRunner{repos: repo.Repos{Trips: f.trips, Images: f.images}}
	return service.NewImageService(tx, f.trips, f.images)
}

func (f *imageFixture) galleryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(f.gallery))
	for i, img := range f.gallery {
		ids[i] = img.ID
	}
	return ids
}

func TestImageService_Add_Valid(t *testing.T) {
	f := newImageFixture(0)
	svc := f.service()

	got, err := svc.Add(context.Background(), f.userID, domain.TripImage{TripID: f.tripID, FileKey: "uploads/abc.jpg"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestImageService_Add_MissingFileKey(t *testing.T) {
	f := newImageFixture(0)
	svc := f.service()

	_, err := svc.Add(context.Background(), f.userID, domain.TripImage{TripID: f.tripID})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImageService_Reorder_Valid(t *testing.T) {
	f := newImageFixture(3)
	svc := f.service()

	ids := f.galleryIDs()
	reversed := []uuid.UUID{ids[2], ids[1], ids[0]}

	err := svc.Reorder(context.Background(), f.userID, f.tripID, reversed)

	require.NoError(t, err)
	assert.Equal(t, reversed, f.reordered)
}

func TestImageService_Reorder_DuplicateID(t *testing.T) {
	f := newImageFixture(2)
	svc := f.service()

	ids := f.galleryIDs()

	err := svc.Reorder(context.Background(), f.userID, f.tripID, []uuid.UUID{ids[0], ids[0]})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImageService_Reorder_IncompleteList(t *testing.T) {
	f := newImageFixture(3)
	svc := f.service()

	err := svc.Reorder(context.Background(), f.userID, f.tripID, f.galleryIDs()[:2])

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImageService_Reorder_UnknownID(t *testing.T) {
	f := newImageFixture(2)
	svc := f.service()

	ids := f.galleryIDs()

	err := svc.Reorder(context.Background(), f.userID, f.tripID, []uuid.UUID{ids[0], uuid.New()})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImageService_SetHero_Valid(t *testing.T) {
	f := newImageFixture(2)
	svc := f.service()

	hero := f.gallery[1].ID

	err := svc.SetHero(context.Background(), f.userID, f.tripID, &hero)

	require.NoError(t, err)
	require.True(t, f.heroSet)
	require.NotNil(t, f.heroValue)
	assert.Equal(t, hero, *f.heroValue)
}

func TestImageService_SetHero_NotInGallery(t *testing.T) {
	f := newImageFixture(2)
	svc := f.service()

	stranger := uuid.New()

	err := svc.SetHero(context.Background(), f.userID, f.tripID, &stranger)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, f.heroSet)
}

func TestImageService_SetHero_NilClears(t *testing.T) {
	f := newImageFixture(2)
	svc := f.service()

	err := svc.SetHero(context.Background(), f.userID, f.tripID, nil)

	require.NoError(t, err)
	require.True(t, f.heroSet)
	assert.Nil(t, f.heroValue)
}

func TestImageService_ListByTrip_NilBecomesEmptySlice(t *testing.T) {
	f := newImageFixture(0)
	f.gallery = nil
	svc := f.service()

	got, err := svc.ListByTrip(context.Background(), f.userID, f.tripID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
