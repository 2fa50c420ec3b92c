package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/domain"
)

func segmentFixture(dayID uuid.UUID) domain.TravelSegment {
	return domain.TravelSegment{
		TripDayID:       dayID,
		From:            domain.AnchorRef{Type: domain.AnchorAccommodation, ID: uuid.New()},
		To:              domain.AnchorRef{Type: domain.AnchorPlanItem, ID: uuid.New()},
		Mode:            domain.TransportTrain,
		DurationMinutes: 45,
	}
}

func TestSegmentRepo_Create(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)
	day := createDay(t, r, trip.ID, 1)

	input := segmentFixture(day.ID)
	distance := 32000
	input.DistanceMeters = &distance

	got, err := r.Segments.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, input.From, got.From)
	assert.Equal(t, input.To, got.To)
	assert.Equal(t, domain.TransportTrain, got.Mode)
	assert.Equal(t, 45, got.DurationMinutes)
	require.NotNil(t, got.DistanceMeters)
	assert.Equal(t, 32000, *got.DistanceMeters)
}

func TestSegmentRepo_Update(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)
	day := createDay(t, r, trip.ID, 1)

	seg, err := r.Segments.Create(ctx, segmentFixture(day.ID))
	require.NoError(t, err)

	seg.Mode = domain.TransportBus
	seg.DurationMinutes = 70

	updated, err := r.Segments.Update(ctx, seg)

	require.NoError(t, err)
	assert.Equal(t, seg.ID, updated.ID)
	assert.Equal(t, domain.TransportBus, updated.Mode)
	assert.Equal(t, 70, updated.DurationMinutes)
}

func TestSegmentRepo_Delete(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)
	day := createDay(t, r, trip.ID, 1)

	seg, err := r.Segments.Create(ctx, segmentFixture(day.ID))
	require.NoError(t, err)

	require.NoError(t, r.Segments.Delete(ctx, day.ID, seg.ID))

	_, err = r.Segments.GetByID(ctx, day.ID, seg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// DeleteByAnchor removes every segment touching the anchor as either
// endpoint, across days, and leaves unrelated segments alone.
func TestSegmentRepo_DeleteByAnchor(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)
	day1 := createDay(t, r, trip.ID, 1)
	day2 := createDay(t, r, trip.ID, 2)

	anchor := domain.AnchorRef{Type: domain.AnchorPlanItem, ID: uuid.New()}

	into := segmentFixture(day1.ID)
	into.To = anchor
	outOf := segmentFixture(day2.ID)
	outOf.From = anchor
	unrelated := segmentFixture(day1.ID)

	_, err := r.Segments.Create(ctx, into)
	require.NoError(t, err)
	_, err = r.Segments.Create(ctx, outOf)
	require.NoError(t, err)
	kept, err := r.Segments.Create(ctx, unrelated)
	require.NoError(t, err)

	deleted, err := r.Segments.DeleteByAnchor(ctx, anchor)

	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	remaining, err := r.Segments.ListByDay(ctx, day1.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	remaining, err = r.Segments.ListByDay(ctx, day2.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
