package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/domain"
)

func TestDayRepo_Create(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)

	got, err := r.Days.Create(ctx, domain.DayCreate{
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		DayIndex: 1,
	}, trip.ID)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, 1, got.DayIndex)
	assert.True(t, got.Date.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDayRepo_Get_ScopedToUser(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	owner := createUser(t, tx)
	stranger := createUser(t, tx)
	trip := createTrip(t, r, owner)
	day := createDay(t, r, trip.ID, 1)

	got, err := r.Days.Get(ctx, owner, trip.ID, day.ID)
	require.NoError(t, err)
	assert.Equal(t, day.ID, got.ID)

	_, err = r.Days.Get(ctx, stranger, trip.ID, day.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDayRepo_ListByTrip_OrderedByIndex(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)

	// Insert out of order; the list must come back by day_index.
	createDay(t, r, trip.ID, 3)
	createDay(t, r, trip.ID, 1)
	createDay(t, r, trip.ID, 2)

	days, err := r.Days.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, days, 3)
	for i, d := range days {
		assert.Equal(t, i+1, d.DayIndex)
	}
}

func TestDayRepo_Previous(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)
	day1 := createDay(t, r, trip.ID, 1)
	createDay(t, r, trip.ID, 2)

	prev, err := r.Days.Previous(ctx, trip.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, day1.ID, prev.ID)

	// The first day has no previous day.
	_, err = r.Days.Previous(ctx, trip.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Renumbering days in place is the heart of reconciliation. The unique
// constraints on (trip_id, day_index) are deferred, so a shift that moves
// every surviving day through an occupied slot still works inside one
// transaction.
func TestDayRepo_Update_RenumberThroughCollision(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)
	day1 := createDay(t, r, trip.ID, 1)
	day2 := createDay(t, r, trip.ID, 2)

	// day2 moves to index 1 while day1 still holds it, then day1 moves on.
	require.NoError(t, r.Days.Update(ctx, domain.DayUpdate{
		ID: day2.ID, Date: day2.Date, DayIndex: 1,
	}))
	require.NoError(t, r.Days.Update(ctx, domain.DayUpdate{
		ID: day1.ID, Date: day1.Date.AddDate(0, 0, 5), DayIndex: 2,
	}))

	days, err := r.Days.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, day2.ID, days[0].ID)
	assert.Equal(t, day1.ID, days[1].ID)
}

func TestDayRepo_Update_NotFound(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	err := r.Days.Update(ctx, domain.DayUpdate{
		ID:       uuid.New(),
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		DayIndex: 1,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDayRepo_Delete_CascadesToContent(t *testing.T) {
	r, tx := newTestRepos(t)
	ctx := context.Background()
	userID := createUser(t, tx)
	trip := createTrip(t, r, userID)
	day := createDay(t, r, trip.ID, 1)

	_, err := r.Accommodations.Upsert(ctx, domain.Accommodation{
		TripDayID: day.ID, Name: "Hotel Bergfried", Status: domain.AccommodationBooked,
	})
	require.NoError(t, err)

	require.NoError(t, r.Days.Delete(ctx, []uuid.UUID{day.ID}))

	_, err = r.Days.Get(ctx, userID, trip.ID, day.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.Accommodations.GetByDay(ctx, day.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "accommodation should cascade")
}

func TestDayRepo_Delete_EmptyListIsNoop(t *testing.T) {
	r, _ := newTestRepos(t)

	assert.NoError(t, r.Days.Delete(context.Background(), nil))
}
