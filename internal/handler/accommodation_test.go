package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/handler"
)

// mockAccommodationServicer is a test double for handler.AccommodationServicer.
type mockAccommodationServicer struct {
	upsert func(ctx context.Context, userID, tripID uuid.UUID, a domain.Accommodation) (domain.Accommodation, error)
	delete func(ctx context.Context, userID, tripID, dayID uuid.UUID) error
}

func (m *mockAccommodationServicer) Upsert(ctx context.Context, userID, tripID uuid.UUID, a domain.Accommodation) (domain.Accommodation, error) {
	return m.upsert(ctx, userID, tripID, a)
}
func (m *mockAccommodationServicer) Delete(ctx context.Context, userID, tripID, dayID uuid.UUID) error {
	return m.delete(ctx, userID, tripID, dayID)
}

var _ handler.AccommodationServicer = (*mockAccommodationServicer)(nil)

func accommodationURL(tripID, dayID uuid.UUID) string {
	return "/api/trips/" + tripID.String() + "/days/" + dayID.String() + "/accommodation"
}

func TestPutAccommodation_200(t *testing.T) {
	tripID, dayID := uuid.New(), uuid.New()
	svc := handler.Services{Accommodations: &mockAccommodationServicer{
		upsert: func(_ context.Context, userID, gotTrip uuid.UUID, a domain.Accommodation) (domain.Accommodation, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, dayID, a.TripDayID)
			a.ID = uuid.New()
			return a, nil
		},
	}}

	body := jsonBody(t, map[string]any{
		"name":     "Hotel Bergfried",
		"status":   "booked",
		"check_in": "15:00",
		"location": map[string]any{"lat": 47.26, "lng": 11.39, "label": "Innsbruck"},
	})
	req := httptest.NewRequest(http.MethodPut, accommodationURL(tripID, dayID), body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Accommodation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Hotel Bergfried", resp.Name)
	assert.Equal(t, domain.AccommodationBooked, resp.Status)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "Innsbruck", resp.Location.Label)
}

func TestPutAccommodation_422_BadStatus(t *testing.T) {
	svc := handler.Services{Accommodations: &mockAccommodationServicer{
		upsert: func(_ context.Context, _, _ uuid.UUID, _ domain.Accommodation) (domain.Accommodation, error) {
			return domain.Accommodation{}, fmt.Errorf("%w: status must be planned or booked", domain.ErrValidation)
		},
	}}

	body := jsonBody(t, map[string]any{"name": "Hotel", "status": "wishlist"})
	req := httptest.NewRequest(http.MethodPut, accommodationURL(uuid.New(), uuid.New()), body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "status must be planned or booked", resp.Error.Message)
}

func TestDeleteAccommodation_204(t *testing.T) {
	tripID, dayID := uuid.New(), uuid.New()
	svc := handler.Services{Accommodations: &mockAccommodationServicer{
		delete: func(_ context.Context, userID, gotTrip, gotDay uuid.UUID) error {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, dayID, gotDay)
			return nil
		},
	}}

	req := httptest.NewRequest(http.MethodDelete, accommodationURL(tripID, dayID), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteAccommodation_404_NoStay(t *testing.T) {
	svc := handler.Services{Accommodations: &mockAccommodationServicer{
		delete: func(_ context.Context, _, _, _ uuid.UUID) error {
			return fmt.Errorf("service.AccommodationService.Delete: %w", domain.ErrNotFound)
		},
	}}

	req := httptest.NewRequest(http.MethodDelete, accommodationURL(uuid.New(), uuid.New()), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
