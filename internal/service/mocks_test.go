package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripfolio/backend/internal/domain"
	"github.com/tripfolio/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones your test needs. This is idiomatic Go:
// no mock generation library required for simple cases.

type mockTxRunner struct {
	repos    repo.Repos
	beginErr error
}

func (m *mockTxRunner) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(m.repos)
}

var _ repo.TxRunner = (*mockTxRunner)(nil)

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	listPaged    func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	setHeroImage func(ctx context.Context, userID, tripID uuid.UUID, imageID *uuid.UUID) error
	delete       func(ctx context.Context, userID, tripID uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) SetHeroImage(ctx context.Context, userID, tripID uuid.UUID, imageID *uuid.UUID) error {
	return m.setHeroImage(ctx, userID, tripID, imageID)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockDayRepo struct {
	create     func(ctx context.Context, c domain.DayCreate, tripID uuid.UUID) (domain.TripDay, error)
	get        func(ctx context.Context, userID, tripID, dayID uuid.UUID) (domain.TripDay, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error)
	previous   func(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.TripDay, error)
	update     func(ctx context.Context, u domain.DayUpdate) error
	delete     func(ctx context.Context, dayIDs []uuid.UUID) error
}

func (m *mockDayRepo) Create(ctx context.Context, c domain.DayCreate, tripID uuid.UUID) (domain.TripDay, error) {
	return m.create(ctx, c, tripID)
}
func (m *mockDayRepo) Get(ctx context.Context, userID, tripID, dayID uuid.UUID) (domain.TripDay, error) {
	return m.get(ctx, userID, tripID, dayID)
}
func (m *mockDayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDayRepo) Previous(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.TripDay, error) {
	return m.previous(ctx, tripID, dayIndex)
}
func (m *mockDayRepo) Update(ctx context.Context, u domain.DayUpdate) error {
	return m.update(ctx, u)
}
func (m *mockDayRepo) Delete(ctx context.Context, dayIDs []uuid.UUID) error {
	return m.delete(ctx, dayIDs)
}

var _ repo.DayRepo = (*mockDayRepo)(nil)

type mockAccommodationRepo struct {
	upsert      func(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)
	getByDay    func(ctx context.Context, dayID uuid.UUID) (domain.Accommodation, error)
	deleteByDay func(ctx context.Context, dayID uuid.UUID) error
}

func (m *mockAccommodationRepo) Upsert(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	return m.upsert(ctx, a)
}
func (m *mockAccommodationRepo) GetByDay(ctx context.Context, dayID uuid.UUID) (domain.Accommodation, error) {
	return m.getByDay(ctx, dayID)
}
func (m *mockAccommodationRepo) DeleteByDay(ctx context.Context, dayID uuid.UUID) error {
	return m.deleteByDay(ctx, dayID)
}

var _ repo.AccommodationRepo = (*mockAccommodationRepo)(nil)

type mockPlanItemRepo struct {
	create    func(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error)
	getByID   func(ctx context.Context, dayID, itemID uuid.UUID) (domain.DayPlanItem, error)
	listByDay func(ctx context.Context, dayID uuid.UUID) ([]domain.DayPlanItem, error)
	update    func(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error)
	delete    func(ctx context.Context, dayID, itemID uuid.UUID) error
}

func (m *mockPlanItemRepo) Create(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error) {
	return m.create(ctx, item)
}
func (m *mockPlanItemRepo) GetByID(ctx context.Context, dayID, itemID uuid.UUID) (domain.DayPlanItem, error) {
	return m.getByID(ctx, dayID, itemID)
}
func (m *mockPlanItemRepo) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.DayPlanItem, error) {
	return m.listByDay(ctx, dayID)
}
func (m *mockPlanItemRepo) Update(ctx context.Context, item domain.DayPlanItem) (domain.DayPlanItem, error) {
	return m.update(ctx, item)
}
func (m *mockPlanItemRepo) Delete(ctx context.Context, dayID, itemID uuid.UUID) error {
	return m.delete(ctx, dayID, itemID)
}

var _ repo.PlanItemRepo = (*mockPlanItemRepo)(nil)

type mockSegmentRepo struct {
	create         func(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error)
	getByID        func(ctx context.Context, dayID, segmentID uuid.UUID) (domain.TravelSegment, error)
	listByDay      func(ctx context.Context, dayID uuid.UUID) ([]domain.TravelSegment, error)
	update         func(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error)
	delete         func(ctx context.Context, dayID, segmentID uuid.UUID) error
	deleteByAnchor func(ctx context.Context, ref domain.AnchorRef) (int64, error)
}

func (m *mockSegmentRepo) Create(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error) {
	return m.create(ctx, seg)
}
func (m *mockSegmentRepo) GetByID(ctx context.Context, dayID, segmentID uuid.UUID) (domain.TravelSegment, error) {
	return m.getByID(ctx, dayID, segmentID)
}
func (m *mockSegmentRepo) ListByDay(ctx context.Context, dayID uuid.UUID) ([]domain.TravelSegment, error) {
	return m.listByDay(ctx, dayID)
}
func (m *mockSegmentRepo) Update(ctx context.Context, seg domain.TravelSegment) (domain.TravelSegment, error) {
	return m.update(ctx, seg)
}
func (m *mockSegmentRepo) Delete(ctx context.Context, dayID, segmentID uuid.UUID) error {
	return m.delete(ctx, dayID, segmentID)
}
func (m *mockSegmentRepo) DeleteByAnchor(ctx context.Context, ref domain.AnchorRef) (int64, error) {
	return m.deleteByAnchor(ctx, ref)
}

var _ repo.SegmentRepo = (*mockSegmentRepo)(nil)

type mockImageRepo struct {
	create     func(ctx context.Context, img domain.TripImage) (domain.TripImage, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.TripImage, error)
	reorder    func(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) (int64, error)
	delete     func(ctx context.Context, tripID, imageID uuid.UUID) error
}

func (m *mockImageRepo) Create(ctx context.Context, img domain.TripImage) (domain.TripImage, error) {
	return m.create(ctx, img)
}
func (m *mockImageRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripImage, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockImageRepo) Reorder(ctx context.Context, tripID uuid.UUID, orderedIDs []uuid.UUID) (int64, error) {
	return m.reorder(ctx, tripID, orderedIDs)
}
func (m *mockImageRepo) Delete(ctx context.Context, tripID, imageID uuid.UUID) error {
	return m.delete(ctx, tripID, imageID)
}

var _ repo.ImageRepo = (*mockImageRepo)(nil)
