package trips

import (
	"context"
	"testing"
	"time"

	"mounti/internal/store"
	apperrors "mounti/pkg/errors"
	"mounti/pkg/logger"
	"mounti/pkg/model"
)

type mockTripRepository struct {
	createFunc            func(ctx context.Context, trip *model.Trip) error
	findByIDFunc          func(ctx context.Context, id string) (*model.Trip, error)
	findByTransporterFunc func(ctx context.Context, transporterID string) ([]*model.Trip, error)
	searchFunc            func(ctx context.Context, query store.TripSearch) ([]*model.Trip, error)
	updateFunc            func(ctx context.Context, id string, trip *model.Trip) error
	deleteFunc            func(ctx context.Context, id string) error
	decrementFunc         func(ctx context.Context, id string, bookingType model.BookingType, quantity float64) (bool, error)
}

func (m *mockTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, trip)
	}
	return nil
}

func (m *mockTripRepository) FindByID(ctx context.Context, id string) (*model.Trip, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockTripRepository) FindByTransporter(ctx context.Context, transporterID string) ([]*model.Trip, error) {
	if m.findByTransporterFunc != nil {
		return m.findByTransporterFunc(ctx, transporterID)
	}
	return []*model.Trip{}, nil
}

func (m *mockTripRepository) Search(ctx context.Context, query store.TripSearch) ([]*model.Trip, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return []*model.Trip{}, nil
}

func (m *mockTripRepository) Update(ctx context.Context, id string, trip *model.Trip) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, trip)
	}
	return nil
}

func (m *mockTripRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTripRepository) DecrementCapacity(ctx context.Context, id string, bookingType model.BookingType, quantity float64) (bool, error) {
	if m.decrementFunc != nil {
		return m.decrementFunc(ctx, id, bookingType, quantity)
	}
	return true, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func newTestService(repo store.TripRepository) Service {
	return NewService(repo, NewValidator(), testLogger())
}

func validCreate() *model.TripCreate {
	return &model.TripCreate{
		FromLocation:      "Paris",
		ToLocation:        "Casablanca",
		DepartureDate:     time.Now().Add(48 * time.Hour),
		AvailableSeats:    3,
		AvailableWeightKg: 20,
		PricePerSeat:      150,
		PricePerKg:        10,
	}
}

func TestTripCreate_SetsOwnershipAndStatus(t *testing.T) {
	var saved *model.Trip
	repo := &mockTripRepository{
		createFunc: func(ctx context.Context, trip *model.Trip) error {
			saved = trip
			return nil
		},
	}
	service := newTestService(repo)
	actor := &model.User{ID: "user-1", Name: "Alice"}

	trip, err := service.Create(context.Background(), validCreate(), actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("expected trip to be persisted")
	}
	if trip.ID == "" {
		t.Error("expected a generated trip id")
	}
	if trip.TransporterID != "user-1" {
		t.Errorf("expected transporter user-1, got %s", trip.TransporterID)
	}
	if trip.TransporterName != "Alice" {
		t.Errorf("expected transporter name Alice, got %s", trip.TransporterName)
	}
	if trip.Status != model.TripStatusActive {
		t.Errorf("expected active status, got %s", trip.Status)
	}
}

func TestTripCreate_MissingRequiredFields(t *testing.T) {
	created := false
	repo := &mockTripRepository{
		createFunc: func(ctx context.Context, trip *model.Trip) error {
			created = true
			return nil
		},
	}
	service := newTestService(repo)

	input := validCreate()
	input.FromLocation = ""
	input.ToLocation = ""

	_, err := service.Create(context.Background(), input, &model.User{ID: "user-1"})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
	if len(appErr.Details) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(appErr.Details))
	}
	if created {
		t.Error("expected no repository write on validation failure")
	}
}

func TestTripGet_NotFound(t *testing.T) {
	service := newTestService(&mockTripRepository{})

	_, err := service.Get(context.Background(), "missing")
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestTripUpdate_ForbiddenForNonOwner(t *testing.T) {
	updated := false
	repo := &mockTripRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Trip, error) {
			return &model.Trip{ID: id, TransporterID: "owner"}, nil
		},
		updateFunc: func(ctx context.Context, id string, trip *model.Trip) error {
			updated = true
			return nil
		},
	}
	service := newTestService(repo)

	input := &model.TripUpdate{
		FromLocation:  "Paris",
		ToLocation:    "Casablanca",
		DepartureDate: time.Now().Add(24 * time.Hour),
	}
	_, err := service.Update(context.Background(), "trip-1", input, &model.User{ID: "intruder"})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected %s, got %s", apperrors.CodeForbidden, appErr.Code)
	}
	if updated {
		t.Error("expected no repository write for a foreign trip")
	}
}

func TestTripUpdate_RejectsUnknownStatus(t *testing.T) {
	service := newTestService(&mockTripRepository{})

	input := &model.TripUpdate{
		FromLocation:  "Paris",
		ToLocation:    "Casablanca",
		DepartureDate: time.Now().Add(24 * time.Hour),
		Status:        "archived",
	}
	_, err := service.Update(context.Background(), "trip-1", input, &model.User{ID: "owner"})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestTripUpdate_ChangesStatus(t *testing.T) {
	repo := &mockTripRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Trip, error) {
			return &model.Trip{ID: id, TransporterID: "owner", Status: model.TripStatusActive}, nil
		},
	}
	service := newTestService(repo)

	input := &model.TripUpdate{
		FromLocation:  "Paris",
		ToLocation:    "Casablanca",
		DepartureDate: time.Now().Add(24 * time.Hour),
		Status:        model.TripStatusCompleted,
	}
	trip, err := service.Update(context.Background(), "trip-1", input, &model.User{ID: "owner"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.Status != model.TripStatusCompleted {
		t.Errorf("expected completed status, got %s", trip.Status)
	}
}

func TestTripDelete_ForbiddenForNonOwner(t *testing.T) {
	deleted := false
	repo := &mockTripRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Trip, error) {
			return &model.Trip{ID: id, TransporterID: "owner"}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	service := newTestService(repo)

	err := service.Delete(context.Background(), "trip-1", &model.User{ID: "intruder"})
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected %s, got %s", apperrors.CodeForbidden, appErr.Code)
	}
	if deleted {
		t.Error("expected no delete for a foreign trip")
	}
}

func TestTripSearch_PassesQueryThrough(t *testing.T) {
	var captured store.TripSearch
	repo := &mockTripRepository{
		searchFunc: func(ctx context.Context, query store.TripSearch) ([]*model.Trip, error) {
			captured = query
			return []*model.Trip{{ID: "trip-1"}}, nil
		},
	}
	service := newTestService(repo)

	date := time.Now().Add(24 * time.Hour)
	trips, err := service.Search(context.Background(), store.TripSearch{
		FromLocation:  "Paris",
		ToLocation:    "Casablanca",
		DepartureDate: &date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 {
		t.Errorf("expected 1 trip, got %d", len(trips))
	}
	if captured.FromLocation != "Paris" || captured.ToLocation != "Casablanca" || captured.DepartureDate == nil {
		t.Errorf("query not passed through: %+v", captured)
	}
}
