package trips

import (
	"context"
	"errors"

	"mounti/internal/store"
	apperrors "mounti/pkg/errors"
	"mounti/pkg/logger"
	"mounti/pkg/model"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, input *model.TripCreate, actor *model.User) (*model.Trip, error)
	Search(ctx context.Context, query store.TripSearch) ([]*model.Trip, error)
	ListMine(ctx context.Context, actor *model.User) ([]*model.Trip, error)
	Get(ctx context.Context, id string) (*model.Trip, error)
	Update(ctx context.Context, id string, input *model.TripUpdate, actor *model.User) (*model.Trip, error)
	Delete(ctx context.Context, id string, actor *model.User) error
}

type tripService struct {
	trips     store.TripRepository
	validator *Validator
	log       *logger.Logger
}

func NewService(trips store.TripRepository, validator *Validator, log *logger.Logger) Service {
	return &tripService{
		trips:     trips,
		validator: validator,
		log:       log,
	}
}

func (s *tripService) Create(ctx context.Context, input *model.TripCreate, actor *model.User) (*model.Trip, error) {
	if err := s.validator.ValidateCreate(input); err != nil {
		return nil, validationError(err)
	}

	// Transporter name is captured here and never recomputed.
	trip := &model.Trip{
		ID:                uuid.New().String(),
		TransporterID:     actor.ID,
		TransporterName:   actor.Name,
		FromLocation:      input.FromLocation,
		ToLocation:        input.ToLocation,
		DepartureDate:     input.DepartureDate,
		AvailableSeats:    input.AvailableSeats,
		AvailableWeightKg: input.AvailableWeightKg,
		PricePerSeat:      input.PricePerSeat,
		PricePerKg:        input.PricePerKg,
		Notes:             input.Notes,
		Status:            model.TripStatusActive,
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		s.log.Error("Failed to create trip", "error", err)
		return nil, apperrors.Internal("Failed to create trip", err)
	}

	s.log.Info("Trip created",
		"trip_id", trip.ID,
		"transporter_id", trip.TransporterID,
		"from", trip.FromLocation,
		"to", trip.ToLocation,
	)
	return trip, nil
}

func (s *tripService) Search(ctx context.Context, query store.TripSearch) ([]*model.Trip, error) {
	trips, err := s.trips.Search(ctx, query)
	if err != nil {
		s.log.Error("Failed to search trips", "error", err)
		return nil, apperrors.Internal("Failed to search trips", err)
	}
	return trips, nil
}

func (s *tripService) ListMine(ctx context.Context, actor *model.User) ([]*model.Trip, error) {
	trips, err := s.trips.FindByTransporter(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to list trips", "transporter_id", actor.ID, "error", err)
		return nil, apperrors.Internal("Failed to list trips", err)
	}
	return trips, nil
}

func (s *tripService) Get(ctx context.Context, id string) (*model.Trip, error) {
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Trip", id)
		}
		return nil, apperrors.Internal("Failed to retrieve trip", err)
	}
	return trip, nil
}

func (s *tripService) Update(ctx context.Context, id string, input *model.TripUpdate, actor *model.User) (*model.Trip, error) {
	if err := s.validator.ValidateUpdate(input); err != nil {
		return nil, validationError(err)
	}

	trip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.TransporterID != actor.ID {
		return nil, apperrors.Forbidden("You can only update your own trips")
	}

	trip.FromLocation = input.FromLocation
	trip.ToLocation = input.ToLocation
	trip.DepartureDate = input.DepartureDate
	trip.AvailableSeats = input.AvailableSeats
	trip.AvailableWeightKg = input.AvailableWeightKg
	trip.PricePerSeat = input.PricePerSeat
	trip.PricePerKg = input.PricePerKg
	trip.Notes = input.Notes
	if input.Status != "" {
		trip.Status = input.Status
	}

	if err := s.trips.Update(ctx, id, trip); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Trip", id)
		}
		s.log.Error("Failed to update trip", "trip_id", id, "error", err)
		return nil, apperrors.Internal("Failed to update trip", err)
	}

	s.log.Info("Trip updated", "trip_id", id)
	return trip, nil
}

func (s *tripService) Delete(ctx context.Context, id string, actor *model.User) error {
	trip, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if trip.TransporterID != actor.ID {
		return apperrors.Forbidden("You can only delete your own trips")
	}

	if err := s.trips.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFoundWithID("Trip", id)
		}
		s.log.Error("Failed to delete trip", "trip_id", id, "error", err)
		return apperrors.Internal("Failed to delete trip", err)
	}

	s.log.Info("Trip deleted", "trip_id", id)
	return nil
}

func validationError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return apperrors.Validation("Trip validation failed", ve.Fields)
	}
	return apperrors.Validation("Trip validation failed", map[string]any{"error": err.Error()})
}
