package bookings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mounti/internal/events"
	"mounti/internal/store"
	apperrors "mounti/pkg/errors"
	"mounti/pkg/logger"
	"mounti/pkg/model"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, input *model.BookingCreate, actor *model.User) (*model.Booking, error)
	Get(ctx context.Context, id string, actor *model.User) (*model.Booking, error)
	ListMine(ctx context.Context, actor *model.User) ([]*model.Booking, error)
	ListForTrip(ctx context.Context, tripID string, actor *model.User) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, input *model.BookingStatusUpdate, actor *model.User) (*model.Booking, error)
}

type bookingService struct {
	bookings      store.BookingRepository
	trips         store.TripRepository
	notifications store.NotificationRepository
	validator     *Validator
	publisher     *events.Publisher
	// strictCapacity reserves capacity atomically at booking time instead
	// of only checking the advertised numbers.
	strictCapacity bool
	log            *logger.Logger
}

func NewService(
	bookings store.BookingRepository,
	trips store.TripRepository,
	notifications store.NotificationRepository,
	validator *Validator,
	publisher *events.Publisher,
	strictCapacity bool,
	log *logger.Logger,
) Service {
	return &bookingService{
		bookings:       bookings,
		trips:          trips,
		notifications:  notifications,
		validator:      validator,
		publisher:      publisher,
		strictCapacity: strictCapacity,
		log:            log,
	}
}

func (s *bookingService) Create(ctx context.Context, input *model.BookingCreate, actor *model.User) (*model.Booking, error) {
	if err := s.validator.ValidateCreate(input); err != nil {
		return nil, validationError(err)
	}

	trip, err := s.trips.FindByID(ctx, input.TripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Trip", input.TripID)
		}
		return nil, apperrors.Internal("Failed to retrieve trip", err)
	}

	if err := s.reserveCapacity(ctx, trip, input.BookingType, input.Quantity); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ID:          uuid.New().String(),
		TripID:      trip.ID,
		ClientID:    actor.ID,
		ClientName:  actor.Name,
		BookingType: input.BookingType,
		Quantity:    input.Quantity,
		TotalPrice:  totalPrice(trip, input.BookingType, input.Quantity),
		Status:      model.BookingStatusPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking", "trip_id", trip.ID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.notify(ctx, &model.Notification{
		ID:     uuid.New().String(),
		UserID: trip.TransporterID,
		Title:  "New Booking Request",
		Message: fmt.Sprintf("%s wants to book %s %s for your trip from %s to %s",
			actor.Name,
			formatQuantity(input.BookingType, input.Quantity),
			quantityUnit(input.BookingType),
			trip.FromLocation,
			trip.ToLocation,
		),
		Type: model.NotificationTypeBookingRequest,
	})
	s.publisher.BookingCreated(ctx, booking)

	s.log.Info("Booking created",
		"booking_id", booking.ID,
		"trip_id", trip.ID,
		"client_id", actor.ID,
		"booking_type", booking.BookingType,
	)
	return booking, nil
}

// reserveCapacity rejects bookings that exceed the trip's advertised
// capacity. In strict mode the remaining capacity is also decremented in
// the same guarded update, so concurrent bookings cannot oversell.
func (s *bookingService) reserveCapacity(ctx context.Context, trip *model.Trip, bookingType model.BookingType, quantity float64) error {
	if !s.strictCapacity {
		if bookingType == model.BookingTypeSeat && float64(trip.AvailableSeats) < quantity {
			return apperrors.CapacityExceeded("Not enough seats available")
		}
		if bookingType == model.BookingTypeParcel && trip.AvailableWeightKg < quantity {
			return apperrors.CapacityExceeded("Not enough weight capacity available")
		}
		return nil
	}

	ok, err := s.trips.DecrementCapacity(ctx, trip.ID, bookingType, quantity)
	if err != nil {
		s.log.Error("Failed to reserve trip capacity", "trip_id", trip.ID, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}
	if !ok {
		if bookingType == model.BookingTypeSeat {
			return apperrors.CapacityExceeded("Not enough seats available")
		}
		return apperrors.CapacityExceeded("Not enough weight capacity available")
	}
	return nil
}

func totalPrice(trip *model.Trip, bookingType model.BookingType, quantity float64) float64 {
	if bookingType == model.BookingTypeSeat {
		return quantity * trip.PricePerSeat
	}
	return quantity * trip.PricePerKg
}

func formatQuantity(bookingType model.BookingType, quantity float64) string {
	if bookingType == model.BookingTypeSeat {
		return strconv.Itoa(int(quantity))
	}
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}

func quantityUnit(bookingType model.BookingType) string {
	if bookingType == model.BookingTypeSeat {
		return "seat(s)"
	}
	return "kg"
}

func (s *bookingService) Get(ctx context.Context, id string, actor *model.User) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if booking.ClientID == actor.ID {
		return booking, nil
	}

	// The transporter of the booked trip may also see it. Everyone else
	// gets the same answer as a missing booking.
	trip, err := s.trips.FindByID(ctx, booking.TripID)
	if err == nil && trip.TransporterID == actor.ID {
		return booking, nil
	}
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (s *bookingService) ListMine(ctx context.Context, actor *model.User) ([]*model.Booking, error) {
	bookings, err := s.bookings.FindByClient(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to list bookings", "client_id", actor.ID, "error", err)
		return nil, apperrors.Internal("Failed to list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListForTrip(ctx context.Context, tripID string, actor *model.User) ([]*model.Booking, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Trip", tripID)
		}
		return nil, apperrors.Internal("Failed to retrieve trip", err)
	}
	// A trip owned by someone else is indistinguishable from a missing one.
	if trip.TransporterID != actor.ID {
		return nil, apperrors.NotFoundWithID("Trip", tripID)
	}

	bookings, err := s.bookings.FindByTrip(ctx, tripID)
	if err != nil {
		s.log.Error("Failed to list trip bookings", "trip_id", tripID, "error", err)
		return nil, apperrors.Internal("Failed to list trip bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, input *model.BookingStatusUpdate, actor *model.User) (*model.Booking, error) {
	if err := s.validator.ValidateStatusUpdate(input); err != nil {
		return nil, validationError(err)
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	trip, err := s.trips.FindByID(ctx, booking.TripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Trip", booking.TripID)
		}
		return nil, apperrors.Internal("Failed to retrieve trip", err)
	}
	if trip.TransporterID != actor.ID {
		return nil, apperrors.Forbidden("You can only update bookings for your own trips")
	}

	if err := s.bookings.UpdateStatus(ctx, id, input.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.log.Error("Failed to update booking status", "booking_id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}
	booking.Status = input.Status

	s.notify(ctx, &model.Notification{
		ID:      uuid.New().String(),
		UserID:  booking.ClientID,
		Title:   "Booking Status Updated",
		Message: fmt.Sprintf("Your booking has been %s", input.Status),
		Type:    model.NotificationTypeBookingConfirmed,
	})
	s.publisher.BookingStatusChanged(ctx, booking)

	s.log.Info("Booking status updated",
		"booking_id", id,
		"status", input.Status,
		"transporter_id", actor.ID,
	)
	return booking, nil
}

// notify is best-effort: a failed notification write never fails the
// booking operation that triggered it.
func (s *bookingService) notify(ctx context.Context, notification *model.Notification) {
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.log.Error("Failed to create notification",
			"user_id", notification.UserID,
			"type", notification.Type,
			"error", err,
		)
	}
}

func validationError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return apperrors.Validation("Booking validation failed", ve.Fields)
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}
