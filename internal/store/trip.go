package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"mounti/pkg/config"
	"mounti/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TripSearch filters the public trip listing. Location filters are
// case-insensitive substring matches; DepartureDate matches any trip
// departing within that calendar day.
type TripSearch struct {
	FromLocation  string
	ToLocation    string
	DepartureDate *time.Time
}

type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	FindByID(ctx context.Context, id string) (*model.Trip, error)
	FindByTransporter(ctx context.Context, transporterID string) ([]*model.Trip, error)
	Search(ctx context.Context, query TripSearch) ([]*model.Trip, error)
	Update(ctx context.Context, id string, trip *model.Trip) error
	Delete(ctx context.Context, id string) error
	DecrementCapacity(ctx context.Context, id string, bookingType model.BookingType, quantity float64) (bool, error)
}

type mongoTripRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTripRepository(cfg *config.Config) TripRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTripRepository{
		cfg:        cfg,
		collection: db.Collection(TripsCollection),
	}
}

func (r *mongoTripRepository) Create(ctx context.Context, trip *model.Trip) error {
	ctx, cancel := opTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	trip.CreatedAt = now()
	if _, err := r.collection.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *mongoTripRepository) FindByID(ctx context.Context, id string) (*model.Trip, error) {
	ctx, cancel := opTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var trip model.Trip
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	return &trip, nil
}

func (r *mongoTripRepository) FindByTransporter(ctx context.Context, transporterID string) ([]*model.Trip, error) {
	return r.findAll(ctx,
		bson.M{"transporter_id": transporterID},
		options.Find().SetSort(bson.D{{Key: "departure_date", Value: -1}}),
	)
}

func (r *mongoTripRepository) Search(ctx context.Context, query TripSearch) ([]*model.Trip, error) {
	return r.findAll(ctx,
		buildTripSearchFilter(query),
		options.Find().SetSort(bson.D{{Key: "departure_date", Value: 1}}),
	)
}

func (r *mongoTripRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Trip, error) {
	ctx, cancel := opTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []*model.Trip{}
	if err = cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, nil
}

// buildTripSearchFilter only ever matches active trips. Location filters
// use quoted case-insensitive regexes; the date filter is a half-open
// [00:00, 24:00) window in the supplied date's location.
func buildTripSearchFilter(query TripSearch) bson.M {
	filter := bson.M{"status": model.TripStatusActive}

	if query.FromLocation != "" {
		filter["from_location"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(query.FromLocation),
			Options: "i",
		}
	}
	if query.ToLocation != "" {
		filter["to_location"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(query.ToLocation),
			Options: "i",
		}
	}
	if query.DepartureDate != nil {
		dayStart, dayEnd := dayWindow(*query.DepartureDate)
		filter["departure_date"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayEnd,
		}
	}

	return filter
}

func dayWindow(t time.Time) (time.Time, time.Time) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}

func (r *mongoTripRepository) Update(ctx context.Context, id string, trip *model.Trip) error {
	ctx, cancel := opTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"from_location":       trip.FromLocation,
			"to_location":         trip.ToLocation,
			"departure_date":      trip.DepartureDate,
			"available_seats":     trip.AvailableSeats,
			"available_weight_kg": trip.AvailableWeightKg,
			"price_per_seat":      trip.PricePerSeat,
			"price_per_kg":        trip.PricePerKg,
			"notes":               trip.Notes,
			"status":              trip.Status,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoTripRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := opTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementCapacity atomically reserves capacity for a booking in strict
// mode. The guarded filter makes concurrent overbooking impossible: the
// update matches only while enough capacity remains. Returns false when
// the trip exists but has insufficient capacity.
func (r *mongoTripRepository) DecrementCapacity(ctx context.Context, id string, bookingType model.BookingType, quantity float64) (bool, error) {
	ctx, cancel := opTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	field := "available_weight_kg"
	var dec any = -quantity
	if bookingType == model.BookingTypeSeat {
		field = "available_seats"
		dec = -int(quantity)
	}

	filter := bson.M{
		"_id": id,
		field: bson.M{"$gte": quantity},
	}
	update := bson.M{"$inc": bson.M{field: dec}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to reserve trip capacity: %w", err)
	}
	return result.ModifiedCount == 1, nil
}
