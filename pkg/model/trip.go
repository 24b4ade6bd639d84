package model

import "time"

type TripStatus string

const (
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip denormalizes the transporter's name at creation time. It is never
// recomputed, so it can drift from the live user record.
//
// The capacity fields are static by default: bookings check against them
// but do not decrement them. See the strict-capacity mode in the booking
// service for the corrected variant.
type Trip struct {
	ID                string     `json:"id" bson:"_id"`
	TransporterID     string     `json:"transporter_id" bson:"transporter_id"`
	TransporterName   string     `json:"transporter_name" bson:"transporter_name"`
	FromLocation      string     `json:"from_location" bson:"from_location"`
	ToLocation        string     `json:"to_location" bson:"to_location"`
	DepartureDate     time.Time  `json:"departure_date" bson:"departure_date"`
	AvailableSeats    int        `json:"available_seats" bson:"available_seats"`
	AvailableWeightKg float64    `json:"available_weight_kg" bson:"available_weight_kg"`
	PricePerSeat      float64    `json:"price_per_seat" bson:"price_per_seat"`
	PricePerKg        float64    `json:"price_per_kg" bson:"price_per_kg"`
	Notes             string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Status            TripStatus `json:"status" bson:"status"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
}

// TripCreate is the request body for creating a trip. Numeric fields are
// accepted as typed with no range constraints.
type TripCreate struct {
	FromLocation      string    `json:"from_location" validate:"required"`
	ToLocation        string    `json:"to_location" validate:"required"`
	DepartureDate     time.Time `json:"departure_date" validate:"required"`
	AvailableSeats    int       `json:"available_seats"`
	AvailableWeightKg float64   `json:"available_weight_kg"`
	PricePerSeat      float64   `json:"price_per_seat"`
	PricePerKg        float64   `json:"price_per_kg"`
	Notes             string    `json:"notes"`
}

// TripUpdate replaces the mutable fields of a trip. Status, when given,
// must be one of the trip status values.
type TripUpdate struct {
	FromLocation      string     `json:"from_location" validate:"required"`
	ToLocation        string     `json:"to_location" validate:"required"`
	DepartureDate     time.Time  `json:"departure_date" validate:"required"`
	AvailableSeats    int        `json:"available_seats"`
	AvailableWeightKg float64    `json:"available_weight_kg"`
	PricePerSeat      float64    `json:"price_per_seat"`
	PricePerKg        float64    `json:"price_per_kg"`
	Notes             string     `json:"notes"`
	Status            TripStatus `json:"status" validate:"omitempty,oneof=active completed cancelled"`
}
