package model

import "time"

type BookingType string

const (
	BookingTypeSeat   BookingType = "seat"
	BookingTypeParcel BookingType = "parcel"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking denormalizes the client's name at creation time, same as the
// transporter name on Trip.
type Booking struct {
	ID          string        `json:"id" bson:"_id"`
	TripID      string        `json:"trip_id" bson:"trip_id"`
	ClientID    string        `json:"client_id" bson:"client_id"`
	ClientName  string        `json:"client_name" bson:"client_name"`
	BookingType BookingType   `json:"booking_type" bson:"booking_type"`
	Quantity    float64       `json:"quantity" bson:"quantity"`
	TotalPrice  float64       `json:"total_price" bson:"total_price"`
	Status      BookingStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

// BookingCreate is the request body for creating a booking. Quantity is a
// seat count for type "seat" and kilograms for type "parcel".
type BookingCreate struct {
	TripID      string      `json:"trip_id" validate:"required"`
	BookingType BookingType `json:"booking_type" validate:"required,oneof=seat parcel"`
	Quantity    float64     `json:"quantity" validate:"required,gt=0"`
}

// BookingStatusUpdate rejects anything outside the booking status enum.
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
