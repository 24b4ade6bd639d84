package model

import "time"

type NotificationType string

const (
	NotificationTypeBookingRequest   NotificationType = "booking_request"
	NotificationTypeBookingConfirmed NotificationType = "booking_confirmed"
	NotificationTypeTripUpdate       NotificationType = "trip_update"
)

// Notification is written only as a side effect of booking creation or a
// booking status change. Only the read flag is ever mutated, and only by
// the target user.
type Notification struct {
	ID        string           `json:"id" bson:"_id"`
	UserID    string           `json:"user_id" bson:"user_id"`
	Title     string           `json:"title" bson:"title"`
	Message   string           `json:"message" bson:"message"`
	Type      NotificationType `json:"type" bson:"type"`
	Read      bool             `json:"read" bson:"read"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}
