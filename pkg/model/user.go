package model

import "time"

// User is created on first successful session exchange. The email is the
// permanent identity key; the record is immutable afterwards.
type User struct {
	ID            string    `json:"id" bson:"_id"`
	Email         string    `json:"email" bson:"email"`
	Name          string    `json:"name" bson:"name"`
	Picture       string    `json:"picture,omitempty" bson:"picture,omitempty"`
	IsTransporter bool      `json:"is_transporter" bson:"is_transporter"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
