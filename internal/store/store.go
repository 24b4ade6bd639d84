// Package store holds the Mongo repositories for the four collections:
// users, trips, bookings and notifications. Every document is standalone;
// relations are by id and looked up at request time, with no
// referential-integrity enforcement at this level.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("document not found")

const (
	UsersCollection         = "users"
	TripsCollection         = "trips"
	BookingsCollection      = "bookings"
	NotificationsCollection = "notifications"
)

// opTimeout bounds a single store operation, respecting a tighter deadline
// already present on the context.
func opTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

// now returns the creation timestamp for new documents.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
