package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows admin listings.
type ListFilter struct {
	// Status restricts results to one booking status when non-nil.
	Status *BookingStatus

	// GuestSearch is a free-text match against the denormalized guest name
	// and email.
	GuestSearch string
}

// BookingRepository defines the persistence contract for booking aggregates.
// Bookings are never physically deleted; cancellation is a status change.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByNumber retrieves a booking by its human-readable reference.
	FindByNumber(ctx context.Context, number string) (*Booking, error)

	// FindByUserID retrieves bookings belonging to a user, newest first,
	// optionally restricted to one status.
	FindByUserID(ctx context.Context, userID uuid.UUID, status *BookingStatus, page, limit int) ([]*Booking, int64, error)

	// FindOverlapping retrieves active bookings on the same room (or the
	// same hotel when roomID is nil) whose [checkIn, checkOut) interval
	// intersects the given one.
	FindOverlapping(ctx context.Context, hotelID uuid.UUID, roomID *uuid.UUID, checkIn, checkOut time.Time) ([]*Booking, error)

	// FindDeparted retrieves confirmed bookings whose check-out date is at
	// or before the given instant, for the completion sweep.
	FindDeparted(ctx context.Context, before time.Time) ([]*Booking, error)

	// ListAll retrieves bookings with pagination and optional filters (admin).
	ListAll(ctx context.Context, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// SumRevenueCents returns the summed totals of confirmed and completed
	// bookings (admin).
	SumRevenueCents(ctx context.Context) (int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
