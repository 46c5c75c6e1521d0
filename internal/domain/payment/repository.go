package payment

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// FindByID retrieves a payment by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByBookingID retrieves payments made against a booking, newest first.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*Payment, error)

	// FindByUserID retrieves a user's payments, newest first, paginated.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Payment, int64, error)

	// Save persists a new payment.
	Save(ctx context.Context, payment *Payment) error

	// Update persists changes to an existing payment with optimistic locking.
	Update(ctx context.Context, payment *Payment) error
}
