package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics shared between StayHub services.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Event types carried in the CloudEvent envelope.
const (
	BookingRequested = "booking.requested"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"

	PaymentCompleted = "payment.completed"
	PaymentRefunded  = "payment.refunded"
)

// BookingRequestedEvent is published when a new booking is created.
type BookingRequestedEvent struct {
	BookingID        uuid.UUID  `json:"booking_id"`
	BookingNumber    string     `json:"booking_number"`
	UserID           uuid.UUID  `json:"user_id"`
	HotelID          uuid.UUID  `json:"hotel_id"`
	RoomID           *uuid.UUID `json:"room_id,omitempty"`
	CheckIn          time.Time  `json:"check_in"`
	CheckOut         time.Time  `json:"check_out"`
	Nights           int        `json:"nights"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	Currency         string     `json:"currency"`
	OccurredAt       time.Time  `json:"occurred_at"`
}

// BookingConfirmedEvent is published when a booking transitions to confirmed.
type BookingConfirmedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	UserID        uuid.UUID `json:"user_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	CancelledBy   uuid.UUID `json:"cancelled_by"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingCompletedEvent is published when a stay is marked completed.
type BookingCompletedEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	BookingNumber    string    `json:"booking_number"`
	UserID           uuid.UUID `json:"user_id"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Currency         string    `json:"currency"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// PaymentCompletedEvent is published (or consumed from an external payment
// service) when a payment for a booking succeeds.
type PaymentCompletedEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	UserID        uuid.UUID `json:"user_id"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentRefundedEvent is published when a payment is refunded.
type PaymentRefundedEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	AmountCents int64     `json:"amount_cents"`
	OccurredAt  time.Time `json:"occurred_at"`
}
