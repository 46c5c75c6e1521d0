package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/service-booking/internal/pkg/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Limits enforced at creation time.
const (
	MaxGuests                = 10
	MaxSpecialRequestsLength = 500

	// CancellationWindow is the minimum lead time before check-in for a
	// cancellation to be accepted.
	CancellationWindow = 24 * time.Hour
)

// CurrencyUSD is the only currency StayHub charges in today.
const CurrencyUSD = "USD"

// GuestContact is the contact snapshot denormalized onto a booking at
// creation time. The requester's profile may change later without
// retroactively altering booking records.
type GuestContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id               uuid.UUID
	bookingNumber    string
	userID           uuid.UUID
	hotelID          uuid.UUID
	roomID           *uuid.UUID
	checkIn          time.Time
	checkOut         time.Time
	guests           int
	nights           int
	roomType         RoomType
	totalAmountCents int64
	currency         string
	status           BookingStatus
	paymentStatus    PaymentStatus
	guest            GuestContact
	specialRequests  string
	cancelReason     string
	cancelledAt      *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "BK-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "BK-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=pending and
// paymentStatus=pending. Dates are normalized to UTC calendar dates; the
// total must already be derived from nights × rate × room-type multiplier.
func NewBooking(
	userID uuid.UUID,
	hotelID uuid.UUID,
	roomID *uuid.UUID,
	checkIn time.Time,
	checkOut time.Time,
	guests int,
	roomType RoomType,
	totalAmountCents int64,
	guest GuestContact,
	specialRequests string,
) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if hotelID == uuid.Nil {
		return nil, domain.NewValidationError("hotel ID is required")
	}
	if guest.Name == "" || guest.Email == "" {
		return nil, domain.NewValidationError("guest name and email are required")
	}
	if !roomType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
	}

	checkIn = DateOf(checkIn)
	checkOut = DateOf(checkOut)
	today := DateOf(time.Now())

	if checkIn.Before(today) {
		return nil, domain.NewInvalidDateRangeError("check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return nil, domain.NewInvalidDateRangeError("check-out date must be after check-in date")
	}
	if guests < 1 {
		return nil, domain.NewValidationError("at least 1 guest is required")
	}
	if guests > MaxGuests {
		return nil, domain.NewValidationError(fmt.Sprintf("at most %d guests are allowed", MaxGuests))
	}
	if len(specialRequests) > MaxSpecialRequestsLength {
		return nil, domain.NewValidationError(fmt.Sprintf("special requests cannot exceed %d characters", MaxSpecialRequestsLength))
	}
	if totalAmountCents <= 0 {
		return nil, domain.NewValidationError("total amount must be positive")
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:               uuid.New(),
		bookingNumber:    bookingNumber,
		userID:           userID,
		hotelID:          hotelID,
		roomID:           roomID,
		checkIn:          checkIn,
		checkOut:         checkOut,
		guests:           guests,
		nights:           NightsBetween(checkIn, checkOut),
		roomType:         roomType,
		totalAmountCents: totalAmountCents,
		currency:         CurrencyUSD,
		status:           StatusPending,
		paymentStatus:    PaymentPending,
		guest:            guest,
		specialRequests:  specialRequests,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	userID uuid.UUID,
	hotelID uuid.UUID,
	roomID *uuid.UUID,
	checkIn time.Time,
	checkOut time.Time,
	guests int,
	nights int,
	roomType RoomType,
	totalAmountCents int64,
	currency string,
	status BookingStatus,
	paymentStatus PaymentStatus,
	guest GuestContact,
	specialRequests string,
	cancelReason string,
	cancelledAt *time.Time,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		bookingNumber:    bookingNumber,
		userID:           userID,
		hotelID:          hotelID,
		roomID:           roomID,
		checkIn:          checkIn,
		checkOut:         checkOut,
		guests:           guests,
		nights:           nights,
		roomType:         roomType,
		totalAmountCents: totalAmountCents,
		currency:         currency,
		status:           status,
		paymentStatus:    paymentStatus,
		guest:            guest,
		specialRequests:  specialRequests,
		cancelReason:     cancelReason,
		cancelledAt:      cancelledAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking reference.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// UserID returns the owning user's ID.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// HotelID returns the booked hotel's ID.
func (b *Booking) HotelID() uuid.UUID { return b.hotelID }

// RoomID returns the booked room's ID, or nil when booked against the
// hotel's generic nightly rate.
func (b *Booking) RoomID() *uuid.UUID { return b.roomID }

// CheckIn returns the check-in date (UTC midnight).
func (b *Booking) CheckIn() time.Time { return b.checkIn }

// CheckOut returns the check-out date (UTC midnight).
func (b *Booking) CheckOut() time.Time { return b.checkOut }

// Guests returns the number of guests.
func (b *Booking) Guests() int { return b.guests }

// Nights returns the derived number of nights.
func (b *Booking) Nights() int { return b.nights }

// RoomType returns the booked room type.
func (b *Booking) RoomType() RoomType { return b.roomType }

// TotalAmountCents returns the total price in cents.
func (b *Booking) TotalAmountCents() int64 { return b.totalAmountCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// PaymentStatus returns the current payment status.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// Guest returns the denormalized guest contact snapshot.
func (b *Booking) Guest() GuestContact { return b.guest }

// SpecialRequests returns the free-text special requests.
func (b *Booking) SpecialRequests() string { return b.specialRequests }

// CancelReason returns the cancellation reason, if any.
func (b *Booking) CancelReason() string { return b.cancelReason }

// CancelledAt returns the time the booking was cancelled, or nil.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// ConflictsWith reports whether two bookings contend for the same room (or
// the same hotel when neither names a room) over intersecting dates. Only
// active bookings block.
func (b *Booking) ConflictsWith(other *Booking) bool {
	if !b.status.IsActive() || !other.status.IsActive() {
		return false
	}
	if b.hotelID != other.hotelID {
		return false
	}
	if (b.roomID == nil) != (other.roomID == nil) {
		return false
	}
	if b.roomID != nil && *b.roomID != *other.roomID {
		return false
	}
	return Overlaps(b.checkIn, b.checkOut, other.checkIn, other.checkOut)
}

// Confirm transitions the booking from pending to confirmed.
func (b *Booking) Confirm() error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to cancelled. Cancellation is rejected in
// terminal states and within CancellationWindow of check-in.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if !b.status.CanBeCancelled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	if b.checkIn.Sub(now) < CancellationWindow {
		return domain.NewTooLateError("cannot cancel within 24 hours of check-in")
	}
	cancelledAt := now.UTC()
	b.status = StatusCancelled
	b.cancelReason = reason
	b.cancelledAt = &cancelledAt
	b.updatedAt = cancelledAt
	return nil
}

// Complete transitions the booking from confirmed to completed once the
// stay has ended.
func (b *Booking) Complete() error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	b.status = StatusCompleted
	b.updatedAt = time.Now().UTC()
	return nil
}

// MarkPaid records a successful payment.
func (b *Booking) MarkPaid() error {
	return b.setPaymentStatus(PaymentPaid)
}

// MarkPaymentFailed records a failed payment attempt.
func (b *Booking) MarkPaymentFailed() error {
	return b.setPaymentStatus(PaymentFailed)
}

// MarkRefunded records a refund of a paid booking.
func (b *Booking) MarkRefunded() error {
	return b.setPaymentStatus(PaymentRefunded)
}

func (b *Booking) setPaymentStatus(target PaymentStatus) error {
	if !b.paymentStatus.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.paymentStatus), string(target))
	}
	b.paymentStatus = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
