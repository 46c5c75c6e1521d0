package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/service-booking/internal/pkg/domain"
)

// Method is the payment instrument used to settle a booking.
type Method string

const (
	MethodCard         Method = "card"
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
)

// IsValid checks whether the method is a known value.
func (m Method) IsValid() bool {
	switch m {
	case MethodCard, MethodBankTransfer, MethodCash:
		return true
	}
	return false
}

// ParseMethod converts a string into a Method, defaulting to card.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return MethodCard, nil
	}
	m := Method(s)
	if !m.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid payment method: %s", s))
	}
	return m, nil
}

// Status is the lifecycle state of a payment attempt.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusRefunded},
	StatusFailed:    {},
	StatusRefunded:  {},
}

// CanTransitionTo checks whether transitioning to the target status is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// Payment is the aggregate root for a single settlement attempt against a
// booking. A booking may accumulate several failed payments before one
// completes.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	userID        uuid.UUID
	amountCents   int64
	currency      string
	method        Method
	status        Status
	transactionID string
	failureReason string
	version       int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPayment creates a pending payment for a booking.
func NewPayment(bookingID, userID uuid.UUID, amountCents int64, currency string, method Method) (*Payment, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if amountCents <= 0 {
		return nil, domain.NewValidationError("payment amount must be positive")
	}
	if currency == "" {
		return nil, domain.NewValidationError("currency is required")
	}
	if !method.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid payment method: %s", method))
	}

	now := time.Now().UTC()
	return &Payment{
		id:          uuid.New(),
		bookingID:   bookingID,
		userID:      userID,
		amountCents: amountCents,
		currency:    currency,
		method:      method,
		status:      StatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPayment rebuilds a Payment from persistence data (no validation).
func ReconstructPayment(
	id uuid.UUID,
	bookingID uuid.UUID,
	userID uuid.UUID,
	amountCents int64,
	currency string,
	method Method,
	status Status,
	transactionID string,
	failureReason string,
	version int64,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		userID:        userID,
		amountCents:   amountCents,
		currency:      currency,
		method:        method,
		status:        status,
		transactionID: transactionID,
		failureReason: failureReason,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

func (p *Payment) ID() uuid.UUID         { return p.id }
func (p *Payment) BookingID() uuid.UUID  { return p.bookingID }
func (p *Payment) UserID() uuid.UUID     { return p.userID }
func (p *Payment) AmountCents() int64    { return p.amountCents }
func (p *Payment) Currency() string      { return p.currency }
func (p *Payment) Method() Method        { return p.method }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) FailureReason() string { return p.failureReason }
func (p *Payment) Version() int64        { return p.version }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time  { return p.updatedAt }

// IsOwnedBy reports whether the payment belongs to the given user.
func (p *Payment) IsOwnedBy(userID uuid.UUID) bool {
	return p.userID == userID
}

// CanBeRefunded reports whether the payment holds captured money that a
// refund could return. Only completed payments qualify.
func (p *Payment) CanBeRefunded() bool {
	return p.status.CanTransitionTo(StatusRefunded)
}

// --- Behavior ---

// MarkCompleted records a successful charge with the gateway's transaction
// reference.
func (p *Payment) MarkCompleted(transactionID string) error {
	if !p.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(p.status), string(StatusCompleted))
	}
	p.status = StatusCompleted
	p.transactionID = transactionID
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkFailed records a failed charge attempt.
func (p *Payment) MarkFailed(reason string) error {
	if !p.status.CanTransitionTo(StatusFailed) {
		return domain.NewInvalidStateError(string(p.status), string(StatusFailed))
	}
	p.status = StatusFailed
	p.failureReason = reason
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkRefunded records a refund of a completed payment.
func (p *Payment) MarkRefunded() error {
	if !p.status.CanTransitionTo(StatusRefunded) {
		return domain.NewInvalidStateError(string(p.status), string(StatusRefunded))
	}
	p.status = StatusRefunded
	p.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (p *Payment) IncrementVersion() {
	p.version++
	p.updatedAt = time.Now().UTC()
}
