package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/stayhub/service-booking/internal/domain/booking"
	paymentDomain "github.com/stayhub/service-booking/internal/domain/payment"
	"github.com/stayhub/service-booking/internal/pkg/auth"
	"github.com/stayhub/service-booking/internal/pkg/domain"
	"github.com/stayhub/service-booking/internal/pkg/events"
	"github.com/stayhub/service-booking/internal/pkg/kafka"
)

// ProcessPaymentRequest holds the data needed to pay for a booking.
type ProcessPaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Method    string    `json:"method"`
}

// PaymentDTO is the response representation of a payment.
type PaymentDTO struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	UserID        uuid.UUID `json:"user_id"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentService orchestrates payment use cases. Charges settle the exact
// booking total; amounts never come from the client.
type PaymentService struct {
	payments   paymentDomain.PaymentRepository
	bookings   bookingDomain.BookingRepository
	gateway    paymentDomain.Gateway
	bookingSvc *BookingService
	producer   EventPublisher
	logger     *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	payments paymentDomain.PaymentRepository,
	bookings bookingDomain.BookingRepository,
	gateway paymentDomain.Gateway,
	bookingService *BookingService,
	producer EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:   payments,
		bookings:   bookings,
		gateway:    gateway,
		bookingSvc: bookingService,
		producer:   producer,
		logger:     logger,
	}
}

// ProcessPayment charges the booking total and, on success, confirms the
// booking.
func (s *PaymentService) ProcessPayment(ctx context.Context, identity *auth.Identity, req ProcessPaymentRequest) (*PaymentDTO, error) {
	bk, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if bk.UserID() != identity.UserID {
		return nil, domain.NewNotFoundError("Booking", req.BookingID.String())
	}
	if bk.Status() != bookingDomain.StatusPending {
		return nil, domain.NewInvalidStateError(string(bk.Status()), string(bookingDomain.StatusConfirmed))
	}

	method, err := paymentDomain.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	p, err := paymentDomain.NewPayment(bk.ID(), identity.UserID, bk.TotalAmountCents(), bk.Currency(), method)
	if err != nil {
		return nil, err
	}
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}

	transactionID, chargeErr := s.gateway.Charge(ctx, p)
	if chargeErr != nil {
		s.recordFailedCharge(ctx, p, bk, chargeErr)
		return nil, domain.NewValidationError(fmt.Sprintf("payment failed: %v", chargeErr))
	}

	if err := p.MarkCompleted(transactionID); err != nil {
		return nil, err
	}
	p.IncrementVersion()
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.bookingSvc.ConfirmBooking(ctx, bk.ID()); err != nil {
		return nil, err
	}

	evt := events.PaymentCompletedEvent{
		PaymentID:     p.ID(),
		BookingID:     bk.ID(),
		UserID:        identity.UserID,
		AmountCents:   p.AmountCents(),
		Currency:      p.Currency(),
		TransactionID: transactionID,
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicPaymentEvents, events.PaymentCompleted, evt)

	result := toPaymentDTO(p)
	return &result, nil
}

// RefundPayment refunds a completed payment on a cancelled booking.
func (s *PaymentService) RefundPayment(ctx context.Context, identity *auth.Identity, paymentID uuid.UUID) (*PaymentDTO, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && !p.IsOwnedBy(identity.UserID) {
		return nil, domain.NewNotFoundError("Payment", paymentID.String())
	}

	bk, err := s.bookings.FindByID(ctx, p.BookingID())
	if err != nil {
		return nil, err
	}
	if bk.Status() != bookingDomain.StatusCancelled {
		return nil, domain.NewInvalidStateError(string(bk.Status()), string(bookingDomain.StatusCancelled))
	}
	// Only completed payments hold captured money; reject before the gateway
	// is asked to return anything.
	if !p.CanBeRefunded() {
		return nil, domain.NewInvalidStateError(string(p.Status()), string(paymentDomain.StatusRefunded))
	}

	if err := s.gateway.Refund(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to refund payment: %w", err)
	}

	if err := p.MarkRefunded(); err != nil {
		return nil, err
	}
	p.IncrementVersion()
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	if err := s.bookingSvc.MarkBookingRefunded(ctx, bk.ID()); err != nil {
		return nil, err
	}

	evt := events.PaymentRefundedEvent{
		PaymentID:   p.ID(),
		BookingID:   bk.ID(),
		AmountCents: p.AmountCents(),
		OccurredAt:  time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicPaymentEvents, events.PaymentRefunded, evt)

	result := toPaymentDTO(p)
	return &result, nil
}

// GetPayment retrieves a single payment. Non-admin callers only see their
// own payments.
func (s *PaymentService) GetPayment(ctx context.Context, identity *auth.Identity, paymentID uuid.UUID) (*PaymentDTO, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && !p.IsOwnedBy(identity.UserID) {
		return nil, domain.NewNotFoundError("Payment", paymentID.String())
	}

	result := toPaymentDTO(p)
	return &result, nil
}

// GetPaymentHistory retrieves the authenticated user's payments, newest
// first.
func (s *PaymentService) GetPaymentHistory(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[PaymentDTO], error) {
	payments, total, err := s.payments.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// --- Helpers ---

// recordFailedCharge keeps the failed attempt on record; failures never
// abort the request flow beyond the declined error itself.
func (s *PaymentService) recordFailedCharge(ctx context.Context, p *paymentDomain.Payment, bk *bookingDomain.Booking, chargeErr error) {
	if err := p.MarkFailed(chargeErr.Error()); err == nil {
		p.IncrementVersion()
		if err := s.payments.Update(ctx, p); err != nil {
			s.logger.Error("failed to record failed payment", zap.Error(err))
		}
	}

	if err := bk.MarkPaymentFailed(); err == nil {
		bk.IncrementVersion()
		if err := s.bookings.Update(ctx, bk); err != nil {
			s.logger.Error("failed to record booking payment failure", zap.Error(err))
		}
	}
}

func toPaymentDTO(p *paymentDomain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		UserID:        p.UserID(),
		AmountCents:   p.AmountCents(),
		Currency:      p.Currency(),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		FailureReason: p.FailureReason(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func (s *PaymentService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
