package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentDomain "github.com/stayhub/service-booking/internal/domain/payment"
	"github.com/stayhub/service-booking/internal/pkg/domain"
)

// PaymentModel is the GORM model for the payments table.
type PaymentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	AmountCents   int64     `gorm:"not null"`
	Currency      string    `gorm:"not null;size:3"`
	Method        string    `gorm:"not null;size:20"`
	Status        string    `gorm:"not null;size:20;index"`
	TransactionID string    `gorm:"size:50"`
	FailureReason string    `gorm:"size:500"`
	Version       int64     `gorm:"not null;default:1"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PaymentModel) TableName() string {
	return "payments"
}

// GormPaymentRepository is the GORM-based implementation of PaymentRepository.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID retrieves a payment by its unique identifier.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*paymentDomain.Payment, error) {
	var model PaymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Payment", id.String())
		}
		return nil, fmt.Errorf("failed to find payment by ID: %w", err)
	}
	return toDomainPayment(&model)
}

// FindByBookingID retrieves payments made against a booking, newest first.
func (r *GormPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*paymentDomain.Payment, error) {
	var models []PaymentModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find booking payments: %w", err)
	}
	return toDomainPayments(models)
}

// FindByUserID retrieves a user's payments with pagination, newest first.
func (r *GormPaymentRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*paymentDomain.Payment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PaymentModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user payments: %w", err)
	}

	var models []PaymentModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find user payments: %w", err)
	}

	payments, err := toDomainPayments(models)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Save persists a new payment.
func (r *GormPaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	if err := r.db.WithContext(ctx).Create(toPaymentModel(p)).Error; err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

// Update persists changes to an existing payment with optimistic locking.
func (r *GormPaymentRepository) Update(ctx context.Context, p *paymentDomain.Payment) error {
	model := toPaymentModel(p)
	expectedVersion := p.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&PaymentModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"transaction_id": model.TransactionID,
			"failure_reason": model.FailureReason,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("payment was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toPaymentModel(p *paymentDomain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		UserID:        p.UserID(),
		AmountCents:   p.AmountCents(),
		Currency:      p.Currency(),
		Method:        string(p.Method()),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		FailureReason: p.FailureReason(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func toDomainPayment(m *PaymentModel) (*paymentDomain.Payment, error) {
	method, err := paymentDomain.ParseMethod(m.Method)
	if err != nil {
		return nil, err
	}

	return paymentDomain.ReconstructPayment(
		m.ID,
		m.BookingID,
		m.UserID,
		m.AmountCents,
		m.Currency,
		method,
		paymentDomain.Status(m.Status),
		m.TransactionID,
		m.FailureReason,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainPayments(models []PaymentModel) ([]*paymentDomain.Payment, error) {
	payments := make([]*paymentDomain.Payment, len(models))
	for i := range models {
		p, err := toDomainPayment(&models[i])
		if err != nil {
			return nil, err
		}
		payments[i] = p
	}
	return payments, nil
}
