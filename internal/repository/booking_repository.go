package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	bookingDomain "github.com/stayhub/service-booking/internal/domain/booking"
	"github.com/stayhub/service-booking/internal/pkg/domain"
)

// exclusionViolation is the Postgres error code raised by the no-overbooking
// exclusion constraint.
const exclusionViolation = "23P01"

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookingNumber    string     `gorm:"uniqueIndex;not null;size:20"`
	UserID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	HotelID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	RoomID           *uuid.UUID `gorm:"type:uuid;index"`
	CheckIn          time.Time  `gorm:"type:date;not null"`
	CheckOut         time.Time  `gorm:"type:date;not null"`
	Guests           int        `gorm:"not null"`
	Nights           int        `gorm:"not null"`
	RoomType         string     `gorm:"not null;size:20"`
	TotalAmountCents int64      `gorm:"not null"`
	Currency         string     `gorm:"not null;size:3;default:'USD'"`
	Status           string     `gorm:"not null;size:20;index"`
	PaymentStatus    string     `gorm:"not null;size:20"`
	GuestName        string     `gorm:"not null;size:200;index"`
	GuestEmail       string     `gorm:"not null;size:200;index"`
	GuestPhone       string     `gorm:"size:50"`
	SpecialRequests  string     `gorm:"size:500"`
	CancelReason     string     `gorm:"size:500"`
	CancelledAt      *time.Time `gorm:""`
	Version          int64      `gorm:"not null;default:1"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByUserID retrieves bookings for a specific user with pagination,
// optionally restricted to one status.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *bookingDomain.BookingStatus, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find user bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindOverlapping retrieves active bookings whose [check_in, check_out)
// interval intersects the given one, on the same room or, when roomID is
// nil, the same hotel's generic inventory.
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, hotelID uuid.UUID, roomID *uuid.UUID, checkIn, checkOut time.Time) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Where("status IN ?", bookingDomain.ActiveStatuses()).
		Where("check_in < ? AND ? < check_out", checkOut, checkIn)

	if roomID != nil {
		query = query.Where("room_id = ?", *roomID)
	} else {
		query = query.Where("room_id IS NULL")
	}

	var models []BookingModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return toDomainBookings(models)
}

// FindDeparted retrieves confirmed bookings whose check-out is at or before
// the given instant.
func (r *GormBookingRepository) FindDeparted(ctx context.Context, before time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(bookingDomain.StatusConfirmed)).
		Where("check_out <= ?", before).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find departed bookings: %w", err)
	}

	return toDomainBookings(models)
}

// ListAll retrieves bookings with pagination and optional filters (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.GuestSearch != "" {
		pattern := "%" + filter.GuestSearch + "%"
		query = query.Where("guest_name ILIKE ? OR guest_email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// SumRevenueCents returns the summed totals of confirmed and completed
// bookings (admin).
func (r *GormBookingRepository) SumRevenueCents(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("COALESCE(SUM(total_amount_cents), 0)").
		Where("status IN ?", []string{string(bookingDomain.StatusConfirmed), string(bookingDomain.StatusCompleted)}).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

// Save persists a new booking. A violation of the no-overbooking exclusion
// constraint surfaces as a conflict.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
			return domain.NewConflictError("room is not available for the selected dates")
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"payment_status": model.PaymentStatus,
			"cancel_reason":  model.CancelReason,
			"cancelled_at":   model.CancelledAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	guest := bk.Guest()
	return &BookingModel{
		ID:               bk.ID(),
		BookingNumber:    bk.BookingNumber(),
		UserID:           bk.UserID(),
		HotelID:          bk.HotelID(),
		RoomID:           bk.RoomID(),
		CheckIn:          bk.CheckIn(),
		CheckOut:         bk.CheckOut(),
		Guests:           bk.Guests(),
		Nights:           bk.Nights(),
		RoomType:         string(bk.RoomType()),
		TotalAmountCents: bk.TotalAmountCents(),
		Currency:         bk.Currency(),
		Status:           string(bk.Status()),
		PaymentStatus:    string(bk.PaymentStatus()),
		GuestName:        guest.Name,
		GuestEmail:       guest.Email,
		GuestPhone:       guest.Phone,
		SpecialRequests:  bk.SpecialRequests(),
		CancelReason:     bk.CancelReason(),
		CancelledAt:      bk.CancelledAt(),
		Version:          bk.Version(),
		CreatedAt:        bk.CreatedAt(),
		UpdatedAt:        bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := bookingDomain.ParsePaymentStatus(m.PaymentStatus)
	if err != nil {
		return nil, err
	}

	roomType, err := bookingDomain.ParseRoomType(m.RoomType)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.BookingNumber,
		m.UserID,
		m.HotelID,
		m.RoomID,
		bookingDomain.DateOf(m.CheckIn),
		bookingDomain.DateOf(m.CheckOut),
		m.Guests,
		m.Nights,
		roomType,
		m.TotalAmountCents,
		m.Currency,
		status,
		paymentStatus,
		bookingDomain.GuestContact{Name: m.GuestName, Email: m.GuestEmail, Phone: m.GuestPhone},
		m.SpecialRequests,
		m.CancelReason,
		m.CancelledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
