package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/stayhub/service-booking/internal/domain/booking"
	hotelDomain "github.com/stayhub/service-booking/internal/domain/hotel"
	"github.com/stayhub/service-booking/internal/pkg/auth"
	"github.com/stayhub/service-booking/internal/pkg/domain"
	"github.com/stayhub/service-booking/internal/pkg/events"
	"github.com/stayhub/service-booking/internal/pkg/kafka"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	HotelID         uuid.UUID  `json:"hotel_id" binding:"required"`
	RoomID          *uuid.UUID `json:"room_id"`
	CheckIn         string     `json:"check_in" binding:"required"`
	CheckOut        string     `json:"check_out" binding:"required"`
	Guests          int        `json:"guests" binding:"required"`
	RoomType        string     `json:"room_type"`
	SpecialRequests string     `json:"special_requests"`
}

// BookingDTO is the response representation of a booking. Stay dates are
// calendar dates, not timestamps.
type BookingDTO struct {
	ID               uuid.UUID                  `json:"id"`
	BookingNumber    string                     `json:"booking_number"`
	UserID           uuid.UUID                  `json:"user_id"`
	HotelID          uuid.UUID                  `json:"hotel_id"`
	RoomID           *uuid.UUID                 `json:"room_id,omitempty"`
	CheckIn          string                     `json:"check_in"`
	CheckOut         string                     `json:"check_out"`
	Guests           int                        `json:"guests"`
	Nights           int                        `json:"nights"`
	RoomType         string                     `json:"room_type"`
	TotalAmountCents int64                      `json:"total_amount_cents"`
	Currency         string                     `json:"currency"`
	Status           string                     `json:"status"`
	PaymentStatus    string                     `json:"payment_status"`
	Guest            bookingDomain.GuestContact `json:"guest"`
	SpecialRequests  string                     `json:"special_requests,omitempty"`
	CancelReason     string                     `json:"cancel_reason,omitempty"`
	CancelledAt      *time.Time                 `json:"cancelled_at,omitempty"`
	Version          int64                      `json:"version"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo     bookingDomain.BookingRepository
	hotels   hotelDomain.HotelRepository
	pricing  bookingDomain.PricingStrategy
	producer EventPublisher
	logger   *zap.Logger
	locks    *keyedMutex
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	hotels hotelDomain.HotelRepository,
	pricing bookingDomain.PricingStrategy,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		hotels:   hotels,
		pricing:  pricing,
		producer: producer,
		logger:   logger,
		locks:    newKeyedMutex(),
	}
}

// CreateBooking creates a new booking for the authenticated guest. The total
// is derived server side from the nightly rate; the guest contact is
// snapshotted from the caller's identity.
func (s *BookingService) CreateBooking(ctx context.Context, identity *auth.Identity, req CreateBookingRequest) (*BookingDTO, error) {
	h, err := s.hotels.FindByID(ctx, req.HotelID)
	if err != nil {
		return nil, err
	}
	if !h.IsActive() {
		return nil, domain.NewNotFoundError("Hotel", req.HotelID.String())
	}

	checkIn, err := bookingDomain.ParseStayDate(req.CheckIn)
	if err != nil {
		return nil, domain.NewInvalidDateRangeError("check-in date must be in YYYY-MM-DD format")
	}
	checkOut, err := bookingDomain.ParseStayDate(req.CheckOut)
	if err != nil {
		return nil, domain.NewInvalidDateRangeError("check-out date must be in YYYY-MM-DD format")
	}

	// Resolve the rate and room type from the room when one is named,
	// otherwise from the hotel's base rate.
	roomType, err := bookingDomain.ParseRoomType(req.RoomType)
	if err != nil {
		return nil, err
	}
	nightlyRateCents := h.BaseRateCents()

	if req.RoomID != nil {
		room, err := s.hotels.FindRoomByID(ctx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if !room.BelongsTo(h.ID()) || !room.IsActive() {
			return nil, domain.NewNotFoundError("Room", req.RoomID.String())
		}
		if !room.Fits(req.Guests) {
			return nil, domain.NewValidationError(fmt.Sprintf("room %s holds at most %d guests", room.RoomNumber(), room.Capacity()))
		}
		roomType = room.RoomType()
		nightlyRateCents = room.NightlyRateCents()
	}

	nights := bookingDomain.NightsBetween(checkIn, checkOut)
	totalCents := int64(0)
	if nights >= 1 {
		totalCents, err = s.pricing.Calculate(bookingDomain.PricingParams{
			Nights:           nights,
			NightlyRateCents: nightlyRateCents,
			RoomType:         roomType,
		})
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
		}
	}

	bk, err := bookingDomain.NewBooking(
		identity.UserID,
		h.ID(),
		req.RoomID,
		checkIn,
		checkOut,
		req.Guests,
		roomType,
		totalCents,
		bookingDomain.GuestContact{Name: identity.Name, Email: identity.Email, Phone: identity.Phone},
		req.SpecialRequests,
	)
	if err != nil {
		return nil, err
	}

	// Serialize the availability check and insert per room so two requests
	// for the same dates cannot both pass the overlap query.
	key := availabilityKey(h.ID(), req.RoomID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	overlapping, err := s.repo.FindOverlapping(ctx, h.ID(), req.RoomID, bk.CheckIn(), bk.CheckOut())
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, domain.NewConflictError("room is not available for the selected dates")
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.publishBookingRequested(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking. Non-admin callers only see their
// own bookings; anything else reads as not found.
func (s *BookingService) GetBooking(ctx context.Context, identity *auth.Identity, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && bk.UserID() != identity.UserID {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetUserBookings retrieves paginated bookings for the authenticated user,
// optionally filtered by status.
func (s *BookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, statusFilter string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	var status *bookingDomain.BookingStatus
	if statusFilter != "" {
		parsed, err := bookingDomain.ParseBookingStatus(statusFilter)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		status = &parsed
	}

	bookings, total, err := s.repo.FindByUserID(ctx, userID, status, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// CancelBooking cancels a booking on behalf of its owner or an admin.
func (s *BookingService) CancelBooking(ctx context.Context, identity *auth.Identity, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && bk.UserID() != identity.UserID {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}

	if err := bk.Cancel(reason, time.Now().UTC()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCancelledEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CancelledBy:   identity.UserID,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking marks a booking paid and confirmed. It is driven by the
// payment flow, either in process or via a payment.completed event.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Confirm(); err != nil {
		return nil, err
	}
	if err := bk.MarkPaid(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingConfirmedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		UserID:        bk.UserID(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConfirmed, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// MarkBookingRefunded records a refund against a cancelled booking's payment
// status.
func (s *BookingService) MarkBookingRefunded(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := bk.MarkRefunded(); err != nil {
		return err
	}
	bk.IncrementVersion()
	return s.repo.Update(ctx, bk)
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
	RevenueCents  int64            `json:"revenue_cents"`
}

// ListAllBookings returns a paginated list of bookings with optional status
// and guest filters (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, statusFilter, guestSearch string, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	filter := bookingDomain.ListFilter{GuestSearch: guestSearch}
	if statusFilter != "" {
		parsed, err := bookingDomain.ParseBookingStatus(statusFilter)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filter.Status = &parsed
	}

	bookings, total, err := s.repo.ListAll(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	revenue, err := s.repo.SumRevenueCents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
		RevenueCents:  revenue,
	}, nil
}

// CompleteDepartedBookings transitions confirmed bookings whose stay has
// ended to completed, returning the number swept (admin).
func (s *BookingService) CompleteDepartedBookings(ctx context.Context, now time.Time) (int, error) {
	departed, err := s.repo.FindDeparted(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, bk := range departed {
		if err := bk.Complete(); err != nil {
			s.logger.Warn("skipping booking in completion sweep",
				zap.String("booking_id", bk.ID().String()),
				zap.Error(err),
			)
			continue
		}
		bk.IncrementVersion()
		if err := s.repo.Update(ctx, bk); err != nil {
			s.logger.Error("failed to complete booking",
				zap.String("booking_id", bk.ID().String()),
				zap.Error(err),
			)
			continue
		}

		evt := events.BookingCompletedEvent{
			BookingID:        bk.ID(),
			BookingNumber:    bk.BookingNumber(),
			UserID:           bk.UserID(),
			TotalAmountCents: bk.TotalAmountCents(),
			Currency:         bk.Currency(),
			OccurredAt:       time.Now().UTC(),
		}
		s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCompleted, evt)
		completed++
	}

	return completed, nil
}

// --- Helpers ---

func availabilityKey(hotelID uuid.UUID, roomID *uuid.UUID) string {
	if roomID != nil {
		return hotelID.String() + "/" + roomID.String()
	}
	return hotelID.String()
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:               bk.ID(),
		BookingNumber:    bk.BookingNumber(),
		UserID:           bk.UserID(),
		HotelID:          bk.HotelID(),
		RoomID:           bk.RoomID(),
		CheckIn:          bk.CheckIn().Format(bookingDomain.StayDateLayout),
		CheckOut:         bk.CheckOut().Format(bookingDomain.StayDateLayout),
		Guests:           bk.Guests(),
		Nights:           bk.Nights(),
		RoomType:         string(bk.RoomType()),
		TotalAmountCents: bk.TotalAmountCents(),
		Currency:         bk.Currency(),
		Status:           string(bk.Status()),
		PaymentStatus:    string(bk.PaymentStatus()),
		Guest:            bk.Guest(),
		SpecialRequests:  bk.SpecialRequests(),
		CancelReason:     bk.CancelReason(),
		CancelledAt:      bk.CancelledAt(),
		Version:          bk.Version(),
		CreatedAt:        bk.CreatedAt(),
		UpdatedAt:        bk.UpdatedAt(),
	}
}

func (s *BookingService) publishBookingRequested(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingRequestedEvent{
		BookingID:        bk.ID(),
		BookingNumber:    bk.BookingNumber(),
		UserID:           bk.UserID(),
		HotelID:          bk.HotelID(),
		RoomID:           bk.RoomID(),
		CheckIn:          bk.CheckIn(),
		CheckOut:         bk.CheckOut(),
		Nights:           bk.Nights(),
		TotalAmountCents: bk.TotalAmountCents(),
		Currency:         bk.Currency(),
		OccurredAt:       time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRequested, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
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
