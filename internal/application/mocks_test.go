package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	bookingDomain "github.com/stayhub/service-booking/internal/domain/booking"
	hotelDomain "github.com/stayhub/service-booking/internal/domain/hotel"
	paymentDomain "github.com/stayhub/service-booking/internal/domain/payment"
	"github.com/stayhub/service-booking/internal/pkg/kafka"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *bookingDomain.BookingStatus, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, userID, status, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, hotelID uuid.UUID, roomID *uuid.UUID, checkIn, checkOut time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, hotelID, roomID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindDeparted(ctx context.Context, before time.Time) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockBookingRepository) SumRevenueCents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	args := m.Called(ctx, bk)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	args := m.Called(ctx, bk)
	return args.Error(0)
}

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*hotelDomain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotelDomain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Search(ctx context.Context, filter hotelDomain.SearchFilter, page, limit int) ([]*hotelDomain.Hotel, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*hotelDomain.Hotel), args.Get(1).(int64), args.Error(2)
}

func (m *MockHotelRepository) FindRoomByID(ctx context.Context, id uuid.UUID) (*hotelDomain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotelDomain.Room), args.Error(1)
}

func (m *MockHotelRepository) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]*hotelDomain.Room, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hotelDomain.Room), args.Error(1)
}

func (m *MockHotelRepository) Save(ctx context.Context, h *hotelDomain.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepository) Update(ctx context.Context, h *hotelDomain.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepository) SaveRoom(ctx context.Context, room *hotelDomain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockHotelRepository) UpdateRoom(ctx context.Context, room *hotelDomain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*paymentDomain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*paymentDomain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*paymentDomain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*paymentDomain.Payment, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*paymentDomain.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *paymentDomain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Charge(ctx context.Context, p *paymentDomain.Payment) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Refund(ctx context.Context, p *paymentDomain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
