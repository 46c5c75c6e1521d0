package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/stayhub/service-booking/internal/domain/booking"
	hotelDomain "github.com/stayhub/service-booking/internal/domain/hotel"
	"github.com/stayhub/service-booking/internal/pkg/auth"
	"github.com/stayhub/service-booking/internal/pkg/domain"
	"github.com/stayhub/service-booking/internal/pkg/events"
)

func testIdentity(role string) *auth.Identity {
	return &auth.Identity{
		UserID: uuid.New(),
		Role:   role,
		Name:   "Aida Bekova",
		Email:  "aida@example.com",
		Phone:  "+77010000000",
	}
}

func testHotel(t *testing.T, baseRateCents int64) *hotelDomain.Hotel {
	t.Helper()
	h, err := hotelDomain.NewHotel("Grand Astana", "Astana", "Kazakhstan", "", 4, baseRateCents, nil)
	require.NoError(t, err)
	return h
}

func stayDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(bookingDomain.StayDateLayout)
}

func newBookingServiceForTest(repo *MockBookingRepository, hotels *MockHotelRepository, producer *MockEventPublisher) *BookingService {
	return NewBookingService(repo, hotels, bookingDomain.NewStandardPricingStrategy(), producer, zap.NewNop())
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	identity := testIdentity(auth.RoleUser)
	h := testHotel(t, 10000)

	hotels.On("FindByID", mock.Anything, h.ID()).Return(h, nil)
	repo.On("FindOverlapping", mock.Anything, h.ID(), (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]*bookingDomain.Booking{}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything).Return(nil)

	result, err := svc.CreateBooking(context.Background(), identity, CreateBookingRequest{
		HotelID:  h.ID(),
		CheckIn:  stayDate(10),
		CheckOut: stayDate(12),
		Guests:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, "pending", result.PaymentStatus)
	assert.Equal(t, 2, result.Nights)
	assert.Equal(t, int64(20000), result.TotalAmountCents)
	assert.Equal(t, identity.UserID, result.UserID)
	assert.Equal(t, "Aida Bekova", result.Guest.Name)
	assert.Equal(t, "aida@example.com", result.Guest.Email)

	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_RoomRateAndType(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	identity := testIdentity(auth.RoleUser)
	h := testHotel(t, 5000)
	room, err := hotelDomain.NewRoom(h.ID(), "204", bookingDomain.RoomTypeDeluxe, 10000, 3)
	require.NoError(t, err)
	roomID := room.ID()

	hotels.On("FindByID", mock.Anything, h.ID()).Return(h, nil)
	hotels.On("FindRoomByID", mock.Anything, roomID).Return(room, nil)
	repo.On("FindOverlapping", mock.Anything, h.ID(), &roomID, mock.Anything, mock.Anything).
		Return([]*bookingDomain.Booking{}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CreateBooking(context.Background(), identity, CreateBookingRequest{
		HotelID:  h.ID(),
		RoomID:   &roomID,
		CheckIn:  stayDate(10),
		CheckOut: stayDate(12),
		Guests:   2,
	})
	require.NoError(t, err)

	// 2 nights at the room's 10000 rate, deluxe multiplier 1.5.
	assert.Equal(t, int64(30000), result.TotalAmountCents)
	assert.Equal(t, "deluxe", result.RoomType)
	assert.Equal(t, &roomID, result.RoomID)
}

func TestBookingService_CreateBooking_Conflict(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	identity := testIdentity(auth.RoleUser)
	h := testHotel(t, 10000)

	existing, err := bookingDomain.NewBooking(
		uuid.New(), h.ID(), nil,
		time.Now().AddDate(0, 0, 10), time.Now().AddDate(0, 0, 12),
		2, bookingDomain.RoomTypeStandard, 20000,
		bookingDomain.GuestContact{Name: "Other", Email: "other@example.com"}, "",
	)
	require.NoError(t, err)

	hotels.On("FindByID", mock.Anything, h.ID()).Return(h, nil)
	repo.On("FindOverlapping", mock.Anything, h.ID(), (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return([]*bookingDomain.Booking{existing}, nil)

	_, err = svc.CreateBooking(context.Background(), identity, CreateBookingRequest{
		HotelID:  h.ID(),
		CheckIn:  stayDate(11),
		CheckOut: stayDate(13),
		Guests:   2,
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	producer.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_HotelNotFound(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	hotelID := uuid.New()
	hotels.On("FindByID", mock.Anything, hotelID).Return(nil, domain.NewNotFoundError("Hotel", hotelID.String()))

	_, err := svc.CreateBooking(context.Background(), testIdentity(auth.RoleUser), CreateBookingRequest{
		HotelID:  hotelID,
		CheckIn:  stayDate(10),
		CheckOut: stayDate(12),
		Guests:   2,
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestBookingService_CreateBooking_InvalidDates(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	h := testHotel(t, 10000)
	hotels.On("FindByID", mock.Anything, h.ID()).Return(h, nil)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"malformed check-in", "10/08/2026", stayDate(12)},
		{"past check-in", stayDate(-2), stayDate(12)},
		{"inverted range", stayDate(12), stayDate(10)},
		{"zero nights", stayDate(10), stayDate(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), testIdentity(auth.RoleUser), CreateBookingRequest{
				HotelID:  h.ID(),
				CheckIn:  tt.checkIn,
				CheckOut: tt.checkOut,
				Guests:   2,
			})
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidDateRange), "got kind %s", domain.KindOf(err))
		})
	}

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_TooManyGuests(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	h := testHotel(t, 10000)
	hotels.On("FindByID", mock.Anything, h.ID()).Return(h, nil)

	_, err := svc.CreateBooking(context.Background(), testIdentity(auth.RoleUser), CreateBookingRequest{
		HotelID:  h.ID(),
		CheckIn:  stayDate(10),
		CheckOut: stayDate(12),
		Guests:   11,
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidRequest))
}

func TestBookingService_GetBooking_OwnershipHidden(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	owner := testIdentity(auth.RoleUser)
	stranger := testIdentity(auth.RoleUser)
	admin := testIdentity(auth.RoleAdmin)

	bk, err := bookingDomain.NewBooking(
		owner.UserID, uuid.New(), nil,
		time.Now().AddDate(0, 0, 10), time.Now().AddDate(0, 0, 12),
		2, bookingDomain.RoomTypeStandard, 20000,
		bookingDomain.GuestContact{Name: owner.Name, Email: owner.Email}, "",
	)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)

	_, err = svc.GetBooking(context.Background(), stranger, bk.ID())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	result, err := svc.GetBooking(context.Background(), owner, bk.ID())
	require.NoError(t, err)
	assert.Equal(t, bk.ID(), result.ID)

	result, err = svc.GetBooking(context.Background(), admin, bk.ID())
	require.NoError(t, err)
	assert.Equal(t, bk.ID(), result.ID)
}

func TestBookingService_CancelBooking_Success(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	owner := testIdentity(auth.RoleUser)
	bk, err := bookingDomain.NewBooking(
		owner.UserID, uuid.New(), nil,
		time.Now().AddDate(0, 0, 10), time.Now().AddDate(0, 0, 12),
		2, bookingDomain.RoomTypeStandard, 20000,
		bookingDomain.GuestContact{Name: owner.Name, Email: owner.Email}, "",
	)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	repo.On("Update", mock.Anything, bk).Return(nil)
	producer.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything).Return(nil)

	result, err := svc.CancelBooking(context.Background(), owner, bk.ID(), "change of plans")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, "change of plans", result.CancelReason)
	assert.Equal(t, int64(2), result.Version)
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_CancelBooking_NotOwner(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	bk, err := bookingDomain.NewBooking(
		uuid.New(), uuid.New(), nil,
		time.Now().AddDate(0, 0, 10), time.Now().AddDate(0, 0, 12),
		2, bookingDomain.RoomTypeStandard, 20000,
		bookingDomain.GuestContact{Name: "Owner", Email: "owner@example.com"}, "",
	)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)

	_, err = svc.CancelBooking(context.Background(), testIdentity(auth.RoleUser), bk.ID(), "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBookingService_GetBookingStats(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	repo.On("CountByStatus", mock.Anything).Return(map[string]int64{
		"pending":   3,
		"confirmed": 5,
		"cancelled": 2,
	}, nil)
	repo.On("SumRevenueCents", mock.Anything).Return(int64(750000), nil)

	stats, err := svc.GetBookingStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalBookings)
	assert.Equal(t, int64(5), stats.ByStatus["confirmed"])
	assert.Equal(t, int64(750000), stats.RevenueCents)
}

func TestBookingService_CompleteDepartedBookings(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	makeConfirmed := func() *bookingDomain.Booking {
		bk, err := bookingDomain.NewBooking(
			uuid.New(), uuid.New(), nil,
			time.Now().AddDate(0, 0, 1), time.Now().AddDate(0, 0, 3),
			2, bookingDomain.RoomTypeStandard, 20000,
			bookingDomain.GuestContact{Name: "Guest", Email: "guest@example.com"}, "",
		)
		require.NoError(t, err)
		require.NoError(t, bk.Confirm())
		return bk
	}

	departed := []*bookingDomain.Booking{makeConfirmed(), makeConfirmed()}
	now := time.Now().UTC()

	repo.On("FindDeparted", mock.Anything, now).Return(departed, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Times(2)
	producer.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything).Return(nil).Times(2)

	count, err := svc.CompleteDepartedBookings(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, bk := range departed {
		assert.Equal(t, bookingDomain.StatusCompleted, bk.Status())
	}
	repo.AssertExpectations(t)
}

func TestBookingService_ConfirmBooking(t *testing.T) {
	repo := new(MockBookingRepository)
	hotels := new(MockHotelRepository)
	producer := new(MockEventPublisher)
	svc := newBookingServiceForTest(repo, hotels, producer)

	bk, err := bookingDomain.NewBooking(
		uuid.New(), uuid.New(), nil,
		time.Now().AddDate(0, 0, 10), time.Now().AddDate(0, 0, 12),
		2, bookingDomain.RoomTypeStandard, 20000,
		bookingDomain.GuestContact{Name: "Guest", Email: "guest@example.com"}, "",
	)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	repo.On("Update", mock.Anything, bk).Return(nil)
	producer.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything).Return(nil)

	result, err := svc.ConfirmBooking(context.Background(), bk.ID())
	require.NoError(t, err)
	assert.Equal(t, "confirmed", result.Status)
	assert.Equal(t, "paid", result.PaymentStatus)

	// A second confirmation is rejected, which the event consumer relies on
	// to detect duplicates.
	_, err = svc.ConfirmBooking(context.Background(), bk.ID())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
}
