package hotel

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stayhub/service-booking/internal/domain/booking"
)

// Room is an individually bookable unit inside a hotel. A room carries its
// own nightly rate; bookings without a room fall back to the hotel's base
// rate.
type Room struct {
	id               uuid.UUID
	hotelID          uuid.UUID
	roomNumber       string
	roomType         booking.RoomType
	nightlyRateCents int64
	capacity         int
	active           bool
	version          int64
	createdAt        time.Time
	updatedAt        time.Time
}

// NewRoom creates a new active room within a hotel.
func NewRoom(hotelID uuid.UUID, roomNumber string, roomType booking.RoomType, nightlyRateCents int64, capacity int) (*Room, error) {
	if hotelID == uuid.Nil {
		return nil, fmt.Errorf("hotel ID is required")
	}
	if roomNumber == "" {
		return nil, fmt.Errorf("room number is required")
	}
	if !roomType.IsValid() {
		return nil, fmt.Errorf("invalid room type: %s", roomType)
	}
	if nightlyRateCents <= 0 {
		return nil, fmt.Errorf("nightly rate must be positive")
	}
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1")
	}

	now := time.Now().UTC()
	return &Room{
		id:               uuid.New(),
		hotelID:          hotelID,
		roomNumber:       roomNumber,
		roomType:         roomType,
		nightlyRateCents: nightlyRateCents,
		capacity:         capacity,
		active:           true,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructRoom rebuilds a Room from persistence data (no validation).
func ReconstructRoom(
	id uuid.UUID,
	hotelID uuid.UUID,
	roomNumber string,
	roomType booking.RoomType,
	nightlyRateCents int64,
	capacity int,
	active bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:               id,
		hotelID:          hotelID,
		roomNumber:       roomNumber,
		roomType:         roomType,
		nightlyRateCents: nightlyRateCents,
		capacity:         capacity,
		active:           active,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID              { return r.id }
func (r *Room) HotelID() uuid.UUID         { return r.hotelID }
func (r *Room) RoomNumber() string         { return r.roomNumber }
func (r *Room) RoomType() booking.RoomType { return r.roomType }
func (r *Room) NightlyRateCents() int64    { return r.nightlyRateCents }
func (r *Room) Capacity() int              { return r.capacity }
func (r *Room) IsActive() bool             { return r.active }
func (r *Room) Version() int64             { return r.version }
func (r *Room) CreatedAt() time.Time       { return r.createdAt }
func (r *Room) UpdatedAt() time.Time       { return r.updatedAt }

// --- Behavior ---

// BelongsTo reports whether the room is part of the given hotel.
func (r *Room) BelongsTo(hotelID uuid.UUID) bool {
	return r.hotelID == hotelID
}

// Fits reports whether the room can accommodate the given party size.
func (r *Room) Fits(guests int) bool {
	return guests >= 1 && guests <= r.capacity
}

// Update applies partial updates to the room.
func (r *Room) Update(roomNumber string, roomType booking.RoomType, nightlyRateCents int64, capacity int) {
	if roomNumber != "" {
		r.roomNumber = roomNumber
	}
	if roomType.IsValid() {
		r.roomType = roomType
	}
	if nightlyRateCents > 0 {
		r.nightlyRateCents = nightlyRateCents
	}
	if capacity >= 1 {
		r.capacity = capacity
	}
	r.version++
	r.updatedAt = time.Now().UTC()
}

// Deactivate removes the room from the bookable inventory.
func (r *Room) Deactivate() {
	r.active = false
	r.version++
	r.updatedAt = time.Now().UTC()
}
