package hotel

import (
	"context"

	"github.com/google/uuid"
)

// SearchFilter narrows catalog searches.
type SearchFilter struct {
	// Query is a free-text match against hotel name and city.
	Query string

	// City restricts results to an exact city when non-empty.
	City string

	// MinStars restricts results to hotels with at least this rating.
	MinStars int
}

// HotelRepository defines the persistence contract for the catalog.
type HotelRepository interface {
	// FindByID retrieves a hotel by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Hotel, error)

	// Search retrieves active hotels matching the filter, paginated.
	Search(ctx context.Context, filter SearchFilter, page, limit int) ([]*Hotel, int64, error)

	// FindRoomByID retrieves a room by its unique identifier.
	FindRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// ListRooms retrieves the active rooms of a hotel.
	ListRooms(ctx context.Context, hotelID uuid.UUID) ([]*Room, error)

	// Save persists a new hotel.
	Save(ctx context.Context, hotel *Hotel) error

	// Update persists changes to an existing hotel with optimistic locking.
	Update(ctx context.Context, hotel *Hotel) error

	// SaveRoom persists a new room.
	SaveRoom(ctx context.Context, room *Room) error

	// UpdateRoom persists changes to an existing room with optimistic locking.
	UpdateRoom(ctx context.Context, room *Room) error
}
