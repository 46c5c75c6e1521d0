package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/stayhub/service-booking/internal/domain/booking"
	hotelDomain "github.com/stayhub/service-booking/internal/domain/hotel"
	"github.com/stayhub/service-booking/internal/pkg/domain"
)

// CreateHotelRequest holds the data needed to register a hotel (admin).
type CreateHotelRequest struct {
	Name          string   `json:"name" binding:"required"`
	City          string   `json:"city" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	Description   string   `json:"description"`
	Stars         int      `json:"stars" binding:"required"`
	BaseRateCents int64    `json:"base_rate_cents" binding:"required"`
	Amenities     []string `json:"amenities"`
}

// UpdateHotelRequest holds partial updates to a hotel profile (admin).
type UpdateHotelRequest struct {
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Description   string   `json:"description"`
	Stars         int      `json:"stars"`
	BaseRateCents int64    `json:"base_rate_cents"`
	Amenities     []string `json:"amenities"`
}

// CreateRoomRequest holds the data needed to add a room to a hotel (admin).
type CreateRoomRequest struct {
	RoomNumber       string `json:"room_number" binding:"required"`
	RoomType         string `json:"room_type" binding:"required"`
	NightlyRateCents int64  `json:"nightly_rate_cents" binding:"required"`
	Capacity         int    `json:"capacity" binding:"required"`
}

// HotelDTO is the response representation of a hotel.
type HotelDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Description   string    `json:"description,omitempty"`
	Stars         int       `json:"stars"`
	BaseRateCents int64     `json:"base_rate_cents"`
	Amenities     []string  `json:"amenities,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomDTO is the response representation of a room.
type RoomDTO struct {
	ID               uuid.UUID `json:"id"`
	HotelID          uuid.UUID `json:"hotel_id"`
	RoomNumber       string    `json:"room_number"`
	RoomType         string    `json:"room_type"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Capacity         int       `json:"capacity"`
	Active           bool      `json:"active"`
}

// HotelService is the application service for the hotel catalog.
type HotelService struct {
	repo   hotelDomain.HotelRepository
	logger *zap.Logger
}

// NewHotelService creates a new HotelService.
func NewHotelService(repo hotelDomain.HotelRepository, logger *zap.Logger) *HotelService {
	return &HotelService{repo: repo, logger: logger}
}

// CreateHotel registers a new hotel in the catalog (admin).
func (s *HotelService) CreateHotel(ctx context.Context, req CreateHotelRequest) (*HotelDTO, error) {
	h, err := hotelDomain.NewHotel(req.Name, req.City, req.Country, req.Description, req.Stars, req.BaseRateCents, req.Amenities)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, h); err != nil {
		return nil, err
	}

	result := toHotelDTO(h)
	return &result, nil
}

// UpdateHotel applies partial updates to a hotel (admin).
func (s *HotelService) UpdateHotel(ctx context.Context, hotelID uuid.UUID, req UpdateHotelRequest) (*HotelDTO, error) {
	h, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	h.Update(req.Name, req.City, req.Country, req.Description, req.Stars, req.BaseRateCents, req.Amenities)
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	result := toHotelDTO(h)
	return &result, nil
}

// DeactivateHotel removes a hotel from the bookable catalog (admin).
func (s *HotelService) DeactivateHotel(ctx context.Context, hotelID uuid.UUID) error {
	h, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return err
	}

	h.Deactivate()
	return s.repo.Update(ctx, h)
}

// GetHotel retrieves a hotel by ID. Inactive hotels read as not found.
func (s *HotelService) GetHotel(ctx context.Context, hotelID uuid.UUID) (*HotelDTO, error) {
	h, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !h.IsActive() {
		return nil, domain.NewNotFoundError("Hotel", hotelID.String())
	}

	result := toHotelDTO(h)
	return &result, nil
}

// SearchHotels retrieves active hotels matching the filter, paginated.
func (s *HotelService) SearchHotels(ctx context.Context, filter hotelDomain.SearchFilter, page, limit int) (*domain.PaginatedResult[HotelDTO], error) {
	hotels, total, err := s.repo.Search(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]HotelDTO, len(hotels))
	for i, h := range hotels {
		dtos[i] = toHotelDTO(h)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// AddRoom adds a room to a hotel's inventory (admin).
func (s *HotelService) AddRoom(ctx context.Context, hotelID uuid.UUID, req CreateRoomRequest) (*RoomDTO, error) {
	h, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	roomType, err := bookingDomain.ParseRoomType(req.RoomType)
	if err != nil {
		return nil, err
	}

	room, err := hotelDomain.NewRoom(h.ID(), req.RoomNumber, roomType, req.NightlyRateCents, req.Capacity)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	result := toRoomDTO(room)
	return &result, nil
}

// ListRooms retrieves the active rooms of a hotel.
func (s *HotelService) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]RoomDTO, error) {
	h, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.ListRooms(ctx, h.ID())
	if err != nil {
		return nil, err
	}

	dtos := make([]RoomDTO, len(rooms))
	for i, room := range rooms {
		dtos[i] = toRoomDTO(room)
	}
	return dtos, nil
}

// --- Helpers ---

func toHotelDTO(h *hotelDomain.Hotel) HotelDTO {
	return HotelDTO{
		ID:            h.ID(),
		Name:          h.Name(),
		City:          h.City(),
		Country:       h.Country(),
		Description:   h.Description(),
		Stars:         h.Stars(),
		BaseRateCents: h.BaseRateCents(),
		Amenities:     h.Amenities(),
		Active:        h.IsActive(),
		CreatedAt:     h.CreatedAt(),
		UpdatedAt:     h.UpdatedAt(),
	}
}

func toRoomDTO(room *hotelDomain.Room) RoomDTO {
	return RoomDTO{
		ID:               room.ID(),
		HotelID:          room.HotelID(),
		RoomNumber:       room.RoomNumber(),
		RoomType:         string(room.RoomType()),
		NightlyRateCents: room.NightlyRateCents(),
		Capacity:         room.Capacity(),
		Active:           room.IsActive(),
	}
}
