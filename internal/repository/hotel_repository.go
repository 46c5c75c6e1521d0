package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/stayhub/service-booking/internal/domain/booking"
	hotelDomain "github.com/stayhub/service-booking/internal/domain/hotel"
	"github.com/stayhub/service-booking/internal/pkg/domain"
)

// HotelModel is the GORM model for the hotels table.
type HotelModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"not null;size:200;index"`
	City          string          `gorm:"not null;size:100;index"`
	Country       string          `gorm:"not null;size:100"`
	Description   string          `gorm:"size:2000"`
	Stars         int             `gorm:"not null"`
	BaseRateCents int64           `gorm:"not null"`
	Amenities     json.RawMessage `gorm:"type:jsonb"`
	Active        bool            `gorm:"not null;default:true;index"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (HotelModel) TableName() string {
	return "hotels"
}

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	HotelID          uuid.UUID `gorm:"type:uuid;index;not null"`
	RoomNumber       string    `gorm:"not null;size:20"`
	RoomType         string    `gorm:"not null;size:20"`
	NightlyRateCents int64     `gorm:"not null"`
	Capacity         int       `gorm:"not null"`
	Active           bool      `gorm:"not null;default:true"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// GormHotelRepository is the GORM-based implementation of HotelRepository.
type GormHotelRepository struct {
	db *gorm.DB
}

// NewGormHotelRepository creates a new GormHotelRepository.
func NewGormHotelRepository(db *gorm.DB) *GormHotelRepository {
	return &GormHotelRepository{db: db}
}

// FindByID retrieves a hotel by its unique identifier.
func (r *GormHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*hotelDomain.Hotel, error) {
	var model HotelModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Hotel", id.String())
		}
		return nil, fmt.Errorf("failed to find hotel by ID: %w", err)
	}
	return toDomainHotel(&model)
}

// Search retrieves active hotels matching the filter with pagination.
func (r *GormHotelRepository) Search(ctx context.Context, filter hotelDomain.SearchFilter, page, limit int) ([]*hotelDomain.Hotel, int64, error) {
	query := r.db.WithContext(ctx).Model(&HotelModel{}).Where("active = ?", true)
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ?", pattern, pattern)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.MinStars > 0 {
		query = query.Where("stars >= ?", filter.MinStars)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	var models []HotelModel
	offset := (page - 1) * limit
	if err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search hotels: %w", err)
	}

	hotels := make([]*hotelDomain.Hotel, len(models))
	for i := range models {
		h, err := toDomainHotel(&models[i])
		if err != nil {
			return nil, 0, err
		}
		hotels[i] = h
	}
	return hotels, total, nil
}

// FindRoomByID retrieves a room by its unique identifier.
func (r *GormHotelRepository) FindRoomByID(ctx context.Context, id uuid.UUID) (*hotelDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toDomainRoom(&model)
}

// ListRooms retrieves the active rooms of a hotel.
func (r *GormHotelRepository) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]*hotelDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND active = ?", hotelID, true).
		Order("room_number ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*hotelDomain.Room, len(models))
	for i := range models {
		room, err := toDomainRoom(&models[i])
		if err != nil {
			return nil, err
		}
		rooms[i] = room
	}
	return rooms, nil
}

// Save persists a new hotel.
func (r *GormHotelRepository) Save(ctx context.Context, h *hotelDomain.Hotel) error {
	model, err := toHotelModel(h)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save hotel: %w", err)
	}
	return nil
}

// Update persists changes to an existing hotel with optimistic locking.
func (r *GormHotelRepository) Update(ctx context.Context, h *hotelDomain.Hotel) error {
	model, err := toHotelModel(h)
	if err != nil {
		return err
	}
	expectedVersion := h.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&HotelModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"city":            model.City,
			"country":         model.Country,
			"description":     model.Description,
			"stars":           model.Stars,
			"base_rate_cents": model.BaseRateCents,
			"amenities":       model.Amenities,
			"active":          model.Active,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update hotel: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("hotel was modified by another transaction")
	}
	return nil
}

// SaveRoom persists a new room.
func (r *GormHotelRepository) SaveRoom(ctx context.Context, room *hotelDomain.Room) error {
	if err := r.db.WithContext(ctx).Create(toRoomModel(room)).Error; err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// UpdateRoom persists changes to an existing room with optimistic locking.
func (r *GormHotelRepository) UpdateRoom(ctx context.Context, room *hotelDomain.Room) error {
	model := toRoomModel(room)
	expectedVersion := room.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"room_number":        model.RoomNumber,
			"room_type":          model.RoomType,
			"nightly_rate_cents": model.NightlyRateCents,
			"capacity":           model.Capacity,
			"active":             model.Active,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("room was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toHotelModel(h *hotelDomain.Hotel) (*HotelModel, error) {
	amenitiesJSON, err := json.Marshal(h.Amenities())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amenities: %w", err)
	}

	return &HotelModel{
		ID:            h.ID(),
		Name:          h.Name(),
		City:          h.City(),
		Country:       h.Country(),
		Description:   h.Description(),
		Stars:         h.Stars(),
		BaseRateCents: h.BaseRateCents(),
		Amenities:     amenitiesJSON,
		Active:        h.IsActive(),
		Version:       h.Version(),
		CreatedAt:     h.CreatedAt(),
		UpdatedAt:     h.UpdatedAt(),
	}, nil
}

func toDomainHotel(m *HotelModel) (*hotelDomain.Hotel, error) {
	var amenities []string
	if len(m.Amenities) > 0 {
		if err := json.Unmarshal(m.Amenities, &amenities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal amenities: %w", err)
		}
	}

	return hotelDomain.Reconstruct(
		m.ID,
		m.Name,
		m.City,
		m.Country,
		m.Description,
		m.Stars,
		m.BaseRateCents,
		amenities,
		m.Active,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toRoomModel(room *hotelDomain.Room) *RoomModel {
	return &RoomModel{
		ID:               room.ID(),
		HotelID:          room.HotelID(),
		RoomNumber:       room.RoomNumber(),
		RoomType:         string(room.RoomType()),
		NightlyRateCents: room.NightlyRateCents(),
		Capacity:         room.Capacity(),
		Active:           room.IsActive(),
		Version:          room.Version(),
		CreatedAt:        room.CreatedAt(),
		UpdatedAt:        room.UpdatedAt(),
	}
}

func toDomainRoom(m *RoomModel) (*hotelDomain.Room, error) {
	roomType, err := bookingDomain.ParseRoomType(m.RoomType)
	if err != nil {
		return nil, err
	}
	return hotelDomain.ReconstructRoom(
		m.ID,
		m.HotelID,
		m.RoomNumber,
		roomType,
		m.NightlyRateCents,
		m.Capacity,
		m.Active,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
