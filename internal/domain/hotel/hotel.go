package hotel

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Hotel is the aggregate root of the catalog. It is read-mostly from the
// booking manager's point of view: bookings only resolve existence and the
// base nightly rate from it.
type Hotel struct {
	id            uuid.UUID
	name          string
	city          string
	country       string
	description   string
	stars         int
	baseRateCents int64
	amenities     []string
	active        bool
	version       int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewHotel creates a new active hotel with validated fields.
func NewHotel(name, city, country, description string, stars int, baseRateCents int64, amenities []string) (*Hotel, error) {
	if name == "" {
		return nil, fmt.Errorf("hotel name is required")
	}
	if city == "" || country == "" {
		return nil, fmt.Errorf("hotel city and country are required")
	}
	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("stars must be between 1 and 5")
	}
	if baseRateCents <= 0 {
		return nil, fmt.Errorf("base nightly rate must be positive")
	}

	now := time.Now().UTC()
	return &Hotel{
		id:            uuid.New(),
		name:          name,
		city:          city,
		country:       country,
		description:   description,
		stars:         stars,
		baseRateCents: baseRateCents,
		amenities:     amenities,
		active:        true,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds a Hotel from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, city, country, description string,
	stars int,
	baseRateCents int64,
	amenities []string,
	active bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Hotel {
	return &Hotel{
		id:            id,
		name:          name,
		city:          city,
		country:       country,
		description:   description,
		stars:         stars,
		baseRateCents: baseRateCents,
		amenities:     amenities,
		active:        active,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

func (h *Hotel) ID() uuid.UUID        { return h.id }
func (h *Hotel) Name() string         { return h.name }
func (h *Hotel) City() string         { return h.city }
func (h *Hotel) Country() string      { return h.country }
func (h *Hotel) Description() string  { return h.description }
func (h *Hotel) Stars() int           { return h.stars }
func (h *Hotel) BaseRateCents() int64 { return h.baseRateCents }
func (h *Hotel) Amenities() []string  { return h.amenities }
func (h *Hotel) IsActive() bool       { return h.active }
func (h *Hotel) Version() int64       { return h.version }
func (h *Hotel) CreatedAt() time.Time { return h.createdAt }
func (h *Hotel) UpdatedAt() time.Time { return h.updatedAt }

// --- Behavior ---

// Update applies partial updates to the hotel profile.
func (h *Hotel) Update(name, city, country, description string, stars int, baseRateCents int64, amenities []string) {
	if name != "" {
		h.name = name
	}
	if city != "" {
		h.city = city
	}
	if country != "" {
		h.country = country
	}
	if description != "" {
		h.description = description
	}
	if stars >= 1 && stars <= 5 {
		h.stars = stars
	}
	if baseRateCents > 0 {
		h.baseRateCents = baseRateCents
	}
	if amenities != nil {
		h.amenities = amenities
	}
	h.version++
	h.updatedAt = time.Now().UTC()
}

// Deactivate removes the hotel from the bookable catalog without deleting it.
func (h *Hotel) Deactivate() {
	h.active = false
	h.version++
	h.updatedAt = time.Now().UTC()
}
