package booking

import "fmt"

// RoomType determines the price multiplier applied to a room's nightly rate.
type RoomType string

const (
	RoomTypeStandard RoomType = "standard"
	RoomTypeDeluxe   RoomType = "deluxe"
	RoomTypeSuite    RoomType = "suite"
)

// IsValid returns true if the room type is recognized.
func (r RoomType) IsValid() bool {
	switch r {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite:
		return true
	}
	return false
}

// String returns the string representation of the room type.
func (r RoomType) String() string {
	return string(r)
}

// ParseRoomType converts a string to a RoomType. An empty string defaults to
// standard, matching what most booking clients send.
func ParseRoomType(s string) (RoomType, error) {
	if s == "" {
		return RoomTypeStandard, nil
	}
	rt := RoomType(s)
	if !rt.IsValid() {
		return "", fmt.Errorf("invalid room type: %s", s)
	}
	return rt, nil
}
