package booking

import "fmt"

// PricingStrategy defines the interface for calculating booking prices.
type PricingStrategy interface {
	// Calculate returns the total price in cents for the given parameters.
	Calculate(params PricingParams) (int64, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	Nights           int
	NightlyRateCents int64
	RoomType         RoomType
}

// StandardPricingStrategy implements the default StayHub pricing logic.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Calculate computes the total in cents:
//
//	total = nights × nightly rate × room-type multiplier
//
// Multipliers are expressed in basis points (standard ×1.0, deluxe ×1.5,
// suite ×2.0) so the arithmetic stays exact in integer cents.
func (s *StandardPricingStrategy) Calculate(params PricingParams) (int64, error) {
	if params.Nights < 1 {
		return 0, fmt.Errorf("nights must be at least 1")
	}
	if params.NightlyRateCents <= 0 {
		return 0, fmt.Errorf("nightly rate must be positive")
	}

	bp, err := roomTypeMultiplierBasisPoints(params.RoomType)
	if err != nil {
		return 0, err
	}

	return int64(params.Nights) * params.NightlyRateCents * bp / 10000, nil
}

// roomTypeMultiplierBasisPoints returns the multiplier in basis points
// (10000 = ×1.0) for a room type.
func roomTypeMultiplierBasisPoints(rt RoomType) (int64, error) {
	switch rt {
	case RoomTypeStandard:
		return 10000, nil
	case RoomTypeDeluxe:
		return 15000, nil
	case RoomTypeSuite:
		return 20000, nil
	default:
		return 0, fmt.Errorf("unknown room type for pricing: %s", rt)
	}
}
