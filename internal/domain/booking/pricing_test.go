package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPricingStrategy_Calculate(t *testing.T) {
	strategy := NewStandardPricingStrategy()

	tests := []struct {
		name   string
		params PricingParams
		want   int64
	}{
		{
			name:   "standard room",
			params: PricingParams{Nights: 2, NightlyRateCents: 10000, RoomType: RoomTypeStandard},
			want:   20000,
		},
		{
			name:   "deluxe multiplies by 1.5",
			params: PricingParams{Nights: 2, NightlyRateCents: 10000, RoomType: RoomTypeDeluxe},
			want:   30000,
		},
		{
			name:   "suite multiplies by 2",
			params: PricingParams{Nights: 2, NightlyRateCents: 10000, RoomType: RoomTypeSuite},
			want:   40000,
		},
		{
			name:   "single night",
			params: PricingParams{Nights: 1, NightlyRateCents: 12345, RoomType: RoomTypeStandard},
			want:   12345,
		},
		{
			name:   "deluxe stays exact on odd rates",
			params: PricingParams{Nights: 3, NightlyRateCents: 9999, RoomType: RoomTypeDeluxe},
			want:   44995, // 3 * 9999 * 15000 / 10000
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strategy.Calculate(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandardPricingStrategy_Calculate_Errors(t *testing.T) {
	strategy := NewStandardPricingStrategy()

	_, err := strategy.Calculate(PricingParams{Nights: 0, NightlyRateCents: 10000, RoomType: RoomTypeStandard})
	assert.Error(t, err)

	_, err = strategy.Calculate(PricingParams{Nights: 1, NightlyRateCents: 0, RoomType: RoomTypeStandard})
	assert.Error(t, err)

	_, err = strategy.Calculate(PricingParams{Nights: 1, NightlyRateCents: 10000, RoomType: RoomType("penthouse")})
	assert.Error(t, err)
}

func TestParseRoomType(t *testing.T) {
	rt, err := ParseRoomType("")
	require.NoError(t, err)
	assert.Equal(t, RoomTypeStandard, rt)

	rt, err = ParseRoomType("suite")
	require.NoError(t, err)
	assert.Equal(t, RoomTypeSuite, rt)

	_, err = ParseRoomType("penthouse")
	assert.Error(t, err)
}
