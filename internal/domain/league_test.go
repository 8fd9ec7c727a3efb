package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTierTransitions(t *testing.T) {
	assert.Equal(t, TierSilver, NextTier(TierBronze))
	assert.Equal(t, TierDiamond, NextTier(TierPlatinum))
	assert.Equal(t, TierDiamond, NextTier(TierDiamond), "top tier caps")

	assert.Equal(t, TierBronze, PreviousTier(TierSilver))
	assert.Equal(t, TierBronze, PreviousTier(TierBronze), "bottom tier floors")
	assert.Equal(t, TierPlatinum, PreviousTier(TierDiamond))
}

func TestIsValidTier(t *testing.T) {
	for _, tier := range TierOrder {
		assert.True(t, IsValidTier(tier))
	}
	assert.False(t, IsValidTier("wood"))
	assert.False(t, IsValidTier(""))
}

func TestWeekStartFor(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", time.Date(2025, 6, 9, 15, 30, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		{"midweek", time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to preceding monday", time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		{"monday midnight exact", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStartFor(tt.in))
		})
	}
}

func TestTierBadgeKey(t *testing.T) {
	assert.Equal(t, "league_top10_gold", TierBadgeKey(TierGold))
}
