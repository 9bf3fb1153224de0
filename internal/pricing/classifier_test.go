package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

func TestClassifySegment(t *testing.T) {
	tests := []struct {
		name          string
		noShowCount   int
		totalBookings int
		totalSpent    int64
		want          domain.UserSegment
	}{
		{"no history", 0, 0, 0, domain.SegmentFuture},
		{"single booking", 0, 1, 150_000, domain.SegmentActive},
		{"regular player", 1, 20, 1_500_000, domain.SegmentActive},
		{"high spender below booking threshold", 0, 5, 3_000_000, domain.SegmentActive},
		{"vip", 0, 12, 2_400_000, domain.SegmentVIP},
		{"risk by count", 2, 30, 5_000_000, domain.SegmentRisk},
		{"risk by rate", 1, 2, 100_000, domain.SegmentRisk},
		{"risk overrides vip", 3, 50, 10_000_000, domain.SegmentRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySegment(tt.noShowCount, tt.totalBookings, tt.totalSpent)
			assert.Equal(t, tt.want, got)
		})
	}
}
