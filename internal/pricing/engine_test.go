package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/pkg/ptr"
)

var testNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func teeTimeAt(basePrice int64, hoursFromNow float64) *domain.TeeTime {
	return &domain.TeeTime{
		ID:        1,
		ClubID:    10,
		TeeOffAt:  testNow.Add(time.Duration(hoursFromNow * float64(time.Hour))),
		BasePrice: basePrice,
		Status:    domain.TeeTimeOpen,
	}
}

func TestCalculate_BasePricePassthrough(t *testing.T) {
	engine := NewEngine(Config{})

	// 50 часов до tee-off, без погоды и пользователя - цена не меняется
	result, err := engine.Calculate(Context{
		TeeTime: teeTimeAt(100_000, 50),
		Now:     testNow,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100_000), result.BasePrice)
	assert.Equal(t, int64(100_000), result.FinalPrice)
	assert.Empty(t, result.Factors)
	assert.False(t, result.IsImminentDeal)
	assert.False(t, result.IsBlocked)
}

func TestCalculate_TimeDecayTiers(t *testing.T) {
	engine := NewEngine(Config{})

	tests := []struct {
		name         string
		hours        float64
		wantPrice    int64
		wantImminent bool
	}{
		{"2 days out", 48, 100_000, false},
		{"exactly 24h", 24, 100_000, false},
		{"under 24h", 20, 90_000, false},
		{"under 12h", 10, 85_000, false},
		{"under 6h", 4, 75_000, false},
		{"under 3h", 2, 60_000, true},
		{"tee-off passed", -1, 60_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Calculate(Context{
				TeeTime: teeTimeAt(100_000, tt.hours),
				Now:     testNow,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPrice, result.FinalPrice)
			assert.Equal(t, tt.wantImminent, result.IsImminentDeal)
		})
	}
}

func TestCalculate_MonotonicInHoursToTeeOff(t *testing.T) {
	engine := NewEngine(Config{})
	weather := &domain.WeatherSnapshot{Sky: domain.SkyRain, RainProbability: 90}
	user := &domain.User{ID: 7, Segment: domain.SegmentVIP}

	// Цена не растёт по мере приближения tee-off
	prev := int64(-1)
	for hours := 72.0; hours >= -6; hours -= 0.5 {
		result, err := engine.Calculate(Context{
			TeeTime: teeTimeAt(100_000, hours),
			User:    user,
			Weather: weather,
			Now:     testNow,
		})
		require.NoError(t, err)

		if prev >= 0 {
			assert.LessOrEqual(t, result.FinalPrice, prev, "price increased at %v hours to tee-off", hours)
		}
		prev = result.FinalPrice
	}
}

func TestCalculate_NeverNegative(t *testing.T) {
	engine := NewEngine(Config{})
	weather := &domain.WeatherSnapshot{Sky: domain.SkyRain, RainProbability: 100}
	user := &domain.User{ID: 7, Segment: domain.SegmentVIP}

	for _, base := range []int64{0, 1, 3, 7, 99, 100_000} {
		result, err := engine.Calculate(Context{
			TeeTime: teeTimeAt(base, -2),
			User:    user,
			Weather: weather,
			Now:     testNow,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.FinalPrice, int64(0), "base price %d", base)
	}
}

func TestCalculate_ImminentRainScenario(t *testing.T) {
	engine := NewEngine(Config{})

	// 2 часа до tee-off, дождь с вероятностью 90
	result, err := engine.Calculate(Context{
		TeeTime: teeTimeAt(100_000, 2),
		Weather: &domain.WeatherSnapshot{Sky: domain.SkyRain, RainProbability: 90},
		Now:     testNow,
	})
	require.NoError(t, err)

	assert.True(t, result.IsImminentDeal)
	require.Len(t, result.Factors, 2)

	// 100 000 -> -40% -> 60 000 -> -10% -> 54 000
	assert.Equal(t, int64(-40_000), result.Factors[0].Amount)
	assert.Equal(t, int64(-6_000), result.Factors[1].Amount)
	assert.Equal(t, int64(54_000), result.FinalPrice)
}

func TestCalculate_WeatherAdjustment(t *testing.T) {
	engine := NewEngine(Config{})

	tests := []struct {
		name      string
		weather   *domain.WeatherSnapshot
		wantPrice int64
	}{
		{"no snapshot", nil, 100_000},
		{"clear sky", &domain.WeatherSnapshot{Sky: domain.SkyClear, RainProbability: 10}, 100_000},
		{"cloudy below threshold", &domain.WeatherSnapshot{Sky: domain.SkyCloudy, RainProbability: 69}, 100_000},
		{"cloudy at threshold", &domain.WeatherSnapshot{Sky: domain.SkyCloudy, RainProbability: 70}, 90_000},
		{"rain sky", &domain.WeatherSnapshot{Sky: domain.SkyRain, RainProbability: 0}, 90_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Calculate(Context{
				TeeTime: teeTimeAt(100_000, 48),
				Weather: tt.weather,
				Now:     testNow,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, result.FinalPrice)
		})
	}
}

func TestCalculate_SegmentAdjustment(t *testing.T) {
	engine := NewEngine(Config{})

	tests := []struct {
		name      string
		user      *domain.User
		wantPrice int64
	}{
		{"no user defaults to future", nil, 100_000},
		{"future segment", &domain.User{ID: 1, Segment: domain.SegmentFuture}, 100_000},
		{"active segment", &domain.User{ID: 2, Segment: domain.SegmentActive}, 97_000},
		{"vip segment", &domain.User{ID: 3, Segment: domain.SegmentVIP}, 95_000},
		{"risk segment surcharge", &domain.User{ID: 4, Segment: domain.SegmentRisk}, 110_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Calculate(Context{
				TeeTime: teeTimeAt(100_000, 48),
				User:    tt.user,
				Now:     testNow,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, result.FinalPrice)
		})
	}
}

func TestCalculate_SuspendedUserBlocked(t *testing.T) {
	engine := NewEngine(Config{})

	expired := testNow.Add(-time.Hour)
	active := testNow.Add(24 * time.Hour)

	tests := []struct {
		name        string
		user        *domain.User
		wantBlocked bool
	}{
		{
			name: "active suspension",
			user: &domain.User{
				ID:                  1,
				Segment:             domain.SegmentRisk,
				IsSuspended:         true,
				SuspendedReason:     ptr.Ptr("3 no-shows"),
				SuspensionExpiresAt: &active,
			},
			wantBlocked: true,
		},
		{
			name: "permanent suspension",
			user: &domain.User{
				ID:          2,
				Segment:     domain.SegmentRisk,
				IsSuspended: true,
			},
			wantBlocked: true,
		},
		{
			name: "expired suspension",
			user: &domain.User{
				ID:                  3,
				Segment:             domain.SegmentActive,
				IsSuspended:         true,
				SuspensionExpiresAt: &expired,
			},
			wantBlocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Calculate(Context{
				TeeTime: teeTimeAt(100_000, 48),
				User:    tt.user,
				Now:     testNow,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantBlocked, result.IsBlocked)
			if tt.wantBlocked {
				require.NotNil(t, result.BlockReason)
				assert.NotEmpty(t, *result.BlockReason)
				// Цена досчитывается до конца для отображения
				assert.Greater(t, result.FinalPrice, int64(0))
			} else {
				assert.Nil(t, result.BlockReason)
			}
		})
	}
}

func TestCalculate_FactorFoldInvariant(t *testing.T) {
	engine := NewEngine(Config{MinFinalPrice: 5_000})

	contexts := []Context{
		{TeeTime: teeTimeAt(100_000, 50), Now: testNow},
		{TeeTime: teeTimeAt(100_000, 2), Weather: &domain.WeatherSnapshot{Sky: domain.SkyRain, RainProbability: 90}, Now: testNow},
		{TeeTime: teeTimeAt(7_777, -1), User: &domain.User{ID: 1, Segment: domain.SegmentVIP}, Now: testNow},
		{TeeTime: teeTimeAt(3, -1), Weather: &domain.WeatherSnapshot{Sky: domain.SkyRain}, Now: testNow},
	}

	for _, pctx := range contexts {
		result, err := engine.Calculate(pctx)
		require.NoError(t, err)

		// Итоговая цена - свёртка базовой через все дельты
		folded := result.BasePrice
		for _, f := range result.Factors {
			folded += f.Amount
		}
		assert.Equal(t, result.FinalPrice, folded)
	}
}

func TestCalculate_MinimumPriceFloor(t *testing.T) {
	engine := NewEngine(Config{MinFinalPrice: 50_000})

	result, err := engine.Calculate(Context{
		TeeTime: teeTimeAt(60_000, 1),
		Weather: &domain.WeatherSnapshot{Sky: domain.SkyRain, RainProbability: 95},
		Now:     testNow,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50_000), result.FinalPrice)

	last := result.Factors[len(result.Factors)-1]
	assert.Equal(t, "minimum price adjustment", last.Description)
	assert.Greater(t, last.Amount, int64(0))
}

func TestCalculate_Validation(t *testing.T) {
	engine := NewEngine(Config{})

	_, err := engine.Calculate(Context{Now: testNow})
	assert.ErrorIs(t, err, ErrNilTeeTime)

	_, err = engine.Calculate(Context{TeeTime: teeTimeAt(100_000, 10)})
	assert.ErrorIs(t, err, ErrZeroTime)
}
