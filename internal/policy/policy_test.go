package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/pkg/ptr"
)

var testNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func paidReservation(hoursToTeeOff float64) *domain.Reservation {
	return &domain.Reservation{
		ID:            1,
		UserID:        7,
		TeeTimeID:     100,
		TeeOffAt:      testNow.Add(time.Duration(hoursToTeeOff * float64(time.Hour))),
		BasePrice:     100_000,
		FinalPrice:    100_000,
		Status:        domain.StatusPaid,
		PolicyVersion: VersionStandardV2,
	}
}

func TestResolve(t *testing.T) {
	for _, version := range []string{VersionStandardV1, VersionStandardV2} {
		cfg, err := Resolve(version)
		require.NoError(t, err)
		assert.Equal(t, version, cfg.Version)
		assert.NotEmpty(t, cfg.RefundTiers)
	}

	_, err := Resolve("STANDARD_V99")
	assert.ErrorIs(t, err, ErrUnknownPolicyVersion)

	_, err = Resolve("")
	assert.ErrorIs(t, err, ErrUnknownPolicyVersion)
}

func TestCanCancel(t *testing.T) {
	cfg, err := Resolve(VersionStandardV2)
	require.NoError(t, err)

	t.Run("paid above cutoff", func(t *testing.T) {
		decision := CanCancel(paidReservation(50), cfg, testNow)
		assert.True(t, decision.CanCancel)
		assert.InDelta(t, 50, decision.HoursLeft, 0.01)
	})

	t.Run("not paid", func(t *testing.T) {
		for _, status := range []domain.ReservationStatus{
			domain.StatusPending,
			domain.StatusCancelled,
			domain.StatusRefunded,
			domain.StatusNoShow,
			domain.StatusCompleted,
		} {
			r := paidReservation(50)
			r.Status = status
			decision := CanCancel(r, cfg, testNow)
			assert.False(t, decision.CanCancel, "status %s", status)
			assert.Equal(t, ReasonNotCancellable, decision.Reason)
		}
	})

	t.Run("imminent deal never cancellable", func(t *testing.T) {
		// Независимо от оставшегося времени
		for _, hours := range []float64{200, 50, 25, 2, -1} {
			r := paidReservation(hours)
			r.IsImminentDeal = true
			decision := CanCancel(r, cfg, testNow)
			assert.False(t, decision.CanCancel, "hours %v", hours)
			assert.Equal(t, ReasonImminentDeal, decision.Reason)
		}
	})

	t.Run("past cutoff", func(t *testing.T) {
		decision := CanCancel(paidReservation(10), cfg, testNow)
		assert.False(t, decision.CanCancel)
		assert.Equal(t, ReasonPastCutoff, decision.Reason)
		assert.InDelta(t, 10, decision.HoursLeft, 0.01)
	})

	t.Run("tee-off passed reports negative hours", func(t *testing.T) {
		decision := CanCancel(paidReservation(-3), cfg, testNow)
		assert.False(t, decision.CanCancel)
		assert.Less(t, decision.HoursLeft, 0.0)
	})
}

func TestRefundAmount_StandardV2(t *testing.T) {
	cfg, err := Resolve(VersionStandardV2)
	require.NoError(t, err)

	// Выше cutoff - возврат ровно равен итоговой цене
	assert.Equal(t, int64(100_000), RefundAmount(paidReservation(50), cfg, testNow))
	assert.Equal(t, int64(100_000), RefundAmount(paidReservation(24), cfg, testNow))

	// Ниже cutoff - ничего
	assert.Equal(t, int64(0), RefundAmount(paidReservation(23), cfg, testNow))
	assert.Equal(t, int64(0), RefundAmount(paidReservation(-1), cfg, testNow))
}

func TestRefundAmount_StandardV1Tiers(t *testing.T) {
	cfg, err := Resolve(VersionStandardV1)
	require.NoError(t, err)

	assert.Equal(t, int64(100_000), RefundAmount(paidReservation(72), cfg, testNow))
	assert.Equal(t, int64(50_000), RefundAmount(paidReservation(30), cfg, testNow))
	assert.Equal(t, int64(0), RefundAmount(paidReservation(10), cfg, testNow))
}

func TestRefundAmount_ImminentDealAlwaysZero(t *testing.T) {
	cfg, err := Resolve(VersionStandardV2)
	require.NoError(t, err)

	r := paidReservation(200)
	r.IsImminentDeal = true
	assert.Equal(t, int64(0), RefundAmount(r, cfg, testNow))
}

func TestCanMarkNoShow(t *testing.T) {
	cfg, err := Resolve(VersionStandardV2)
	require.NoError(t, err)

	t.Run("eligible after grace", func(t *testing.T) {
		decision := CanMarkNoShow(paidReservation(-1), cfg, testNow)
		assert.True(t, decision.Eligible)
	})

	t.Run("within grace period", func(t *testing.T) {
		// Tee-off 20 минут назад, грейс 30 минут ещё не истёк
		r := paidReservation(0)
		r.TeeOffAt = testNow.Add(-20 * time.Minute)
		decision := CanMarkNoShow(r, cfg, testNow)
		assert.False(t, decision.Eligible)
		assert.Equal(t, ReasonBeforeGrace, decision.Reason)
	})

	t.Run("exactly at grace boundary", func(t *testing.T) {
		r := paidReservation(0)
		r.TeeOffAt = testNow.Add(-30 * time.Minute)
		decision := CanMarkNoShow(r, cfg, testNow)
		assert.False(t, decision.Eligible)
	})

	t.Run("not paid", func(t *testing.T) {
		r := paidReservation(-2)
		r.Status = domain.StatusCancelled
		decision := CanMarkNoShow(r, cfg, testNow)
		assert.False(t, decision.Eligible)
		assert.Equal(t, ReasonNotPaid, decision.Reason)
	})

	t.Run("already marked is a no-op", func(t *testing.T) {
		r := paidReservation(-2)
		r.NoShowMarkedAt = ptr.Ptr(testNow.Add(-time.Hour))
		decision := CanMarkNoShow(r, cfg, testNow)
		assert.False(t, decision.Eligible)
		assert.Equal(t, ReasonAlreadyMarked, decision.Reason)
	})
}

func TestSuspensionForCount(t *testing.T) {
	cfg, err := Resolve(VersionStandardV2)
	require.NoError(t, err)

	t.Run("below threshold", func(t *testing.T) {
		assert.False(t, SuspensionForCount(1, cfg, testNow).Suspend)
		assert.False(t, SuspensionForCount(2, cfg, testNow).Suspend)
	})

	t.Run("threshold crossing suspends temporarily", func(t *testing.T) {
		decision := SuspensionForCount(3, cfg, testNow)
		assert.True(t, decision.Suspend)
		assert.NotEmpty(t, decision.Reason)
		require.NotNil(t, decision.ExpiresAt)
		assert.Equal(t, testNow.AddDate(0, 0, cfg.SuspensionDays), *decision.ExpiresAt)
	})

	t.Run("repeat offender suspended permanently", func(t *testing.T) {
		decision := SuspensionForCount(6, cfg, testNow)
		assert.True(t, decision.Suspend)
		assert.Nil(t, decision.ExpiresAt)
	})
}
