package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/pkg/ptr"
)

var (
	periodStart = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func reservation(id, teeTimeID int64, teeOff time.Time, status domain.ReservationStatus, finalPrice, refund int64) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		ClubID:       10,
		TeeTimeID:    teeTimeID,
		TeeOffAt:     teeOff,
		BasePrice:    finalPrice,
		FinalPrice:   finalPrice,
		Status:       status,
		RefundAmount: refund,
	}
}

func TestBuildPreview_Totals(t *testing.T) {
	// Одно отменённое с частичным возвратом и одно оплаченное:
	// (100 000 - 50 000) + 80 000 = 130 000
	reservations := []*domain.Reservation{
		reservation(1, 100, periodStart.AddDate(0, 0, 5), domain.StatusCancelled, 100_000, 50_000),
		reservation(2, 101, periodStart.AddDate(0, 0, 10), domain.StatusPaid, 80_000, 0),
	}

	preview := BuildPreview(reservations, periodStart, periodEnd)

	assert.Equal(t, int64(180_000), preview.Totals.GrossPaid)
	assert.Equal(t, int64(50_000), preview.Totals.TotalRefunded)
	assert.Equal(t, int64(130_000), preview.Totals.Net)
	assert.Equal(t, 2, preview.Totals.Count)
	assert.Empty(t, preview.Anomalies)
}

func TestBuildPreview_NetMatchesLineSum(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation(1, 100, periodStart.AddDate(0, 0, 1), domain.StatusPaid, 123_457, 0),
		reservation(2, 101, periodStart.AddDate(0, 0, 2), domain.StatusRefunded, 99_999, 99_999),
		reservation(3, 102, periodStart.AddDate(0, 0, 3), domain.StatusNoShow, 77_001, 0),
		reservation(4, 103, periodStart.AddDate(0, 0, 4), domain.StatusCancelled, 50_000, 25_000),
		reservation(5, 104, periodStart.AddDate(0, 0, 5), domain.StatusCompleted, 31_111, 0),
	}

	preview := BuildPreview(reservations, periodStart, periodEnd)

	var sum int64
	for _, line := range preview.Lines {
		assert.Equal(t, line.FinalPrice-line.RefundAmount, line.Net)
		sum += line.Net
	}
	// Ровно, без расхождений округления
	assert.Equal(t, preview.Totals.Net, sum)
	assert.Equal(t, preview.Totals.GrossPaid-preview.Totals.TotalRefunded, preview.Totals.Net)
}

func TestBuildPreview_ExcludesAlreadySettled(t *testing.T) {
	settled := reservation(1, 100, periodStart.AddDate(0, 0, 5), domain.StatusPaid, 100_000, 0)
	settled.SettlementID = ptr.Ptr(int64(77))

	reservations := []*domain.Reservation{
		settled,
		reservation(2, 101, periodStart.AddDate(0, 0, 6), domain.StatusPaid, 80_000, 0),
	}

	preview := BuildPreview(reservations, periodStart, periodEnd)

	require.Len(t, preview.Lines, 1)
	assert.Equal(t, int64(2), preview.Lines[0].ReservationID)
	assert.Equal(t, int64(80_000), preview.Totals.Net)
}

func TestBuildPreview_PeriodBoundaries(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation(1, 100, periodStart.Add(-time.Second), domain.StatusPaid, 10_000, 0), // до периода
		reservation(2, 101, periodStart, domain.StatusPaid, 20_000, 0),                  // начало включается
		reservation(3, 102, periodEnd.Add(-time.Second), domain.StatusPaid, 30_000, 0),  // внутри
		reservation(4, 103, periodEnd, domain.StatusPaid, 40_000, 0),                    // конец исключается
	}

	preview := BuildPreview(reservations, periodStart, periodEnd)

	require.Len(t, preview.Lines, 2)
	assert.Equal(t, int64(50_000), preview.Totals.Net)
}

func TestBuildPreview_ExcludesPending(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation(1, 100, periodStart.AddDate(0, 0, 5), domain.StatusPending, 100_000, 0),
		reservation(2, 101, periodStart.AddDate(0, 0, 6), domain.StatusPaid, 80_000, 0),
	}

	preview := BuildPreview(reservations, periodStart, periodEnd)

	require.Len(t, preview.Lines, 1)
	assert.Equal(t, int64(2), preview.Lines[0].ReservationID)
}

func TestBuildPreview_OrderedByTeeOffDescending(t *testing.T) {
	reservations := []*domain.Reservation{
		reservation(1, 100, periodStart.AddDate(0, 0, 3), domain.StatusPaid, 10_000, 0),
		reservation(2, 101, periodStart.AddDate(0, 0, 20), domain.StatusPaid, 20_000, 0),
		reservation(3, 102, periodStart.AddDate(0, 0, 10), domain.StatusPaid, 30_000, 0),
	}

	preview := BuildPreview(reservations, periodStart, periodEnd)

	require.Len(t, preview.Lines, 3)
	for i := 1; i < len(preview.Lines); i++ {
		assert.False(t, preview.Lines[i].TeeOffAt.After(preview.Lines[i-1].TeeOffAt),
			"lines must be ordered most recent first")
	}
}

func TestBuildPreview_DuplicatePaidAnomaly(t *testing.T) {
	teeOff := periodStart.AddDate(0, 0, 5)

	// Два PAID на один tee time - нарушение инварианта уровня данных.
	// Сумма не задваивается: остаётся созданное первым, дубликат в аномалиях
	reservations := []*domain.Reservation{
		reservation(2, 100, teeOff, domain.StatusPaid, 100_000, 0),
		reservation(1, 100, teeOff, domain.StatusPaid, 100_000, 0),
		reservation(3, 101, teeOff, domain.StatusPaid, 80_000, 0),
	}

	preview := BuildPreview(reservations, periodStart, periodEnd)

	require.Len(t, preview.Lines, 2)
	assert.Equal(t, int64(180_000), preview.Totals.Net)

	require.Len(t, preview.Anomalies, 1)
	anomaly := preview.Anomalies[0]
	assert.Equal(t, int64(100), anomaly.TeeTimeID)
	assert.Equal(t, []int64{1, 2}, anomaly.ReservationIDs)

	// Оставлено бронирование с наименьшим id
	kept := map[int64]bool{}
	for _, line := range preview.Lines {
		kept[line.ReservationID] = true
	}
	assert.True(t, kept[1])
	assert.False(t, kept[2])
}

func TestBuildPreview_Empty(t *testing.T) {
	preview := BuildPreview(nil, periodStart, periodEnd)

	assert.Empty(t, preview.Lines)
	assert.Equal(t, Totals{}, preview.Totals)
}
