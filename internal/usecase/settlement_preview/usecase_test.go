package settlement_preview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/clubservice"
)

var (
	periodStart = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (r *fakeReservationRepo) GetUnsettledByClubAndPeriod(ctx context.Context, clubID int64, from, to time.Time) ([]*domain.Reservation, error) {
	return r.reservations, nil
}

type fakeClubClient struct {
	club *clubservice.Club
}

func (c *fakeClubClient) GetClub(ctx context.Context, clubID int64) (*clubservice.Club, error) {
	return c.club, nil
}

func newTestUseCase(reservations []*domain.Reservation) *UseCase {
	return NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeClubClient{club: &clubservice.Club{ID: 10, ManagerIDs: []int64{77}}},
		&fakeLogger{},
	)
}

func TestUseCase_Execute_Preview(t *testing.T) {
	reservations := []*domain.Reservation{
		{
			ID:           1,
			ClubID:       10,
			TeeTimeID:    100,
			TeeOffAt:     periodStart.AddDate(0, 0, 5),
			FinalPrice:   100_000,
			RefundAmount: 50_000,
			Status:       domain.StatusCancelled,
		},
		{
			ID:         2,
			ClubID:     10,
			TeeTimeID:  101,
			TeeOffAt:   periodStart.AddDate(0, 0, 10),
			FinalPrice: 80_000,
			Status:     domain.StatusPaid,
		},
	}

	uc := newTestUseCase(reservations)

	resp, err := uc.Execute(context.Background(), &Request{
		ManagerID:   77,
		ClubID:      10,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Lines, 2)
	assert.Equal(t, int64(180_000), resp.Totals.GrossPaid)
	assert.Equal(t, int64(50_000), resp.Totals.TotalRefunded)
	assert.Equal(t, int64(130_000), resp.Totals.Net)
	assert.Empty(t, resp.Anomalies)
}

func TestUseCase_Execute_NonManagerDenied(t *testing.T) {
	uc := newTestUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{
		ManagerID:   99,
		ClubID:      10,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero manager id", &Request{ClubID: 10, PeriodStart: periodStart, PeriodEnd: periodEnd}},
		{"zero club id", &Request{ManagerID: 77, PeriodStart: periodStart, PeriodEnd: periodEnd}},
		{"zero period start", &Request{ManagerID: 77, ClubID: 10, PeriodEnd: periodEnd}},
		{"inverted period", &Request{ManagerID: 77, ClubID: 10, PeriodStart: periodEnd, PeriodEnd: periodStart}},
		{"empty period", &Request{ManagerID: 77, ClubID: 10, PeriodStart: periodStart, PeriodEnd: periodStart}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
