package create_settlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
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

	assignedIDs          []int64
	assignedSettlementID int64
	assignErr            error
}

func (r *fakeReservationRepo) GetUnsettledByClubAndPeriod(ctx context.Context, clubID int64, from, to time.Time) ([]*domain.Reservation, error) {
	return r.reservations, nil
}

func (r *fakeReservationRepo) AssignSettlement(ctx context.Context, ids []int64, settlementID int64) error {
	if r.assignErr != nil {
		return r.assignErr
	}
	r.assignedIDs = ids
	r.assignedSettlementID = settlementID
	return nil
}

type fakeSettlementRepo struct {
	nextID  int64
	created []*domain.Settlement
}

func (r *fakeSettlementRepo) Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error) {
	r.nextID++
	cp := *s
	cp.ID = r.nextID
	cp.CreatedAt = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	r.created = append(r.created, &cp)
	return &cp, nil
}

type fakeClubClient struct {
	club *clubservice.Club
}

func (c *fakeClubClient) GetClub(ctx context.Context, clubID int64) (*clubservice.Club, error) {
	return c.club, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func periodReservations() []*domain.Reservation {
	return []*domain.Reservation{
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
}

func newTestUseCase(reservations *fakeReservationRepo, settlements *fakeSettlementRepo) *UseCase {
	return NewUseCase(
		reservations,
		settlements,
		&fakeClubClient{club: &clubservice.Club{ID: 10, ManagerIDs: []int64{77}}},
		&fakeTxManager{},
		&fakeLogger{},
	)
}

func TestUseCase_Execute_CreatesDraftSettlement(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: periodReservations()}
	settlements := &fakeSettlementRepo{}

	uc := newTestUseCase(reservations, settlements)

	resp, err := uc.Execute(context.Background(), &Request{
		ManagerID:   77,
		ClubID:      10,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.SettlementDraft), resp.Status)
	assert.Equal(t, int64(130_000), resp.Totals.Net)
	assert.Len(t, resp.Lines, 2)

	require.Len(t, settlements.created, 1)
	created := settlements.created[0]
	assert.Equal(t, int64(180_000), created.GrossPaid)
	assert.Equal(t, int64(50_000), created.TotalRefunded)
	assert.Equal(t, int64(130_000), created.Net)
	assert.Equal(t, int64(77), created.CreatedBy)

	// Все строки привязаны к созданному settlement
	assert.ElementsMatch(t, []int64{1, 2}, reservations.assignedIDs)
	assert.Equal(t, int64(1), reservations.assignedSettlementID)
}

func TestUseCase_Execute_EmptyPeriod(t *testing.T) {
	reservations := &fakeReservationRepo{}
	settlements := &fakeSettlementRepo{}

	uc := newTestUseCase(reservations, settlements)

	_, err := uc.Execute(context.Background(), &Request{
		ManagerID:   77,
		ClubID:      10,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	assert.ErrorIs(t, err, ErrEmptyPeriod)
	assert.Empty(t, settlements.created)
}

func TestUseCase_Execute_ConcurrentSettlement(t *testing.T) {
	reservations := &fakeReservationRepo{
		reservations: periodReservations(),
		assignErr:    reservationRepo.ErrAlreadySettled,
	}
	settlements := &fakeSettlementRepo{}

	uc := newTestUseCase(reservations, settlements)

	_, err := uc.Execute(context.Background(), &Request{
		ManagerID:   77,
		ClubID:      10,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	assert.ErrorIs(t, err, ErrConcurrentSettlement)
}

func TestUseCase_Execute_NonManagerDenied(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeSettlementRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ManagerID:   99,
		ClubID:      10,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUseCase_Execute_DuplicatePaidReported(t *testing.T) {
	dup := periodReservations()
	// Второе PAID бронирование на тот же tee time
	dup = append(dup, &domain.Reservation{
		ID:         3,
		ClubID:     10,
		TeeTimeID:  101,
		TeeOffAt:   periodStart.AddDate(0, 0, 10),
		FinalPrice: 90_000,
		Status:     domain.StatusPaid,
	})
	reservations := &fakeReservationRepo{reservations: dup}
	settlements := &fakeSettlementRepo{}

	uc := newTestUseCase(reservations, settlements)

	resp, err := uc.Execute(context.Background(), &Request{
		ManagerID:   77,
		ClubID:      10,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	require.NoError(t, err)

	// Дубликат исключён из сумм и привязки, аномалия в ответе
	require.Len(t, resp.Anomalies, 1)
	assert.Equal(t, int64(101), resp.Anomalies[0].TeeTimeID)
	assert.Equal(t, int64(180_000), resp.Totals.GrossPaid)
	assert.ElementsMatch(t, []int64{1, 2}, reservations.assignedIDs)
}
