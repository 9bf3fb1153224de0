package cancel_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/clubservice"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/paymentservice"
	"github.com/m04kA/GolfTee-BookingService/internal/policy"
)

var testNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

type fakeTimeProvider struct{ now time.Time }

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation

	cancelledID     int64
	cancelledRefund int64
	cancelledStatus domain.RefundStatus

	refundStatusID  int64
	refundStatusSet domain.RefundStatus
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) Cancel(ctx context.Context, id int64, reason string, refundAmount int64, refundStatus domain.RefundStatus) error {
	r.cancelledID = id
	r.cancelledRefund = refundAmount
	r.cancelledStatus = refundStatus
	return nil
}

func (r *fakeReservationRepo) UpdateRefundStatus(ctx context.Context, id int64, refundStatus domain.RefundStatus) error {
	r.refundStatusID = id
	r.refundStatusSet = refundStatus
	return nil
}

type fakeTeeTimeRepo struct {
	releasedID int64
}

func (r *fakeTeeTimeRepo) Release(ctx context.Context, id int64) error {
	r.releasedID = id
	return nil
}

type fakeClubClient struct {
	club *clubservice.Club
	err  error
}

func (c *fakeClubClient) GetClub(ctx context.Context, clubID int64) (*clubservice.Club, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.club, nil
}

type fakePaymentClient struct {
	result   *paymentservice.RefundResult
	err      error
	requests []paymentservice.RefundRequest
}

func (c *fakePaymentClient) Refund(ctx context.Context, refund paymentservice.RefundRequest) (*paymentservice.RefundResult, error) {
	c.requests = append(c.requests, refund)
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func paidReservation(id, userID int64, hoursToTeeOff float64) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		UserID:        userID,
		ClubID:        10,
		TeeTimeID:     100,
		TeeOffAt:      testNow.Add(time.Duration(hoursToTeeOff * float64(time.Hour))),
		BasePrice:     100_000,
		FinalPrice:    100_000,
		PaymentRef:    "pay-001",
		Status:        domain.StatusPaid,
		PolicyVersion: policy.VersionStandardV2,
		RefundStatus:  domain.RefundNone,
	}
}

func newTestUseCase(reservations *fakeReservationRepo, teeTimes *fakeTeeTimeRepo, clubs *fakeClubClient, payments *fakePaymentClient) *UseCase {
	uc := NewUseCase(reservations, teeTimes, clubs, payments, &fakeTxManager{}, &fakeLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func TestUseCase_Execute_FullRefund(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: paidReservation(1, 5, 50),
	}}
	teeTimes := &fakeTeeTimeRepo{}
	payments := &fakePaymentClient{result: &paymentservice.RefundResult{Success: true, RefundID: "ref-1"}}

	uc := newTestUseCase(reservations, teeTimes, &fakeClubClient{}, payments)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 1, Reason: "change of plans"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	// 50 часов до tee-off - полный возврат по standard-v2
	assert.Equal(t, int64(100_000), resp.RefundAmount)
	assert.Equal(t, string(domain.RefundPaid), resp.RefundStatus)
	assert.Equal(t, string(domain.StatusRefunded), resp.Status)

	assert.Equal(t, int64(1), reservations.cancelledID)
	assert.Equal(t, int64(100_000), reservations.cancelledRefund)
	assert.Equal(t, domain.RefundPending, reservations.cancelledStatus)
	assert.Equal(t, domain.RefundPaid, reservations.refundStatusSet)
	assert.Equal(t, int64(100), teeTimes.releasedID)

	require.Len(t, payments.requests, 1)
	assert.Equal(t, "pay-001", payments.requests[0].PaymentRef)
	assert.Equal(t, int64(100_000), payments.requests[0].Amount)
}

func TestUseCase_Execute_PastCutoffRefused(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: paidReservation(1, 5, 10),
	}}
	teeTimes := &fakeTeeTimeRepo{}
	payments := &fakePaymentClient{}

	uc := newTestUseCase(reservations, teeTimes, &fakeClubClient{}, payments)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 1})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, policy.ReasonPastCutoff, resp.RefusalCause)
	assert.InDelta(t, 10.0, resp.HoursLeft, 0.001)

	// Отмена не выполнялась
	assert.Zero(t, reservations.cancelledID)
	assert.Zero(t, teeTimes.releasedID)
	assert.Empty(t, payments.requests)
}

func TestUseCase_Execute_ImminentDealRefused(t *testing.T) {
	res := paidReservation(1, 5, 50)
	res.IsImminentDeal = true
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, &fakeClubClient{}, &fakePaymentClient{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 1})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, policy.ReasonImminentDeal, resp.RefusalCause)
}

func TestUseCase_Execute_CancelledReservationRefused(t *testing.T) {
	res := paidReservation(1, 5, 50)
	res.Status = domain.StatusCancelled
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, &fakeClubClient{}, &fakePaymentClient{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 1})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, policy.ReasonNotCancellable, resp.RefusalCause)
}

func TestUseCase_Execute_PolicyVersionPinned(t *testing.T) {
	// standard-v1: 30 часов до tee-off попадает в тир 50%
	res := paidReservation(1, 5, 30)
	res.PolicyVersion = policy.VersionStandardV1
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}
	payments := &fakePaymentClient{result: &paymentservice.RefundResult{Success: true}}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, &fakeClubClient{}, payments)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(50_000), resp.RefundAmount)
}

func TestUseCase_Execute_ZeroRefundSkipsPayment(t *testing.T) {
	// Нулевой возврат не должен дергать платёжный контур
	res := paidReservation(1, 5, 50)
	res.FinalPrice = 0
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}
	payments := &fakePaymentClient{}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, &fakeClubClient{}, payments)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(0), resp.RefundAmount)
	assert.Equal(t, string(domain.RefundNone), resp.RefundStatus)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Empty(t, payments.requests)
}

func TestUseCase_Execute_RefundFailureKeepsCancellation(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: paidReservation(1, 5, 50),
	}}
	payments := &fakePaymentClient{err: errors.New("payment service unavailable")}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, &fakeClubClient{}, payments)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 1})
	require.NoError(t, err)

	// Отмена состоялась, возврат помечен failed
	assert.True(t, resp.Success)
	assert.Equal(t, string(domain.RefundFailed), resp.RefundStatus)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.RefundFailed, reservations.refundStatusSet)
}

func TestUseCase_Execute_ManagerCanCancel(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: paidReservation(1, 5, 50),
	}}
	clubs := &fakeClubClient{club: &clubservice.Club{ID: 10, ManagerIDs: []int64{77}}}
	payments := &fakePaymentClient{result: &paymentservice.RefundResult{Success: true}}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, clubs, payments)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 1, Reason: "course closed"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestUseCase_Execute_StrangerDenied(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: paidReservation(1, 5, 50),
	}}
	clubs := &fakeClubClient{club: &clubservice.Club{ID: 10, ManagerIDs: []int64{77}}}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, clubs, &fakePaymentClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 99, ReservationID: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUseCase_Execute_ReservationNotFound(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}

	uc := newTestUseCase(reservations, &fakeTeeTimeRepo{}, &fakeClubClient{}, &fakePaymentClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 5, ReservationID: 42})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
