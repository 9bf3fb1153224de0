package mark_no_show

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/user"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/clubservice"
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
	markedID     int64
	markedAt     time.Time
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) MarkNoShow(ctx context.Context, id int64, markedAt time.Time) error {
	res, ok := r.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != domain.StatusPaid || res.NoShowMarkedAt != nil {
		return reservationRepo.ErrAlreadyMarked
	}
	res.Status = domain.StatusNoShow
	res.NoShowMarkedAt = &markedAt
	r.markedID = id
	r.markedAt = markedAt
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User

	suspendedID     int64
	suspendedReason string
	suspendedExpiry *time.Time

	segmentID  int64
	segmentSet domain.UserSegment
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) IncrementNoShowCount(ctx context.Context, id int64) (int, error) {
	u := r.users[id]
	u.NoShowCount++
	return u.NoShowCount, nil
}

func (r *fakeUserRepo) Suspend(ctx context.Context, id int64, reason string, suspendedAt time.Time, expiresAt *time.Time) error {
	r.suspendedID = id
	r.suspendedReason = reason
	r.suspendedExpiry = expiresAt
	return nil
}

func (r *fakeUserRepo) UpdateSegment(ctx context.Context, id int64, segment domain.UserSegment) error {
	r.segmentID = id
	r.segmentSet = segment
	return nil
}

type fakeClubClient struct {
	club *clubservice.Club
}

func (c *fakeClubClient) GetClub(ctx context.Context, clubID int64) (*clubservice.Club, error) {
	return c.club, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Бронирование с tee-off в прошлом, грейс-период давно истёк
func pastReservation(id, userID int64) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		UserID:        userID,
		ClubID:        10,
		TeeTimeID:     100,
		TeeOffAt:      testNow.Add(-2 * time.Hour),
		FinalPrice:    100_000,
		Status:        domain.StatusPaid,
		PolicyVersion: policy.VersionStandardV2,
	}
}

func managedClub() *clubservice.Club {
	return &clubservice.Club{ID: 10, ManagerIDs: []int64{77}}
}

func newTestUseCase(reservations *fakeReservationRepo, users *fakeUserRepo) *UseCase {
	uc := NewUseCase(reservations, users, &fakeClubClient{club: managedClub()}, &fakeTxManager{}, &fakeLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func TestUseCase_Execute_MarksNoShow(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: pastReservation(1, 5),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Segment: domain.SegmentActive, TotalBookings: 10},
	}}

	uc := newTestUseCase(reservations, users)

	resp, err := uc.Execute(context.Background(), &Request{ManagerID: 77, ReservationID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.NoShowCount)
	assert.False(t, resp.UserSuspended)
	assert.Equal(t, int64(1), reservations.markedID)
	assert.Equal(t, testNow, reservations.markedAt)
	// Один no-show при десяти бронированиях не меняет сегмент
	assert.Zero(t, users.segmentID)
}

func TestUseCase_Execute_SecondNoShowReclassifiesToRisk(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: pastReservation(1, 5),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Segment: domain.SegmentActive, NoShowCount: 1, TotalBookings: 10},
	}}

	uc := newTestUseCase(reservations, users)

	resp, err := uc.Execute(context.Background(), &Request{ManagerID: 77, ReservationID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.NoShowCount)
	assert.False(t, resp.UserSuspended)
	assert.Equal(t, domain.SegmentRisk, users.segmentSet)
}

func TestUseCase_Execute_ThirdNoShowSuspends(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: pastReservation(1, 5),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Segment: domain.SegmentRisk, NoShowCount: 2, TotalBookings: 10},
	}}

	uc := newTestUseCase(reservations, users)

	resp, err := uc.Execute(context.Background(), &Request{ManagerID: 77, ReservationID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.True(t, resp.UserSuspended)
	require.NotNil(t, resp.SuspensionExpiresAt)
	assert.Equal(t, testNow.AddDate(0, 0, 30), *resp.SuspensionExpiresAt)
	assert.Equal(t, int64(5), users.suspendedID)
}

func TestUseCase_Execute_SixthNoShowSuspendsPermanently(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: pastReservation(1, 5),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Segment: domain.SegmentRisk, NoShowCount: 5, TotalBookings: 20},
	}}

	uc := newTestUseCase(reservations, users)

	resp, err := uc.Execute(context.Background(), &Request{ManagerID: 77, ReservationID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.True(t, resp.UserSuspended)
	assert.Nil(t, resp.SuspensionExpiresAt)
	assert.Nil(t, users.suspendedExpiry)
}

func TestUseCase_Execute_BeforeGraceRefused(t *testing.T) {
	res := pastReservation(1, 5)
	// Tee-off 20 минут назад - внутри 30-минутного грейса
	res.TeeOffAt = testNow.Add(-20 * time.Minute)
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Segment: domain.SegmentActive, TotalBookings: 10},
	}}

	uc := newTestUseCase(reservations, users)

	resp, err := uc.Execute(context.Background(), &Request{ManagerID: 77, ReservationID: 1})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, policy.ReasonBeforeGrace, resp.RefusalCause)
	assert.Zero(t, reservations.markedID)
}

func TestUseCase_Execute_AlreadyMarkedRefused(t *testing.T) {
	res := pastReservation(1, 5)
	marked := testNow.Add(-time.Hour)
	res.NoShowMarkedAt = &marked
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{1: res}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Segment: domain.SegmentActive, NoShowCount: 1, TotalBookings: 10},
	}}

	uc := newTestUseCase(reservations, users)

	resp, err := uc.Execute(context.Background(), &Request{ManagerID: 77, ReservationID: 1})
	require.NoError(t, err)

	// Повторная фиксация не увеличивает счётчик
	assert.False(t, resp.Success)
	assert.Equal(t, policy.ReasonAlreadyMarked, resp.RefusalCause)
	assert.Equal(t, 1, users.users[5].NoShowCount)
}

func TestUseCase_Execute_NonManagerDenied(t *testing.T) {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: pastReservation(1, 5),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Segment: domain.SegmentActive, TotalBookings: 10},
	}}

	uc := newTestUseCase(reservations, users)

	// Даже владелец бронирования не может пометить себя как no-show
	_, err := uc.Execute(context.Background(), &Request{ManagerID: 5, ReservationID: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUseCase_Execute_ReservationNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeReservationRepo{reservations: map[int64]*domain.Reservation{}},
		&fakeUserRepo{users: map[int64]*domain.User{}},
	)

	_, err := uc.Execute(context.Background(), &Request{ManagerID: 77, ReservationID: 42})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
