package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/clubservice"
	"github.com/m04kA/GolfTee-BookingService/internal/service/reservations/models"
	"github.com/m04kA/GolfTee-BookingService/pkg/ptr"
)

type fakeLogger struct{}

func (l *fakeLogger) Info(format string, v ...interface{})  {}
func (l *fakeLogger) Warn(format string, v ...interface{})  {}
func (l *fakeLogger) Error(format string, v ...interface{}) {}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
	byUser       []*domain.Reservation
	byClub       []*domain.Reservation
	lastFilter   domain.ClubReservationsFilter
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (r *fakeReservationRepo) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return r.byUser, nil
}

func (r *fakeReservationRepo) GetByClubWithFilter(ctx context.Context, filter domain.ClubReservationsFilter) ([]*domain.Reservation, error) {
	r.lastFilter = filter
	return r.byClub, nil
}

type fakeClubClient struct {
	club *clubservice.Club
}

func (c *fakeClubClient) GetClub(ctx context.Context, clubID int64) (*clubservice.Club, error) {
	return c.club, nil
}

func testReservation(id, userID int64) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		UserID:     userID,
		ClubID:     10,
		TeeTimeID:  100,
		TeeOffAt:   time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC),
		BasePrice:  100_000,
		FinalPrice: 97_000,
		Factors: []domain.PriceFactor{
			{Description: "active segment discount", Amount: -3_000},
		},
		Status:        domain.StatusPaid,
		PolicyVersion: "standard-v2",
		RefundStatus:  domain.RefundNone,
	}
}

func newTestService(repo *fakeReservationRepo) *Service {
	return NewService(repo, &fakeClubClient{club: &clubservice.Club{ID: 10, ManagerIDs: []int64{77}}}, &fakeLogger{})
}

func TestService_GetByID_Owner(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: testReservation(1, 5),
	}}

	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(97_000), resp.FinalPrice)
	require.Len(t, resp.Factors, 1)
	assert.Equal(t, "active segment discount", resp.Factors[0].Description)
}

func TestService_GetByID_Manager(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: testReservation(1, 5),
	}}

	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 1, 77)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestService_GetByID_StrangerDenied(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: testReservation(1, 5),
	}}

	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{reservations: map[int64]*domain.Reservation{}})

	_, err := svc.GetByID(context.Background(), 42, 5)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_GetUserReservations(t *testing.T) {
	repo := &fakeReservationRepo{byUser: []*domain.Reservation{
		testReservation(1, 5),
		testReservation(2, 5),
	}}

	svc := newTestService(repo)

	resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestService_GetUserReservations_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{})

	_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
		UserID: 5,
		Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetClubReservations_Manager(t *testing.T) {
	repo := &fakeReservationRepo{byClub: []*domain.Reservation{testReservation(1, 5)}}

	svc := newTestService(repo)

	resp, err := svc.GetClubReservations(context.Background(), &models.GetClubReservationsRequest{
		UserID: 77,
		ClubID: 10,
		Status: ptr.Ptr(string(domain.StatusPaid)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusPaid, *repo.lastFilter.Status)
}

func TestService_GetClubReservations_NonManagerDenied(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{})

	_, err := svc.GetClubReservations(context.Background(), &models.GetClubReservationsRequest{
		UserID: 5,
		ClubID: 10,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
