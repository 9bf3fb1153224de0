package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/GolfTee-BookingService/internal/service/reservations/models"
)

// Service сервис для чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	clubClient      ClubServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	clubClient ClubServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		clubClient:      clubClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь видит только своё бронирование,
// управляющий клуба - любое бронирование своего клуба
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetClubReservations получает бронирования клуба с гибкой фильтрацией
// Поддерживает фильтрацию по периоду tee-off, статусу и включению
// неактивных бронирований. Доступно только управляющим клуба
func (s *Service) GetClubReservations(ctx context.Context, req *models.GetClubReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetClubReservations: fetching reservations for club=%d, user=%d", req.ClubID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа управляющего
	if err := s.checkManagerAccess(ctx, req.ClubID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClubReservations: invalid filter for club=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByClubWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClubReservations: repository error for club=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: GetClubReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClubReservations: successfully fetched %d reservations for club=%d", len(reservations), req.ClubID)
	return models.FromDomainReservationList(reservations), nil
}

// checkUserAccess проверяет, что пользователь - владелец бронирования
// или управляющий клуба
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.UserID == userID {
		return nil
	}

	return s.checkManagerAccess(ctx, reservation.ClubID, userID)
}

// checkManagerAccess проверяет, что пользователь - управляющий клуба
func (s *Service) checkManagerAccess(ctx context.Context, clubID int64, userID int64) error {
	club, err := s.clubClient.GetClub(ctx, clubID)
	if err != nil {
		s.logger.Error("checkManagerAccess: failed to get club id=%d: %v", clubID, err)
		return fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}

	if !club.IsManager(userID) {
		return ErrAccessDenied
	}

	return nil
}
