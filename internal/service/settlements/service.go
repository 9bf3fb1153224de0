package settlements

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	settlementRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/settlement"
	"github.com/m04kA/GolfTee-BookingService/internal/service/settlements/models"
)

// Service сервис жизненного цикла settlements
// Переходы только вперед: draft -> confirmed -> locked, залоченный
// settlement неизменяем
type Service struct {
	settlementRepo SettlementRepository
	clubClient     ClubServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса settlements
func NewService(
	settlementRepo SettlementRepository,
	clubClient ClubServiceClient,
	logger Logger,
) *Service {
	return &Service{
		settlementRepo: settlementRepo,
		clubClient:     clubClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// GetByID получает settlement по ID
// Доступно только управляющим клуба
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SettlementResponse, error) {
	s.logger.Info("GetByID: fetching settlement id=%d for user=%d", id, userID)

	settlement, err := s.getWithAccess(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched settlement id=%d", id)
	return models.FromDomainSettlement(settlement), nil
}

// Confirm переводит settlement из draft в confirmed
func (s *Service) Confirm(ctx context.Context, id int64, userID int64) (*models.SettlementResponse, error) {
	s.logger.Info("Confirm: confirming settlement id=%d by user=%d", id, userID)

	settlement, err := s.getWithAccess(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !settlement.CanConfirm() {
		s.logger.Warn("Confirm: settlement id=%d is not draft, status=%s", id, settlement.Status)
		return nil, ErrInvalidTransition
	}

	now := s.timeProvider.Now()
	if err := s.settlementRepo.Confirm(ctx, id, userID, now); err != nil {
		// Условный UPDATE: переход мог быть выполнен конкурентно
		if errors.Is(err, settlementRepo.ErrInvalidTransition) {
			s.logger.Warn("Confirm: settlement id=%d transitioned concurrently", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Confirm: repository error for settlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	settlement.Status = domain.SettlementConfirmed
	settlement.ConfirmedBy = &userID
	settlement.ConfirmedAt = &now

	s.logger.Info("Confirm: settlement id=%d confirmed", id)
	return models.FromDomainSettlement(settlement), nil
}

// Lock переводит settlement из confirmed в locked
// После блокировки settlement становится неизменяемым финансовым документом
func (s *Service) Lock(ctx context.Context, id int64, userID int64) (*models.SettlementResponse, error) {
	s.logger.Info("Lock: locking settlement id=%d by user=%d", id, userID)

	settlement, err := s.getWithAccess(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !settlement.CanLock() {
		s.logger.Warn("Lock: settlement id=%d is not confirmed, status=%s", id, settlement.Status)
		return nil, ErrInvalidTransition
	}

	now := s.timeProvider.Now()
	if err := s.settlementRepo.Lock(ctx, id, userID, now); err != nil {
		if errors.Is(err, settlementRepo.ErrInvalidTransition) {
			s.logger.Warn("Lock: settlement id=%d transitioned concurrently", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("Lock: repository error for settlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Lock - repository error: %v", ErrInternal, err)
	}

	settlement.Status = domain.SettlementLocked
	settlement.LockedBy = &userID
	settlement.LockedAt = &now

	s.logger.Info("Lock: settlement id=%d locked", id)
	return models.FromDomainSettlement(settlement), nil
}

// getWithAccess получает settlement и проверяет права управляющего
func (s *Service) getWithAccess(ctx context.Context, id int64, userID int64) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, settlementRepo.ErrSettlementNotFound) {
			s.logger.Warn("getWithAccess: settlement id=%d not found", id)
			return nil, ErrSettlementNotFound
		}
		s.logger.Error("getWithAccess: repository error for settlement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	club, err := s.clubClient.GetClub(ctx, settlement.ClubID)
	if err != nil {
		s.logger.Error("getWithAccess: failed to get club id=%d: %v", settlement.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}

	if !club.IsManager(userID) {
		s.logger.Warn("getWithAccess: user=%d is not a manager of club=%d", userID, settlement.ClubID)
		return nil, ErrAccessDenied
	}

	return settlement, nil
}
