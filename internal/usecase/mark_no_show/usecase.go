package mark_no_show

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/GolfTee-BookingService/internal/policy"
	"github.com/m04kA/GolfTee-BookingService/internal/pricing"
)

// UseCase use case для фиксации неявки игрока управляющим клуба
type UseCase struct {
	reservationRepo ReservationRepository
	userRepo        UserRepository
	clubClient      ClubServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	clubClient ClubServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		clubClient:      clubClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case фиксации неявки
//
// Фиксация no-show, инкремент счётчика и возможная блокировка
// пользователя проходят одной транзакцией. Условное обновление в
// MarkNoShow закрывает гонку двух менеджеров: счётчик увеличится
// ровно один раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkNoShow: manager=%d, reservation=%d", req.ManagerID, req.ReservationID)

	// 1. Валидация входных данных
	if req.ManagerID <= 0 || req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: manager id and reservation id must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// 2. Получаем бронирование
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("MarkNoShow: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("MarkNoShow: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Только управляющий клуба фиксирует неявку
	club, err := uc.clubClient.GetClub(ctx, res.ClubID)
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to get club id=%d: %v", res.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}
	if !club.IsManager(req.ManagerID) {
		uc.logger.Warn("MarkNoShow: user=%d is not a manager of club=%d", req.ManagerID, res.ClubID)
		return nil, ErrPermissionDenied
	}

	// 4. Резолвим версию политики, зафиксированную в бронировании
	cfg, err := policy.Resolve(res.PolicyVersion)
	if err != nil {
		uc.logger.Error("MarkNoShow: reservation id=%d carries unknown policy version %q", res.ID, res.PolicyVersion)
		return nil, fmt.Errorf("%w: resolve policy version: %v", ErrInternal, err)
	}

	// 5. Проверяем право на фиксацию
	decision := policy.CanMarkNoShow(res, cfg, now)
	if !decision.Eligible {
		uc.logger.Info("MarkNoShow: reservation id=%d refused: %s", res.ID, decision.Reason)
		return &Response{
			Success:       false,
			RefusalCause:  decision.Reason,
			ReservationID: res.ID,
			UserID:        res.UserID,
		}, nil
	}

	// 6. Снапшот пользователя для переклассификации сегмента
	user, err := uc.userRepo.GetByID(ctx, res.UserID)
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to get user id=%d: %v", res.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	var (
		newCount   int
		suspension policy.SuspensionDecision
	)

	// 7. Фиксация, счётчик и блокировка - одна атомарная единица
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.MarkNoShow(txCtx, res.ID, now); err != nil {
			if errors.Is(err, reservationRepo.ErrAlreadyMarked) {
				uc.logger.Warn("MarkNoShow: reservation id=%d already marked concurrently", res.ID)
				return reservationRepo.ErrAlreadyMarked
			}
			uc.logger.Error("MarkNoShow: failed to mark reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to mark no-show: %v", ErrInternal, err)
		}

		newCount, err = uc.userRepo.IncrementNoShowCount(txCtx, res.UserID)
		if err != nil {
			uc.logger.Error("MarkNoShow: failed to increment no-show count for user=%d: %v", res.UserID, err)
			return fmt.Errorf("%w: failed to increment no-show count: %v", ErrInternal, err)
		}

		suspension = policy.SuspensionForCount(newCount, cfg, now)
		if suspension.Suspend {
			if err := uc.userRepo.Suspend(txCtx, res.UserID, suspension.Reason, now, suspension.ExpiresAt); err != nil {
				uc.logger.Error("MarkNoShow: failed to suspend user=%d: %v", res.UserID, err)
				return fmt.Errorf("%w: failed to suspend user: %v", ErrInternal, err)
			}
		}

		// Переклассификация сегмента с учётом нового счётчика
		newSegment := pricing.ClassifySegment(newCount, user.TotalBookings, user.TotalSpent)
		if newSegment != user.Segment {
			if err := uc.userRepo.UpdateSegment(txCtx, res.UserID, newSegment); err != nil {
				uc.logger.Error("MarkNoShow: failed to update segment for user=%d: %v", res.UserID, err)
				return fmt.Errorf("%w: failed to update segment: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		// Конкурентная фиксация - ожидаемый исход, отдаем отказ как данные
		if errors.Is(err, reservationRepo.ErrAlreadyMarked) {
			return &Response{
				Success:       false,
				RefusalCause:  policy.ReasonAlreadyMarked,
				ReservationID: res.ID,
				UserID:        res.UserID,
			}, nil
		}
		return nil, err
	}

	if suspension.Suspend {
		uc.logger.Info("MarkNoShow: user=%d suspended: %s", res.UserID, suspension.Reason)
	}

	uc.logger.Info("MarkNoShow: reservation id=%d marked, user=%d noShowCount=%d", res.ID, res.UserID, newCount)

	return &Response{
		Success:             true,
		ReservationID:       res.ID,
		UserID:              res.UserID,
		NoShowCount:         newCount,
		UserSuspended:       suspension.Suspend,
		SuspensionReason:    suspension.Reason,
		SuspensionExpiresAt: suspension.ExpiresAt,
	}, nil
}
