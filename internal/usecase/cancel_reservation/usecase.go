package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/paymentservice"
	"github.com/m04kA/GolfTee-BookingService/internal/policy"
)

// UseCase use case для отмены бронирования с возвратом средств
type UseCase struct {
	reservationRepo ReservationRepository
	teeTimeRepo     TeeTimeRepository
	clubClient      ClubServiceClient
	paymentClient   PaymentServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	teeTimeRepo TeeTimeRepository,
	clubClient ClubServiceClient,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		teeTimeRepo:     teeTimeRepo,
		clubClient:      clubClient,
		paymentClient:   paymentClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены бронирования
//
// Политика применяется по версии, зафиксированной в бронировании при
// создании, а не по текущей: смена условий отмены не касается уже
// оплаченных бронирований
//
// Отмена и возврат денег разнесены: отмена фиксируется транзакцией,
// возврат уходит во внешний платёжный контур после коммита. Сбой
// возврата не откатывает отмену - refund_status=failed, слот уже
// освобождён
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: user=%d, reservation=%d", req.UserID, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем бронирование
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Проверка прав: владелец или управляющий клуба
	if err := uc.checkAccess(ctx, req.UserID, res); err != nil {
		return nil, err
	}

	// 4. Резолвим версию политики, зафиксированную в бронировании
	cfg, err := policy.Resolve(res.PolicyVersion)
	if err != nil {
		uc.logger.Error("CancelReservation: reservation id=%d carries unknown policy version %q", res.ID, res.PolicyVersion)
		return nil, fmt.Errorf("%w: resolve policy version: %v", ErrInternal, err)
	}

	// 5. Проверяем право на отмену
	decision := policy.CanCancel(res, cfg, now)
	if !decision.CanCancel {
		uc.logger.Info("CancelReservation: reservation id=%d refused: %s", res.ID, decision.Reason)
		return &Response{
			Success:       false,
			RefusalCause:  decision.Reason,
			HoursLeft:     decision.HoursLeft,
			ReservationID: res.ID,
			Status:        string(res.Status),
			RefundStatus:  string(res.RefundStatus),
		}, nil
	}

	// 6. Считаем сумму возврата по тарифной сетке политики
	refund := policy.RefundAmount(res, cfg, now)

	refundStatus := domain.RefundNone
	if refund > 0 {
		refundStatus = domain.RefundPending
	}

	// 7. Отмена бронирования и освобождение слота - одна транзакция
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.Cancel(txCtx, res.ID, req.Reason, refund, refundStatus); err != nil {
			uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
		}

		if err := uc.teeTimeRepo.Release(txCtx, res.TeeTimeID); err != nil {
			uc.logger.Error("CancelReservation: failed to release tee time id=%d: %v", res.TeeTimeID, err)
			return fmt.Errorf("%w: failed to release tee time: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Возврат средств - после коммита отмены
	finalRefundStatus := refundStatus
	if refund > 0 {
		finalRefundStatus = uc.processRefund(ctx, res, refund, req.Reason)
	}

	uc.logger.Info("CancelReservation: reservation id=%d cancelled, refund=%d, refundStatus=%s",
		res.ID, refund, finalRefundStatus)

	status := domain.StatusCancelled
	if finalRefundStatus == domain.RefundPaid {
		status = domain.StatusRefunded
	}

	return &Response{
		Success:       true,
		ReservationID: res.ID,
		Status:        string(status),
		RefundAmount:  refund,
		RefundStatus:  string(finalRefundStatus),
	}, nil
}

// checkAccess проверяет, что инициатор - владелец бронирования или
// управляющий клуба
func (uc *UseCase) checkAccess(ctx context.Context, userID int64, res *domain.Reservation) error {
	if res.UserID == userID {
		return nil
	}

	club, err := uc.clubClient.GetClub(ctx, res.ClubID)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to get club id=%d: %v", res.ClubID, err)
		return fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}

	if !club.IsManager(userID) {
		uc.logger.Warn("CancelReservation: user=%d is neither owner nor manager of club=%d", userID, res.ClubID)
		return ErrPermissionDenied
	}

	return nil
}

// processRefund отправляет возврат во внешний платёжный контур и
// фиксирует исход. Ошибка фиксации исхода не меняет результат отмены
func (uc *UseCase) processRefund(ctx context.Context, res *domain.Reservation, amount int64, reason string) domain.RefundStatus {
	result, err := uc.paymentClient.Refund(ctx, paymentservice.RefundRequest{
		PaymentRef: res.PaymentRef,
		Amount:     amount,
		Reason:     reason,
	})

	status := domain.RefundPaid
	if err != nil || !result.Success {
		uc.logger.Error("CancelReservation: refund failed for reservation id=%d: err=%v", res.ID, err)
		status = domain.RefundFailed
	}

	if err := uc.reservationRepo.UpdateRefundStatus(ctx, res.ID, status); err != nil {
		uc.logger.Error("CancelReservation: failed to record refund status for reservation id=%d: %v", res.ID, err)
	}

	return status
}
