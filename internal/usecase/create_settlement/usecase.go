package create_settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/GolfTee-BookingService/internal/settlement"
)

// UseCase use case для создания settlement за период
type UseCase struct {
	reservationRepo ReservationRepository
	settlementRepo  SettlementRepository
	clubClient      ClubServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	settlementRepo SettlementRepository,
	clubClient ClubServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		settlementRepo:  settlementRepo,
		clubClient:      clubClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания settlement
//
// Выборка, расчёт и привязка бронирований проходят одной сериализуемой
// транзакцией: выборка берёт строки FOR UPDATE, привязка - условный
// UPDATE по settlement_id IS NULL. Бронирование не может попасть в два
// settlement даже при конкурентном создании за пересекающиеся периоды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSettlement: manager=%d, club=%d, period=[%s, %s)",
		req.ManagerID, req.ClubID, req.PeriodStart.Format(domain.DateFormat), req.PeriodEnd.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSettlement: validation failed: %v", err)
		return nil, err
	}

	// Создание settlement доступно только управляющему клуба
	club, err := uc.clubClient.GetClub(ctx, req.ClubID)
	if err != nil {
		uc.logger.Error("CreateSettlement: failed to get club id=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}
	if !club.IsManager(req.ManagerID) {
		uc.logger.Warn("CreateSettlement: user=%d is not a manager of club=%d", req.ManagerID, req.ClubID)
		return nil, ErrPermissionDenied
	}

	var (
		created *domain.Settlement
		preview settlement.Preview
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservations, err := uc.reservationRepo.GetUnsettledByClubAndPeriod(txCtx, req.ClubID, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			uc.logger.Error("CreateSettlement: failed to get reservations for club=%d: %v", req.ClubID, err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		preview = settlement.BuildPreview(reservations, req.PeriodStart, req.PeriodEnd)
		if len(preview.Lines) == 0 {
			return ErrEmptyPeriod
		}

		created, err = uc.settlementRepo.Create(txCtx, &domain.Settlement{
			ClubID:        req.ClubID,
			PeriodStart:   req.PeriodStart,
			PeriodEnd:     req.PeriodEnd,
			Status:        domain.SettlementDraft,
			GrossPaid:     preview.Totals.GrossPaid,
			TotalRefunded: preview.Totals.TotalRefunded,
			Net:           preview.Totals.Net,
			CreatedBy:     req.ManagerID,
		})
		if err != nil {
			uc.logger.Error("CreateSettlement: failed to create settlement: %v", err)
			return fmt.Errorf("%w: failed to create settlement: %v", ErrInternal, err)
		}

		ids := make([]int64, 0, len(preview.Lines))
		for _, line := range preview.Lines {
			ids = append(ids, line.ReservationID)
		}

		if err := uc.reservationRepo.AssignSettlement(txCtx, ids, created.ID); err != nil {
			if errors.Is(err, reservationRepo.ErrAlreadySettled) {
				uc.logger.Warn("CreateSettlement: concurrent settlement for club=%d", req.ClubID)
				return ErrConcurrentSettlement
			}
			uc.logger.Error("CreateSettlement: failed to assign reservations: %v", err)
			return fmt.Errorf("%w: failed to assign reservations: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(preview.Anomalies) > 0 {
		uc.logger.Warn("CreateSettlement: settlement id=%d created with %d anomalies", created.ID, len(preview.Anomalies))
	}

	uc.logger.Info("CreateSettlement: settlement id=%d created, lines=%d, net=%d",
		created.ID, len(preview.Lines), preview.Totals.Net)

	return &Response{
		ID:          created.ID,
		ClubID:      created.ClubID,
		PeriodStart: created.PeriodStart,
		PeriodEnd:   created.PeriodEnd,
		Status:      string(created.Status),
		Lines:       preview.Lines,
		Totals:      preview.Totals,
		Anomalies:   preview.Anomalies,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.ManagerID <= 0 {
		return fmt.Errorf("%w: manager id must be positive", ErrInvalidInput)
	}

	if req.ClubID <= 0 {
		return fmt.Errorf("%w: club id must be positive", ErrInvalidInput)
	}

	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: period boundaries are required", ErrInvalidInput)
	}

	if !req.PeriodStart.Before(req.PeriodEnd) {
		return fmt.Errorf("%w: period start must be before period end", ErrInvalidInput)
	}

	return nil
}
