package settlement_preview

import (
	"context"
	"fmt"

	"github.com/m04kA/GolfTee-BookingService/internal/settlement"
)

// UseCase use case для предварительного расчёта settlement
type UseCase struct {
	reservationRepo ReservationRepository
	clubClient      ClubServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, clubClient ClubServiceClient, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		clubClient:      clubClient,
		logger:          logger,
	}
}

// Execute выполняет расчёт settlement без создания
// Расчёт чистый: данные читаются одним запросом, агрегация в памяти
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SettlementPreview: manager=%d, club=%d, period=[%s, %s)",
		req.ManagerID, req.ClubID, req.PeriodStart.Format("2006-01-02"), req.PeriodEnd.Format("2006-01-02"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SettlementPreview: validation failed: %v", err)
		return nil, err
	}

	// Расчёт доступен только управляющему клуба
	club, err := uc.clubClient.GetClub(ctx, req.ClubID)
	if err != nil {
		uc.logger.Error("SettlementPreview: failed to get club id=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get club: %v", ErrInternal, err)
	}
	if !club.IsManager(req.ManagerID) {
		uc.logger.Warn("SettlementPreview: user=%d is not a manager of club=%d", req.ManagerID, req.ClubID)
		return nil, ErrPermissionDenied
	}

	reservations, err := uc.reservationRepo.GetUnsettledByClubAndPeriod(ctx, req.ClubID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		uc.logger.Error("SettlementPreview: failed to get reservations for club=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	preview := settlement.BuildPreview(reservations, req.PeriodStart, req.PeriodEnd)

	if len(preview.Anomalies) > 0 {
		uc.logger.Warn("SettlementPreview: club=%d has %d anomalies in period", req.ClubID, len(preview.Anomalies))
	}

	uc.logger.Info("SettlementPreview: club=%d, lines=%d, net=%d", req.ClubID, len(preview.Lines), preview.Totals.Net)

	return &Response{
		ClubID:      req.ClubID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Lines:       preview.Lines,
		Totals:      preview.Totals,
		Anomalies:   preview.Anomalies,
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
