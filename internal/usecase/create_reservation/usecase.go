package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	teetimeRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/teetime"
	userRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/user"
	weatherClient "github.com/m04kA/GolfTee-BookingService/internal/integrations/weatherservice"
	"github.com/m04kA/GolfTee-BookingService/internal/policy"
	"github.com/m04kA/GolfTee-BookingService/internal/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	teeTimeRepo     TeeTimeRepository
	reservationRepo ReservationRepository
	userRepo        UserRepository
	weatherClient   WeatherServiceClient
	engine          PricingEngine
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	teeTimeRepo TeeTimeRepository,
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	weatherClient WeatherServiceClient,
	engine PricingEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		teeTimeRepo:     teeTimeRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		weatherClient:   weatherClient,
		engine:          engine,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка "tee time ещё open" и создание бронирования выполняются
// одной сериализуемой транзакцией: MarkBooked - условный UPDATE по
// статусу, при конкурентной гонке за слот вторая попытка получает
// ErrTeeTimeNotOpen, а не второе PAID бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, teeTime=%d", req.UserID, req.TeeTimeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем tee time
	teeTime, err := uc.teeTimeRepo.GetByID(ctx, req.TeeTimeID)
	if err != nil {
		if errors.Is(err, teetimeRepo.ErrTeeTimeNotFound) {
			uc.logger.Warn("CreateReservation: tee time id=%d not found", req.TeeTimeID)
			return nil, ErrTeeTimeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get tee time id=%d: %v", req.TeeTimeID, err)
		return nil, fmt.Errorf("%w: failed to get tee time: %v", ErrInternal, err)
	}

	// Ранний отказ до транзакции; сама гонка закрывается условным
	// обновлением внутри транзакции
	if !teeTime.IsOpen() {
		uc.logger.Warn("CreateReservation: tee time id=%d is not open, status=%s", teeTime.ID, teeTime.Status)
		return nil, ErrTeeTimeNotOpen
	}

	// 4. Получаем снапшот пользователя
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 5. Получаем прогноз погоды с graceful degradation
	// Без прогноза цена считается без погодной корректировки
	var weather *domain.WeatherSnapshot
	forecast, err := uc.weatherClient.GetForecastWithGracefulDegradation(ctx, teeTime.ClubID, teeTime.TeeOffAt)
	if err != nil {
		if !errors.Is(err, weatherClient.ErrForecastNotFound) && !errors.Is(err, weatherClient.ErrServiceDegraded) {
			uc.logger.Error("CreateReservation: failed to get forecast: %v", err)
			return nil, fmt.Errorf("%w: failed to get forecast: %v", ErrInternal, err)
		}
		uc.logger.Info("CreateReservation: pricing without weather for teeTime=%d", teeTime.ID)
	} else {
		weather = forecast.ToDomain()
	}

	// 6. Считаем цену
	result, err := uc.engine.Calculate(pricing.Context{
		TeeTime: teeTime,
		User:    user,
		Weather: weather,
		Now:     now,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: pricing failed for teeTime=%d: %v", teeTime.ID, err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	// 7. Заблокированный пользователь не бронирует
	if result.IsBlocked {
		uc.logger.Warn("CreateReservation: user=%d is blocked: %s", user.ID, *result.BlockReason)
		return nil, fmt.Errorf("%w: %s", ErrUserSuspended, *result.BlockReason)
	}

	// Переменная для хранения результата
	var created *domain.Reservation

	// 8. Условный перевод tee time в booked и создание бронирования -
	// одна атомарная единица
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.teeTimeRepo.MarkBooked(txCtx, teeTime.ID); err != nil {
			if errors.Is(err, teetimeRepo.ErrTeeTimeNotOpen) {
				uc.logger.Warn("CreateReservation: lost the race for teeTime=%d", teeTime.ID)
				return ErrTeeTimeNotOpen
			}
			uc.logger.Error("CreateReservation: failed to mark tee time booked: %v", err)
			return fmt.Errorf("%w: failed to mark tee time booked: %v", ErrInternal, err)
		}

		reservation := &domain.Reservation{
			UserID:         req.UserID,
			ClubID:         teeTime.ClubID,
			TeeTimeID:      teeTime.ID,
			TeeOffAt:       teeTime.TeeOffAt,
			BasePrice:      result.BasePrice,
			FinalPrice:     result.FinalPrice,
			Factors:        result.Factors,
			PaymentRef:     req.PaymentRef,
			Status:         domain.StatusPaid,
			PolicyVersion:  policy.CurrentVersion,
			IsImminentDeal: result.IsImminentDeal,
			RefundStatus:   domain.RefundNone,
		}

		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, finalPrice=%d, imminent=%v",
		created.ID, created.FinalPrice, created.IsImminentDeal)

	return &Response{
		ID:             created.ID,
		UserID:         created.UserID,
		ClubID:         created.ClubID,
		TeeTimeID:      created.TeeTimeID,
		TeeOffAt:       created.TeeOffAt,
		BasePrice:      created.BasePrice,
		FinalPrice:     created.FinalPrice,
		Factors:        created.Factors,
		Status:         string(created.Status),
		PolicyVersion:  created.PolicyVersion,
		IsImminentDeal: created.IsImminentDeal,
		CreatedAt:      created.CreatedAt,
		UpdatedAt:      created.UpdatedAt,
	}, nil
}
