package quote_tee_time

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	teetimeRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/teetime"
	userRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/user"
	weatherClient "github.com/m04kA/GolfTee-BookingService/internal/integrations/weatherservice"
	"github.com/m04kA/GolfTee-BookingService/internal/pricing"
)

// UseCase use case для котировки tee time без бронирования
type UseCase struct {
	teeTimeRepo   TeeTimeRepository
	userRepo      UserRepository
	weatherClient WeatherServiceClient
	engine        PricingEngine
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	teeTimeRepo TeeTimeRepository,
	userRepo UserRepository,
	weatherClient WeatherServiceClient,
	engine PricingEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		teeTimeRepo:   teeTimeRepo,
		userRepo:      userRepo,
		weatherClient: weatherClient,
		engine:        engine,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет котировку tee time
// Цена считается теми же правилами, что и при бронировании; котировка
// на закрытый слот возвращается с Available=false для отображения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteTeeTime: user=%d, teeTime=%d", req.UserID, req.TeeTimeID)

	if req.TeeTimeID <= 0 {
		return nil, fmt.Errorf("%w: tee time id must be positive", ErrInvalidInput)
	}
	if req.UserID < 0 {
		return nil, fmt.Errorf("%w: user id must not be negative", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	teeTime, err := uc.teeTimeRepo.GetByID(ctx, req.TeeTimeID)
	if err != nil {
		if errors.Is(err, teetimeRepo.ErrTeeTimeNotFound) {
			uc.logger.Warn("QuoteTeeTime: tee time id=%d not found", req.TeeTimeID)
			return nil, ErrTeeTimeNotFound
		}
		uc.logger.Error("QuoteTeeTime: failed to get tee time id=%d: %v", req.TeeTimeID, err)
		return nil, fmt.Errorf("%w: failed to get tee time: %v", ErrInternal, err)
	}

	// Анонимная котировка - без сегментной корректировки
	var user *domain.User
	if req.UserID > 0 {
		user, err = uc.userRepo.GetByID(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("QuoteTeeTime: user id=%d not found", req.UserID)
				return nil, ErrUserNotFound
			}
			uc.logger.Error("QuoteTeeTime: failed to get user id=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
	}

	var weather *domain.WeatherSnapshot
	forecast, err := uc.weatherClient.GetForecastWithGracefulDegradation(ctx, teeTime.ClubID, teeTime.TeeOffAt)
	if err != nil {
		if !errors.Is(err, weatherClient.ErrForecastNotFound) && !errors.Is(err, weatherClient.ErrServiceDegraded) {
			uc.logger.Error("QuoteTeeTime: failed to get forecast: %v", err)
			return nil, fmt.Errorf("%w: failed to get forecast: %v", ErrInternal, err)
		}
		uc.logger.Info("QuoteTeeTime: quoting without weather for teeTime=%d", teeTime.ID)
	} else {
		weather = forecast.ToDomain()
	}

	result, err := uc.engine.Calculate(pricing.Context{
		TeeTime: teeTime,
		User:    user,
		Weather: weather,
		Now:     now,
	})
	if err != nil {
		uc.logger.Error("QuoteTeeTime: pricing failed for teeTime=%d: %v", teeTime.ID, err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	uc.logger.Info("QuoteTeeTime: teeTime=%d quoted at %d (base %d)", teeTime.ID, result.FinalPrice, result.BasePrice)

	return &Response{
		TeeTimeID:      teeTime.ID,
		ClubID:         teeTime.ClubID,
		CourseName:     teeTime.CourseName,
		TeeOffAt:       teeTime.TeeOffAt,
		Available:      teeTime.IsOpen(),
		BasePrice:      result.BasePrice,
		FinalPrice:     result.FinalPrice,
		Factors:        result.Factors,
		IsImminentDeal: result.IsImminentDeal,
		IsBlocked:      result.IsBlocked,
		BlockReason:    result.BlockReason,
	}, nil
}
