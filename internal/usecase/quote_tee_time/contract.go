package quote_tee_time

import (
	"context"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/weatherservice"
	"github.com/m04kA/GolfTee-BookingService/internal/pricing"
)

// TeeTimeRepository интерфейс репозитория tee times
type TeeTimeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TeeTime, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// WeatherServiceClient интерфейс клиента для WeatherService
type WeatherServiceClient interface {
	GetForecastWithGracefulDegradation(ctx context.Context, clubID int64, at time.Time) (*weatherservice.Forecast, error)
}

// PricingEngine интерфейс ценового движка
type PricingEngine interface {
	Calculate(pctx pricing.Context) (*pricing.Result, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
