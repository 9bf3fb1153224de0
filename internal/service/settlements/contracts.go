package settlements

import (
	"context"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/clubservice"
)

// SettlementRepository интерфейс репозитория settlements
type SettlementRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Settlement, error)
	Confirm(ctx context.Context, id int64, byUserID int64, at time.Time) error
	Lock(ctx context.Context, id int64, byUserID int64, at time.Time) error
}

// ClubServiceClient интерфейс клиента для ClubService
type ClubServiceClient interface {
	GetClub(ctx context.Context, clubID int64) (*clubservice.Club, error)
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
