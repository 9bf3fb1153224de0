package create_settlement

import (
	"context"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/internal/integrations/clubservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetUnsettledByClubAndPeriod(ctx context.Context, clubID int64, from, to time.Time) ([]*domain.Reservation, error)
	AssignSettlement(ctx context.Context, ids []int64, settlementID int64) error
}

// SettlementRepository интерфейс репозитория settlements
type SettlementRepository interface {
	Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error)
}

// ClubServiceClient интерфейс клиента для ClubService
type ClubServiceClient interface {
	GetClub(ctx context.Context, clubID int64) (*clubservice.Club, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
