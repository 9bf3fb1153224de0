package create_settlement

import (
	"context"

	createSettlement "github.com/m04kA/GolfTee-BookingService/internal/usecase/create_settlement"
)

type CreateSettlementUseCase interface {
	Execute(ctx context.Context, req *createSettlement.Request) (*createSettlement.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
