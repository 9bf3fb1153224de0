package confirm_settlement

import (
	"context"

	"github.com/m04kA/GolfTee-BookingService/internal/service/settlements/models"
)

type SettlementService interface {
	Confirm(ctx context.Context, id int64, userID int64) (*models.SettlementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
