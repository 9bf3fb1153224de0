package quote_tee_time

import (
	"context"

	quoteTeeTime "github.com/m04kA/GolfTee-BookingService/internal/usecase/quote_tee_time"
)

type QuoteTeeTimeUseCase interface {
	Execute(ctx context.Context, req *quoteTeeTime.Request) (*quoteTeeTime.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
