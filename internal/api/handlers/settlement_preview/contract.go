package settlement_preview

import (
	"context"

	settlementPreview "github.com/m04kA/GolfTee-BookingService/internal/usecase/settlement_preview"
)

type SettlementPreviewUseCase interface {
	Execute(ctx context.Context, req *settlementPreview.Request) (*settlementPreview.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
