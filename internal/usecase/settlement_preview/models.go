package settlement_preview

import (
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/settlement"
)

// Request модель запроса расчёта settlement за период
// Период полуоткрытый: [PeriodStart, PeriodEnd)
type Request struct {
	ManagerID   int64
	ClubID      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Response модель ответа с расчётом settlement
type Response struct {
	ClubID      int64
	PeriodStart time.Time
	PeriodEnd   time.Time

	Lines     []settlement.Line
	Totals    settlement.Totals
	Anomalies []settlement.Anomaly
}
