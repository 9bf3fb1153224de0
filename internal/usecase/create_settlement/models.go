package create_settlement

import (
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/settlement"
)

// Request модель запроса на создание settlement за период
// Период полуоткрытый: [PeriodStart, PeriodEnd)
type Request struct {
	ManagerID   int64
	ClubID      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Response модель ответа с созданным settlement
type Response struct {
	ID          int64
	ClubID      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      string

	Lines     []settlement.Line
	Totals    settlement.Totals
	Anomalies []settlement.Anomaly

	CreatedAt time.Time
}
