package settlement_preview

import (
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/settlement"
	settlementPreview "github.com/m04kA/GolfTee-BookingService/internal/usecase/settlement_preview"
)

// LineResponse строка расчёта по одному бронированию
type LineResponse struct {
	ReservationID int64  `json:"reservationId"`
	TeeTimeID     int64  `json:"teeTimeId"`
	TeeOffAt      string `json:"teeOffAt"`
	FinalPrice    int64  `json:"finalPrice"`
	RefundAmount  int64  `json:"refundAmount"`
	Net           int64  `json:"net"`
}

// TotalsResponse агрегаты расчёта
type TotalsResponse struct {
	GrossPaid     int64 `json:"grossPaid"`
	TotalRefunded int64 `json:"totalRefunded"`
	Net           int64 `json:"net"`
	Count         int   `json:"count"`
}

// AnomalyResponse аномалия исходных данных расчёта
type AnomalyResponse struct {
	TeeTimeID      int64   `json:"teeTimeId"`
	ReservationIDs []int64 `json:"reservationIds"`
	Reason         string  `json:"reason"`
}

// PreviewResponse HTTP response model
type PreviewResponse struct {
	ClubID      int64             `json:"clubId"`
	PeriodStart string            `json:"periodStart"`
	PeriodEnd   string            `json:"periodEnd"`
	Lines       []LineResponse    `json:"lines"`
	Totals      TotalsResponse    `json:"totals"`
	Anomalies   []AnomalyResponse `json:"anomalies,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *settlementPreview.Response) *PreviewResponse {
	return &PreviewResponse{
		ClubID:      resp.ClubID,
		PeriodStart: resp.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   resp.PeriodEnd.Format(time.RFC3339),
		Lines:       toLineResponses(resp.Lines),
		Totals:      toTotalsResponse(resp.Totals),
		Anomalies:   toAnomalyResponses(resp.Anomalies),
	}
}

func toLineResponses(lines []settlement.Line) []LineResponse {
	out := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineResponse{
			ReservationID: l.ReservationID,
			TeeTimeID:     l.TeeTimeID,
			TeeOffAt:      l.TeeOffAt.Format(time.RFC3339),
			FinalPrice:    l.FinalPrice,
			RefundAmount:  l.RefundAmount,
			Net:           l.Net,
		})
	}
	return out
}

func toTotalsResponse(t settlement.Totals) TotalsResponse {
	return TotalsResponse{
		GrossPaid:     t.GrossPaid,
		TotalRefunded: t.TotalRefunded,
		Net:           t.Net,
		Count:         t.Count,
	}
}

func toAnomalyResponses(anomalies []settlement.Anomaly) []AnomalyResponse {
	if len(anomalies) == 0 {
		return nil
	}
	out := make([]AnomalyResponse, 0, len(anomalies))
	for _, a := range anomalies {
		out = append(out, AnomalyResponse{
			TeeTimeID:      a.TeeTimeID,
			ReservationIDs: a.ReservationIDs,
			Reason:         a.Reason,
		})
	}
	return out
}
