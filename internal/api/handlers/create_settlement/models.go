package create_settlement

import (
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/internal/settlement"
	createSettlement "github.com/m04kA/GolfTee-BookingService/internal/usecase/create_settlement"
)

// CreateSettlementRequest HTTP request model
// Даты в формате YYYY-MM-DD, endDate включается в период целиком
type CreateSettlementRequest struct {
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
}

// LineResponse строка расчёта по одному бронированию
type LineResponse struct {
	ReservationID int64  `json:"reservationId"`
	TeeTimeID     int64  `json:"teeTimeId"`
	TeeOffAt      string `json:"teeOffAt"`
	FinalPrice    int64  `json:"finalPrice"`
	RefundAmount  int64  `json:"refundAmount"`
	Net           int64  `json:"net"`
}

// AnomalyResponse аномалия исходных данных расчёта
type AnomalyResponse struct {
	TeeTimeID      int64   `json:"teeTimeId"`
	ReservationIDs []int64 `json:"reservationIds"`
	Reason         string  `json:"reason"`
}

// SettlementResponse HTTP response model
type SettlementResponse struct {
	ID          int64  `json:"id"`
	ClubID      int64  `json:"clubId"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	Status      string `json:"status"`

	GrossPaid     int64 `json:"grossPaid"`
	TotalRefunded int64 `json:"totalRefunded"`
	Net           int64 `json:"net"`

	Lines     []LineResponse    `json:"lines"`
	Anomalies []AnomalyResponse `json:"anomalies,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSettlementRequest) ToUseCaseRequest(managerID, clubID int64) (*createSettlement.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.PeriodStart)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateFormat, r.PeriodEnd)
	if err != nil {
		return nil, err
	}

	return &createSettlement.Request{
		ManagerID:   managerID,
		ClubID:      clubID,
		PeriodStart: start,
		PeriodEnd:   end.AddDate(0, 0, 1),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSettlement.Response) *SettlementResponse {
	return &SettlementResponse{
		ID:            resp.ID,
		ClubID:        resp.ClubID,
		PeriodStart:   resp.PeriodStart.Format(time.RFC3339),
		PeriodEnd:     resp.PeriodEnd.Format(time.RFC3339),
		Status:        resp.Status,
		GrossPaid:     resp.Totals.GrossPaid,
		TotalRefunded: resp.Totals.TotalRefunded,
		Net:           resp.Totals.Net,
		Lines:         toLineResponses(resp.Lines),
		Anomalies:     toAnomalyResponses(resp.Anomalies),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
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
