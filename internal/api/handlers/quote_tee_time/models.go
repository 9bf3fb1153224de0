package quote_tee_time

import (
	"time"

	quoteTeeTime "github.com/m04kA/GolfTee-BookingService/internal/usecase/quote_tee_time"
)

// PriceFactorResponse строка применённого правила ценообразования
type PriceFactorResponse struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	TeeTimeID      int64                 `json:"teeTimeId"`
	ClubID         int64                 `json:"clubId"`
	CourseName     string                `json:"courseName"`
	TeeOffAt       string                `json:"teeOffAt"`
	Available      bool                  `json:"available"`
	BasePrice      int64                 `json:"basePrice"`
	FinalPrice     int64                 `json:"finalPrice"`
	Factors        []PriceFactorResponse `json:"factors"`
	IsImminentDeal bool                  `json:"isImminentDeal"`
	IsBlocked      bool                  `json:"isBlocked"`
	BlockReason    *string               `json:"blockReason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteTeeTime.Response) *QuoteResponse {
	factors := make([]PriceFactorResponse, 0, len(resp.Factors))
	for _, f := range resp.Factors {
		factors = append(factors, PriceFactorResponse{
			Description: f.Description,
			Amount:      f.Amount,
		})
	}

	return &QuoteResponse{
		TeeTimeID:      resp.TeeTimeID,
		ClubID:         resp.ClubID,
		CourseName:     resp.CourseName,
		TeeOffAt:       resp.TeeOffAt.Format(time.RFC3339),
		Available:      resp.Available,
		BasePrice:      resp.BasePrice,
		FinalPrice:     resp.FinalPrice,
		Factors:        factors,
		IsImminentDeal: resp.IsImminentDeal,
		IsBlocked:      resp.IsBlocked,
		BlockReason:    resp.BlockReason,
	}
}
