package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/GolfTee-BookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	TeeTimeID  int64  `json:"teeTimeId"`
	PaymentRef string `json:"paymentRef"`
}

// PriceFactorResponse строка применённого правила ценообразования
type PriceFactorResponse struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64                 `json:"id"`
	UserID         int64                 `json:"userId"`
	ClubID         int64                 `json:"clubId"`
	TeeTimeID      int64                 `json:"teeTimeId"`
	TeeOffAt       string                `json:"teeOffAt"`
	BasePrice      int64                 `json:"basePrice"`
	FinalPrice     int64                 `json:"finalPrice"`
	Factors        []PriceFactorResponse `json:"factors"`
	Status         string                `json:"status"`
	PolicyVersion  string                `json:"policyVersion"`
	IsImminentDeal bool                  `json:"isImminentDeal"`
	CreatedAt      string                `json:"createdAt"`
	UpdatedAt      string                `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) *createReservation.Request {
	return &createReservation.Request{
		UserID:     userID,
		TeeTimeID:  r.TeeTimeID,
		PaymentRef: r.PaymentRef,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	factors := make([]PriceFactorResponse, 0, len(resp.Factors))
	for _, f := range resp.Factors {
		factors = append(factors, PriceFactorResponse{
			Description: f.Description,
			Amount:      f.Amount,
		})
	}

	return &ReservationResponse{
		ID:             resp.ID,
		UserID:         resp.UserID,
		ClubID:         resp.ClubID,
		TeeTimeID:      resp.TeeTimeID,
		TeeOffAt:       resp.TeeOffAt.Format(time.RFC3339),
		BasePrice:      resp.BasePrice,
		FinalPrice:     resp.FinalPrice,
		Factors:        factors,
		Status:         resp.Status,
		PolicyVersion:  resp.PolicyVersion,
		IsImminentDeal: resp.IsImminentDeal,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
