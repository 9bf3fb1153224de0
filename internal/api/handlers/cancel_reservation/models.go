package cancel_reservation

import (
	cancelReservation "github.com/m04kA/GolfTee-BookingService/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelReservationResponse HTTP response model
// Отказ политики приходит с success=false и причиной, статус 200
type CancelReservationResponse struct {
	Success      bool    `json:"success"`
	RefusalCause string  `json:"refusalCause,omitempty"`
	HoursLeft    float64 `json:"hoursLeft,omitempty"`

	ReservationID int64  `json:"reservationId"`
	Status        string `json:"status"`
	RefundAmount  int64  `json:"refundAmount"`
	RefundStatus  string `json:"refundStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelReservationRequest) ToUseCaseRequest(userID, reservationID int64) *cancelReservation.Request {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &cancelReservation.Request{
		UserID:        userID,
		ReservationID: reservationID,
		Reason:        reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		Success:       resp.Success,
		RefusalCause:  resp.RefusalCause,
		HoursLeft:     resp.HoursLeft,
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		RefundAmount:  resp.RefundAmount,
		RefundStatus:  resp.RefundStatus,
	}
}
