package mark_no_show

import (
	"time"

	markNoShow "github.com/m04kA/GolfTee-BookingService/internal/usecase/mark_no_show"
)

// MarkNoShowResponse HTTP response model
type MarkNoShowResponse struct {
	Success      bool   `json:"success"`
	RefusalCause string `json:"refusalCause,omitempty"`

	ReservationID int64 `json:"reservationId"`
	UserID        int64 `json:"userId"`
	NoShowCount   int   `json:"noShowCount,omitempty"`

	UserSuspended       bool    `json:"userSuspended"`
	SuspensionReason    string  `json:"suspensionReason,omitempty"`
	SuspensionExpiresAt *string `json:"suspensionExpiresAt,omitempty"` // null при бессрочной блокировке
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *markNoShow.Response) *MarkNoShowResponse {
	var expiresAt *string
	if resp.SuspensionExpiresAt != nil {
		formatted := resp.SuspensionExpiresAt.Format(time.RFC3339)
		expiresAt = &formatted
	}

	return &MarkNoShowResponse{
		Success:             resp.Success,
		RefusalCause:        resp.RefusalCause,
		ReservationID:       resp.ReservationID,
		UserID:              resp.UserID,
		NoShowCount:         resp.NoShowCount,
		UserSuspended:       resp.UserSuspended,
		SuspensionReason:    resp.SuspensionReason,
		SuspensionExpiresAt: expiresAt,
	}
}
