package models

import (
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

// SettlementResponse settlement в ответе API
type SettlementResponse struct {
	ID          int64     `json:"id"`
	ClubID      int64     `json:"clubId"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	Status      string    `json:"status"`

	GrossPaid     int64 `json:"grossPaid"`
	TotalRefunded int64 `json:"totalRefunded"`
	Net           int64 `json:"net"`

	CreatedBy   int64      `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	ConfirmedBy *int64     `json:"confirmedBy,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	LockedBy    *int64     `json:"lockedBy,omitempty"`
	LockedAt    *time.Time `json:"lockedAt,omitempty"`
}

// FromDomainSettlement конвертирует domain settlement в response модель
func FromDomainSettlement(s *domain.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:            s.ID,
		ClubID:        s.ClubID,
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		Status:        string(s.Status),
		GrossPaid:     s.GrossPaid,
		TotalRefunded: s.TotalRefunded,
		Net:           s.Net,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		ConfirmedBy:   s.ConfirmedBy,
		ConfirmedAt:   s.ConfirmedAt,
		LockedBy:      s.LockedBy,
		LockedAt:      s.LockedAt,
	}
}
