package domain

import "time"

// SettlementStatus represents the lifecycle status of a settlement
type SettlementStatus string

const (
	SettlementDraft     SettlementStatus = "draft"
	SettlementConfirmed SettlementStatus = "confirmed"
	SettlementLocked    SettlementStatus = "locked"
)

// Settlement is a periodic financial close-out of a club's reservations
// over a date range. Progresses draft -> confirmed -> locked and never
// reverses; a locked settlement is immutable.
type Settlement struct {
	ID          int64
	ClubID      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      SettlementStatus

	GrossPaid     int64
	TotalRefunded int64
	Net           int64

	CreatedBy   int64
	CreatedAt   time.Time
	ConfirmedBy *int64
	ConfirmedAt *time.Time
	LockedBy    *int64
	LockedAt    *time.Time
}

// CanConfirm returns true if the settlement can move to confirmed
func (s *Settlement) CanConfirm() bool {
	return s.Status == SettlementDraft
}

// CanLock returns true if the settlement can move to locked
func (s *Settlement) CanLock() bool {
	return s.Status == SettlementConfirmed
}

// CanEdit returns true while the settlement is not locked
func (s *Settlement) CanEdit() bool {
	return s.Status != SettlementLocked
}
