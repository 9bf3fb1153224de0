package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusPaid      ReservationStatus = "paid"
	StatusCancelled ReservationStatus = "cancelled"
	StatusRefunded  ReservationStatus = "refunded" // cancelled with the refund leg completed
	StatusNoShow    ReservationStatus = "no_show"
	StatusCompleted ReservationStatus = "completed"
)

// RefundStatus tracks the refund leg of a cancellation separately from
// the reservation lifecycle: the cancellation commits first, the refund
// may fail and be retried by admin follow-up.
type RefundStatus string

const (
	RefundNone    RefundStatus = "none"
	RefundPending RefundStatus = "pending"
	RefundPaid    RefundStatus = "paid"
	RefundFailed  RefundStatus = "failed"
)

// PriceFactor is one applied pricing rule: an ordered, named delta.
// The final price is the left-to-right fold of the base price through
// all factor amounts.
type PriceFactor struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"` // negative for discounts
}

// Reservation represents a paid (or once-paid) booking of a tee time
type Reservation struct {
	ID        int64
	UserID    int64
	ClubID    int64
	TeeTimeID int64
	TeeOffAt  time.Time // denormalized for history and settlement queries

	BasePrice  int64
	FinalPrice int64
	Factors    []PriceFactor

	PaymentRef string
	Status     ReservationStatus

	PolicyVersion  string
	IsImminentDeal bool

	CancellationReason *string
	CancelledAt        *time.Time
	RefundAmount       int64
	RefundStatus       RefundStatus

	NoShowMarkedAt *time.Time

	SettlementID *int64 // nil until the reservation is settled

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its tee time
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusPaid
}

// CanBeCancelled returns true if the reservation is in a cancellable state.
// Policy checks (cutoff, imminent deal) come on top of this.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPaid
}

// IsSettleable returns true if the reservation contributes to a settlement
func (r *Reservation) IsSettleable() bool {
	switch r.Status {
	case StatusPaid, StatusCancelled, StatusRefunded, StatusNoShow, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsSettled returns true if the reservation is already bound to a settlement
func (r *Reservation) IsSettled() bool {
	return r.SettlementID != nil
}

// NetContribution returns the amount the reservation contributes to a
// settlement: final price minus whatever was refunded
func (r *Reservation) NetContribution() int64 {
	return r.FinalPrice - r.RefundAmount
}

// ClubReservationsFilter фильтр для получения бронирований клуба
type ClubReservationsFilter struct {
	ClubID          int64
	StartDate       *time.Time // начало периода по времени tee-off (опционально)
	EndDate         *time.Time // конец периода по времени tee-off (опционально)
	Status          *ReservationStatus
	IncludeInactive bool // включать ли отменённые, no-show и завершённые
}
