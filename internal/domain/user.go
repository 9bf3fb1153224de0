package domain

import "time"

// UserSegment represents the behavioral classification of a user
type UserSegment string

const (
	SegmentFuture UserSegment = "future" // no completed bookings yet
	SegmentActive UserSegment = "active"
	SegmentVIP    UserSegment = "vip"
	SegmentRisk   UserSegment = "risk" // elevated no-show history
)

// User is a snapshot of a user at the moment of a pricing or policy
// decision. The segment is recomputed periodically from the history
// aggregates below, never mutated by the pricing engine itself.
type User struct {
	ID      int64
	Segment UserSegment

	IsSuspended         bool
	SuspendedReason     *string
	SuspendedAt         *time.Time
	SuspensionExpiresAt *time.Time // nil while suspended = permanent

	NoShowCount   int
	TotalBookings int
	TotalSpent    int64 // minor currency units

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSuspendedAt returns true if the suspension is in effect at the given time
func (u *User) IsSuspendedAt(now time.Time) bool {
	if !u.IsSuspended {
		return false
	}
	if u.SuspensionExpiresAt == nil {
		return true
	}
	return u.SuspensionExpiresAt.After(now)
}
