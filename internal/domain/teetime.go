package domain

import "time"

// TeeTimeStatus represents the status of a tee time
type TeeTimeStatus string

const (
	TeeTimeOpen      TeeTimeStatus = "open"
	TeeTimeBooked    TeeTimeStatus = "booked"
	TeeTimeCancelled TeeTimeStatus = "cancelled"
)

// TeeTime represents a bookable tee-off slot at a golf club.
// Rows are produced by the external ingestion process; the service
// only reads them and flips status open -> booked on reservation.
type TeeTime struct {
	ID         int64
	ClubID     int64
	CourseName string
	TeeOffAt   time.Time
	BasePrice  int64 // minor currency units
	Status     TeeTimeStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true if the tee time can still be booked
func (t *TeeTime) IsOpen() bool {
	return t.Status == TeeTimeOpen
}

// HoursToTeeOff returns the number of hours remaining until tee-off.
// Negative when the tee time is already in the past.
func (t *TeeTime) HoursToTeeOff(now time.Time) float64 {
	return t.TeeOffAt.Sub(now).Hours()
}
