package pricing

import "errors"

var (
	// ErrNilTeeTime возвращается, когда не передан tee time
	ErrNilTeeTime = errors.New("pricing: tee time is required")

	// ErrZeroTime возвращается, когда не передано текущее время
	ErrZeroTime = errors.New("pricing: now is required")
)
