package quote_tee_time

import (
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

// Request модель запроса котировки tee time
// UserID = 0 - анонимная котировка без сегментной корректировки
type Request struct {
	UserID    int64
	TeeTimeID int64
}

// Response модель ответа с котировкой
// Котировка не резервирует слот и ни к чему не обязывает
type Response struct {
	TeeTimeID  int64
	ClubID     int64
	CourseName string
	TeeOffAt   time.Time
	Available  bool

	BasePrice  int64
	FinalPrice int64
	Factors    []domain.PriceFactor

	IsImminentDeal bool
	IsBlocked      bool
	BlockReason    *string
}
