package create_reservation

import (
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
// PaymentRef - ссылка на подтверждённый платеж: бронирование создается
// после успешного подтверждения оплаты внешним платёжным контуром
type Request struct {
	UserID     int64
	TeeTimeID  int64
	PaymentRef string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	UserID    int64
	ClubID    int64
	TeeTimeID int64
	TeeOffAt  time.Time

	BasePrice  int64
	FinalPrice int64
	Factors    []domain.PriceFactor

	Status         string
	PolicyVersion  string
	IsImminentDeal bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
