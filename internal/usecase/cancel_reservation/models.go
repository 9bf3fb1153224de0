package cancel_reservation

// Request модель запроса на отмену бронирования
// UserID - инициатор отмены: владелец бронирования или управляющий клуба
type Request struct {
	UserID        int64
	ReservationID int64
	Reason        string
}

// Response модель ответа на отмену бронирования
// Отказ политики - не ошибка: Success=false с причиной отказа
type Response struct {
	Success      bool
	RefusalCause string
	HoursLeft    float64

	ReservationID int64
	Status        string
	RefundAmount  int64
	RefundStatus  string
}
