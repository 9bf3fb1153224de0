package mark_no_show

import "time"

// Request модель запроса на фиксацию неявки
// ManagerID - инициатор: только управляющий клуба может фиксировать no-show
type Request struct {
	ManagerID     int64
	ReservationID int64
}

// Response модель ответа на фиксацию неявки
// Отказ политики - не ошибка: Success=false с причиной отказа
type Response struct {
	Success      bool
	RefusalCause string

	ReservationID int64
	UserID        int64
	NoShowCount   int

	UserSuspended       bool
	SuspensionReason    string
	SuspensionExpiresAt *time.Time // nil - бессрочная блокировка
}
