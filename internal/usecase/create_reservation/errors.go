package create_reservation

import "errors"

var (
	// ErrTeeTimeNotFound возвращается, когда tee time не найден
	ErrTeeTimeNotFound = errors.New("create_reservation: tee time not found")

	// ErrTeeTimeNotOpen возвращается, когда tee time уже забронирован
	// или снят с продажи (в том числе при проигрыше гонки за слот)
	ErrTeeTimeNotOpen = errors.New("create_reservation: tee time is not open")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrUserSuspended возвращается, когда пользователь заблокирован
	ErrUserSuspended = errors.New("create_reservation: user is suspended")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
