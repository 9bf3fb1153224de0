package mark_no_show

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("mark_no_show: reservation not found")

	// ErrPermissionDenied возвращается, когда пользователь не является
	// управляющим клуба
	ErrPermissionDenied = errors.New("mark_no_show: permission denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_no_show: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_no_show: internal error")
)
