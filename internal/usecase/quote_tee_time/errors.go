package quote_tee_time

import "errors"

var (
	// ErrTeeTimeNotFound возвращается, когда tee time не найден
	ErrTeeTimeNotFound = errors.New("quote_tee_time: tee time not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("quote_tee_time: user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_tee_time: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_tee_time: internal error")
)
