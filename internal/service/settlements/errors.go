package settlements

import "errors"

var (
	// ErrSettlementNotFound возвращается, когда settlement не найден
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса:
	// подтверждение не-draft или блокировка не-confirmed
	ErrInvalidTransition = errors.New("invalid settlement status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
