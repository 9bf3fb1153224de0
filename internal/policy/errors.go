package policy

import "errors"

var (
	// ErrUnknownPolicyVersion возвращается при попытке разрешить
	// неизвестную версию политики. Молчаливого дефолта нет намеренно:
	// бронирование с неизвестной версией - повод для разбирательства
	ErrUnknownPolicyVersion = errors.New("policy: unknown policy version")

	// ErrNilReservation возвращается, когда не передано бронирование
	ErrNilReservation = errors.New("policy: reservation is required")
)
