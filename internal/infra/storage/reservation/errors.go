package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrAlreadyMarked возвращается условным обновлением, когда no-show
	// уже зафиксирован - повторная фиксация невозможна
	ErrAlreadyMarked = errors.New("reservation.repository: no-show already marked")

	// ErrAlreadySettled возвращается, когда бронирование уже привязано
	// к другому settlement
	ErrAlreadySettled = errors.New("reservation.repository: reservation already settled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")

	// ErrEncodeFactors возвращается при ошибке сериализации факторов цены
	ErrEncodeFactors = errors.New("reservation.repository: failed to encode price factors")
)
