package create_settlement

import "errors"

var (
	// ErrPermissionDenied возвращается, когда пользователь не является
	// управляющим клуба
	ErrPermissionDenied = errors.New("create_settlement: permission denied")

	// ErrEmptyPeriod возвращается, когда за период нет ни одного
	// неучтённого бронирования
	ErrEmptyPeriod = errors.New("create_settlement: no unsettled reservations in period")

	// ErrConcurrentSettlement возвращается, когда часть бронирований
	// успела попасть в другой settlement
	ErrConcurrentSettlement = errors.New("create_settlement: reservations were settled concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_settlement: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_settlement: internal error")
)
