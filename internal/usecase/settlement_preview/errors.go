package settlement_preview

import "errors"

var (
	// ErrPermissionDenied возвращается, когда пользователь не является
	// управляющим клуба
	ErrPermissionDenied = errors.New("settlement_preview: permission denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settlement_preview: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("settlement_preview: internal error")
)
