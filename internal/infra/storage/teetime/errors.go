package teetime

import "errors"

var (
	// ErrTeeTimeNotFound возвращается, когда tee time не найден
	ErrTeeTimeNotFound = errors.New("teetime.repository: tee time not found")

	// ErrTeeTimeNotOpen возвращается условным обновлением, когда tee time
	// уже забронирован или снят - защита от двойного бронирования
	ErrTeeTimeNotOpen = errors.New("teetime.repository: tee time is not open")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("teetime.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("teetime.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("teetime.repository: failed to scan row")
)
