package weatherservice

import "errors"

var (
	// ErrForecastNotFound возвращается, когда прогноза на указанный час нет
	// Нормальная ситуация: ядро цен обязано её переживать
	ErrForecastNotFound = errors.New("forecast not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("weatherservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("weatherservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что WeatherService недоступен и цену следует считать
	// без погодной корректировки
	ErrServiceDegraded = errors.New("weatherservice unavailable: graceful degradation applied")
)
