package weatherservice

import "github.com/m04kA/GolfTee-BookingService/internal/domain"

// Forecast модель прогноза погоды из WeatherService
type Forecast struct {
	ClubID          int64   `json:"club_id"`
	ForecastHour    string  `json:"forecast_hour"` // ISO 8601, час, к которому относится прогноз
	Sky             string  `json:"sky"`           // clear | cloudy | rain
	TemperatureC    float64 `json:"temperature_c"`
	RainProbability int     `json:"rain_probability"` // 0-100
	WindSpeedMS     float64 `json:"wind_speed_ms"`
}

// ToDomain конвертирует прогноз в доменный снапшот погоды
func (f *Forecast) ToDomain() *domain.WeatherSnapshot {
	return &domain.WeatherSnapshot{
		Sky:             domain.SkyCondition(f.Sky),
		TemperatureC:    f.TemperatureC,
		RainProbability: f.RainProbability,
		WindSpeedMS:     f.WindSpeedMS,
	}
}

// ErrorResponse модель ошибки от WeatherService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
