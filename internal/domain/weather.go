package domain

// SkyCondition represents the forecast sky condition
type SkyCondition string

const (
	SkyClear  SkyCondition = "clear"
	SkyCloudy SkyCondition = "cloudy"
	SkyRain   SkyCondition = "rain"
)

// WeatherSnapshot is a read-only forecast for a tee time.
// Produced externally (live forecast or simulation); absence of a
// snapshot is a normal condition and must be tolerated by pricing.
type WeatherSnapshot struct {
	Sky             SkyCondition
	TemperatureC    float64
	RainProbability int // 0-100
	WindSpeedMS     float64
}

// IsAdverse returns true if the conditions warrant a weather discount
func (w *WeatherSnapshot) IsAdverse() bool {
	return w.Sky == SkyRain || w.RainProbability >= AdverseRainProbability
}
