package weatherservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с WeatherService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента WeatherService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetForecast получает прогноз для клуба на час tee-off
func (c *Client) GetForecast(ctx context.Context, clubID int64, at time.Time) (*Forecast, error) {
	url := fmt.Sprintf("%s/internal/clubs/%d/forecast?hour=%s",
		c.baseURL, clubID, at.UTC().Format("2006-01-02T15"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrForecastNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &forecast, nil
}

// GetForecastWithGracefulDegradation получает прогноз с graceful degradation
// Отсутствие прогноза и недоступность сервиса дают один исход:
// цена считается без погодной корректировки, бронирование не блокируется
func (c *Client) GetForecastWithGracefulDegradation(ctx context.Context, clubID int64, at time.Time) (*Forecast, error) {
	forecast, err := c.GetForecast(ctx, clubID, at)
	if err != nil {
		if errors.Is(err, ErrForecastNotFound) {
			c.log.Info("No forecast for club_id=%d at %s", clubID, at.Format(time.RFC3339))
			return nil, err
		}

		// Недоступность сервиса, timeout, ошибки парсинга - всё это
		// не повод отказывать в бронировании
		c.log.Error("WeatherService unavailable, applying graceful degradation for club_id=%d: %v", clubID, err)
		return nil, fmt.Errorf("%w: club_id=%d, error=%v", ErrServiceDegraded, clubID, err)
	}

	return forecast, nil
}
