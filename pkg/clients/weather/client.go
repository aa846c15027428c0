package weather

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/camposoft/tambero/internal/config"
	"github.com/camposoft/tambero/internal/domain/models"
)

// Client exposes the forecast operations used by the application.
type Client interface {
	Forecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherSample, error)
}

// APIClient is a resty-backed client for an Open-Meteo compatible API.
type APIClient struct {
	httpClient *resty.Client
	hours      int
}

// NewClient builds a forecast client using the provided configuration values.
func NewClient(cfg config.WeatherConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	hours := cfg.ForecastHours
	if hours <= 0 {
		hours = 8
	}

	return &APIClient{
		httpClient: restyClient,
		hours:      hours,
	}
}

// forecastResponse mirrors the hourly block of the Open-Meteo response.
type forecastResponse struct {
	Hourly struct {
		Temperature2M            []float64 `json:"temperature_2m"`
		RelativeHumidity2M       []float64 `json:"relative_humidity_2m"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
		WindSpeed10M             []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

// apiError represents the provider's error payload.
type apiError struct {
	Reason string `json:"reason"`
	Error  bool   `json:"error"`
}

// Forecast fetches the next forecast periods for a coordinate and maps them
// to weather samples. Wind is attached only when the provider returned it,
// so the risk rules can skip the wind check when data is missing.
func (c *APIClient) Forecast(ctx context.Context, latitude, longitude float64) ([]models.WeatherSample, error) {
	result := new(forecastResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":        strconv.FormatFloat(latitude, 'f', -1, 64),
			"longitude":       strconv.FormatFloat(longitude, 'f', -1, 64),
			"hourly":          "temperature_2m,relative_humidity_2m,precipitation_probability,wind_speed_10m",
			"forecast_hours":  strconv.Itoa(c.hours),
			"wind_speed_unit": "ms",
		}).
		SetResult(result).
		SetError(apiErr).
		Get("/v1/forecast")
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		reason := apiErr.Reason
		if reason == "" {
			reason = resp.Status()
		}
		return nil, fmt.Errorf("weather api error: status=%d, reason=%s", resp.StatusCode(), reason)
	}

	hourly := result.Hourly
	samples := make([]models.WeatherSample, 0, len(hourly.Temperature2M))
	for i := range hourly.Temperature2M {
		sample := models.WeatherSample{Temperature: hourly.Temperature2M[i]}
		if i < len(hourly.RelativeHumidity2M) {
			sample.Humidity = hourly.RelativeHumidity2M[i]
		}
		if i < len(hourly.PrecipitationProbability) {
			// The provider reports percent; the evaluator expects 0..1.
			sample.PrecipitationProb = hourly.PrecipitationProbability[i] / 100
		}
		if i < len(hourly.WindSpeed10M) {
			wind := hourly.WindSpeed10M[i]
			sample.WindSpeed = &wind
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
