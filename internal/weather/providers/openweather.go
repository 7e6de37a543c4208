package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/geoweather/internal/weather"
)

const defaultBaseURL = "https://api.openweathermap.org"

// OpenWeatherClient talks to the OpenWeatherMap current-conditions,
// air-pollution, forecast, and geocoding endpoints. It implements both the
// weather.Provider and weather.Geocoder contracts.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig

	// One breaker per endpoint so a failing non-critical endpoint (air
	// pollution) cannot trip the critical ones.
	currentCB  *gobreaker.CircuitBreaker
	airCB      *gobreaker.CircuitBreaker
	forecastCB *gobreaker.CircuitBreaker
	geoCB      *gobreaker.CircuitBreaker
}

// Option adjusts the client, mainly for tests.
type Option func(*OpenWeatherClient)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *OpenWeatherClient) { c.baseURL = u }
}

// WithBackoff overrides the retry schedule.
func WithBackoff(cfg BackoffConfig) Option {
	return func(c *OpenWeatherClient) { c.httpCfg.Backoff = cfg }
}

// WithLimiter overrides the outbound rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *OpenWeatherClient) { c.httpCfg.Limiter = l }
}

func NewOpenWeatherClient(client *http.Client, apiKey string, opts ...Option) *OpenWeatherClient {
	c := &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
			// Free tier allows 60 calls/minute; one per second with a small
			// burst keeps all four endpoints inside the shared quota.
			Limiter: rate.NewLimiter(rate.Limit(1), 5),
		},
		currentCB:  newBreaker("openweather-current"),
		airCB:      newBreaker("openweather-air"),
		forecastCB: newBreaker("openweather-forecast"),
		geoCB:      newBreaker("openweather-geocoding"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *OpenWeatherClient) buildRequest(path string, values url.Values) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values.Set("appid", c.apiKey)
		u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}
}

// Current fetches the current conditions for the coordinates.
func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("units", "metric")

	var payload struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
		UVI    *float64        `json:"uvi"`
		Alerts []weather.Alert `json:"alerts"`
	}

	if err := fetchJSON(ctx, c.httpCfg, c.currentCB, c.buildRequest("/data/2.5/weather", values), &payload); err != nil {
		return weather.Snapshot{}, err
	}

	snap := weather.Snapshot{
		TemperatureC: payload.Main.Temp,
		FeelsLikeC:   payload.Main.FeelsLike,
		HumidityPct:  payload.Main.Humidity,
		PressureHpa:  payload.Main.Pressure,
		WindSpeedMS:  payload.Wind.Speed,
		Sunrise:      time.Unix(payload.Sys.Sunrise, 0),
		Sunset:       time.Unix(payload.Sys.Sunset, 0),
		UVIndex:      payload.UVI,
		Alerts:       payload.Alerts,
	}
	if len(payload.Weather) > 0 {
		snap.Description = payload.Weather[0].Description
		snap.Icon = payload.Weather[0].Icon
	}
	return snap, nil
}

// AirQuality fetches the 1-5 air quality index for the coordinates.
func (c *OpenWeatherClient) AirQuality(ctx context.Context, lat, lon float64) (weather.AirQuality, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))

	var payload struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
		} `json:"list"`
	}

	if err := fetchJSON(ctx, c.httpCfg, c.airCB, c.buildRequest("/data/2.5/air_pollution", values), &payload); err != nil {
		return weather.AirQuality{}, err
	}
	if len(payload.List) == 0 {
		return weather.AirQuality{Index: weather.AQIUnknown}, nil
	}
	return weather.AirQuality{Index: payload.List[0].Main.AQI}, nil
}

// Forecast fetches the 5-day/3-hour forecast timeline for the coordinates.
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]weather.ForecastEntry, error) {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("units", "metric")

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
			Pop   float64 `json:"pop"`
			DtTxt string  `json:"dt_txt"`
		} `json:"list"`
	}

	if err := fetchJSON(ctx, c.httpCfg, c.forecastCB, c.buildRequest("/data/2.5/forecast", values), &payload); err != nil {
		return nil, err
	}

	series := make([]weather.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		entry := weather.ForecastEntry{
			Time:              time.Unix(item.Dt, 0),
			TemperatureC:      item.Main.Temp,
			PrecipProbability: item.Pop,
			Noon:              isNoonSample(item.DtTxt),
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.Icon = item.Weather[0].Icon
		}
		series = append(series, entry)
	}
	return series, nil
}

// The forecast endpoint samples every 3 hours; the provider's fixed mid-day
// sample carries a "12:00:00" time in dt_txt.
func isNoonSample(dtTxt string) bool {
	return strings.Contains(dtTxt, "12:00:00")
}
