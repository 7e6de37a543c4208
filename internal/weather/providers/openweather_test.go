package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/i474232898/geoweather/internal/weather"
)

// testClient builds a client pointed at the test server with retries and rate
// limiting effectively disabled so failure paths stay fast.
func testClient(t *testing.T, srv *httptest.Server) *OpenWeatherClient {
	t.Helper()
	return NewOpenWeatherClient(srv.Client(), "test-key",
		WithBaseURL(srv.URL),
		WithBackoff(BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	)
}

func TestSearchReturnsCandidatesInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/1.0/direct" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Springfield" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q", got)
		}
		w.Write([]byte(`[
			{"name":"Springfield","country":"US","lat":39.8,"lon":-89.6},
			{"name":"Springfield","country":"CA","lat":44.3,"lon":-64.1}
		]`))
	}))
	defer srv.Close()

	cands, err := testClient(t, srv).Search(context.Background(), "Springfield", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].Country != "US" || cands[1].Country != "CA" {
		t.Errorf("provider order not preserved: %+v", cands)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cands, err := testClient(t, srv).Search(context.Background(), "Xyzzy", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cands) != 0 {
		t.Fatalf("got %d candidates, want 0", len(cands))
	}
}

func TestSearchStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, weather.ErrInvalidCredentials},
		{http.StatusTooManyRequests, weather.ErrRateLimited},
		{http.StatusInternalServerError, weather.ErrLookupFailed},
		{http.StatusNotFound, weather.ErrLookupFailed},
	}

	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		_, err := testClient(t, srv).Search(context.Background(), "London", 5)
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: error = %v, want %v", tc.status, err, tc.want)
		}
		srv.Close()
	}
}

func TestCurrentParsesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q", got)
		}
		w.Write([]byte(`{
			"main":{"temp":15.4,"feels_like":14.1,"humidity":72,"pressure":1012},
			"weather":[{"description":"light rain","icon":"10d"}],
			"wind":{"speed":3.6},
			"sys":{"sunrise":1700000000,"sunset":1700040000},
			"alerts":[{"event":"Flood warning","description":"river levels rising"}]
		}`))
	}))
	defer srv.Close()

	snap, err := testClient(t, srv).Current(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TemperatureC != 15.4 || snap.FeelsLikeC != 14.1 {
		t.Errorf("temps = %v / %v", snap.TemperatureC, snap.FeelsLikeC)
	}
	if snap.Description != "light rain" || snap.Icon != "10d" {
		t.Errorf("weather = %q / %q", snap.Description, snap.Icon)
	}
	if snap.HumidityPct != 72 || snap.PressureHpa != 1012 {
		t.Errorf("humidity/pressure = %d / %d", snap.HumidityPct, snap.PressureHpa)
	}
	if snap.UVIndex != nil {
		t.Errorf("uv index should be nil when absent, got %v", *snap.UVIndex)
	}
	if len(snap.Alerts) != 1 || snap.Alerts[0].Event != "Flood warning" {
		t.Errorf("alerts = %+v", snap.Alerts)
	}
}

func TestAirQualityParsesIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/air_pollution" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"list":[{"main":{"aqi":3}}]}`))
	}))
	defer srv.Close()

	air, err := testClient(t, srv).AirQuality(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if air.Index != 3 {
		t.Errorf("aqi = %d, want 3", air.Index)
	}
}

func TestForecastMarksNoonSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"list":[
			{"dt":1700000000,"main":{"temp":10.2},"weather":[{"description":"overcast clouds","icon":"04d"}],"pop":0.4,"dt_txt":"2023-11-14 09:00:00"},
			{"dt":1700010800,"main":{"temp":12.8},"weather":[{"description":"light rain","icon":"10d"}],"pop":0.8,"dt_txt":"2023-11-14 12:00:00"}
		]}`))
	}))
	defer srv.Close()

	series, err := testClient(t, srv).Forecast(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d entries, want 2", len(series))
	}
	if series[0].Noon || !series[1].Noon {
		t.Errorf("noon flags = %v / %v", series[0].Noon, series[1].Noon)
	}
	if series[1].PrecipProbability != 0.8 {
		t.Errorf("pop = %v", series[1].PrecipProbability)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"list":[{"main":{"aqi":1}}]}`))
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.Client(), "test-key",
		WithBaseURL(srv.URL),
		WithBackoff(BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	)

	air, err := client.AirQuality(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if air.Index != 1 {
		t.Errorf("aqi = %d, want 1", air.Index)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestFetchDoesNotRetryAuthFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewOpenWeatherClient(srv.Client(), "bad-key",
		WithBaseURL(srv.URL),
		WithBackoff(BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	)

	_, err := client.Current(context.Background(), 0, 0)
	if !errors.Is(err, weather.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries on auth failure)", calls)
	}
}
