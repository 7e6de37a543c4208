package weather

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeProvider scripts the three per-coordinate fetches.
type fakeProvider struct {
	snapshot   Snapshot
	currentErr error
	currentLag time.Duration

	air    AirQuality
	airErr error

	series      []ForecastEntry
	forecastErr error
}

func (f *fakeProvider) Current(ctx context.Context, lat, lon float64) (Snapshot, error) {
	if f.currentLag > 0 {
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-time.After(f.currentLag):
		}
	}
	return f.snapshot, f.currentErr
}

func (f *fakeProvider) AirQuality(ctx context.Context, lat, lon float64) (AirQuality, error) {
	return f.air, f.airErr
}

func (f *fakeProvider) Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	return f.series, f.forecastErr
}

func TestFetchJoinsAllThreeCalls(t *testing.T) {
	provider := &fakeProvider{
		snapshot: Snapshot{TemperatureC: 15.4, Description: "light rain"},
		air:      AirQuality{Index: 2},
		series:   []ForecastEntry{{TemperatureC: 14.0}},
	}
	agg := NewAggregator(provider, time.Second)

	report, err := agg.Fetch(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Snapshot.TemperatureC != 15.4 {
		t.Errorf("temperature = %v", report.Snapshot.TemperatureC)
	}
	if report.Air.Index != 2 {
		t.Errorf("aqi = %d, want 2", report.Air.Index)
	}
	if len(report.Series) != 1 {
		t.Errorf("series length = %d, want 1", len(report.Series))
	}
}

func TestFetchAirQualityFailureIsNonFatal(t *testing.T) {
	provider := &fakeProvider{
		snapshot: Snapshot{TemperatureC: 20},
		airErr:   errors.New("air pollution endpoint down"),
		series:   []ForecastEntry{{TemperatureC: 19}},
	}
	agg := NewAggregator(provider, time.Second)

	report, err := agg.Fetch(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("query should survive an air quality failure, got: %v", err)
	}
	if report.Air.Index != AQIUnknown {
		t.Errorf("aqi = %d, want AQIUnknown", report.Air.Index)
	}
	if report.Snapshot.TemperatureC != 20 {
		t.Errorf("snapshot not populated: %+v", report.Snapshot)
	}
}

func TestFetchCurrentFailureIsFatal(t *testing.T) {
	provider := &fakeProvider{
		currentErr: errors.New("boom"),
		air:        AirQuality{Index: 1},
		series:     []ForecastEntry{{}},
	}
	agg := NewAggregator(provider, time.Second)

	_, err := agg.Fetch(context.Background(), 0, 0)
	if !errors.Is(err, ErrWeatherUnavailable) {
		t.Fatalf("error = %v, want ErrWeatherUnavailable", err)
	}
}

func TestFetchForecastFailureIsFatal(t *testing.T) {
	provider := &fakeProvider{
		snapshot:    Snapshot{TemperatureC: 20},
		air:         AirQuality{Index: 1},
		forecastErr: errors.New("boom"),
	}
	agg := NewAggregator(provider, time.Second)

	_, err := agg.Fetch(context.Background(), 0, 0)
	if !errors.Is(err, ErrForecastUnavailable) {
		t.Fatalf("error = %v, want ErrForecastUnavailable", err)
	}
}

func TestFetchCurrentTimeout(t *testing.T) {
	provider := &fakeProvider{
		currentLag: 200 * time.Millisecond,
		air:        AirQuality{Index: 1},
		series:     []ForecastEntry{{}},
	}
	agg := NewAggregator(provider, 20*time.Millisecond)

	_, err := agg.Fetch(context.Background(), 0, 0)
	if !errors.Is(err, ErrWeatherUnavailable) {
		t.Fatalf("error = %v, want ErrWeatherUnavailable", err)
	}
	if !errors.Is(err, ErrRequestTimedOut) {
		t.Fatalf("error = %v, want wrapped ErrRequestTimedOut", err)
	}
}
