package weather

import (
	"context"

	"github.com/i474232898/geoweather/internal/location"
)

// Provider abstracts the weather data source behind the three per-coordinate
// fetches the aggregator issues.
type Provider interface {
	Current(ctx context.Context, lat, lon float64) (Snapshot, error)
	AirQuality(ctx context.Context, lat, lon float64) (AirQuality, error)
	Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error)
}

// Geocoder resolves a place-name query to an ordered list of candidates.
// An empty list is a valid outcome meaning "no match".
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]location.Candidate, error)
}

// ReverseGeocoder turns coordinates into a human-readable place label.
// Implementations are optional collaborators; failures are non-fatal.
type ReverseGeocoder interface {
	ReverseLookup(lat, lon float64) (string, error)
}
