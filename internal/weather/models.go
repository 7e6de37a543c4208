package weather

import "time"

// AQIUnknown marks air-quality data that could not be fetched. The provider
// scale is 1 (Good) through 5 (Very Poor).
const AQIUnknown = 0

// Alert is a severe-weather advisory attached to the current conditions.
type Alert struct {
	Event       string `json:"event"`
	Description string `json:"description"`
}

// Snapshot holds the current conditions for a resolved location, in metric
// units as delivered by the provider.
type Snapshot struct {
	TemperatureC float64
	FeelsLikeC   float64
	Description  string
	HumidityPct  int
	PressureHpa  int
	WindSpeedMS  float64
	Sunrise      time.Time
	Sunset       time.Time
	Icon         string
	UVIndex      *float64 // nil when the provider payload carries no UV data
	Alerts       []Alert
}

// AirQuality is the categorical 1-5 air quality index, or AQIUnknown.
type AirQuality struct {
	Index int
}

// ForecastEntry is one 3-hour step of the provider forecast timeline.
// Noon marks the provider's fixed mid-day sample used for daily bucketing.
type ForecastEntry struct {
	Time              time.Time
	TemperatureC      float64
	Description       string
	Icon              string
	PrecipProbability float64 // 0..1
	Noon              bool
}

// Report joins the three weather-data fetches for one query.
type Report struct {
	Snapshot Snapshot
	Air      AirQuality
	Series   []ForecastEntry
}
