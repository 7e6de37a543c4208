package weather

import "errors"

var (
	// ErrInvalidCredentials is returned when the provider rejects the API key.
	ErrInvalidCredentials = errors.New("invalid API credentials")
	// ErrRateLimited is returned when the provider reports too many requests.
	ErrRateLimited = errors.New("API rate limit exceeded")
	// ErrLookupFailed is returned when geocoding a query fails or matches nothing.
	ErrLookupFailed = errors.New("location lookup failed")
	// ErrWeatherUnavailable is returned when current conditions cannot be fetched.
	ErrWeatherUnavailable = errors.New("weather data unavailable")
	// ErrForecastUnavailable is returned when the forecast cannot be fetched.
	ErrForecastUnavailable = errors.New("forecast data unavailable")
	// ErrRequestTimedOut is returned when a provider call exceeds its timeout.
	ErrRequestTimedOut = errors.New("request timed out")
)
