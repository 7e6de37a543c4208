package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Aggregator fans out the three weather-data calls for a resolved coordinate
// pair and joins their results into a Report.
type Aggregator struct {
	provider Provider
	timeout  time.Duration
}

// NewAggregator creates an Aggregator. Each of the three calls runs under its
// own deadline of the given timeout.
func NewAggregator(provider Provider, timeout time.Duration) *Aggregator {
	return &Aggregator{
		provider: provider,
		timeout:  timeout,
	}
}

// Fetch issues the current-conditions, air-quality, and forecast calls
// concurrently. Current-conditions and forecast failures are fatal; an
// air-quality failure degrades to AQIUnknown and the query continues.
// A timeout cancels only the call that exceeded it.
func (a *Aggregator) Fetch(ctx context.Context, lat, lon float64) (Report, error) {
	var (
		wg     sync.WaitGroup
		report Report
		curErr error
		fcErr  error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		report.Snapshot, curErr = a.provider.Current(cctx, lat, lon)
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		air, err := a.provider.AirQuality(cctx, lat, lon)
		if err != nil {
			log.Printf("air quality fetch failed for (%.4f, %.4f): %v", lat, lon, err)
			report.Air = AirQuality{Index: AQIUnknown}
			return
		}
		report.Air = air
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		report.Series, fcErr = a.provider.Forecast(cctx, lat, lon)
	}()

	wg.Wait()

	if curErr != nil {
		return Report{}, fatal(ErrWeatherUnavailable, curErr)
	}
	if fcErr != nil {
		return Report{}, fatal(ErrForecastUnavailable, fcErr)
	}
	return report, nil
}

// fatal wraps a failed mandatory call, surfacing ErrRequestTimedOut when the
// call's deadline was the cause.
func fatal(kind, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", kind, ErrRequestTimedOut)
	}
	return fmt.Errorf("%w: %v", kind, err)
}
