package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/i474232898/geoweather/internal/location"
	"github.com/i474232898/geoweather/internal/weather"
)

// Search queries the geocoding endpoint for up to limit candidates matching
// the query ("city" or "city,CC"). The returned order is the provider's and
// defines the default choice on disambiguation. An empty result is not an
// error: it means no place matched.
func (c *OpenWeatherClient) Search(ctx context.Context, query string, limit int) ([]location.Candidate, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))

	var payload []struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	if err := fetchJSON(ctx, c.httpCfg, c.geoCB, c.buildRequest("/geo/1.0/direct", values), &payload); err != nil {
		if errors.Is(err, weather.ErrInvalidCredentials) ||
			errors.Is(err, weather.ErrRateLimited) ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: unable to find location %q", weather.ErrLookupFailed, query)
	}

	candidates := make([]location.Candidate, 0, len(payload))
	for _, item := range payload {
		candidates = append(candidates, location.Candidate{
			Name:    item.Name,
			Country: item.Country,
			Lat:     item.Lat,
			Lon:     item.Lon,
		})
	}
	return candidates, nil
}
