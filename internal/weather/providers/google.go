package providers

import (
	"errors"

	"github.com/kelvins/geocoder"
)

// GoogleReverseGeocoder labels raw coordinates with a city name via the
// Google Geocoding API. It is only wired up when a Google API key is
// configured; callers treat failures as non-fatal and fall back to a generic
// display name.
type GoogleReverseGeocoder struct{}

func NewGoogleReverseGeocoder(apiKey string) *GoogleReverseGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleReverseGeocoder{}
}

// ReverseLookup returns a "City, Country" label for the coordinates.
func (g *GoogleReverseGeocoder) ReverseLookup(lat, lon float64) (string, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{Latitude: lat, Longitude: lon})
	if err != nil {
		return "", err
	}
	if len(addresses) == 0 {
		return "", errors.New("no reverse geocoding result")
	}

	addr := addresses[0]
	if addr.City == "" {
		return "", errors.New("reverse geocoding result has no city")
	}
	label := addr.City
	if addr.Country != "" {
		label += ", " + addr.Country
	}
	return label, nil
}
