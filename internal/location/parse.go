package location

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var commaSpace = regexp.MustCompile(`\s*,\s*`)

// ParseQuery normalizes raw user text into a Query. Input carrying both a
// "lat:" and a "lon:" marker is parsed as a coordinate pair; everything else
// is treated as "city" or "city,country" text. ParseQuery never touches the
// network.
func ParseQuery(raw string) (Query, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Query{}, fmt.Errorf("%w: enter a city name (e.g. London,GB) or coordinates (e.g. lat:40.7,lon:-74.0)", ErrInvalidInput)
	}

	if strings.Contains(trimmed, "lat:") && strings.Contains(trimmed, "lon:") {
		return parseCoordinates(trimmed)
	}

	collapsed := commaSpace.ReplaceAllString(trimmed, ",")
	parts := strings.Split(collapsed, ",")
	city := strings.TrimSpace(parts[0])
	if city == "" {
		return Query{}, fmt.Errorf("%w: missing city name", ErrInvalidInput)
	}

	q := Query{Kind: KindCity, City: city, Raw: trimmed}
	if len(parts) > 1 {
		q.Country = strings.TrimSpace(parts[1])
	}
	return q, nil
}

// DeviceQuery wraps coordinates reported by the device geolocation provider.
func DeviceQuery(lat, lon float64) (Query, error) {
	if err := checkRange(lat, lon); err != nil {
		return Query{}, err
	}
	return Query{Kind: KindDevice, Lat: lat, Lon: lon}, nil
}

func parseCoordinates(raw string) (Query, error) {
	s := strings.Replace(raw, "lat:", "", 1)
	s = strings.Replace(s, "lon:", "", 1)

	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return Query{}, fmt.Errorf(`%w: use the format "lat:40.7,lon:-74.0"`, ErrInvalidCoordinates)
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lonErr != nil {
		return Query{}, fmt.Errorf(`%w: use the format "lat:40.7,lon:-74.0"`, ErrInvalidCoordinates)
	}
	if err := checkRange(lat, lon); err != nil {
		return Query{}, err
	}

	return Query{Kind: KindCoordinates, Lat: lat, Lon: lon, Raw: raw}, nil
}

func checkRange(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: latitude must be in [-90,90] and longitude in [-180,180]", ErrInvalidCoordinates)
	}
	return nil
}
