// Package lookup runs the query pipeline: normalize the input, resolve it to
// coordinates, fetch the weather data, and build the display model.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/i474232898/geoweather/internal/location"
	"github.com/i474232898/geoweather/internal/store"
	"github.com/i474232898/geoweather/internal/view"
	"github.com/i474232898/geoweather/internal/weather"
)

// Disambiguation asks the caller to pick one of several geocoding matches.
// The token identifies the stored candidate set for the follow-up call; the
// selection travels back as an index into Candidates, in this exact order.
type Disambiguation struct {
	Token      string               `json:"token"`
	Candidates []location.Candidate `json:"candidates"`
}

// Outcome is the terminal result of one pipeline run: either a view model or
// a disambiguation request. Exactly one field is set.
type Outcome struct {
	Model          *view.Model
	Disambiguation *Disambiguation
}

// Suggestion is a lightweight geocoding match for type-ahead callers.
type Suggestion struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Service wires the pipeline stages together. One query runs at a time per
// caller; a new query supersedes rather than merges with an in-flight one,
// and the only cross-query state lives in the session store.
type Service struct {
	geocoder   weather.Geocoder
	aggregator *weather.Aggregator
	reverse    weather.ReverseGeocoder // optional, may be nil
	session    *store.Session

	limit   int           // geocoding candidate limit
	timeout time.Duration // per-call deadline for the geocoding request
}

func New(geocoder weather.Geocoder, aggregator *weather.Aggregator, reverse weather.ReverseGeocoder, session *store.Session, limit int, timeout time.Duration) *Service {
	return &Service{
		geocoder:   geocoder,
		aggregator: aggregator,
		reverse:    reverse,
		session:    session,
		limit:      limit,
		timeout:    timeout,
	}
}

// Lookup resolves a raw text query end to end. Manual queries that resolve
// successfully overwrite the stored last location.
func (s *Service) Lookup(ctx context.Context, raw string) (*Outcome, error) {
	q, err := location.ParseQuery(raw)
	if err != nil {
		return nil, err
	}

	if q.Kind == location.KindCoordinates {
		resolved := s.labelCoordinates(q.Lat, q.Lon, "Coordinates")
		model, err := s.fetchAndBuild(ctx, resolved)
		if err != nil {
			return nil, err
		}
		s.session.SaveLast(q.Raw, model)
		return &Outcome{Model: model}, nil
	}

	return s.lookupCity(ctx, q)
}

// LookupDevice resolves coordinates reported by the device geolocation
// provider. Device queries are not manual input and never touch the stored
// last location.
func (s *Service) LookupDevice(ctx context.Context, lat, lon float64) (*Outcome, error) {
	q, err := location.DeviceQuery(lat, lon)
	if err != nil {
		return nil, err
	}

	resolved := s.labelCoordinates(q.Lat, q.Lon, "Current Location")
	model, err := s.fetchAndBuild(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return &Outcome{Model: model}, nil
}

// Select completes a suspended disambiguation: the token identifies the
// offered candidate set, index the user's pick within it.
func (s *Service) Select(ctx context.Context, token string, index int) (*Outcome, error) {
	candidates, err := s.session.TakePending(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", location.ErrNoMatchingCandidate, err)
	}

	chosen, _, err := location.Choose(candidates, &location.Selection{Index: index}, "")
	if err != nil {
		return nil, err
	}

	resolved := location.Resolved{
		Lat:         chosen.Lat,
		Lon:         chosen.Lon,
		DisplayName: chosen.Label(),
		Detail:      chosen.DetailLabel(),
	}
	model, err := s.fetchAndBuild(ctx, resolved)
	if err != nil {
		return nil, err
	}
	s.session.SaveLast(chosen.Label(), model)
	return &Outcome{Model: model}, nil
}

// Last returns the cached view model of the last successful manual query.
func (s *Service) Last() (*view.Model, error) {
	return s.session.LastModel()
}

// RefreshLast re-resolves the stored last location and updates its cached
// model. Used by the background refresh job.
func (s *Service) RefreshLast(ctx context.Context) error {
	raw, err := s.session.LastLocation()
	if err != nil {
		return err
	}

	outcome, err := s.Lookup(ctx, raw)
	if err != nil {
		return err
	}
	if outcome.Disambiguation != nil {
		// The stored query was resolved without user input before, so a
		// disambiguation here means the provider's match set changed.
		return fmt.Errorf("last location %q is no longer unambiguous", raw)
	}
	s.session.RefreshLastModel(outcome.Model)
	return nil
}

// Suggest returns up to limit geocoding matches for a partial query. Provider
// failures degrade to an empty list; type-ahead must never surface errors.
func (s *Service) Suggest(ctx context.Context, query string) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Suggestion{}
	}

	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidates, err := s.geocoder.Search(gctx, query, s.limit)
	if err != nil {
		log.Printf("suggestions fetch failed for %q: %v", query, err)
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, Suggestion{
			Label: c.Label(),
			Lat:   c.Lat,
			Lon:   c.Lon,
		})
	}
	return suggestions
}

func (s *Service) lookupCity(ctx context.Context, q location.Query) (*Outcome, error) {
	code, err := location.ResolveCountry(q.Country)
	if err != nil {
		return nil, err
	}

	query := q.City
	if code != "" {
		query = q.City + "," + code
	}

	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidates, err := s.geocoder.Search(gctx, query, s.limit)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: geocoding %q", weather.ErrRequestTimedOut, query)
		}
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", weather.ErrLookupFailed, query)
	}

	chosen, remaining, err := location.Choose(candidates, nil, code)
	if err != nil {
		return nil, err
	}
	if remaining != nil {
		token := s.session.SavePending(remaining)
		return &Outcome{Disambiguation: &Disambiguation{Token: token, Candidates: remaining}}, nil
	}

	resolved := location.Resolved{
		Lat:         chosen.Lat,
		Lon:         chosen.Lon,
		DisplayName: chosen.Label(),
		Detail:      chosen.DetailLabel(),
	}
	model, err := s.fetchAndBuild(ctx, resolved)
	if err != nil {
		return nil, err
	}
	s.session.SaveLast(q.Raw, model)
	return &Outcome{Model: model}, nil
}

// labelCoordinates names a raw coordinate pair, preferring a reverse-geocoded
// city label when that collaborator is configured. Reverse failures fall back
// to the generic name.
func (s *Service) labelCoordinates(lat, lon float64, fallback string) location.Resolved {
	resolved := location.Resolved{Lat: lat, Lon: lon, DisplayName: fallback}
	if s.reverse == nil {
		return resolved
	}

	name, err := s.reverse.ReverseLookup(lat, lon)
	if err != nil {
		log.Printf("reverse geocoding failed for (%.4f, %.4f): %v", lat, lon, err)
		return resolved
	}
	resolved.DisplayName = name
	return resolved
}

func (s *Service) fetchAndBuild(ctx context.Context, resolved location.Resolved) (*view.Model, error) {
	report, err := s.aggregator.Fetch(ctx, resolved.Lat, resolved.Lon)
	if err != nil {
		return nil, err
	}
	return view.Build(resolved, report, time.Now()), nil
}

