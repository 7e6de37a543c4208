package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/geoweather/internal/location"
	"github.com/i474232898/geoweather/internal/lookup"
	"github.com/i474232898/geoweather/internal/store"
	"github.com/i474232898/geoweather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *lookup.Service) {
	v1 := app.Group("/api/v1")

	// Main entry point. Either a fresh query (?q=London,GB) or a follow-up
	// selection for a previously returned disambiguation (?token=..&pick=0).
	v1.Get("/weather", func(c *fiber.Ctx) error {
		req, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var outcome *lookup.Outcome
		if req.Token != "" {
			outcome, err = service.Select(c.Context(), req.Token, *req.Pick)
		} else {
			outcome, err = service.Lookup(c.Context(), req.Q)
		}
		if err != nil {
			return fiber.NewError(statusForError(err), err.Error())
		}
		return respondOutcome(c, outcome)
	})

	// Device geolocation entry point.
	v1.Get("/weather/here", func(c *fiber.Ctx) error {
		var req hereQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		outcome, err := service.LookupDevice(c.Context(), *req.Lat, *req.Lon)
		if err != nil {
			return fiber.NewError(statusForError(err), err.Error())
		}
		return respondOutcome(c, outcome)
	})

	// Cached result for the last successful manual query.
	v1.Get("/weather/last", func(c *fiber.Ctx) error {
		model, err := service.Last()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(model)
	})

	// Type-ahead suggestions. Always succeeds; failures yield an empty list.
	v1.Get("/suggest", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"suggestions": service.Suggest(c.Context(), c.Query("q")),
		})
	})
}

func respondOutcome(c *fiber.Ctx, outcome *lookup.Outcome) error {
	if outcome.Disambiguation != nil {
		return c.Status(fiber.StatusMultipleChoices).JSON(fiber.Map{
			"disambiguation": outcome.Disambiguation,
		})
	}
	return c.JSON(outcome.Model)
}

// weatherQuery holds the main endpoint's parameters.
type weatherQuery struct {
	Q     string `validate:"required_without=Token"`
	Token string
	Pick  *int `validate:"required_with=Token"`
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	var q weatherQuery

	q.Q = c.Query("q")
	q.Token = c.Query("token")
	if pickStr := c.Query("pick"); pickStr != "" {
		pick, err := strconv.Atoi(pickStr)
		if err != nil {
			return q, errors.New("pick must be an integer index")
		}
		q.Pick = &pick
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// hereQuery holds the device-location endpoint's parameters.
type hereQuery struct {
	Lat *float64 `validate:"required"`
	Lon *float64 `validate:"required"`
}

func (h *hereQuery) bind(c *fiber.Ctx) error {
	if latStr := c.Query("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return errors.New("lat must be a number")
		}
		h.Lat = &lat
	}
	if lonStr := c.Query("lon"); lonStr != "" {
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return errors.New("lon must be a number")
		}
		h.Lon = &lon
	}
	return validate.Struct(h)
}

// statusForError translates pipeline error kinds to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, location.ErrInvalidInput),
		errors.Is(err, location.ErrInvalidCoordinates),
		errors.Is(err, location.ErrUnknownCountry):
		return fiber.StatusBadRequest
	case errors.Is(err, location.ErrNoMatchingCandidate),
		errors.Is(err, weather.ErrLookupFailed),
		errors.Is(err, store.ErrNoLastLocation):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, weather.ErrRequestTimedOut):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, weather.ErrInvalidCredentials),
		errors.Is(err, weather.ErrWeatherUnavailable),
		errors.Is(err, weather.ErrForecastUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
