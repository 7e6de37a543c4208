package view

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/geoweather/internal/location"
	"github.com/i474232898/geoweather/internal/weather"
)

const (
	clockLayout = "3:04 PM"
	dateLayout  = "Monday, January 2"

	hourlyEntries = 8
	dailyEntries  = 5
)

var titleCaser = cases.Title(language.English)

// HourlyEntry is one card of the hourly strip.
type HourlyEntry struct {
	Time          string `json:"time"`
	Temperature   string `json:"temperature"`
	IconURL       string `json:"iconUrl"`
	Precipitation string `json:"precipitation"`
}

// DailyEntry is one card of the 5-day forecast.
type DailyEntry struct {
	Date        string `json:"date"`
	Temperature string `json:"temperature"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description"`
}

// Model is the display-ready, provider-agnostic result of a query. It is
// built fresh per query and replaced wholesale, never patched in place.
type Model struct {
	CityName      string `json:"cityName"`
	Detail        string `json:"detail,omitempty"`
	Temperature   string `json:"temperature"`
	FeelsLike     string `json:"feelsLike"`
	Description   string `json:"description"`
	Humidity      string `json:"humidity"`
	Pressure      string `json:"pressure"`
	Wind          string `json:"wind"`
	Precipitation string `json:"precipitation"`
	AirQuality    string `json:"airQuality"`
	UVIndex       string `json:"uvIndex"`
	Sunrise       string `json:"sunrise"`
	Sunset        string `json:"sunset"`
	IconURL       string `json:"iconUrl"`
	Alerts        string `json:"alerts,omitempty"`
	TimeContext   string `json:"timeContext"`
	Condition     string `json:"condition"`

	Hourly []HourlyEntry `json:"hourly"`
	Daily  []DailyEntry  `json:"daily"`
}

// Build transforms a weather report for a resolved location into the display
// model. It is pure: now is the caller's local clock at render time.
func Build(loc location.Resolved, report weather.Report, now time.Time) *Model {
	snap := report.Snapshot

	m := &Model{
		CityName:      loc.DisplayName,
		Detail:        loc.Detail,
		Temperature:   formatTemp(snap.TemperatureC),
		FeelsLike:     formatTemp(snap.FeelsLikeC),
		Description:   snap.Description,
		Humidity:      fmt.Sprintf("%d%%", snap.HumidityPct),
		Pressure:      fmt.Sprintf("%d hPa", snap.PressureHpa),
		Wind:          fmt.Sprintf("%.1f m/s", snap.WindSpeedMS),
		Precipitation: precipitationNow(report.Series),
		AirQuality:    formatAQI(report.Air),
		UVIndex:       formatUV(snap.UVIndex),
		Sunrise:       snap.Sunrise.Format(clockLayout),
		Sunset:        snap.Sunset.Format(clockLayout),
		IconURL:       IconURL(snap.Icon),
		Alerts:        joinAlerts(snap.Alerts),
		TimeContext:   timeContext(now),
		Condition:     ClassifyCondition(snap.Description),
		Hourly:        buildHourly(report.Series),
		Daily:         buildDaily(report.Series),
	}
	return m
}

func formatTemp(c float64) string {
	return fmt.Sprintf("%d°C", int(math.Round(c)))
}

func formatAQI(air weather.AirQuality) string {
	if air.Index == weather.AQIUnknown {
		return "N/A (Unknown)"
	}
	return fmt.Sprintf("%d (%s)", air.Index, AQICategory(air.Index))
}

func formatUV(uvi *float64) string {
	if uvi == nil {
		return "N/A (Not available)"
	}
	return fmt.Sprintf("%g (%s)", *uvi, UVCategory(uvi))
}

// precipitationNow is the precipitation probability of the nearest forecast
// step, as a rounded percentage.
func precipitationNow(series []weather.ForecastEntry) string {
	if len(series) == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(series[0].PrecipProbability*100)))
}

func timeContext(now time.Time) string {
	return fmt.Sprintf("%s Weather, %s (Updated: %s)",
		TimeOfDay(now), now.Format(dateLayout), now.Format(clockLayout))
}

// buildHourly takes the leading entries of the raw timeline in original order.
func buildHourly(series []weather.ForecastEntry) []HourlyEntry {
	n := hourlyEntries
	if n > len(series) {
		n = len(series)
	}

	hourly := make([]HourlyEntry, 0, n)
	for _, entry := range series[:n] {
		hourly = append(hourly, HourlyEntry{
			Time:          entry.Time.Format(clockLayout),
			Temperature:   formatTemp(entry.TemperatureC),
			IconURL:       IconURL(entry.Icon),
			Precipitation: fmt.Sprintf("%d%%", int(math.Round(entry.PrecipProbability*100))),
		})
	}
	return hourly
}

// buildDaily keeps the provider's mid-day samples, first five in order.
func buildDaily(series []weather.ForecastEntry) []DailyEntry {
	daily := make([]DailyEntry, 0, dailyEntries)
	for _, entry := range series {
		if !entry.Noon {
			continue
		}
		daily = append(daily, DailyEntry{
			Date:        entry.Time.Format("Mon, Jan 2"),
			Temperature: formatTemp(entry.TemperatureC),
			IconURL:     IconURL(entry.Icon),
			Description: titleCaser.String(entry.Description),
		})
		if len(daily) == dailyEntries {
			break
		}
	}
	return daily
}
