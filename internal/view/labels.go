package view

import (
	"strings"
	"time"

	"github.com/i474232898/geoweather/internal/common"
	"github.com/i474232898/geoweather/internal/weather"
)

// AQICategory maps the provider's 1-5 air quality index to its label.
// Anything outside the scale is Unknown.
func AQICategory(index int) string {
	switch index {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	case 5:
		return "Very Poor"
	default:
		return "Unknown"
	}
}

// UVCategory maps a UV index value to its advisory label. A nil value means
// the provider payload carried no UV data.
func UVCategory(uvi *float64) string {
	switch {
	case uvi == nil:
		return "Not available"
	case *uvi <= 2:
		return "Low - Safe"
	case *uvi <= 5:
		return "Moderate - Wear sunscreen"
	case *uvi <= 7:
		return "High - Use sunscreen and hat"
	case *uvi <= 10:
		return "Very High - Limit sun exposure"
	default:
		return "Extreme - Avoid sun exposure"
	}
}

// TimeOfDay buckets a local clock reading into the display context.
func TimeOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "Morning"
	case hour < 17:
		return "Afternoon"
	case hour < 20:
		return "Evening"
	default:
		return "Night"
	}
}

// ClassifyCondition picks the display theme for a weather description.
// Checked in priority order: rain beats clouds beats clear beats snow.
func ClassifyCondition(description string) string {
	switch {
	case common.ContainsAny(description, "rain", "shower"):
		return "rain"
	case common.ContainsAny(description, "cloud"):
		return "clouds"
	case common.ContainsAny(description, "clear"):
		return "clear"
	case common.ContainsAny(description, "snow"):
		return "snow"
	default:
		return "default"
	}
}

// IconURL builds the provider's icon image URL for an icon code.
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return "https://openweathermap.org/img/wn/" + icon + "@2x.png"
}

func joinAlerts(alerts []weather.Alert) string {
	parts := make([]string, 0, len(alerts))
	for _, a := range alerts {
		parts = append(parts, a.Event+": "+a.Description)
	}
	return strings.Join(parts, " | ")
}
