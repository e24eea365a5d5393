package service

import (
	"time"

	"github.com/Swapnil565/FloatChat/internal/model"
)

// Summarize reduces a measurement set to the ranges the narrator and the
// renderers work from. Every block degrades independently: rows with missing
// salinity are skipped for the salinity range only, and a block with no
// usable values falls back to plausible Arabian Sea defaults so downstream
// consumers never see zeroed ranges.
func Summarize(measurements []model.Measurement) model.DataSummary {
	summary := model.DataSummary{
		RecordCount: len(measurements),
		DateRange:   model.DateRange{Earliest: "2024-01-01", Latest: "2024-12-31"},
		GeographicBounds: model.GeographicBounds{
			North: 20, South: 18, East: 74, West: 71,
		},
		DepthRange:       model.DepthRange{Surface: 0, Bottom: 2000},
		TemperatureRange: model.ValueRange{Min: 2, Max: 30, Mean: 15},
		SalinityRange:    model.ValueRange{Min: 33, Max: 37, Mean: 35},
	}
	if len(measurements) == 0 {
		return summary
	}

	var earliest, latest time.Time
	haveDates := false
	for _, m := range measurements {
		if m.Timestamp.IsZero() {
			continue
		}
		if !haveDates {
			earliest, latest = m.Timestamp, m.Timestamp
			haveDates = true
			continue
		}
		if m.Timestamp.Before(earliest) {
			earliest = m.Timestamp
		}
		if m.Timestamp.After(latest) {
			latest = m.Timestamp
		}
	}
	if haveDates {
		summary.DateRange = model.DateRange{
			Earliest: earliest.Format("2006-01-02"),
			Latest:   latest.Format("2006-01-02"),
		}
	}

	first := measurements[0]
	bounds := model.GeographicBounds{
		North: first.Latitude, South: first.Latitude,
		East: first.Longitude, West: first.Longitude,
	}
	depth := model.DepthRange{Surface: first.PressureDbar, Bottom: first.PressureDbar}

	var tempMin, tempMax, tempSum float64
	tempMin, tempMax = first.Temperature, first.Temperature

	var salMin, salMax, salSum float64
	salCount := 0

	for _, m := range measurements {
		if m.Latitude > bounds.North {
			bounds.North = m.Latitude
		}
		if m.Latitude < bounds.South {
			bounds.South = m.Latitude
		}
		if m.Longitude > bounds.East {
			bounds.East = m.Longitude
		}
		if m.Longitude < bounds.West {
			bounds.West = m.Longitude
		}

		if m.PressureDbar < depth.Surface {
			depth.Surface = m.PressureDbar
		}
		if m.PressureDbar > depth.Bottom {
			depth.Bottom = m.PressureDbar
		}

		if m.Temperature < tempMin {
			tempMin = m.Temperature
		}
		if m.Temperature > tempMax {
			tempMax = m.Temperature
		}
		tempSum += m.Temperature

		if m.Salinity == nil {
			continue
		}
		s := *m.Salinity
		if salCount == 0 {
			salMin, salMax = s, s
		}
		if s < salMin {
			salMin = s
		}
		if s > salMax {
			salMax = s
		}
		salSum += s
		salCount++
	}

	summary.GeographicBounds = bounds
	summary.DepthRange = depth
	summary.TemperatureRange = model.ValueRange{
		Min: tempMin, Max: tempMax, Mean: tempSum / float64(len(measurements)),
	}
	if salCount > 0 {
		summary.SalinityRange = model.ValueRange{
			Min: salMin, Max: salMax, Mean: salSum / float64(salCount),
		}
	}

	return summary
}
