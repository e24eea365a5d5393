package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Swapnil565/FloatChat/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.RecordCount)
	assert.Equal(t, "2024-01-01", summary.DateRange.Earliest)
	assert.Equal(t, "2024-12-31", summary.DateRange.Latest)
	assert.Equal(t, model.GeographicBounds{North: 20, South: 18, East: 74, West: 71}, summary.GeographicBounds)
	assert.Equal(t, model.DepthRange{Surface: 0, Bottom: 2000}, summary.DepthRange)
	assert.Equal(t, model.ValueRange{Min: 2, Max: 30, Mean: 15}, summary.TemperatureRange)
	assert.Equal(t, model.ValueRange{Min: 33, Max: 37, Mean: 35}, summary.SalinityRange)
}

func TestSummarize_ComputesRanges(t *testing.T) {
	measurements := []model.Measurement{
		{
			Latitude: 19.0, Longitude: 72.8, PressureDbar: 10,
			Temperature: 28, Salinity: floatPtr(35.0),
			Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Latitude: 19.5, Longitude: 73.2, PressureDbar: 1500,
			Temperature: 4, Salinity: floatPtr(34.6),
			Timestamp: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	summary := Summarize(measurements)

	assert.Equal(t, 2, summary.RecordCount)
	assert.Equal(t, "2024-03-01", summary.DateRange.Earliest)
	assert.Equal(t, "2024-06-15", summary.DateRange.Latest)
	assert.Equal(t, 19.5, summary.GeographicBounds.North)
	assert.Equal(t, 19.0, summary.GeographicBounds.South)
	assert.Equal(t, 73.2, summary.GeographicBounds.East)
	assert.Equal(t, 72.8, summary.GeographicBounds.West)
	assert.Equal(t, 10.0, summary.DepthRange.Surface)
	assert.Equal(t, 1500.0, summary.DepthRange.Bottom)
	assert.Equal(t, 4.0, summary.TemperatureRange.Min)
	assert.Equal(t, 28.0, summary.TemperatureRange.Max)
	assert.InDelta(t, 16.0, summary.TemperatureRange.Mean, 1e-9)
	assert.InDelta(t, 34.8, summary.SalinityRange.Mean, 1e-9)
}

func TestSummarize_MissingSalinityFallsBack(t *testing.T) {
	measurements := []model.Measurement{
		{Latitude: 19, Longitude: 72, PressureDbar: 5, Temperature: 27,
			Timestamp: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{Latitude: 19, Longitude: 72, PressureDbar: 100, Temperature: 20,
			Timestamp: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)},
	}

	summary := Summarize(measurements)

	// No row carried salinity: the range keeps plausible defaults instead
	// of collapsing to zeros.
	assert.Equal(t, model.ValueRange{Min: 33, Max: 37, Mean: 35}, summary.SalinityRange)
	assert.Equal(t, 20.0, summary.TemperatureRange.Min)
}

func TestSummarize_PartialSalinityIgnoresMissingRows(t *testing.T) {
	measurements := []model.Measurement{
		{Temperature: 25, Salinity: floatPtr(36.0)},
		{Temperature: 24},
		{Temperature: 23, Salinity: floatPtr(34.0)},
	}

	summary := Summarize(measurements)

	assert.Equal(t, 34.0, summary.SalinityRange.Min)
	assert.Equal(t, 36.0, summary.SalinityRange.Max)
	assert.InDelta(t, 35.0, summary.SalinityRange.Mean, 1e-9)
}

func TestSummarize_ZeroTimestampsKeepDefaultDates(t *testing.T) {
	summary := Summarize([]model.Measurement{{Temperature: 20}})

	assert.Equal(t, "2024-01-01", summary.DateRange.Earliest)
	assert.Equal(t, "2024-12-31", summary.DateRange.Latest)
}
