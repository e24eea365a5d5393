package render

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swapnil565/FloatChat/internal/model"
	"github.com/Swapnil565/FloatChat/internal/service"
)

func testData(n int) []model.Measurement {
	sal := 35.2
	out := make([]model.Measurement, n)
	for i := range out {
		out[i] = model.Measurement{
			FloatID:      5905530,
			Latitude:     18.5 + float64(i%10)*0.05,
			Longitude:    72.0 + float64(i%7)*0.1,
			PressureDbar: float64(i % 200 * 10),
			Temperature:  27 - float64(i%200)*0.1,
			Salinity:     &sal,
			Timestamp:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * 6 * time.Hour),
		}
	}
	return out
}

func TestRender_AllChartTypes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewEChartsRenderer(dir)
	require.NoError(t, err)

	measurements := testData(100)
	summary := service.Summarize(measurements)

	for _, chartType := range model.AllChartTypes {
		t.Run(string(chartType), func(t *testing.T) {
			result := r.Render(chartType, measurements, summary)

			assert.Equal(t, chartType, result.ChartType)
			assert.Empty(t, result.Error)
			assert.NotEmpty(t, result.Description)
			require.NotEmpty(t, result.ArtifactPath)

			// Artifact must be a valid ECharts option document
			data, err := os.ReadFile(result.ArtifactPath)
			require.NoError(t, err)

			var option map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &option))
			assert.Contains(t, option, "series")
		})
	}
}

func TestRender_UnknownChartType(t *testing.T) {
	r, err := NewEChartsRenderer(t.TempDir())
	require.NoError(t, err)

	result := r.Render(model.ChartType("sunburst"), testData(10), model.DataSummary{})

	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.ArtifactPath)
}

func TestRender_EmptyMeasurements(t *testing.T) {
	r, err := NewEChartsRenderer(t.TempDir())
	require.NoError(t, err)

	summary := service.Summarize(nil)
	for _, chartType := range model.AllChartTypes {
		result := r.Render(chartType, nil, summary)
		assert.Empty(t, result.Error, "chart %s should render with no data", chartType)
	}
}

func TestSample_CapsLargeSets(t *testing.T) {
	measurements := testData(5000)

	sampled := sample(measurements, scatterSampleLimit)
	assert.Len(t, sampled, scatterSampleLimit)

	// Small sets pass through untouched
	small := testData(10)
	assert.Len(t, sample(small, scatterSampleLimit), 10)
}

func TestZoomForBounds(t *testing.T) {
	tight := model.GeographicBounds{North: 19.1, South: 19.0, East: 72.9, West: 72.8}
	wide := model.GeographicBounds{North: 30, South: -10, East: 100, West: 50}

	assert.Equal(t, 8, zoomForBounds(tight))
	assert.Equal(t, 2, zoomForBounds(wide))
}
