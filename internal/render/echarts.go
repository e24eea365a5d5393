package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Swapnil565/FloatChat/internal/model"
	"github.com/Swapnil565/FloatChat/internal/utils"
)

var chartDescriptions = map[model.ChartType]string{
	model.ChartProfile:      "Vertical profile showing how measurements change with depth",
	model.ChartTimeSeries:   "Time series of measurements across the sampled period",
	model.ChartMap:          "Geographic distribution of Argo float measurements",
	model.ChartTSDiagram:    "Temperature-salinity diagram for water mass analysis",
	model.Chart3DScatter:    "Interactive 3D view of temperature across location and depth",
	model.ChartCrossSection: "Temperature cross-section along the sampled transect",
}

// scatterSampleLimit caps point-cloud charts so the configs stay renderable
// in a browser.
const scatterSampleLimit = 1000

// EChartsRenderer builds ECharts option documents for each chart type and
// writes them as JSON artifacts into the plots directory.
type EChartsRenderer struct {
	dir string
}

func NewEChartsRenderer(dir string) (*EChartsRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plots directory: %w", err)
	}
	return &EChartsRenderer{dir: dir}, nil
}

// Render builds the chart config and persists it. A failure is reported in
// the result rather than returned, so callers can keep rendering the rest.
func (r *EChartsRenderer) Render(chartType model.ChartType, measurements []model.Measurement, summary model.DataSummary) model.ChartResult {
	result := model.ChartResult{
		ChartType:   chartType,
		Description: chartDescriptions[chartType],
	}

	var option map[string]interface{}
	switch chartType {
	case model.ChartProfile:
		option = r.profileOption(measurements)
	case model.ChartTimeSeries:
		option = r.timeSeriesOption(measurements)
	case model.ChartMap:
		option = r.mapOption(measurements, summary)
	case model.ChartTSDiagram:
		option = r.tsDiagramOption(measurements)
	case model.Chart3DScatter:
		option = r.scatter3DOption(measurements)
	case model.ChartCrossSection:
		option = r.crossSectionOption(measurements)
	default:
		result.Error = fmt.Sprintf("unknown chart type %q", chartType)
		return result
	}

	path, err := r.writeArtifact(chartType, option)
	if err != nil {
		logrus.Errorf("Failed to write %s artifact: %v", chartType, err)
		result.Error = err.Error()
		return result
	}

	result.ArtifactPath = path
	return result
}

func (r *EChartsRenderer) writeArtifact(chartType model.ChartType, option map[string]interface{}) (string, error) {
	data, err := json.Marshal(option)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chart config: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", chartType, time.Now().UTC().Format("20060102_150405.000"))
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write chart file: %w", err)
	}
	return path, nil
}

// profileOption plots temperature against pressure with depth increasing
// downward, the conventional oceanographic orientation.
func (r *EChartsRenderer) profileOption(measurements []model.Measurement) map[string]interface{} {
	sorted := make([]model.Measurement, len(measurements))
	copy(sorted, measurements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PressureDbar < sorted[j].PressureDbar
	})

	points := make([][2]float64, len(sorted))
	for i, m := range sorted {
		points[i] = [2]float64{round1(m.Temperature), round1(m.PressureDbar)}
	}

	return map[string]interface{}{
		"title":   titleStyle("Temperature Profile"),
		"tooltip": map[string]interface{}{"trigger": "axis"},
		"xAxis": map[string]interface{}{
			"type": "value",
			"name": "Temperature (°C)",
		},
		"yAxis": map[string]interface{}{
			"type":    "value",
			"name":    "Pressure (dbar)",
			"inverse": true,
		},
		"series": []map[string]interface{}{{
			"type":       "line",
			"data":       points,
			"showSymbol": false,
			"smooth":     true,
		}},
	}
}

func (r *EChartsRenderer) timeSeriesOption(measurements []model.Measurement) map[string]interface{} {
	sorted := make([]model.Measurement, len(measurements))
	copy(sorted, measurements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	points := make([][2]interface{}, len(sorted))
	for i, m := range sorted {
		points[i] = [2]interface{}{m.Timestamp.Format(time.RFC3339), round1(m.Temperature)}
	}

	return map[string]interface{}{
		"title":   titleStyle("Temperature Over Time"),
		"tooltip": map[string]interface{}{"trigger": "axis"},
		"xAxis":   map[string]interface{}{"type": "time"},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": "Temperature (°C)",
		},
		"series": []map[string]interface{}{{
			"type":       "line",
			"data":       points,
			"showSymbol": false,
		}},
	}
}

func (r *EChartsRenderer) mapOption(measurements []model.Measurement, summary model.DataSummary) map[string]interface{} {
	sampled := sample(measurements, scatterSampleLimit)
	points := make([][3]float64, len(sampled))
	for i, m := range sampled {
		points[i] = [3]float64{round3(m.Longitude), round3(m.Latitude), round1(m.Temperature)}
	}

	return map[string]interface{}{
		"title":   titleStyle("Measurement Locations"),
		"tooltip": map[string]interface{}{"trigger": "item"},
		"geo": map[string]interface{}{
			"map":    "world",
			"roam":   true,
			"center": []float64{round3(center(summary.GeographicBounds.West, summary.GeographicBounds.East)), round3(center(summary.GeographicBounds.South, summary.GeographicBounds.North))},
			"zoom":   zoomForBounds(summary.GeographicBounds),
			"silent": true,
			"itemStyle": map[string]interface{}{
				"areaColor":   "#e0e6f1",
				"borderColor": "#aeb9cc",
			},
		},
		"visualMap": map[string]interface{}{
			"min":       summary.TemperatureRange.Min,
			"max":       summary.TemperatureRange.Max,
			"dimension": 2,
			"inRange":   map[string]interface{}{"color": []string{"#313695", "#ffffbf", "#a50026"}},
			"text":      []string{"Warm", "Cold"},
		},
		"series": []map[string]interface{}{{
			"type":             "scatter",
			"coordinateSystem": "geo",
			"data":             points,
			"symbolSize":       6,
		}},
	}
}

// tsDiagramOption plots salinity against temperature colored by depth. Rows
// without salinity are left out.
func (r *EChartsRenderer) tsDiagramOption(measurements []model.Measurement) map[string]interface{} {
	var points [][3]float64
	maxDepth := 0.0
	for _, m := range sample(measurements, scatterSampleLimit) {
		if m.Salinity == nil {
			continue
		}
		points = append(points, [3]float64{round2(*m.Salinity), round1(m.Temperature), round1(m.PressureDbar)})
		if m.PressureDbar > maxDepth {
			maxDepth = m.PressureDbar
		}
	}

	return map[string]interface{}{
		"title":   titleStyle("T-S Diagram"),
		"tooltip": map[string]interface{}{"trigger": "item"},
		"xAxis": map[string]interface{}{
			"type":  "value",
			"name":  "Salinity (PSU)",
			"scale": true,
		},
		"yAxis": map[string]interface{}{
			"type":  "value",
			"name":  "Temperature (°C)",
			"scale": true,
		},
		"visualMap": map[string]interface{}{
			"min":       0,
			"max":       maxDepth,
			"dimension": 2,
			"inRange":   map[string]interface{}{"color": []string{"#a50026", "#ffffbf", "#313695"}},
			"text":      []string{"Deep", "Surface"},
		},
		"series": []map[string]interface{}{{
			"type":       "scatter",
			"data":       points,
			"symbolSize": 5,
		}},
	}
}

func (r *EChartsRenderer) scatter3DOption(measurements []model.Measurement) map[string]interface{} {
	sampled := sample(measurements, scatterSampleLimit)
	points := make([][4]float64, len(sampled))
	for i, m := range sampled {
		points[i] = [4]float64{round3(m.Longitude), round3(m.Latitude), round1(m.PressureDbar), round1(m.Temperature)}
	}

	return map[string]interface{}{
		"title":   titleStyle("3D Ocean View"),
		"tooltip": map[string]interface{}{},
		"grid3D":  map[string]interface{}{"viewControl": map[string]interface{}{"autoRotate": true}},
		"xAxis3D": map[string]interface{}{"type": "value", "name": "Longitude"},
		"yAxis3D": map[string]interface{}{"type": "value", "name": "Latitude"},
		"zAxis3D": map[string]interface{}{"type": "value", "name": "Pressure (dbar)", "inverse": true},
		"visualMap": map[string]interface{}{
			"dimension": 3,
			"min":       minTemperature(sampled),
			"max":       maxTemperature(sampled),
			"inRange":   map[string]interface{}{"color": []string{"#313695", "#ffffbf", "#a50026"}},
		},
		"series": []map[string]interface{}{{
			"type":       "scatter3D",
			"data":       points,
			"symbolSize": 4,
		}},
	}
}

// crossSectionOption shows temperature along the latitude span of the data
// against depth, approximating a meridional transect.
func (r *EChartsRenderer) crossSectionOption(measurements []model.Measurement) map[string]interface{} {
	sampled := sample(measurements, scatterSampleLimit)
	points := make([][3]float64, len(sampled))
	for i, m := range sampled {
		points[i] = [3]float64{round3(m.Latitude), round1(m.PressureDbar), round1(m.Temperature)}
	}

	return map[string]interface{}{
		"title":   titleStyle("Temperature Cross-Section"),
		"tooltip": map[string]interface{}{"trigger": "item"},
		"xAxis": map[string]interface{}{
			"type":  "value",
			"name":  "Latitude (°N)",
			"scale": true,
		},
		"yAxis": map[string]interface{}{
			"type":    "value",
			"name":    "Pressure (dbar)",
			"inverse": true,
		},
		"visualMap": map[string]interface{}{
			"dimension": 2,
			"min":       minTemperature(sampled),
			"max":       maxTemperature(sampled),
			"inRange":   map[string]interface{}{"color": []string{"#313695", "#ffffbf", "#a50026"}},
		},
		"series": []map[string]interface{}{{
			"type":       "scatter",
			"data":       points,
			"symbolSize": 6,
		}},
	}
}

// zoomForBounds picks a map zoom level from the diagonal extent of the data
func zoomForBounds(b model.GeographicBounds) int {
	diagonal := utils.Haversine(b.South, b.West, b.North, b.East)
	switch {
	case diagonal < 100:
		return 8
	case diagonal < 500:
		return 6
	case diagonal < 2000:
		return 4
	default:
		return 2
	}
}

func titleStyle(text string) map[string]interface{} {
	return map[string]interface{}{
		"text": text,
		"left": "center",
	}
}

// sample takes an evenly spaced subset when the data exceeds the limit
func sample(measurements []model.Measurement, limit int) []model.Measurement {
	if len(measurements) <= limit {
		return measurements
	}
	step := float64(len(measurements)) / float64(limit)
	out := make([]model.Measurement, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, measurements[int(float64(i)*step)])
	}
	return out
}

func minTemperature(measurements []model.Measurement) float64 {
	if len(measurements) == 0 {
		return 0
	}
	min := measurements[0].Temperature
	for _, m := range measurements {
		if m.Temperature < min {
			min = m.Temperature
		}
	}
	return min
}

func maxTemperature(measurements []model.Measurement) float64 {
	if len(measurements) == 0 {
		return 0
	}
	max := measurements[0].Temperature
	for _, m := range measurements {
		if m.Temperature > max {
			max = m.Temperature
		}
	}
	return max
}

func round1(v float64) float64 { return roundTo(v, 10) }
func round2(v float64) float64 { return roundTo(v, 100) }
func round3(v float64) float64 { return roundTo(v, 1000) }

func roundTo(v, scale float64) float64 {
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}

func center(a, b float64) float64 { return (a + b) / 2 }
