package model

// ChartType identifies one of the supported visualization kinds
type ChartType string

const (
	ChartProfile      ChartType = "profile"
	ChartTimeSeries   ChartType = "time_series"
	ChartMap          ChartType = "map"
	ChartTSDiagram    ChartType = "ts_diagram"
	Chart3DScatter    ChartType = "3d_scatter"
	ChartCrossSection ChartType = "cross_section"
)

// AllChartTypes is the closed set of chart types the classifier scores
var AllChartTypes = []ChartType{
	ChartProfile,
	ChartTimeSeries,
	ChartMap,
	ChartTSDiagram,
	Chart3DScatter,
	ChartCrossSection,
}

// ChartScores maps every chart type to a confidence in [0,1].
// Every key in AllChartTypes is present, even when zero.
type ChartScores map[ChartType]float64

// NewChartScores returns a score set with all chart types initialized to zero
func NewChartScores() ChartScores {
	scores := make(ChartScores, len(AllChartTypes))
	for _, t := range AllChartTypes {
		scores[t] = 0
	}
	return scores
}

// Raise sets the score for a chart type if the new value is higher
func (s ChartScores) Raise(t ChartType, score float64) {
	if score > s[t] {
		s[t] = score
	}
}

// Max returns the highest score across all chart types
func (s ChartScores) Max() float64 {
	max := 0.0
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}

// ChartResult represents the outcome of rendering a single chart
type ChartResult struct {
	ChartType    ChartType `json:"chart_type"`
	Description  string    `json:"description,omitempty"`
	ArtifactPath string    `json:"artifact_path,omitempty"`
	Error        string    `json:"error,omitempty"`
}
