package model

// QueryCategory classifies what kind of retrieval a query asks for
type QueryCategory string

const (
	CategoryProfile       QueryCategory = "profile"
	CategoryTimeSeries    QueryCategory = "time_series"
	CategorySpatial       QueryCategory = "spatial"
	CategoryFloatSpecific QueryCategory = "float_specific"
	CategoryGeneral       QueryCategory = "general"
)

// Measured parameter names used in QueryIntent.Parameters
const (
	ParamTemperature = "temperature"
	ParamSalinity    = "salinity"
	ParamPressure    = "pressure"
)

// Depth band values used in QueryIntent.DepthBand
const (
	DepthSurface = "surface"
	DepthDeep    = "deep"
	DepthProfile = "profile"
)

// QueryIntent is the structured descriptor of what a user's text is asking
// for, independent of the generated SQL syntax. Built once per request and
// never mutated afterwards.
type QueryIntent struct {
	Category   QueryCategory `json:"query_type"`
	Location   string        `json:"location,omitempty"`
	Parameters []string      `json:"parameters"`
	DepthBand  string        `json:"depth_range,omitempty"`
	Spatial    bool          `json:"spatial_query"`
}
