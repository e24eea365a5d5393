package model

// ChatRequest is the inbound payload for POST /api/v1/chat
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// DateRange bounds the timestamps seen in a result set
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// GeographicBounds is the bounding box of a result set
type GeographicBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// DepthRange bounds the pressure column of a result set
type DepthRange struct {
	Surface float64 `json:"surface"`
	Bottom  float64 `json:"bottom"`
}

// ValueRange summarizes a numeric column
type ValueRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// DataSummary is a bounded reduction of a retrieved result set. It is always
// fully populated: any range that cannot be computed from the data carries a
// documented fallback instead.
type DataSummary struct {
	RecordCount      int              `json:"total_records"`
	DateRange        DateRange        `json:"date_range"`
	GeographicBounds GeographicBounds `json:"geographic_bounds"`
	DepthRange       DepthRange       `json:"depth_range"`
	TemperatureRange ValueRange       `json:"temp_range"`
	SalinityRange    ValueRange       `json:"salinity_range"`
}

// PipelineResponse is the single response envelope of the pipeline. It is
// assembled once per request and never mutated after construction.
type PipelineResponse struct {
	Success           bool          `json:"success"`
	SessionID         string        `json:"session_id"`
	UserQuery         string        `json:"user_query"`
	ChatResponse      string        `json:"chat_response"`
	Charts            []ChartResult `json:"plots"`
	ChartScores       ChartScores   `json:"classification_scores,omitempty"`
	ChosenCharts      []ChartType   `json:"chosen_plots,omitempty"`
	DataSummary       *DataSummary  `json:"data_summary,omitempty"`
	QueryIntent       *QueryIntent  `json:"query_intent,omitempty"`
	SQLQuery          string        `json:"sql_query,omitempty"`
	Suggestions       []string      `json:"suggestions,omitempty"`
	Error             string        `json:"error,omitempty"`
	ProcessingSeconds float64       `json:"processing_time_seconds"`
	Timestamp         string        `json:"timestamp"`
}
