package model

import "time"

// Measurement is a single Argo float observation row
type Measurement struct {
	FloatID      int64     `db:"float_id" json:"float_id"`
	Latitude     float64   `db:"latitude" json:"latitude"`
	Longitude    float64   `db:"longitude" json:"longitude"`
	PressureDbar float64   `db:"pressure_dbar" json:"pressure_dbar"`
	Temperature  float64   `db:"temperature_celsius" json:"temperature_celsius"`
	Salinity     *float64  `db:"salinity_psu" json:"salinity_psu,omitempty"`
	Timestamp    time.Time `db:"date_time" json:"date_time"`
}

// QueryLog records one processed query for the query_logs table
type QueryLog struct {
	SessionID         string
	Query             string
	SQLQuery          string
	Intent            QueryIntent
	ChosenCharts      []ChartType
	RecordCount       int
	ProcessingSeconds float64
	Embedding         []float32
}
