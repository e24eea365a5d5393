package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Swapnil565/FloatChat/internal/model"
)

func TestExtractIntent_Categories(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected model.QueryCategory
	}{
		{
			name:     "profile from ascending pressure order",
			sql:      "SELECT * FROM argo_floats ORDER BY pressure_dbar ASC LIMIT 500;",
			expected: model.CategoryProfile,
		},
		{
			name:     "descending pressure is not a profile",
			sql:      "SELECT * FROM argo_floats ORDER BY pressure_dbar DESC LIMIT 500;",
			expected: model.CategoryGeneral,
		},
		{
			name:     "time series from date ordering",
			sql:      "SELECT * FROM argo_floats ORDER BY date_time DESC LIMIT 1000;",
			expected: model.CategoryTimeSeries,
		},
		{
			name:     "spatial from distance predicate",
			sql:      "SELECT * FROM argo_floats WHERE ST_DWithin(location, ST_SetSRID(ST_Point(72.8, 19.0), 4326)::geography, 100000);",
			expected: model.CategorySpatial,
		},
		{
			name:     "float specific",
			sql:      "SELECT * FROM argo_floats WHERE float_id = 5905529;",
			expected: model.CategoryFloatSpecific,
		},
		{
			name:     "plain select is general",
			sql:      "SELECT * FROM argo_floats LIMIT 100;",
			expected: model.CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ExtractIntent("some query", tt.sql)
			assert.Equal(t, tt.expected, intent.Category)
			assert.Equal(t, tt.expected == model.CategorySpatial, intent.Spatial)
		})
	}
}

func TestExtractIntent_Location(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"temperature near bombay", "Mumbai"},
		{"salinity off madras coast", "Chennai"},
		{"data near calcutta", "Kolkata"},
		{"measurements around bengaluru", "Bangalore"},
		{"floats near kochi", "Kerala"},
		{"conditions off ahmedabad", "Gujarat"},
		{"arabian sea temperature", "Arabian Sea"},
		{"bay of bengal salinity", "Bay Of Bengal"},
		{"show me ocean temperatures", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent := ExtractIntent(tt.query, "SELECT * FROM argo_floats;")
			assert.Equal(t, tt.expected, intent.Location)
		})
	}
}

func TestExtractIntent_CityBeatsRegion(t *testing.T) {
	intent := ExtractIntent("mumbai in the arabian sea", "SELECT 1;")
	assert.Equal(t, "Mumbai", intent.Location)
}

func TestExtractIntent_Parameters(t *testing.T) {
	tests := []struct {
		query    string
		expected []string
	}{
		{"show temperature", []string{model.ParamTemperature}},
		{"salinity and temperature", []string{model.ParamTemperature, model.ParamSalinity}},
		{"pressure readings", []string{model.ParamPressure}},
		{"depth structure", []string{model.ParamPressure}},
		// No explicit parameter defaults to temperature
		{"what is the ocean like", []string{model.ParamTemperature}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent := ExtractIntent(tt.query, "SELECT 1;")
			assert.Equal(t, tt.expected, intent.Parameters)
		})
	}
}

func TestExtractIntent_DepthBand(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"surface temperature", model.DepthSurface},
		{"deep water salinity", model.DepthDeep},
		{"temperature profile", model.DepthProfile},
		{"just temperature", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			intent := ExtractIntent(tt.query, "SELECT 1;")
			assert.Equal(t, tt.expected, intent.DepthBand)
		})
	}
}
