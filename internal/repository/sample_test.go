package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMeasurements(t *testing.T) {
	measurements := SampleMeasurements()
	require.Len(t, measurements, 500)

	floatIDs := map[int64]bool{}
	for _, m := range measurements {
		assert.GreaterOrEqual(t, m.PressureDbar, 0.0)
		assert.LessOrEqual(t, m.PressureDbar, 2000.0)
		assert.GreaterOrEqual(t, m.Temperature, 2.0)
		assert.LessOrEqual(t, m.Temperature, 30.0)
		require.NotNil(t, m.Salinity)
		assert.GreaterOrEqual(t, *m.Salinity, 32.0)
		assert.LessOrEqual(t, *m.Salinity, 37.0)
		assert.False(t, m.Timestamp.IsZero())
		floatIDs[m.FloatID] = true
	}

	// Data spreads across the known floats
	assert.Len(t, floatIDs, 3)
}

func TestSampleMeasurements_Deterministic(t *testing.T) {
	a := SampleMeasurements()
	b := SampleMeasurements()

	require.Equal(t, len(a), len(b))
	assert.Equal(t, a[0].Temperature, b[0].Temperature)
	assert.Equal(t, a[250].PressureDbar, b[250].PressureDbar)
	assert.Equal(t, a[499].Latitude, b[499].Latitude)
}
