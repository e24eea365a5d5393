package repository

import (
	"math"
	"math/rand"
	"time"

	"github.com/Swapnil565/FloatChat/internal/model"
)

const sampleSize = 500

// Mumbai-region coordinates used as the center of the synthetic sample
const (
	sampleBaseLat = 19.0760
	sampleBaseLon = 72.8777
)

var sampleFloatIDs = []int64{5905529, 5905530, 5905531}

// SampleMeasurements builds a realistic synthetic Argo data set for
// demonstration when the database is unavailable. The generator is seeded
// with a fixed value, so repeated calls return identical data.
func SampleMeasurements() []model.Measurement {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	measurements := make([]model.Measurement, 0, sampleSize)
	for i := 0; i < sampleSize; i++ {
		pressure := clip(rng.ExpFloat64()*200, 0, 2000)

		// Warm at the surface, cooling roughly linearly with pressure
		temperature := clip(28-pressure*0.02+rng.NormFloat64(), 2, 30)
		salinity := clip(34.5+rng.NormFloat64()*0.5, 32, 37)

		measurements = append(measurements, model.Measurement{
			FloatID:      sampleFloatIDs[rng.Intn(len(sampleFloatIDs))],
			Latitude:     sampleBaseLat + rng.NormFloat64(),
			Longitude:    sampleBaseLon + rng.NormFloat64(),
			PressureDbar: pressure,
			Temperature:  temperature,
			Salinity:     &salinity,
			Timestamp:    start.Add(time.Duration(i) * 6 * time.Hour),
		})
	}

	return measurements
}

func clip(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}
