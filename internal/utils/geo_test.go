package utils

import (
	"testing"
)

func TestHaversine(t *testing.T) {
	// Same point
	if d := Haversine(19.076, 72.8777, 19.076, 72.8777); d != 0 {
		t.Errorf("Haversine() same point = %v, want 0", d)
	}

	// Mumbai to Chennai, roughly 1030 km great-circle
	d := Haversine(19.076, 72.8777, 13.0827, 80.2707)
	if d < 1000 || d > 1070 {
		t.Errorf("Haversine() Mumbai-Chennai = %v km, want ~1030", d)
	}

	// Symmetric
	if d2 := Haversine(13.0827, 80.2707, 19.076, 72.8777); d2 != d {
		t.Errorf("Haversine() not symmetric: %v vs %v", d, d2)
	}
}
