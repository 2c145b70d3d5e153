package stats

import (
	"testing"

	"github.com/skyflipper/engine/internal/store"
)

func TestTrimmedMean(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		trim   float64
		want   float64
	}{
		{"empty", nil, 0.4, 0},
		{"empty any fraction", []float64{}, 0, 0},
		{"single no trim", []float64{10}, 0, 10},
		{"ten values trim tenth", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 5.5},
		{"unsorted input", []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, 0.1, 5.5},
		{"trim exhausts sample", []float64{1, 2}, 0.5, 0},
		{"fraction floors per side", []float64{1, 2, 3, 4, 5}, 0.4, 3},
	}

	for _, tc := range cases {
		if got := TrimmedMean(tc.values, tc.trim); got != tc.want {
			t.Errorf("%s: TrimmedMean(%v, %v) = %v, want %v", tc.name, tc.values, tc.trim, got, tc.want)
		}
	}
}

func TestVolumeAggregates(t *testing.T) {
	samples := []store.PriceSample{
		{Volume: 100},
		{Volume: 250},
		{Volume: 50},
	}

	if got := TotalVolume(samples); got != 400 {
		t.Errorf("TotalVolume = %v, want 400", got)
	}
	if got := AverageVolume(samples); got != 400.0/3.0 {
		t.Errorf("AverageVolume = %v, want %v", got, 400.0/3.0)
	}

	if got := TotalVolume(nil); got != 0 {
		t.Errorf("TotalVolume(nil) = %v, want 0", got)
	}
	if got := AverageVolume(nil); got != 0 {
		t.Errorf("AverageVolume(nil) = %v, want 0", got)
	}
}
