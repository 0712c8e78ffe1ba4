package telemetry

import (
	"math"
	"testing"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{5, 1, 4, 2, 3}, 0.0, 1.0},
		{"p100", []float64{5, 1, 4, 2, 3}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p90 of ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 0.9, 9.0},
		{"clamped above", []float64{1, 2, 3}, 1.5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.values, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestQuantileDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestComputeFrameStats(t *testing.T) {
	ms := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p50, p90, p99 := ComputeFrameStats(ms)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p50 != 5 || p90 != 9 || p99 != 10 {
		t.Errorf("quantiles = %v %v %v, want 5 9 10", p50, p90, p99)
	}
}

func TestComputeFrameStatsSmall(t *testing.T) {
	mean, std, p50, p90, p99 := ComputeFrameStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 || p99 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, p50, _, p99 = ComputeFrameStats([]float64{16.6})
	if mean != 16.6 || std != 0 || p50 != 16.6 || p99 != 16.6 {
		t.Errorf("single sample stats: %v %v %v %v", mean, std, p50, p99)
	}
}
