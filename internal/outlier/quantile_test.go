package outlier

import (
	"math"
	"testing"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		q    float64
		want float64
	}{
		{"exact order statistic", []float64{1, 2, 3, 4, 100}, 0.25, 2},
		{"upper quartile", []float64{1, 2, 3, 4, 100}, 0.75, 4},
		{"between", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"single", []float64{7}, 0.75, 7},
		{"min", []float64{1, 9}, 0, 1},
		{"max", []float64{1, 9}, 1, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantile(tt.in, tt.q); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("quantile(%v, %v) = %v, want %v", tt.in, tt.q, got, tt.want)
			}
		})
	}
	if !math.IsNaN(quantile(nil, 0.5)) {
		t.Fatalf("empty input should give NaN")
	}
}

func TestQuartilesSkipNaN(t *testing.T) {
	q1, q3 := quartiles([]float64{100, math.NaN(), 4, 1, 3, 2})
	if q1 != 2 || q3 != 4 {
		t.Fatalf("quartiles = %v, %v", q1, q3)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		d    int
		want float64
	}{
		{16.666666, 2, 16.67},
		{-0.625, 2, -0.62},
		{2.675, 2, 2.67}, // 2.675 is stored just below the midpoint
		{20, 2, 20},
		{7.123456789, 4, 7.1235},
		{1.5, 0, 2},
	}
	for _, tt := range tests {
		if got := round(tt.in, tt.d); got != tt.want {
			t.Errorf("round(%v, %d) = %v, want %v", tt.in, tt.d, got, tt.want)
		}
	}
	if !math.IsInf(round(math.Inf(1), 2), 1) {
		t.Errorf("round(+Inf) should stay +Inf")
	}
}
