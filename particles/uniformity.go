package particles

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LatitudeBands counts points per latitude band. Bands are equal-height
// slices along z, which (Archimedes' hat-box theorem) have equal surface
// area, so a uniform surface distribution fills them equally.
func LatitudeBands(buf Buffer, bands int) []float64 {
	counts := make([]float64, bands)
	n := buf.Len()
	if n == 0 || bands <= 0 {
		return counts
	}

	radius := pointRadius(buf, 0)
	for i := 0; i < n; i++ {
		z := float64(buf[3*i+2])
		// Map z in [-r, r] to [0, bands)
		idx := int((z + radius) / (2 * radius) * float64(bands))
		if idx < 0 {
			idx = 0
		}
		if idx >= bands {
			idx = bands - 1
		}
		counts[idx]++
	}
	return counts
}

// BandUniformity returns the chi-square statistic of the latitude band
// counts against a uniform expectation, and its p-value.
func BandUniformity(buf Buffer, bands int) (chi2, pValue float64) {
	obs := LatitudeBands(buf, bands)
	if bands < 2 || buf.Len() == 0 {
		return 0, 1
	}

	exp := make([]float64, bands)
	per := float64(buf.Len()) / float64(bands)
	for i := range exp {
		exp[i] = per
	}

	chi2 = stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(bands - 1)}
	return chi2, dist.Survival(chi2)
}

// RadiusSpread returns the mean and standard deviation of point distances
// from the origin.
func RadiusSpread(buf Buffer) (mean, std float64) {
	n := buf.Len()
	if n == 0 {
		return 0, 0
	}
	dists := make([]float64, n)
	for i := range dists {
		dists[i] = pointRadius(buf, i)
	}
	return stat.MeanStdDev(dists, nil)
}

func pointRadius(buf Buffer, i int) float64 {
	x, y, z := float64(buf[3*i]), float64(buf[3*i+1]), float64(buf[3*i+2])
	return math.Sqrt(x*x + y*y + z*z)
}
