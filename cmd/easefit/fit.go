package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/folio/motion"
)

// fitSamples is the number of progress samples compared per evaluation.
const fitSamples = 101

// FitResult is the best cubic-bezier approximation of one curve.
type FitResult struct {
	Ease   string  `csv:"ease"`
	X1     float64 `csv:"x1"`
	Y1     float64 `csv:"y1"`
	X2     float64 `csv:"x2"`
	Y2     float64 `csv:"y2"`
	RMS    float64 `csv:"rms"`
	MaxErr float64 `csv:"max_err"`
	Evals  int     `csv:"evals"`
}

// Bezier returns the fitted curve in ParseEasing syntax.
func (r FitResult) Bezier() string {
	return fmt.Sprintf("cubic-bezier(%.4f, %.4f, %.4f, %.4f)", r.X1, r.Y1, r.X2, r.Y2)
}

// curveError compares candidate against target over evenly spaced samples
// and returns the RMS and worst-case error.
func curveError(target, candidate motion.Easing) (rms, worst float64) {
	var sum float64
	for i := 0; i < fitSamples; i++ {
		t := float32(i) / (fitSamples - 1)
		d := math.Abs(float64(target(t) - candidate(t)))
		sum += d * d
		worst = max(worst, d)
	}
	return math.Sqrt(sum / fitSamples), worst
}

// Fitter searches control points for a target easing.
type Fitter struct {
	Params   *ParamVector
	MaxEvals int
	Method   string // "nelder-mead" or "cmaes"
}

// Fit approximates the named easing with a cubic bezier.
func (f *Fitter) Fit(ease string) (FitResult, error) {
	target, err := motion.ParseEasing(ease)
	if err != nil {
		return FitResult{}, err
	}
	pv := f.Params

	best := FitResult{Ease: ease, RMS: math.Inf(1)}
	evals := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := pv.Clamp(pv.Denormalize(x))
			candidate := motion.CubicBezier(float32(raw[0]), float32(raw[1]), float32(raw[2]), float32(raw[3]))
			rms, worst := curveError(target, candidate)
			evals++
			if rms < best.RMS {
				best.X1, best.Y1, best.X2, best.Y2 = raw[0], raw[1], raw[2], raw[3]
				best.RMS, best.MaxErr = rms, worst
			}
			// Penalize leaving the normalized box so the search stays bounded
			var penalty float64
			for _, v := range x {
				if v < 0 {
					penalty += v * v
				} else if v > 1 {
					penalty += (v - 1) * (v - 1)
				}
			}
			return rms + penalty
		},
	}

	settings := &optimize.Settings{FuncEvaluations: f.MaxEvals}
	var method optimize.Method = &optimize.NelderMead{}
	if f.Method == "cmaes" {
		method = &optimize.CmaEsChol{InitStepSize: 0.2}
	}

	// The evaluation limit ends most runs; the best point is tracked above
	_, _ = optimize.Minimize(problem, pv.Normalize(pv.DefaultVector()), settings, method)
	best.Evals = evals
	if math.IsInf(best.RMS, 1) {
		return best, fmt.Errorf("fitting %q: no evaluations", ease)
	}
	return best, nil
}
