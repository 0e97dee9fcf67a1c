package ramp

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
)

// Relaxation describes the temperature trace after a ramp-down as
//
//	T(t) = Base + Amp * exp(-(t - t0) / Tau)
//
// with t0 the first timestamp of the fitted span.
type Relaxation struct {
	Base float64 // asymptotic temperature, K
	Amp  float64 // initial excess above Base, K
	Tau  float64 // time constant, s
}

// At evaluates the model at time t with origin t0.
func (r Relaxation) At(t, t0 float64) float64 {
	return r.Base + r.Amp*math.Exp(-(t-t0)/r.Tau)
}

// FitRelaxation fits the relaxation model to a temperature trace by
// Levenberg-Marquardt, starting from guess.
func FitRelaxation(t, temp []float64, guess Relaxation) (Relaxation, error) {
	if len(t) != len(temp) {
		return Relaxation{}, fmt.Errorf("fit relaxation: mismatched lengths %d and %d", len(t), len(temp))
	}
	if len(t) < 4 {
		return Relaxation{}, fmt.Errorf("fit relaxation: need at least 4 samples, have %d", len(t))
	}

	t0 := t[0]
	f := func(dst, params []float64) {
		base, amp, tau := params[0], params[1], params[2]
		for i := range t {
			dst[i] = base + amp*math.Exp(-(t[i]-t0)/tau) - temp[i]
		}
	}

	jacobian := lm.NumJac{Func: f}

	toBeSolved := lm.LMProblem{
		Dim:        3,
		Size:       len(t),
		Func:       f,
		Jac:        jacobian.Jac,
		InitParams: []float64{guess.Base, guess.Amp, guess.Tau},
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(toBeSolved, &lm.Settings{Iterations: 100, ObjectiveTol: 1e-16})
	if err != nil {
		return Relaxation{}, fmt.Errorf("fit relaxation: %w", err)
	}

	return Relaxation{
		Base: results.X[0],
		Amp:  results.X[1],
		Tau:  math.Abs(results.X[2]),
	}, nil
}
