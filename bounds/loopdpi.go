// Package bounds holds the closed-form upper limits on bits per attempt that
// empirical heralded gains are checked against. Every calculator is a pure
// function of its numeric arguments.
package bounds

import (
	"fmt"
	"math"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/channel"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// ErrInvalidParameter is shared with the trial generator so callers can test
// any engine boundary error with a single errors.Is.
var ErrInvalidParameter = trial.ErrInvalidParameter

// LoopDPI returns -log2(max(eps, pSucc)), the data-processing limit on bits
// per attempt for a heralded channel with success probability pSucc.
func LoopDPI(pSucc float64) float64 {
	return -math.Log2(math.Max(channel.Epsilon, pSucc))
}

// TemporalAdvantage is the ideal gain p * I_BSC(noise) of a heralded channel.
func TemporalAdvantage(pSucc, noise float64) float64 {
	return pSucc * channel.MutualInformationBSC(noise)
}

func checkProb(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: %s must be in [0,1], got %g", ErrInvalidParameter, name, v)
	}
	return nil
}

func checkSuccess(v float64) error {
	if !(v > 0 && v <= 1) {
		return fmt.Errorf("%w: p_succ must be in (0,1], got %g", ErrInvalidParameter, v)
	}
	return nil
}
