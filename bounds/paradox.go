package bounds

import (
	"fmt"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/channel"
)

// Reweight removes the paradoxical fraction q of the success mass from the
// history prior [1-p, p] and returns the renormalised [fail, success].
func Reweight(pSucc, q float64) [2]float64 {
	prior := [2]float64{1 - pSucc, pSucc}
	removed := q * prior[1]
	star := [2]float64{prior[0] + removed, prior[1] - removed}
	sum := star[0] + star[1]
	return [2]float64{star[0] / sum, star[1] / sum}
}

// ParadoxTax returns the entropy debt KL(prior || reweighted) in bits, in
// units where kT = 1. q == 0 is exactly zero.
func ParadoxTax(pSucc, q float64) (float64, error) {
	if err := checkProb("p_succ", pSucc); err != nil {
		return 0, err
	}
	if !(q >= 0 && q < 1) {
		return 0, fmt.Errorf("%w: paradox fraction must be in [0,1), got %g", ErrInvalidParameter, q)
	}
	if q == 0 {
		return 0, nil
	}
	prior := [2]float64{1 - pSucc, pSucc}
	return channel.KLDivergenceBinary(prior, Reweight(pSucc, q)), nil
}
