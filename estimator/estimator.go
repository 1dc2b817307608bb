// Package estimator turns a heralded trial batch into bits of information.
package estimator

import (
	"fmt"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/channel"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// Estimate is the postselected summary of one batch.
type Estimate struct {
	Trials          int
	Successes       int
	SuccessRate     float64 // p_succ_eff
	ErrorRate       float64 // crossover rate on heralded trials
	ConditionalBits float64 // I(P;F | success)
	BitsPerAttempt  float64 // SuccessRate * ConditionalBits
}

// Degenerate reports whether no trial was heralded.
func (e Estimate) Degenerate() bool { return e.Successes == 0 }

// FromBatch postselects b on herald success and estimates the channel.
// A batch with no heralded trial yields zero information, not an error.
func FromBatch(b trial.Batch) (Estimate, error) {
	n := b.Len()
	if n == 0 {
		return Estimate{}, fmt.Errorf("%w: empty batch", trial.ErrInvalidParameter)
	}

	var successes, errs int
	for _, tr := range b.Trials {
		if !tr.Herald {
			continue
		}
		successes++
		if tr.Present != tr.Future {
			errs++
		}
	}

	est := Estimate{
		Trials:      n,
		Successes:   successes,
		SuccessRate: float64(successes) / float64(n),
	}
	if successes == 0 {
		return est, nil
	}
	est.ErrorRate = float64(errs) / float64(successes)
	est.ConditionalBits = channel.MutualInformationBSC(est.ErrorRate)
	est.BitsPerAttempt = est.SuccessRate * est.ConditionalBits
	return est, nil
}
