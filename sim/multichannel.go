package sim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/bounds"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// MultiParams configure a run of m parallel heralded channels.
type MultiParams struct {
	Trials         int
	Channels       int
	PSucc          float64
	BitsPerSuccess float64 // information credited to each heralded channel
	Seed           uint64
}

// DefaultMultiParams mirrors the network reference: p 0.05, 0.9 bits per
// success, 100000 trials.
func DefaultMultiParams(m int) MultiParams {
	return MultiParams{
		Trials:         100000,
		Channels:       m,
		PSucc:          0.05,
		BitsPerSuccess: 0.9,
		Seed:           321,
	}
}

// MultiResult is the record of a multi-channel run.
type MultiResult struct {
	Channels       int     `json:"channels" yaml:"channels"`
	PSucc          float64 `json:"p_succ" yaml:"p_succ"`
	Trials         int     `json:"trials" yaml:"trials"`
	Seed           uint64  `json:"seed" yaml:"seed"`
	AnySuccessRate float64 `json:"any_success_rate" yaml:"any_success_rate"`
	MeanSuccesses  float64 `json:"mean_successes" yaml:"mean_successes"`
	GainBits       float64 `json:"gain_bits_per_attempt" yaml:"gain_bits_per_attempt"`
	NaiveBoundBits float64 `json:"cutset_naive_bits" yaml:"cutset_naive_bits"`
	CorrectionBits float64 `json:"interference_correction_bits" yaml:"interference_correction_bits"`
	BoundBits      float64 `json:"network_bound_bits" yaml:"network_bound_bits"`
}

// Validate checks the multi-channel parameters.
func (p MultiParams) Validate() error {
	if p.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", trial.ErrInvalidParameter, p.Trials)
	}
	if p.Channels <= 0 {
		return fmt.Errorf("%w: channel count must be positive, got %d", trial.ErrInvalidParameter, p.Channels)
	}
	if !(p.PSucc > 0 && p.PSucc <= 1) {
		return fmt.Errorf("%w: p_succ must be in (0,1], got %g", trial.ErrInvalidParameter, p.PSucc)
	}
	if !(p.BitsPerSuccess >= 0 && p.BitsPerSuccess <= 1) {
		return fmt.Errorf("%w: bits per success must be in [0,1], got %g", trial.ErrInvalidParameter, p.BitsPerSuccess)
	}
	return nil
}

// SimulateMultiChannel draws a trials x m success matrix and credits
// BitsPerSuccess for every heralded channel in a trial.
func SimulateMultiChannel(p MultiParams) (MultiResult, error) {
	if err := p.Validate(); err != nil {
		return MultiResult{}, err
	}
	cut, err := bounds.CutSet(p.Channels, p.PSucc)
	if err != nil {
		return MultiResult{}, err
	}

	herald := distuv.Bernoulli{P: p.PSucc, Src: trial.NewSource(p.Seed)}
	successes := mat.NewDense(p.Trials, p.Channels, nil)
	for i := 0; i < p.Trials; i++ {
		for j := 0; j < p.Channels; j++ {
			successes.Set(i, j, herald.Rand())
		}
	}

	perTrial := make([]float64, p.Trials)
	anySuccess := make([]float64, p.Trials)
	for i := range perTrial {
		perTrial[i] = floats.Sum(successes.RawRowView(i))
		if perTrial[i] > 0 {
			anySuccess[i] = 1
		}
	}
	mean := stat.Mean(perTrial, nil)

	return MultiResult{
		Channels:       p.Channels,
		PSucc:          p.PSucc,
		Trials:         p.Trials,
		Seed:           p.Seed,
		AnySuccessRate: stat.Mean(anySuccess, nil),
		MeanSuccesses:  mean,
		GainBits:       mean * p.BitsPerSuccess,
		NaiveBoundBits: cut.Naive,
		CorrectionBits: cut.Correction,
		BoundBits:      cut.Bound,
	}, nil
}
