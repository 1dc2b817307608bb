// Package sim runs one heralded-channel experiment end to end: draw a batch,
// postselect it, and pair the empirical gain with its analytic bounds.
package sim

import (
	"fmt"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/bounds"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/estimator"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// Params are the inputs of a single run.
type Params struct {
	Trials       int
	PSucc        float64
	Noise        float64
	ReadoutError float64
	Mode         trial.Mode
	ParadoxFrac  float64
	Seed         uint64
}

// DefaultParams is a noiseless direct-herald run of 100000 trials at
// p_succ 0.1 with seed 42.
func DefaultParams() Params {
	return Params{
		Trials: 100000,
		PSucc:  0.1,
		Mode:   trial.ModeDirect,
		Seed:   42,
	}
}

func (p Params) trialParams() trial.Params {
	return trial.Params{
		Trials:       p.Trials,
		PSucc:        p.PSucc,
		Noise:        p.Noise,
		ReadoutError: p.ReadoutError,
		Mode:         p.Mode,
	}
}

// Validate checks the run parameters before any sampling happens.
func (p Params) Validate() error {
	if err := p.trialParams().Validate(); err != nil {
		return err
	}
	if !(p.ParadoxFrac >= 0 && p.ParadoxFrac < 1) {
		return fmt.Errorf("%w: paradox fraction must be in [0,1), got %g", trial.ErrInvalidParameter, p.ParadoxFrac)
	}
	return nil
}

// Result is the record of one run. It is built once and never mutated.
type Result struct {
	PSucc        float64    `json:"p_succ" yaml:"p_succ"`
	Noise        float64    `json:"noise" yaml:"noise"`
	ReadoutError float64    `json:"readout_error" yaml:"readout_error"`
	ParadoxFrac  float64    `json:"paradox_frac" yaml:"paradox_frac"`
	Trials       int        `json:"trials" yaml:"trials"`
	Seed         uint64     `json:"seed" yaml:"seed"`
	Mode         trial.Mode `json:"mode" yaml:"mode"`

	PSuccEff             float64 `json:"p_succ_eff" yaml:"p_succ_eff"`
	ErrorRate            float64 `json:"error_rate" yaml:"error_rate"`
	ISuccessBits         float64 `json:"I_success_bits" yaml:"I_success_bits"`
	ITotalBitsPerAttempt float64 `json:"I_total_bits_per_attempt" yaml:"I_total_bits_per_attempt"`
	LoopDPIBoundBits     float64 `json:"loop_dpi_bound_bits" yaml:"loop_dpi_bound_bits"`
	EmpiricalBoundBits   float64 `json:"empirical_bound_bits" yaml:"empirical_bound_bits"`
	EntropyDebtBits      float64 `json:"entropy_debt_bits" yaml:"entropy_debt_bits"`
	WithinBound          bool    `json:"within_bound" yaml:"within_bound"`
	Degenerate           bool    `json:"degenerate" yaml:"degenerate"` // no trial was heralded
}

// Simulate runs one experiment. Identical params always give an identical Result.
func Simulate(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if p.Mode == "" {
		p.Mode = trial.ModeDirect
	}

	batch, err := trial.Generate(p.trialParams(), trial.NewSource(p.Seed))
	if err != nil {
		return Result{}, err
	}
	est, err := estimator.FromBatch(batch)
	if err != nil {
		return Result{}, err
	}
	debt, err := bounds.ParadoxTax(p.PSucc, p.ParadoxFrac)
	if err != nil {
		return Result{}, err
	}

	bound := bounds.LoopDPI(p.PSucc)
	return Result{
		PSucc:        p.PSucc,
		Noise:        p.Noise,
		ReadoutError: p.ReadoutError,
		ParadoxFrac:  p.ParadoxFrac,
		Trials:       p.Trials,
		Seed:         p.Seed,
		Mode:         p.Mode,

		PSuccEff:             est.SuccessRate,
		ErrorRate:            est.ErrorRate,
		ISuccessBits:         est.ConditionalBits,
		ITotalBitsPerAttempt: est.BitsPerAttempt,
		LoopDPIBoundBits:     bound,
		EmpiricalBoundBits:   bounds.LoopDPI(est.SuccessRate),
		EntropyDebtBits:      debt,
		WithinBound:          est.BitsPerAttempt <= bound,
		Degenerate:           est.Degenerate(),
	}, nil
}
