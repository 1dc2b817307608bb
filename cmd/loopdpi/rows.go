package main

import (
	"strconv"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sim"
)

func ff(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// boundsReport is every analytic bound at one operating point.
type boundsReport struct {
	PSucc           float64 `json:"p_succ" yaml:"p_succ"`
	Noise           float64 `json:"noise" yaml:"noise"`
	LoopDPIBits     float64 `json:"loop_dpi_bound_bits" yaml:"loop_dpi_bound_bits"`
	AdvantageBits   float64 `json:"temporal_advantage_bits" yaml:"temporal_advantage_bits"`
	Channels        int     `json:"channels" yaml:"channels"`
	CutSetNaive     float64 `json:"cutset_naive_bits" yaml:"cutset_naive_bits"`
	CutSetCorr      float64 `json:"interference_correction_bits" yaml:"interference_correction_bits"`
	CutSetBound     float64 `json:"network_bound_bits" yaml:"network_bound_bits"`
	Delta           float64 `json:"delta" yaml:"delta"`
	HMinBits        float64 `json:"h_min_bits" yaml:"h_min_bits"`
	H0Bits          float64 `json:"h0_bits" yaml:"h0_bits"`
	SmoothedBits    float64 `json:"smoothed_achievable_bits" yaml:"smoothed_achievable_bits"`
	ParadoxFrac     float64 `json:"paradox_frac" yaml:"paradox_frac"`
	EntropyDebtBits float64 `json:"entropy_debt_bits" yaml:"entropy_debt_bits"`
}

func (boundsReport) Header() []string {
	return []string{"p_succ", "noise", "loop_dpi_bound_bits", "temporal_advantage_bits", "channels",
		"cutset_naive_bits", "interference_correction_bits", "network_bound_bits", "delta", "h_min_bits",
		"h0_bits", "smoothed_achievable_bits", "paradox_frac", "entropy_debt_bits"}
}

func (r boundsReport) Records() [][]string {
	return [][]string{{ff(r.PSucc), ff(r.Noise), ff(r.LoopDPIBits), ff(r.AdvantageBits), strconv.Itoa(r.Channels),
		ff(r.CutSetNaive), ff(r.CutSetCorr), ff(r.CutSetBound), ff(r.Delta), ff(r.HMinBits),
		ff(r.H0Bits), ff(r.SmoothedBits), ff(r.ParadoxFrac), ff(r.EntropyDebtBits)}}
}

type predictRows []sim.PredictedResult

func (predictRows) Header() []string {
	return []string{"predictor", "theta", "phi", "depol", "p_succ", "error_rate",
		"p_succ_eff", "I_total_bits_per_attempt", "loop_dpi_bound_bits", "within_bound"}
}

func (rows predictRows) Records() [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Predictor, ff(r.Basis.Theta), ff(r.Basis.Phi), ff(r.Basis.Depol),
			ff(r.Prediction.PSucc), ff(r.Prediction.ErrorRate), ff(r.Result.PSuccEff),
			ff(r.Result.ITotalBitsPerAttempt), ff(r.Result.LoopDPIBoundBits), strconv.FormatBool(r.Result.WithinBound)}
	}
	return out
}
