package sweep

import (
	"context"
	"strconv"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sim"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// LoopDPIOptions describe a p_succ sweep of the heralded channel.
type LoopDPIOptions struct {
	LogMin, LogMax float64 // log10 of the first and last p_succ
	Points         int
	Trials         int
	Noise          float64
	ReadoutError   float64
	Mode           trial.Mode
	ParadoxFrac    float64
	Seed           uint64 // point i uses Seed+i
}

// DefaultLoopDPIOptions is 20 points over [1e-3, 10^-0.05] at 200000 trials
// and 5% path noise.
func DefaultLoopDPIOptions() LoopDPIOptions {
	return LoopDPIOptions{
		LogMin: -3,
		LogMax: -0.05,
		Points: 20,
		Trials: 200000,
		Noise:  0.05,
		Mode:   trial.ModeDirect,
		Seed:   123,
	}
}

// LoopDPIRows are simulation results ordered by p_succ.
type LoopDPIRows []sim.Result

func (LoopDPIRows) Header() []string {
	return []string{"p_succ", "p_succ_eff", "error_rate", "I_success_bits",
		"I_total_bits_per_attempt", "loop_dpi_bound_bits", "entropy_debt_bits", "within_bound", "degenerate", "seed"}
}

func (rows LoopDPIRows) Records() [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{ff(r.PSucc), ff(r.PSuccEff), ff(r.ErrorRate), ff(r.ISuccessBits),
			ff(r.ITotalBitsPerAttempt), ff(r.LoopDPIBoundBits), ff(r.EntropyDebtBits),
			strconv.FormatBool(r.WithinBound), strconv.FormatBool(r.Degenerate), strconv.FormatUint(r.Seed, 10)}
	}
	return out
}

// LoopDPI simulates every grid point and pairs its gain with p_succ.
func LoopDPI(ctx context.Context, r Runner, o LoopDPIOptions) (LoopDPIRows, error) {
	ps, err := LogGrid(o.LogMin, o.LogMax, o.Points)
	if err != nil {
		return nil, err
	}
	rows := make(LoopDPIRows, len(ps))
	err = r.forEach(ctx, len(ps), func(i int) error {
		res, err := sim.Simulate(sim.Params{
			Trials:       o.Trials,
			PSucc:        ps[i],
			Noise:        o.Noise,
			ReadoutError: o.ReadoutError,
			Mode:         o.Mode,
			ParadoxFrac:  o.ParadoxFrac,
			Seed:         o.Seed + uint64(i),
		})
		if err != nil {
			return err
		}
		rows[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
