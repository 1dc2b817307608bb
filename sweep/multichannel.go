package sweep

import (
	"context"
	"fmt"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sim"
)

// MultiChannelOptions sweep the channel count from 1 to MaxChannels.
type MultiChannelOptions struct {
	MaxChannels    int
	Trials         int
	PSucc          float64
	BitsPerSuccess float64
	Seed           uint64
}

// DefaultMultiChannelOptions is m = 1..5 at p 0.05 with 0.9 bits per success.
func DefaultMultiChannelOptions() MultiChannelOptions {
	d := sim.DefaultMultiParams(1)
	return MultiChannelOptions{
		MaxChannels:    5,
		Trials:         d.Trials,
		PSucc:          d.PSucc,
		BitsPerSuccess: d.BitsPerSuccess,
		Seed:           d.Seed,
	}
}

// MultiChannelRows are ordered by channel count.
type MultiChannelRows []sim.MultiResult

func (MultiChannelRows) Header() []string {
	return []string{"channels", "p_succ", "any_success_rate", "mean_successes",
		"gain_bits_per_attempt", "cutset_naive_bits", "interference_correction_bits", "network_bound_bits"}
}

func (rows MultiChannelRows) Records() [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{fi(r.Channels), ff(r.PSucc), ff(r.AnySuccessRate), ff(r.MeanSuccesses),
			ff(r.GainBits), ff(r.NaiveBoundBits), ff(r.CorrectionBits), ff(r.BoundBits)}
	}
	return out
}

// MultiChannel runs one network simulation per channel count.
func MultiChannel(ctx context.Context, r Runner, o MultiChannelOptions) (MultiChannelRows, error) {
	if o.MaxChannels <= 0 {
		return nil, fmt.Errorf("max channels must be positive, got %d", o.MaxChannels)
	}
	ms := IntGrid(1, o.MaxChannels)
	rows := make(MultiChannelRows, len(ms))
	err := r.forEach(ctx, len(ms), func(i int) error {
		res, err := sim.SimulateMultiChannel(sim.MultiParams{
			Trials:         o.Trials,
			Channels:       ms[i],
			PSucc:          o.PSucc,
			BitsPerSuccess: o.BitsPerSuccess,
			Seed:           o.Seed + uint64(i),
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
