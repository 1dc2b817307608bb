package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/predictor"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sweep"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/utils"
)

// sweepFunc builds a sweep from its reference options, overridden by any
// setting the user made explicitly.
type sweepFunc func(a *app, ctx context.Context, r sweep.Runner) (any, error)

var sweeps = []struct {
	name  string
	short string
	run   sweepFunc
}{
	{"loop-dpi", "Empirical gain against the Loop-DPI bound over p_succ", (*app).sweepLoopDPI},
	{"multichannel", "Network gain against the cut-set bound for m = 1..max", (*app).sweepMultiChannel},
	{"smoothed", "Single-shot smoothed bound over deltas and p_succ", (*app).sweepSmoothed},
	{"pareto", "Temporal advantage against entropy debt with its lower envelope", (*app).sweepPareto},
	{"converse", "Strong-converse error over blocklengths", (*app).sweepConverse},
	{"heatmap", "Predicted gain over the theta/phi basis grid", (*app).sweepHeatmap},
}

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a parameter sweep and print its rows",
	}
	// Unset flags leave each sweep at its reference value.
	pf := cmd.PersistentFlags()
	pf.Int("trials", 0, "attempts per simulated point")
	pf.Float64("p-succ", 0, "fixed p_succ for multichannel and converse")
	pf.Float64("noise", 0, "path flip probability")
	pf.Uint64("seed", 0, "base seed, point i uses seed+i")
	pf.Int("points", 0, "p_succ grid points")
	pf.Float64("log-min", 0, "log10 of the smallest p_succ")
	pf.Float64("log-max", 0, "log10 of the largest p_succ")
	pf.Int("max-channels", 0, "largest channel count")
	pf.Float64("paradox-max", 0, "largest paradoxical fraction")
	pf.Int("paradox-points", 0, "paradoxical fraction grid points")
	pf.Float64("target-factor", 0, "converse rate as a multiple of Loop-DPI")
	pf.Int("grid-size", 0, "heatmap grid is N x N")
	pf.Int("cell-trials", 0, "also simulate each heatmap cell with this many trials")
	pf.String("predictor", a.defaults.GetString("predictor.name"), "heatmap predictor")
	pf.Float64("depol", 0, "heatmap depolarisation")

	for _, s := range sweeps {
		s := s
		cmd.AddCommand(&cobra.Command{
			Use:   s.name,
			Short: s.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				stats := &utils.TimingStats{}
				r := sweep.Runner{Workers: a.cfg.Sweep.Workers, Stats: stats}
				a.log.WithField("sweep", s.name).Info("sweep started")
				rows, err := s.run(a, cmd.Context(), r)
				if err != nil {
					return err
				}
				utils.LogTimingStats(a.log, s.name, stats)
				a.log.WithFields(logrus.Fields{
					"sweep":  s.name,
					"points": stats.Points,
					"wall":   stats.TotalTime,
				}).Info("sweep finished")
				return a.emit(cmd, "sweep/"+s.name, rows)
			},
		})
	}
	return cmd
}

func (a *app) sweepLoopDPI(ctx context.Context, r sweep.Runner) (any, error) {
	cfg := a.cfg
	o := sweep.DefaultLoopDPIOptions()
	a.gridOverrides(&o.LogMin, &o.LogMax, &o.Points)
	if a.explicit("run.trials") {
		o.Trials = cfg.Run.Trials
	}
	if a.explicit("run.noise") {
		o.Noise = cfg.Run.Noise
	}
	if a.explicit("run.mode") {
		mode, err := trial.ParseMode(cfg.Run.Mode)
		if err != nil {
			return nil, err
		}
		o.Mode = mode
	}
	if o.Mode == trial.ModeNoisy {
		o.ReadoutError = cfg.Run.ReadoutError
	}
	if a.explicit("run.paradox_frac") {
		o.ParadoxFrac = cfg.Run.ParadoxFrac
	}
	if a.explicit("run.seed") {
		o.Seed = cfg.Run.Seed
	}

	rows, err := sweep.LoopDPI(ctx, r, o)
	if err != nil {
		return nil, err
	}
	var degenerate int
	for _, res := range rows {
		if res.Degenerate {
			degenerate++
		}
	}
	if degenerate > 0 {
		a.log.WithField("points", degenerate).Warn("points with no heralded trial report zero information")
	}
	return rows, nil
}

func (a *app) sweepMultiChannel(ctx context.Context, r sweep.Runner) (any, error) {
	cfg := a.cfg
	o := sweep.DefaultMultiChannelOptions()
	if a.explicit("sweep.max_channels") {
		o.MaxChannels = cfg.Sweep.MaxChannels
	}
	if a.explicit("run.trials") {
		o.Trials = cfg.Run.Trials
	}
	if a.explicit("run.p_succ") {
		o.PSucc = cfg.Run.PSucc
	}
	if a.explicit("network.bits_per_success") {
		o.BitsPerSuccess = cfg.Network.BitsPerSuccess
	}
	if a.explicit("run.seed") {
		o.Seed = cfg.Run.Seed
	}
	return sweep.MultiChannel(ctx, r, o)
}

func (a *app) sweepSmoothed(_ context.Context, _ sweep.Runner) (any, error) {
	cfg := a.cfg
	o := sweep.DefaultSmoothedOptions()
	a.gridOverrides(&o.LogMin, &o.LogMax, &o.Points)
	if a.explicit("sweep.deltas") {
		o.Deltas = cfg.Sweep.Deltas
	}
	if a.explicit("smoothing.error_rate") {
		o.ErrorRate = cfg.Smoothing.ErrorRate
	}
	if a.explicit("smoothing.support") {
		o.Support = cfg.Smoothing.Support
	}
	return sweep.Smoothed(o)
}

func (a *app) sweepPareto(_ context.Context, _ sweep.Runner) (any, error) {
	cfg := a.cfg
	o := sweep.DefaultParetoOptions()
	a.gridOverrides(&o.LogMin, &o.LogMax, &o.Points)
	if a.explicit("sweep.paradox_max") {
		o.QMax = cfg.Sweep.ParadoxMax
	}
	if a.explicit("sweep.paradox_points") {
		o.QPoints = cfg.Sweep.ParadoxPoints
	}
	if a.explicit("run.noise") {
		o.Noise = cfg.Run.Noise
	}
	return sweep.Pareto(o)
}

func (a *app) sweepConverse(_ context.Context, _ sweep.Runner) (any, error) {
	cfg := a.cfg
	o := sweep.DefaultConverseOptions()
	if a.explicit("sweep.blocklengths") {
		o.Blocklengths = cfg.Sweep.Blocklengths
	}
	if a.explicit("sweep.target_factor") {
		o.TargetFactor = cfg.Sweep.TargetFactor
	}
	if a.explicit("run.p_succ") {
		o.PSucc = cfg.Run.PSucc
	}
	return sweep.Converse(o)
}

func (a *app) sweepHeatmap(ctx context.Context, r sweep.Runner) (any, error) {
	cfg := a.cfg
	pred, err := predictor.New(cfg.Predictor.Name)
	if err != nil {
		return nil, err
	}
	o := sweep.DefaultHeatmapOptions()
	if a.explicit("sweep.grid_size") {
		o.GridSize = cfg.Sweep.GridSize
	}
	if a.explicit("predictor.depol") {
		o.Depol = cfg.Predictor.Depol
	}
	if a.explicit("sweep.cell_trials") {
		o.Trials = cfg.Sweep.CellTrials
	}
	if a.explicit("run.seed") {
		o.Seed = cfg.Run.Seed
	}

	h, err := sweep.RunHeatmap(ctx, r, pred, o)
	if err != nil {
		return nil, err
	}
	if h.Failed > 0 {
		a.log.WithFields(logrus.Fields{
			"predictor": h.Predictor,
			"failed":    h.Failed,
		}).Warn("heatmap cells without a prediction")
	}
	return h, nil
}

// gridOverrides replaces a sweep's p_succ grid with the configured one when
// the user set any part of it.
func (a *app) gridOverrides(logMin, logMax *float64, points *int) {
	if a.explicit("sweep.log_min") {
		*logMin = a.cfg.Sweep.LogMin
	}
	if a.explicit("sweep.log_max") {
		*logMax = a.cfg.Sweep.LogMax
	}
	if a.explicit("sweep.points") {
		*points = a.cfg.Sweep.Points
	}
}
