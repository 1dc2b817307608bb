package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/bounds"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/predictor"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sim"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sweep"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/utils"
)

func (a *app) runFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("trials", a.defaults.GetInt("run.trials"), "attempts per run")
	f.Float64("p-succ", a.defaults.GetFloat64("run.p_succ"), "herald success probability")
	f.Uint64("seed", a.defaults.GetUint64("run.seed"), "random seed")
}

func simParams(cfg *utils.Config) (sim.Params, error) {
	mode, err := trial.ParseMode(cfg.Run.Mode)
	if err != nil {
		return sim.Params{}, err
	}
	return sim.Params{
		Trials:       cfg.Run.Trials,
		PSucc:        cfg.Run.PSucc,
		Noise:        cfg.Run.Noise,
		ReadoutError: cfg.Run.ReadoutError,
		Mode:         mode,
		ParadoxFrac:  cfg.Run.ParadoxFrac,
		Seed:         cfg.Run.Seed,
	}, nil
}

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one heralded-channel simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := simParams(a.cfg)
			if err != nil {
				return err
			}
			res, err := sim.Simulate(p)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"p_succ_eff":   res.PSuccEff,
				"bits":         res.ITotalBitsPerAttempt,
				"bound":        res.LoopDPIBoundBits,
				"within_bound": res.WithinBound,
			}).Info("simulation finished")
			if res.Degenerate {
				a.log.WithField("trials", res.Trials).Warn("no trial was heralded, information is zero")
			}
			return a.emit(cmd, "simulate", sweep.LoopDPIRows{res})
		},
	}
	a.runFlags(cmd)
	f := cmd.Flags()
	f.Float64("noise", a.defaults.GetFloat64("run.noise"), "path flip probability on heralded attempts")
	f.Float64("readout-error", a.defaults.GetFloat64("run.readout_error"), "herald readout flip probability (noisy mode)")
	f.String("mode", a.defaults.GetString("run.mode"), "herald mode: direct, noisy")
	f.Float64("paradox-frac", a.defaults.GetFloat64("run.paradox_frac"), "paradoxical fraction of success mass")
	return cmd
}

func newMultiChannelCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multichannel",
		Short: "Simulate m parallel heralded channels against the cut-set bound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := sim.SimulateMultiChannel(sim.MultiParams{
				Trials:         a.cfg.Run.Trials,
				Channels:       a.cfg.Network.Channels,
				PSucc:          a.cfg.Run.PSucc,
				BitsPerSuccess: a.cfg.Network.BitsPerSuccess,
				Seed:           a.cfg.Run.Seed,
			})
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"channels": res.Channels,
				"gain":     res.GainBits,
				"bound":    res.BoundBits,
			}).Info("network simulation finished")
			return a.emit(cmd, "multichannel", sweep.MultiChannelRows{res})
		},
	}
	a.runFlags(cmd)
	f := cmd.Flags()
	f.Int("channels", a.defaults.GetInt("network.channels"), "parallel channels")
	f.Float64("bits-per-success", a.defaults.GetFloat64("network.bits_per_success"), "bits credited per heralded channel")
	return cmd
}

func newBoundsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Evaluate every analytic bound at one operating point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := evalBounds(a.cfg)
			if err != nil {
				return err
			}
			return a.emit(cmd, "bounds", rep)
		},
	}
	f := cmd.Flags()
	f.Float64("p-succ", a.defaults.GetFloat64("run.p_succ"), "herald success probability")
	f.Float64("noise", a.defaults.GetFloat64("run.noise"), "path flip probability")
	f.Float64("paradox-frac", a.defaults.GetFloat64("run.paradox_frac"), "paradoxical fraction of success mass")
	f.Int("channels", a.defaults.GetInt("network.channels"), "parallel channels for the cut-set bound")
	f.Float64("delta", a.defaults.GetFloat64("smoothing.delta"), "smoothing tolerance")
	f.Int("support", a.defaults.GetInt("smoothing.support"), "output alphabet size")
	f.Float64("error-rate", a.defaults.GetFloat64("smoothing.error_rate"), "crossover of the single-shot toy channel")
	return cmd
}

func evalBounds(cfg *utils.Config) (boundsReport, error) {
	p := cfg.Run.PSucc
	cut, err := bounds.CutSet(cfg.Network.Channels, p)
	if err != nil {
		return boundsReport{}, err
	}
	sm, err := bounds.Smoothed(bounds.SmoothedParams{
		PSucc:   p,
		Delta:   cfg.Smoothing.Delta,
		PMax:    bounds.PMaxForErrorRate(cfg.Smoothing.ErrorRate),
		Support: cfg.Smoothing.Support,
	})
	if err != nil {
		return boundsReport{}, err
	}
	tax, err := bounds.ParadoxTax(p, cfg.Run.ParadoxFrac)
	if err != nil {
		return boundsReport{}, err
	}
	return boundsReport{
		PSucc:           p,
		Noise:           cfg.Run.Noise,
		LoopDPIBits:     bounds.LoopDPI(p),
		AdvantageBits:   bounds.TemporalAdvantage(p, cfg.Run.Noise),
		Channels:        cut.Channels,
		CutSetNaive:     cut.Naive,
		CutSetCorr:      cut.Correction,
		CutSetBound:     cut.Bound,
		Delta:           sm.Delta,
		HMinBits:        sm.HMin,
		H0Bits:          sm.H0,
		SmoothedBits:    sm.Achievable,
		ParadoxFrac:     cfg.Run.ParadoxFrac,
		EntropyDebtBits: tax,
	}, nil
}

func newPredictCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a channel from a basis setting and simulate it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pred, err := predictor.New(a.cfg.Predictor.Name)
			if err != nil {
				return err
			}
			b := predictor.Basis{
				Theta: a.cfg.Predictor.Theta,
				Phi:   a.cfg.Predictor.Phi,
				Depol: a.cfg.Predictor.Depol,
			}
			res, err := sim.SimulatePredicted(pred, b, a.cfg.Run.Trials, a.cfg.Run.Seed)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"predictor":  res.Predictor,
				"p_succ":     res.Prediction.PSucc,
				"error_rate": res.Prediction.ErrorRate,
			}).Info("prediction simulated")
			return a.emit(cmd, "predict", predictRows{res})
		},
	}
	a.runFlags(cmd)
	f := cmd.Flags()
	f.String("predictor", a.defaults.GetString("predictor.name"), fmt.Sprintf("one of %v", predictor.Names()))
	f.Float64("theta", a.defaults.GetFloat64("predictor.theta"), "basis tilt in radians")
	f.Float64("phi", a.defaults.GetFloat64("predictor.phi"), "basis phase in radians")
	f.Float64("depol", a.defaults.GetFloat64("predictor.depol"), "path depolarisation")
	return cmd
}
