// loopdpi: Monte-Carlo estimation and analytic bounds for heralded
// binary channels.
//
// Usage:
//
//	loopdpi simulate --p-succ=0.05 --noise=0.05 --trials=200000 --seed=42
//	loopdpi sweep loop-dpi --workers=4 --format=csv
//	loopdpi bounds --p-succ=0.05 --channels=3 --delta=0.001
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/utils"
)

// flagKeys maps command-line flags onto config keys. Flags are bound when
// their command runs, so several commands may share one key.
var flagKeys = map[string]string{
	"format":    "output.format",
	"out":       "output.path",
	"log-level": "output.log_level",
	"workers":   "sweep.workers",

	"trials":        "run.trials",
	"p-succ":        "run.p_succ",
	"noise":         "run.noise",
	"readout-error": "run.readout_error",
	"mode":          "run.mode",
	"paradox-frac":  "run.paradox_frac",
	"seed":          "run.seed",

	"channels":         "network.channels",
	"bits-per-success": "network.bits_per_success",

	"delta":      "smoothing.delta",
	"support":    "smoothing.support",
	"error-rate": "smoothing.error_rate",

	"predictor": "predictor.name",
	"theta":     "predictor.theta",
	"phi":       "predictor.phi",
	"depol":     "predictor.depol",

	"points":         "sweep.points",
	"log-min":        "sweep.log_min",
	"log-max":        "sweep.log_max",
	"max-channels":   "sweep.max_channels",
	"paradox-max":    "sweep.paradox_max",
	"paradox-points": "sweep.paradox_points",
	"target-factor":  "sweep.target_factor",
	"grid-size":      "sweep.grid_size",
	"cell-trials":    "sweep.cell_trials",
}

// app is the state shared by every command of one invocation.
type app struct {
	v          *viper.Viper
	defaults   *viper.Viper
	configPath string
	stderr     io.Writer

	cmd *cobra.Command
	cfg *utils.Config
	log *logrus.Logger
}

func newApp(stderr io.Writer) *app {
	d := viper.New()
	utils.SetDefaults(d)
	return &app{v: viper.New(), defaults: d, stderr: stderr}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "loopdpi",
		Short: "Heralded binary-channel information estimates and bounds",
		Long: `Simulates postselected binary channels, estimates the information they
carry per attempt, and checks it against the Loop-DPI, cut-set, single-shot
smoothed and paradox-tax bounds.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.String("format", a.defaults.GetString("output.format"), "output format: json, yaml, csv")
	pf.String("out", "", "also save a JSON report to this path")
	pf.String("log-level", a.defaults.GetString("output.log_level"), "debug, info, warn, error")
	pf.Int("workers", a.defaults.GetInt("sweep.workers"), "parallel sweep points (0 = GOMAXPROCS)")

	root.AddCommand(
		newSimulateCmd(a),
		newMultiChannelCmd(a),
		newBoundsCmd(a),
		newPredictCmd(a),
		newSweepCmd(a),
		newReportCmd(a),
	)
	return root
}

// setup binds the running command's flags, loads the config and builds
// the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = a.v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	cfg, err := utils.LoadConfig(a.v, a.configPath)
	if err != nil {
		return err
	}
	log, err := utils.NewLogger(a.stderr, cfg.Output.LogLevel)
	if err != nil {
		return err
	}
	a.cmd = cmd
	a.cfg = cfg
	a.log = log
	a.log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"config":  a.configPath,
	}).Debug("configuration loaded")
	return nil
}

// explicit reports whether key was set by a changed flag, the config file
// or the environment rather than left at its default.
func (a *app) explicit(key string) bool {
	if a.cmd != nil {
		for name, k := range flagKeys {
			if k != key {
				continue
			}
			if f := a.cmd.Flags().Lookup(name); f != nil && f.Changed {
				return true
			}
		}
	}
	if a.v.InConfig(key) {
		return true
	}
	_, ok := os.LookupEnv(utils.EnvName(key))
	return ok
}

// emit writes rows to stdout and, when an output path is set, a report.
func (a *app) emit(cmd *cobra.Command, kind string, rows any) error {
	if err := utils.Encode(cmd.OutOrStdout(), a.cfg.Output.Format, rows); err != nil {
		return err
	}
	if a.cfg.Output.Path == "" {
		return nil
	}
	report := utils.NewReport(kind, a.cfg, rows)
	if err := utils.SaveReport(a.cfg.Output.Path, report); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"kind":   kind,
		"run_id": report.RunID,
		"path":   a.cfg.Output.Path,
	}).Info("report saved")
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := newApp(stderr)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		log := a.log
		if log == nil {
			log = logrus.New()
			log.SetOutput(stderr)
		}
		log.WithError(err).Error("loopdpi failed")
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
