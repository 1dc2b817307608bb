package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. LOOPDPI_RUN_SEED.
const EnvPrefix = "LOOPDPI"

// EnvName returns the environment variable that overrides key,
// e.g. run.seed -> LOOPDPI_RUN_SEED.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Config holds every tunable of a run or sweep.
type Config struct {
	Run       RunConfig       `mapstructure:"run" yaml:"run" json:"run"`
	Network   NetworkConfig   `mapstructure:"network" yaml:"network" json:"network"`
	Smoothing SmoothingConfig `mapstructure:"smoothing" yaml:"smoothing" json:"smoothing"`
	Predictor PredictorConfig `mapstructure:"predictor" yaml:"predictor" json:"predictor"`
	Sweep     SweepConfig     `mapstructure:"sweep" yaml:"sweep" json:"sweep"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output" json:"output"`
}

// RunConfig is a single heralded-channel simulation.
type RunConfig struct {
	Trials       int     `mapstructure:"trials" yaml:"trials" json:"trials"`
	PSucc        float64 `mapstructure:"p_succ" yaml:"p_succ" json:"p_succ"`
	Noise        float64 `mapstructure:"noise" yaml:"noise" json:"noise"`
	ReadoutError float64 `mapstructure:"readout_error" yaml:"readout_error" json:"readout_error"`
	Mode         string  `mapstructure:"mode" yaml:"mode" json:"mode"`
	ParadoxFrac  float64 `mapstructure:"paradox_frac" yaml:"paradox_frac" json:"paradox_frac"`
	Seed         uint64  `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// NetworkConfig is the parallel-channel model.
type NetworkConfig struct {
	Channels       int     `mapstructure:"channels" yaml:"channels" json:"channels"`
	BitsPerSuccess float64 `mapstructure:"bits_per_success" yaml:"bits_per_success" json:"bits_per_success"`
}

// SmoothingConfig is the single-shot toy channel.
type SmoothingConfig struct {
	Delta     float64 `mapstructure:"delta" yaml:"delta" json:"delta"`
	Support   int     `mapstructure:"support" yaml:"support" json:"support"`
	ErrorRate float64 `mapstructure:"error_rate" yaml:"error_rate" json:"error_rate"`
}

// PredictorConfig selects the channel predictor and its basis setting.
type PredictorConfig struct {
	Name  string  `mapstructure:"name" yaml:"name" json:"name"`
	Theta float64 `mapstructure:"theta" yaml:"theta" json:"theta"`
	Phi   float64 `mapstructure:"phi" yaml:"phi" json:"phi"`
	Depol float64 `mapstructure:"depol" yaml:"depol" json:"depol"`
}

// SweepConfig describes the parameter grids. LogMin/LogMax are log10 exponents.
type SweepConfig struct {
	Workers       int       `mapstructure:"workers" yaml:"workers" json:"workers"`
	Points        int       `mapstructure:"points" yaml:"points" json:"points"`
	LogMin        float64   `mapstructure:"log_min" yaml:"log_min" json:"log_min"`
	LogMax        float64   `mapstructure:"log_max" yaml:"log_max" json:"log_max"`
	Deltas        []float64 `mapstructure:"deltas" yaml:"deltas" json:"deltas"`
	MaxChannels   int       `mapstructure:"max_channels" yaml:"max_channels" json:"max_channels"`
	ParadoxMax    float64   `mapstructure:"paradox_max" yaml:"paradox_max" json:"paradox_max"`
	ParadoxPoints int       `mapstructure:"paradox_points" yaml:"paradox_points" json:"paradox_points"`
	Blocklengths  []int     `mapstructure:"blocklengths" yaml:"blocklengths" json:"blocklengths"`
	TargetFactor  float64   `mapstructure:"target_factor" yaml:"target_factor" json:"target_factor"`
	GridSize      int       `mapstructure:"grid_size" yaml:"grid_size" json:"grid_size"`
	CellTrials    int       `mapstructure:"cell_trials" yaml:"cell_trials" json:"cell_trials"`
}

// OutputConfig controls encoding and logging.
type OutputConfig struct {
	Format   string `mapstructure:"format" yaml:"format" json:"format"`
	Path     string `mapstructure:"path" yaml:"path" json:"path"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

// SetDefaults registers the reference values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("run.trials", 200000)
	v.SetDefault("run.p_succ", 0.05)
	v.SetDefault("run.noise", 0.05)
	v.SetDefault("run.readout_error", 0.01)
	v.SetDefault("run.mode", "direct")
	v.SetDefault("run.paradox_frac", 0.0)
	v.SetDefault("run.seed", 42)

	v.SetDefault("network.channels", 1)
	v.SetDefault("network.bits_per_success", 0.9)

	v.SetDefault("smoothing.delta", 0.0)
	v.SetDefault("smoothing.support", 2)
	v.SetDefault("smoothing.error_rate", 0.05)

	v.SetDefault("predictor.name", "surrogate")
	v.SetDefault("predictor.theta", 0.0)
	v.SetDefault("predictor.phi", 0.0)
	v.SetDefault("predictor.depol", 0.03)

	v.SetDefault("sweep.workers", 0)
	v.SetDefault("sweep.points", 20)
	v.SetDefault("sweep.log_min", -3.0)
	v.SetDefault("sweep.log_max", -0.05)
	v.SetDefault("sweep.deltas", []float64{0, 1e-3, 5e-3, 1e-2})
	v.SetDefault("sweep.max_channels", 5)
	v.SetDefault("sweep.paradox_max", 0.4)
	v.SetDefault("sweep.paradox_points", 10)
	v.SetDefault("sweep.blocklengths", []int{50, 100, 200, 400, 800})
	v.SetDefault("sweep.target_factor", 1.3)
	v.SetDefault("sweep.grid_size", 30)
	v.SetDefault("sweep.cell_trials", 0)

	v.SetDefault("output.format", "json")
	v.SetDefault("output.path", "")
	v.SetDefault("output.log_level", "info")
}

// LoadConfig reads defaults, an optional YAML file and LOOPDPI_* environment
// overrides into a validated Config. A missing file at path is not an error
// when path is empty.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidateConfig checks the settings that are not engine parameters. Channel
// parameters are validated by the engine itself at its boundary.
func ValidateConfig(config *Config) error {
	switch config.Output.Format {
	case FormatJSON, FormatYAML, FormatCSV:
	default:
		return fmt.Errorf("output format must be json, yaml or csv, got %q", config.Output.Format)
	}

	if config.Sweep.Workers < 0 {
		return fmt.Errorf("sweep workers must be non-negative")
	}

	if config.Sweep.Points <= 0 {
		return fmt.Errorf("sweep points must be positive")
	}

	if config.Sweep.LogMin >= config.Sweep.LogMax {
		return fmt.Errorf("sweep log_min must be below log_max")
	}

	if config.Sweep.LogMax > 0 {
		return fmt.Errorf("sweep log_max must be <= 0 so p_succ stays in (0,1]")
	}

	if config.Sweep.MaxChannels <= 0 {
		return fmt.Errorf("sweep max_channels must be positive")
	}

	if config.Sweep.ParadoxPoints <= 0 {
		return fmt.Errorf("sweep paradox_points must be positive")
	}

	if config.Sweep.GridSize <= 0 {
		return fmt.Errorf("sweep grid_size must be positive")
	}

	if config.Sweep.CellTrials < 0 {
		return fmt.Errorf("sweep cell_trials must be non-negative")
	}

	if len(config.Sweep.Deltas) == 0 {
		return fmt.Errorf("sweep deltas must not be empty")
	}

	if len(config.Sweep.Blocklengths) == 0 {
		return fmt.Errorf("sweep blocklengths must not be empty")
	}

	return nil
}
