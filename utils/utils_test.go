package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pointRows []struct {
	P     float64 `json:"p" yaml:"p"`
	Bound float64 `json:"bound" yaml:"bound"`
}

func (r pointRows) Header() []string { return []string{"p", "bound"} }

func (r pointRows) Records() [][]string {
	out := make([][]string, len(r))
	for i, row := range r {
		out[i] = []string{
			strconv.FormatFloat(row.P, 'g', -1, 64),
			strconv.FormatFloat(row.Bound, 'g', -1, 64),
		}
	}
	return out
}

func sampleRows() pointRows {
	rows := make(pointRows, 2)
	rows[0].P, rows[0].Bound = 0.5, 1
	rows[1].P, rows[1].Bound = 0.25, 2
	return rows
}

func TestEncodeFormats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, sampleRows()))
	assert.Equal(t, "p,bound\n0.5,1\n0.25,2\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatJSON, sampleRows()))
	var decoded []map[string]float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 0.25, decoded[1]["p"])

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatYAML, sampleRows()))
	assert.Contains(t, buf.String(), "- p: 0.5\n  bound: 1\n")
}

func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, FormatCSV, map[string]int{"a": 1})
	assert.ErrorIs(t, err, ErrNotTabular)

	err = Encode(&buf, "xml", sampleRows())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "warn")
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = NewLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 200000, cfg.Run.Trials)
	assert.Equal(t, 0.05, cfg.Run.PSucc)
	assert.Equal(t, uint64(42), cfg.Run.Seed)
	assert.Equal(t, "direct", cfg.Run.Mode)
	assert.Equal(t, []float64{0, 1e-3, 5e-3, 1e-2}, cfg.Sweep.Deltas)
	assert.Equal(t, []int{50, 100, 200, 400, 800}, cfg.Sweep.Blocklengths)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loopdpi.yaml")
	yml := "run:\n  p_succ: 0.2\n  trials: 1000\nsweep:\n  points: 7\noutput:\n  format: csv\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	t.Setenv(EnvName("run.seed"), "99")

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Run.PSucc)
	assert.Equal(t, 1000, cfg.Run.Trials)
	assert.Equal(t, 7, cfg.Sweep.Points)
	assert.Equal(t, FormatCSV, cfg.Output.Format)
	assert.Equal(t, uint64(99), cfg.Run.Seed)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.05, cfg.Run.Noise)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "LOOPDPI_RUN_SEED", EnvName("run.seed"))
	assert.Equal(t, "LOOPDPI_NETWORK_BITS_PER_SUCCESS", EnvName("network.bits_per_success"))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	base, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	cases := map[string]func(c *Config){
		"format":       func(c *Config) { c.Output.Format = "xml" },
		"workers":      func(c *Config) { c.Sweep.Workers = -1 },
		"points":       func(c *Config) { c.Sweep.Points = 0 },
		"log range":    func(c *Config) { c.Sweep.LogMin = -0.01 },
		"log max":      func(c *Config) { c.Sweep.LogMax = 0.5 },
		"channels":     func(c *Config) { c.Sweep.MaxChannels = 0 },
		"paradox grid": func(c *Config) { c.Sweep.ParadoxPoints = 0 },
		"grid size":    func(c *Config) { c.Sweep.GridSize = 0 },
		"deltas":       func(c *Config) { c.Sweep.Deltas = nil },
		"blocklengths": func(c *Config) { c.Sweep.Blocklengths = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := *base
			mutate(&c)
			assert.Error(t, ValidateConfig(&c))
		})
	}
	assert.NoError(t, ValidateConfig(base))
}

func TestSaveLoadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewReport("loop-dpi", nil, sampleRows())
	require.NoError(t, SaveReport(path, r))

	got, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, r.RunID, got.RunID)
	assert.Equal(t, "loop-dpi", got.Kind)
	assert.Equal(t, ReportVersion, got.Version)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))

	var rows pointRows
	require.NoError(t, json.Unmarshal(got.Rows.(json.RawMessage), &rows))
	assert.Equal(t, sampleRows(), rows)
}

func TestLoadReportErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadReport(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"run_id":"not-a-uuid","rows":[]}`), 0644))
	_, err = LoadReport(bad)
	assert.Error(t, err)
}
