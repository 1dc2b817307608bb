package sweep

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/predictor"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sim"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// HeatmapOptions lay an N x N grid over theta in [0, pi/2] and phi in [0, 2pi].
type HeatmapOptions struct {
	GridSize int
	Depol    float64
	Trials   int // > 0 also simulates every cell
	Seed     uint64
}

// DefaultHeatmapOptions is a 30 x 30 analytic grid at 3% depolarisation.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{GridSize: 30, Depol: 0.03, Seed: 7}
}

// HeatmapCell is one basis setting. PSucc, ErrorRate and GainBits are nil
// when the predictor could not evaluate the cell; Error then says why.
type HeatmapCell struct {
	Row           int      `json:"row" yaml:"row"`
	Col           int      `json:"col" yaml:"col"`
	Theta         float64  `json:"theta" yaml:"theta"`
	Phi           float64  `json:"phi" yaml:"phi"`
	PSucc         *float64 `json:"p_succ" yaml:"p_succ"`
	ErrorRate     *float64 `json:"error_rate" yaml:"error_rate"`
	GainBits      *float64 `json:"gain_bits" yaml:"gain_bits"`
	EmpiricalBits *float64 `json:"empirical_bits,omitempty" yaml:"empirical_bits,omitempty"`
	Error         string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Heatmap holds the grid both as cells and as dense matrices indexed
// [theta][phi]. Failed cells are NaN in the matrices.
type Heatmap struct {
	Predictor string        `json:"predictor" yaml:"predictor"`
	Depol     float64       `json:"depol" yaml:"depol"`
	Thetas    []float64     `json:"thetas" yaml:"thetas"`
	Phis      []float64     `json:"phis" yaml:"phis"`
	Failed    int           `json:"failed" yaml:"failed"`
	Cells     []HeatmapCell `json:"cells" yaml:"cells"`

	Gain  *mat.Dense `json:"-" yaml:"-"`
	PSucc *mat.Dense `json:"-" yaml:"-"`
}

func (*Heatmap) Header() []string {
	return []string{"row", "col", "theta", "phi", "p_succ", "error_rate", "gain_bits", "empirical_bits", "error"}
}

func (h *Heatmap) Records() [][]string {
	out := make([][]string, len(h.Cells))
	for i, c := range h.Cells {
		out[i] = []string{fi(c.Row), fi(c.Col), ff(c.Theta), ff(c.Phi),
			optional(c.PSucc), optional(c.ErrorRate), optional(c.GainBits), optional(c.EmpiricalBits), c.Error}
	}
	return out
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return ff(*v)
}

func ptr(v float64) *float64 { return &v }

// RunHeatmap evaluates pred over the grid. A cell whose prediction fails is
// kept with nil values; only cancellation or a simulation error aborts.
func RunHeatmap(ctx context.Context, r Runner, pred predictor.Predictor, o HeatmapOptions) (*Heatmap, error) {
	if pred == nil {
		return nil, fmt.Errorf("%w: nil predictor", trial.ErrInvalidParameter)
	}
	if o.GridSize <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %d", trial.ErrInvalidParameter, o.GridSize)
	}
	if !(o.Depol >= 0 && o.Depol <= 1) {
		return nil, fmt.Errorf("%w: depolarisation must be in [0,1], got %g", trial.ErrInvalidParameter, o.Depol)
	}

	n := o.GridSize
	thetas, _ := LinGrid(0, math.Pi/2, n)
	phis, _ := LinGrid(0, 2*math.Pi, n)
	h := &Heatmap{
		Predictor: pred.Name(),
		Depol:     o.Depol,
		Thetas:    thetas,
		Phis:      phis,
		Cells:     make([]HeatmapCell, n*n),
		Gain:      mat.NewDense(n, n, nil),
		PSucc:     mat.NewDense(n, n, nil),
	}

	err := r.forEach(ctx, n*n, func(k int) error {
		i, j := k/n, k%n
		b := predictor.Basis{Theta: thetas[i], Phi: phis[j], Depol: o.Depol}
		cell := HeatmapCell{Row: i, Col: j, Theta: b.Theta, Phi: b.Phi}

		pr, err := pred.Predict(b)
		if err != nil {
			cell.Error = err.Error()
			h.Cells[k] = cell
			h.Gain.Set(i, j, math.NaN())
			h.PSucc.Set(i, j, math.NaN())
			return nil
		}
		gain := predictor.Gain(pr)
		cell.PSucc = ptr(pr.PSucc)
		cell.ErrorRate = ptr(pr.ErrorRate)
		cell.GainBits = ptr(gain)
		h.Gain.Set(i, j, gain)
		h.PSucc.Set(i, j, pr.PSucc)

		if o.Trials > 0 {
			res, err := sim.SimulatePredicted(pred, b, o.Trials, o.Seed+uint64(k))
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			cell.EmpiricalBits = ptr(res.Result.ITotalBitsPerAttempt)
		}
		h.Cells[k] = cell
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, c := range h.Cells {
		if c.PSucc == nil {
			h.Failed++
		}
	}
	return h, nil
}
