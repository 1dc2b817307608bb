package sweep

import (
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/bounds"
)

// SmoothedOptions sweep the single-shot bound over deltas and p_succ.
type SmoothedOptions struct {
	Deltas         []float64
	LogMin, LogMax float64
	Points         int
	ErrorRate      float64
	Support        int
}

// DefaultSmoothedOptions is deltas {0, 1e-3, 5e-3, 1e-2} over 30 points.
func DefaultSmoothedOptions() SmoothedOptions {
	return SmoothedOptions{
		Deltas:    []float64{0, 1e-3, 5e-3, 1e-2},
		LogMin:    -3,
		LogMax:    -0.05,
		Points:    30,
		ErrorRate: bounds.DefaultErrorRate,
		Support:   bounds.DefaultSupport,
	}
}

// SmoothedRow is one (delta, p_succ) point with the asymptotic bound beside it.
type SmoothedRow struct {
	Delta          float64 `json:"delta" yaml:"delta"`
	PSucc          float64 `json:"p_succ" yaml:"p_succ"`
	HMinBits       float64 `json:"h_min_bits" yaml:"h_min_bits"`
	H0Bits         float64 `json:"h0_bits" yaml:"h0_bits"`
	AchievableBits float64 `json:"achievable_bits" yaml:"achievable_bits"`
	LoopDPIBits    float64 `json:"loop_dpi_bound_bits" yaml:"loop_dpi_bound_bits"`
}

// SmoothedRows are grouped by delta, then ordered by p_succ.
type SmoothedRows []SmoothedRow

func (SmoothedRows) Header() []string {
	return []string{"delta", "p_succ", "h_min_bits", "h0_bits", "achievable_bits", "loop_dpi_bound_bits"}
}

func (rows SmoothedRows) Records() [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{ff(r.Delta), ff(r.PSucc), ff(r.HMinBits), ff(r.H0Bits), ff(r.AchievableBits), ff(r.LoopDPIBits)}
	}
	return out
}

// Smoothed evaluates the closed form at every grid point. It is cheap enough
// to run inline.
func Smoothed(o SmoothedOptions) (SmoothedRows, error) {
	ps, err := LogGrid(o.LogMin, o.LogMax, o.Points)
	if err != nil {
		return nil, err
	}
	pmax := bounds.PMaxForErrorRate(o.ErrorRate)
	rows := make(SmoothedRows, 0, len(o.Deltas)*len(ps))
	for _, d := range o.Deltas {
		for _, p := range ps {
			b, err := bounds.Smoothed(bounds.SmoothedParams{
				PSucc:   p,
				Delta:   d,
				PMax:    pmax,
				Support: o.Support,
			})
			if err != nil {
				return nil, err
			}
			rows = append(rows, SmoothedRow{
				Delta:          d,
				PSucc:          p,
				HMinBits:       b.HMin,
				H0Bits:         b.H0,
				AchievableBits: b.Achievable,
				LoopDPIBits:    bounds.LoopDPI(p),
			})
		}
	}
	return rows, nil
}
