package sweep

import (
	"math"
	"sort"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/bounds"
)

// ParetoOptions span the advantage/debt plane: p_succ in log space and the
// paradoxical fraction q on a linear grid.
type ParetoOptions struct {
	LogMin, LogMax float64
	Points         int
	QMax           float64
	QPoints        int
	Noise          float64
}

// DefaultParetoOptions is 30 p_succ values over [1e-3, 10^-0.1] by 10 q
// values over [0, 0.4] at 5% noise.
func DefaultParetoOptions() ParetoOptions {
	return ParetoOptions{
		LogMin:  -3,
		LogMax:  -0.1,
		Points:  30,
		QMax:    0.4,
		QPoints: 10,
		Noise:   0.05,
	}
}

// ParetoPoint is one (p_succ, q) setting. EnvelopeBits is the least debt
// paid by any setting with at least this much advantage.
type ParetoPoint struct {
	PSucc         float64 `json:"p_succ" yaml:"p_succ"`
	ParadoxFrac   float64 `json:"paradox_frac" yaml:"paradox_frac"`
	AdvantageBits float64 `json:"advantage_bits" yaml:"advantage_bits"`
	DebtBits      float64 `json:"debt_bits" yaml:"debt_bits"`
	EnvelopeBits  float64 `json:"envelope_bits" yaml:"envelope_bits"`
}

// ParetoRows are ordered by advantage, ties by descending debt.
type ParetoRows []ParetoPoint

func (ParetoRows) Header() []string {
	return []string{"p_succ", "paradox_frac", "advantage_bits", "debt_bits", "envelope_bits"}
}

func (rows ParetoRows) Records() [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{ff(r.PSucc), ff(r.ParadoxFrac), ff(r.AdvantageBits), ff(r.DebtBits), ff(r.EnvelopeBits)}
	}
	return out
}

// Pareto scores every grid point and attaches the lower envelope of debt
// against advantage.
func Pareto(o ParetoOptions) (ParetoRows, error) {
	ps, err := LogGrid(o.LogMin, o.LogMax, o.Points)
	if err != nil {
		return nil, err
	}
	qs, err := LinGrid(0, o.QMax, o.QPoints)
	if err != nil {
		return nil, err
	}

	rows := make(ParetoRows, 0, len(ps)*len(qs))
	for _, p := range ps {
		adv := bounds.TemporalAdvantage(p, o.Noise)
		for _, q := range qs {
			debt, err := bounds.ParadoxTax(p, q)
			if err != nil {
				return nil, err
			}
			rows = append(rows, ParetoPoint{PSucc: p, ParadoxFrac: q, AdvantageBits: adv, DebtBits: debt})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AdvantageBits != rows[j].AdvantageBits {
			return rows[i].AdvantageBits < rows[j].AdvantageBits
		}
		return rows[i].DebtBits > rows[j].DebtBits
	})
	lowerEnvelope(rows)
	return rows, nil
}

// lowerEnvelope fills EnvelopeBits with the running minimum of debt taken
// from the high-advantage end. rows must already be ordered by advantage.
func lowerEnvelope(rows ParetoRows) {
	best := math.Inf(1)
	for i := len(rows) - 1; i >= 0; i-- {
		best = math.Min(best, rows[i].DebtBits)
		rows[i].EnvelopeBits = best
	}
}
