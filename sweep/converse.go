package sweep

import "github.com/Tsoympet/Entropy-Ledger-TimeTravel/bounds"

// ConverseOptions sweep the strong-converse error over blocklengths.
type ConverseOptions struct {
	Blocklengths []int
	TargetFactor float64
	PSucc        float64
}

// DefaultConverseOptions targets 1.3x the Loop-DPI rate at p 0.05.
func DefaultConverseOptions() ConverseOptions {
	return ConverseOptions{
		Blocklengths: []int{50, 100, 200, 400, 800},
		TargetFactor: 1.3,
		PSucc:        0.05,
	}
}

// ConverseRow is the error probability at one blocklength.
type ConverseRow struct {
	Blocklength  int     `json:"n" yaml:"n"`
	TargetFactor float64 `json:"target_factor" yaml:"target_factor"`
	PSucc        float64 `json:"p_succ" yaml:"p_succ"`
	Error        float64 `json:"error" yaml:"error"`
}

type ConverseRows []ConverseRow

func (ConverseRows) Header() []string {
	return []string{"n", "target_factor", "p_succ", "error"}
}

func (rows ConverseRows) Records() [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{fi(r.Blocklength), ff(r.TargetFactor), ff(r.PSucc), ff(r.Error)}
	}
	return out
}

// Converse evaluates ConverseError for every blocklength.
func Converse(o ConverseOptions) (ConverseRows, error) {
	rows := make(ConverseRows, 0, len(o.Blocklengths))
	for _, n := range o.Blocklengths {
		e, err := bounds.ConverseError(n, o.TargetFactor, o.PSucc)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ConverseRow{Blocklength: n, TargetFactor: o.TargetFactor, PSucc: o.PSucc, Error: e})
	}
	return rows, nil
}
