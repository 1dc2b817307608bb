package sim

import (
	"fmt"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/predictor"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// PredictedResult pairs a run with the channel a predictor assigned to it.
type PredictedResult struct {
	Predictor  string               `json:"predictor" yaml:"predictor"`
	Basis      predictor.Basis      `json:"basis" yaml:"basis"`
	Prediction predictor.Prediction `json:"prediction" yaml:"prediction"`
	Result     Result               `json:"result" yaml:"result"`
}

// SimulatePredicted asks pred for the channel at basis b and runs a
// direct-herald simulation of it.
func SimulatePredicted(pred predictor.Predictor, b predictor.Basis, trials int, seed uint64) (PredictedResult, error) {
	if pred == nil {
		return PredictedResult{}, fmt.Errorf("%w: nil predictor", trial.ErrInvalidParameter)
	}
	pr, err := pred.Predict(b)
	if err != nil {
		return PredictedResult{}, fmt.Errorf("predict with %s: %w", pred.Name(), err)
	}
	res, err := Simulate(Params{
		Trials: trials,
		PSucc:  pr.PSucc,
		Noise:  pr.ErrorRate,
		Mode:   trial.ModeDirect,
		Seed:   seed,
	})
	if err != nil {
		return PredictedResult{}, err
	}
	return PredictedResult{
		Predictor:  pred.Name(),
		Basis:      b,
		Prediction: pr,
		Result:     res,
	}, nil
}
