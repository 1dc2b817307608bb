package predictor

import "math"

// Teleportation is the heuristic entanglement-assisted feedback loop: herald
// probability falls with depolarisation and the present bit picks up half the
// depolarisation as extra flip noise. The basis angles are ignored.
type Teleportation struct{}

func (Teleportation) Name() string { return "teleportation" }

func (Teleportation) Predict(b Basis) (Prediction, error) {
	if err := validate(b); err != nil {
		return Prediction{}, err
	}
	return Prediction{
		PSucc:     math.Max(0.01, 0.2*(1-b.Depol)),
		ErrorRate: 0.05 + 0.5*b.Depol,
	}, nil
}
