package predictor

import "math"

// Surrogate is the closed-form parametric model of a postselected
// teleportation loop.
//
//	p_succ = 0.15 (1-depol) cos^2(theta) + 0.02
//	e      = 0.05 + 0.2 sin^2(theta) + 0.05 (1 - cos(phi))
type Surrogate struct{}

func (Surrogate) Name() string { return "surrogate" }

func (Surrogate) Predict(b Basis) (Prediction, error) {
	if err := validate(b); err != nil {
		return Prediction{}, err
	}
	c := math.Cos(b.Theta)
	s := math.Sin(b.Theta)
	return Prediction{
		PSucc:     0.15*(1-b.Depol)*c*c + 0.02,
		ErrorRate: clampError(0.05 + 0.2*s*s + 0.05*(1-math.Cos(b.Phi))),
	}, nil
}
