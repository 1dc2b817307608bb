package predictor

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// StateVector derives the same channel as Surrogate from real amplitudes:
// the herald weight is the |0> population of the tilted state and the phase
// error is twice the |1> population of a half-angle phase rotation.
type StateVector struct{}

func (StateVector) Name() string { return "statevector" }

func (StateVector) Predict(b Basis) (Prediction, error) {
	if err := validate(b); err != nil {
		return Prediction{}, err
	}

	tilted := rotate(b.Theta)
	rho := mat.NewDense(2, 2, nil)
	rho.Outer(1, tilted, tilted)

	// Depolarising the path only scales the heralded population.
	heralded := (1 - b.Depol) * rho.At(0, 0)
	leaked := rho.At(1, 1)

	phase := rotate(b.Phi / 2)
	dephase := 2 * phase.AtVec(1) * phase.AtVec(1)

	return Prediction{
		PSucc:     0.15*heralded + 0.02,
		ErrorRate: clampError(0.05 + 0.2*leaked + 0.05*dephase),
	}, nil
}

// rotate returns R(a)|0> for the real 2x2 rotation R(a).
func rotate(a float64) *mat.VecDense {
	s, c := math.Sincos(a)
	r := mat.NewDense(2, 2, []float64{
		c, -s,
		s, c,
	})
	out := mat.NewVecDense(2, nil)
	out.MulVec(r, mat.NewVecDense(2, []float64{1, 0}))
	return out
}
