// Package predictor maps measurement-basis and noise settings onto the two
// numbers the simulation needs: herald probability and conditional error.
//
// Implementations are interchangeable and chosen by name at configuration
// time; the simulation never branches on which one is in use.
package predictor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/channel"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

// ErrUnknownPredictor is returned by New for an unregistered name.
var ErrUnknownPredictor = errors.New("unknown predictor")

// MaxErrorRate caps predicted crossover rates below the useless 0.5 point.
const MaxErrorRate = 0.49

// Basis is a measurement setting: tilt theta, phase phi and path depolarisation.
type Basis struct {
	Theta float64 `json:"theta" yaml:"theta"`
	Phi   float64 `json:"phi" yaml:"phi"`
	Depol float64 `json:"depol" yaml:"depol"`
}

// Prediction is the channel a basis setting produces.
type Prediction struct {
	PSucc     float64 `json:"p_succ" yaml:"p_succ"`
	ErrorRate float64 `json:"error_rate" yaml:"error_rate"`
}

// Predictor produces channel parameters for a basis setting.
type Predictor interface {
	Name() string
	Predict(b Basis) (Prediction, error)
}

var registry = map[string]func() Predictor{
	"surrogate":     func() Predictor { return Surrogate{} },
	"statevector":   func() Predictor { return StateVector{} },
	"teleportation": func() Predictor { return Teleportation{} },
}

// New returns the predictor registered under name.
func New(name string) (Predictor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownPredictor, name, Names())
	}
	return ctor(), nil
}

// Names lists registered predictors in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Gain is the ideal information per attempt p * max(0, I_BSC(e)).
func Gain(p Prediction) float64 {
	return p.PSucc * math.Max(0, channel.MutualInformationBSC(p.ErrorRate))
}

func validate(b Basis) error {
	if !(b.Depol >= 0 && b.Depol <= 1) {
		return fmt.Errorf("%w: depolarisation must be in [0,1], got %g", trial.ErrInvalidParameter, b.Depol)
	}
	if math.IsNaN(b.Theta) || math.IsNaN(b.Phi) || math.IsInf(b.Theta, 0) || math.IsInf(b.Phi, 0) {
		return fmt.Errorf("%w: basis angles must be finite", trial.ErrInvalidParameter)
	}
	return nil
}

func clampError(e float64) float64 {
	return math.Min(MaxErrorRate, math.Max(0, e))
}
