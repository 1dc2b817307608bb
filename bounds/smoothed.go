package bounds

import (
	"fmt"
	"math"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/channel"
)

// Defaults for the single-shot toy channel.
const (
	DefaultSupport   = 2
	DefaultErrorRate = 0.05
)

// SmoothedParams parameterise the single-shot smoothed-entropy bound.
type SmoothedParams struct {
	PSucc   float64
	Delta   float64 // smoothing tolerance, >= 0
	PMax    float64 // largest conditional output probability given success
	Support int     // output alphabet size
}

// DefaultSmoothedParams returns the binary toy channel with error 0.05.
func DefaultSmoothedParams(pSucc, delta float64) SmoothedParams {
	return SmoothedParams{
		PSucc:   pSucc,
		Delta:   delta,
		PMax:    PMaxForErrorRate(DefaultErrorRate),
		Support: DefaultSupport,
	}
}

// SmoothedBound holds both smoothed entropies and the resulting limit.
type SmoothedBound struct {
	SmoothedParams
	HMin       float64
	H0         float64
	Achievable float64 // PSucc * max(0, H0 - HMin)
}

// PMaxForErrorRate is max(1-e, e) for a binary channel with crossover e.
func PMaxForErrorRate(e float64) float64 {
	return math.Max(1-e, e)
}

// HMinSmooth approximates H_min^delta as -log2(max(eps, pmax - delta)).
func HMinSmooth(pmax, delta float64) float64 {
	return -math.Log2(math.Max(channel.Epsilon, pmax-delta))
}

// H0Smooth approximates H_0^delta as log2(max(1, support + 2 delta)).
func H0Smooth(support int, delta float64) float64 {
	return math.Log2(math.Max(1, float64(support)+2*delta))
}

// Smoothed computes the achievable bits per attempt surrogate
// p * max(0, H0^delta - Hmin^delta).
func Smoothed(sp SmoothedParams) (SmoothedBound, error) {
	if err := checkSuccess(sp.PSucc); err != nil {
		return SmoothedBound{}, err
	}
	if !(sp.Delta >= 0) {
		return SmoothedBound{}, fmt.Errorf("%w: delta must be >= 0, got %g", ErrInvalidParameter, sp.Delta)
	}
	if err := checkProb("p_max", sp.PMax); err != nil {
		return SmoothedBound{}, err
	}
	if sp.Support < 1 {
		return SmoothedBound{}, fmt.Errorf("%w: support size must be positive, got %d", ErrInvalidParameter, sp.Support)
	}

	hmin := HMinSmooth(sp.PMax, sp.Delta)
	h0 := H0Smooth(sp.Support, sp.Delta)
	return SmoothedBound{
		SmoothedParams: sp,
		HMin:           hmin,
		H0:             h0,
		Achievable:     sp.PSucc * math.Max(0, h0-hmin),
	}, nil
}
