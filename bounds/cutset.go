package bounds

import (
	"fmt"
	"math"
)

// CutSetBound is the multi-channel network bound with its parts.
type CutSetBound struct {
	Channels   int
	PSucc      float64
	Naive      float64 // m * -log2 p
	AtLeastOne float64 // -log2(1 - (1-p)^m)
	Correction float64 // interference correction, never negative
	Bound      float64 // Naive - Correction
}

// CutSet returns the cut-set bound for m parallel independent heralded
// channels, each succeeding with probability p. The naive sum of per-channel
// bounds is reduced to the bound implied by at least one channel succeeding.
// A single channel has no interference, so m == 1 is exactly LoopDPI(p).
func CutSet(m int, p float64) (CutSetBound, error) {
	if m <= 0 {
		return CutSetBound{}, fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidParameter, m)
	}
	if err := checkSuccess(p); err != nil {
		return CutSetBound{}, err
	}

	single := LoopDPI(p)
	out := CutSetBound{
		Channels: m,
		PSucc:    p,
		Naive:    float64(m) * single,
	}
	if m == 1 {
		out.AtLeastOne = single
		out.Bound = out.Naive
		return out, nil
	}

	out.AtLeastOne = LoopDPI(1 - math.Pow(1-p, float64(m)))
	out.Correction = math.Max(0, out.Naive-out.AtLeastOne)
	out.Bound = out.Naive - out.Correction
	return out, nil
}
