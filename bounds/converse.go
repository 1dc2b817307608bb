package bounds

import (
	"fmt"
	"math"
)

// ConverseError is the one-shot strong-converse surrogate: a block code of
// length n that targets targetFactor times the Loop-DPI rate only succeeds
// when all floor(n*targetFactor) heralds fire, so its error is
// min(1, 1 - p^floor(n*targetFactor)).
func ConverseError(n int, targetFactor, p float64) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: blocklength must be positive, got %d", ErrInvalidParameter, n)
	}
	if !(targetFactor > 0) {
		return 0, fmt.Errorf("%w: target factor must be positive, got %g", ErrInvalidParameter, targetFactor)
	}
	if err := checkSuccess(p); err != nil {
		return 0, err
	}
	k := int(float64(n) * targetFactor)
	return math.Min(1, 1-math.Pow(p, float64(k))), nil
}
