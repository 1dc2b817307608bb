// Package channel holds the binary-channel statistics the rest of the engine
// is built on: binary entropy, BSC mutual information and two-outcome KL
// divergence, all in bits.
package channel

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Epsilon is the numerical floor applied to probabilities before a logarithm.
const Epsilon = 1e-12

// Clamp limits x to [Epsilon, 1-Epsilon].
func Clamp(x float64) float64 {
	return math.Max(Epsilon, math.Min(1-Epsilon, x))
}

// BinaryEntropy returns h2(x) = -x log2 x - (1-x) log2 (1-x).
// Inputs are clamped away from 0 and 1 so the result is always finite.
func BinaryEntropy(x float64) float64 {
	x = Clamp(x)
	return stat.Entropy([]float64{x, 1 - x}) / math.Ln2
}

// MutualInformationBSC returns I(X;Y) in bits for a binary symmetric channel
// with a uniform input and crossover probability errorRate.
func MutualInformationBSC(errorRate float64) float64 {
	return 1 - BinaryEntropy(errorRate)
}

// KLDivergenceBinary returns D(p || q) in bits for two-outcome distributions.
// Entries are clamped to [Epsilon, 1]; the inputs are not modified.
// Pass the prior as p and the reweighted distribution as q.
func KLDivergenceBinary(p, q [2]float64) float64 {
	pc := []float64{clampUnit(p[0]), clampUnit(p[1])}
	qc := []float64{clampUnit(q[0]), clampUnit(q[1])}
	return stat.KullbackLeibler(pc, qc) / math.Ln2
}

func clampUnit(x float64) float64 {
	return math.Max(Epsilon, math.Min(1, x))
}
