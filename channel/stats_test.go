package channel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryEntropyEndpoints(t *testing.T) {
	assert.InDelta(t, 1.0, BinaryEntropy(0.5), 1e-12)
	assert.InDelta(t, 0.0, BinaryEntropy(0), 1e-9)
	assert.InDelta(t, 0.0, BinaryEntropy(1), 1e-9)

	// Out-of-range inputs are clamped, never NaN.
	assert.False(t, math.IsNaN(BinaryEntropy(-0.3)))
	assert.False(t, math.IsNaN(BinaryEntropy(1.7)))
}

func TestBinaryEntropyKnownValue(t *testing.T) {
	// h2(0.05) = 0.286396957...
	assert.InDelta(t, 0.2863969571, BinaryEntropy(0.05), 1e-9)
}

func TestMutualInformationBSCMonotone(t *testing.T) {
	assert.InDelta(t, 1.0, MutualInformationBSC(0), 1e-9)
	assert.InDelta(t, 0.0, MutualInformationBSC(0.5), 1e-12)

	prev := MutualInformationBSC(0)
	for i := 1; i <= 500; i++ {
		e := 0.5 * float64(i) / 500
		cur := MutualInformationBSC(e)
		if cur > prev+1e-15 {
			t.Fatalf("MI increased at e=%.4f: %.15f > %.15f", e, cur, prev)
		}
		prev = cur
	}
}

func TestMutualInformationBSCSymmetric(t *testing.T) {
	for i := 0; i <= 100; i++ {
		e := float64(i) / 100
		assert.InDelta(t, MutualInformationBSC(e), MutualInformationBSC(1-e), 1e-12, "e=%.2f", e)
	}
}

func TestKLDivergenceBinary(t *testing.T) {
	dists := [][2]float64{{0.5, 0.5}, {0.9, 0.1}, {1, 0}, {0.999, 0.001}}
	for _, p := range dists {
		assert.Equal(t, 0.0, KLDivergenceBinary(p, p), "KL(p,p) for %v", p)
	}

	// D([.5,.5] || [.25,.75]) = .5 log2 2 + .5 log2(2/3)
	want := 0.5 + 0.5*math.Log2(2.0/3.0)
	assert.InDelta(t, want, KLDivergenceBinary([2]float64{0.5, 0.5}, [2]float64{0.25, 0.75}), 1e-12)

	// Not symmetric.
	a, b := [2]float64{0.9, 0.1}, [2]float64{0.5, 0.5}
	assert.NotEqual(t, KLDivergenceBinary(a, b), KLDivergenceBinary(b, a))
}
