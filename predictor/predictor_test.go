package predictor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/channel"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		p, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}
	_, err := New("qutip")
	assert.ErrorIs(t, err, ErrUnknownPredictor)
	assert.Equal(t, []string{"statevector", "surrogate", "teleportation"}, Names())
}

func TestSurrogateKnownPoints(t *testing.T) {
	p, err := Surrogate{}.Predict(Basis{Theta: 0, Phi: 0, Depol: 0.03})
	require.NoError(t, err)
	assert.InDelta(t, 0.15*0.97+0.02, p.PSucc, 1e-15)
	assert.InDelta(t, 0.05, p.ErrorRate, 1e-15)

	p, err = Surrogate{}.Predict(Basis{Theta: math.Pi / 2, Phi: math.Pi, Depol: 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.02, p.PSucc, 1e-15)
	// 0.05 + 0.2 + 0.1 = 0.35
	assert.InDelta(t, 0.35, p.ErrorRate, 1e-15)
}

func TestSurrogateClampsError(t *testing.T) {
	// Any tilt with a large phase cannot push the error above 0.49.
	p, err := Surrogate{}.Predict(Basis{Theta: math.Pi / 2, Phi: math.Pi, Depol: 0})
	require.NoError(t, err)
	assert.LessOrEqual(t, p.ErrorRate, MaxErrorRate)
}

func TestStateVectorMatchesSurrogate(t *testing.T) {
	for i := 0; i <= 12; i++ {
		for j := 0; j <= 12; j++ {
			b := Basis{
				Theta: math.Pi / 2 * float64(i) / 12,
				Phi:   2 * math.Pi * float64(j) / 12,
				Depol: 0.03,
			}
			want, err := Surrogate{}.Predict(b)
			require.NoError(t, err)
			got, err := StateVector{}.Predict(b)
			require.NoError(t, err)
			assert.InDelta(t, want.PSucc, got.PSucc, 1e-12, "%+v", b)
			assert.InDelta(t, want.ErrorRate, got.ErrorRate, 1e-12, "%+v", b)
		}
	}
}

func TestTeleportation(t *testing.T) {
	p, err := Teleportation{}.Predict(Basis{Depol: 0.02})
	require.NoError(t, err)
	assert.InDelta(t, 0.196, p.PSucc, 1e-15)
	assert.InDelta(t, 0.06, p.ErrorRate, 1e-15)

	p, err = Teleportation{}.Predict(Basis{Depol: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.01, p.PSucc)
}

func TestPredictRejectsBadBasis(t *testing.T) {
	for _, name := range Names() {
		p, err := New(name)
		require.NoError(t, err)
		_, err = p.Predict(Basis{Depol: 1.5})
		assert.ErrorIs(t, err, trial.ErrInvalidParameter, name)
		_, err = p.Predict(Basis{Theta: math.NaN()})
		assert.ErrorIs(t, err, trial.ErrInvalidParameter, name)
	}
}

func TestGain(t *testing.T) {
	assert.InDelta(t, 0.1*channel.MutualInformationBSC(0.05), Gain(Prediction{PSucc: 0.1, ErrorRate: 0.05}), 1e-15)
	assert.InDelta(t, 0.0, Gain(Prediction{PSucc: 0.1, ErrorRate: 0.5}), 1e-12)
}
