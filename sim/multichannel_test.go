package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/bounds"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

func TestSimulateMultiChannelSingleIsLoopDPI(t *testing.T) {
	res, err := SimulateMultiChannel(DefaultMultiParams(1))
	require.NoError(t, err)
	assert.Equal(t, bounds.LoopDPI(0.05), res.BoundBits)
	assert.Zero(t, res.CorrectionBits)
	assert.InDelta(t, res.MeanSuccesses, res.AnySuccessRate, 1e-15)
}

func TestSimulateMultiChannelGainScales(t *testing.T) {
	for m := 1; m <= 5; m++ {
		res, err := SimulateMultiChannel(DefaultMultiParams(m))
		require.NoError(t, err)
		assert.InDelta(t, float64(m)*0.05*0.9, res.GainBits, 0.01, "m=%d", m)
		assert.GreaterOrEqual(t, res.CorrectionBits, 0.0)
		assert.LessOrEqual(t, res.BoundBits, res.NaiveBoundBits)
		assert.LessOrEqual(t, res.AnySuccessRate, res.MeanSuccesses+1e-12)
	}
}

func TestSimulateMultiChannelDeterministic(t *testing.T) {
	p := MultiParams{Trials: 2000, Channels: 3, PSucc: 0.2, BitsPerSuccess: 0.5, Seed: 9}
	a, err := SimulateMultiChannel(p)
	require.NoError(t, err)
	b, err := SimulateMultiChannel(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulateMultiChannelInvalid(t *testing.T) {
	bad := []MultiParams{
		{Trials: 0, Channels: 1, PSucc: 0.1},
		{Trials: 10, Channels: 0, PSucc: 0.1},
		{Trials: 10, Channels: 2, PSucc: 0},
		{Trials: 10, Channels: 2, PSucc: 0.1, BitsPerSuccess: 2},
	}
	for _, p := range bad {
		_, err := SimulateMultiChannel(p)
		assert.ErrorIs(t, err, trial.ErrInvalidParameter, "%+v", p)
	}
}
