package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/channel"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/trial"
)

func TestFromBatchHandBuilt(t *testing.T) {
	b := trial.Batch{Trials: []trial.Trial{
		{Future: true, Herald: true, Present: true},
		{Future: false, Herald: true, Present: true}, // error
		{Future: true, Herald: true, Present: true},
		{Future: false, Herald: true, Present: false},
		{Future: true, Herald: false, Present: false},
		{Future: false, Herald: false, Present: true},
		{Future: true, Herald: false, Present: true},
		{Future: false, Herald: false, Present: false},
	}}
	est, err := FromBatch(b)
	require.NoError(t, err)

	assert.Equal(t, 8, est.Trials)
	assert.Equal(t, 4, est.Successes)
	assert.Equal(t, 0.5, est.SuccessRate)
	assert.Equal(t, 0.25, est.ErrorRate)
	assert.InDelta(t, channel.MutualInformationBSC(0.25), est.ConditionalBits, 1e-15)
	assert.InDelta(t, 0.5*channel.MutualInformationBSC(0.25), est.BitsPerAttempt, 1e-15)
	assert.False(t, est.Degenerate())
}

func TestFromBatchDegenerate(t *testing.T) {
	b := trial.Batch{Trials: []trial.Trial{
		{Future: true, Present: false},
		{Future: false, Present: false},
	}}
	est, err := FromBatch(b)
	require.NoError(t, err)
	assert.True(t, est.Degenerate())
	assert.Zero(t, est.SuccessRate)
	assert.Zero(t, est.ErrorRate)
	assert.Zero(t, est.ConditionalBits)
	assert.Zero(t, est.BitsPerAttempt)
}

func TestFromBatchEmpty(t *testing.T) {
	_, err := FromBatch(trial.Batch{})
	assert.ErrorIs(t, err, trial.ErrInvalidParameter)
}

func TestFromBatchNoiselessRecoversOneBit(t *testing.T) {
	for _, n := range []int{1000, 10000, 100000} {
		b, err := trial.Generate(trial.Params{Trials: n, PSucc: 0.3, Noise: 0}, trial.NewSource(5))
		require.NoError(t, err)
		est, err := FromBatch(b)
		require.NoError(t, err)
		assert.Zero(t, est.ErrorRate, "n=%d", n)
		assert.InDelta(t, 1.0, est.ConditionalBits, 1e-9, "n=%d", n)
	}
}

func TestFromBatchErrorRateTracksNoise(t *testing.T) {
	b, err := trial.Generate(trial.Params{Trials: 200000, PSucc: 0.5, Noise: 0.1}, trial.NewSource(9))
	require.NoError(t, err)
	est, err := FromBatch(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, est.ErrorRate, 0.005)
}
