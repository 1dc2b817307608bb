package trial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heraldRate(b Batch) float64 {
	n := 0
	for _, tr := range b.Trials {
		if tr.Herald {
			n++
		}
	}
	return float64(n) / float64(b.Len())
}

func TestGenerateDeterministic(t *testing.T) {
	p := Params{Trials: 5000, PSucc: 0.2, Noise: 0.1, ReadoutError: 0.05, Mode: ModeNoisy}

	a, err := Generate(p, NewSource(7))
	require.NoError(t, err)
	b, err := Generate(p, NewSource(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Generate(p, NewSource(8))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateNoiselessHeraldedCopiesFuture(t *testing.T) {
	b, err := Generate(Params{Trials: 20000, PSucc: 0.3, Noise: 0}, NewSource(1))
	require.NoError(t, err)
	require.Equal(t, 20000, b.Len())

	for i, tr := range b.Trials {
		if tr.Herald && tr.Present != tr.Future {
			t.Fatalf("trial %d: heralded present bit differs from future bit with zero noise", i)
		}
	}
}

func TestGenerateUnheraldedIsIndependent(t *testing.T) {
	b, err := Generate(Params{Trials: 100000, PSucc: 0.01, Noise: 0}, NewSource(3))
	require.NoError(t, err)

	agree, total := 0, 0
	for _, tr := range b.Trials {
		if tr.Herald {
			continue
		}
		total++
		if tr.Present == tr.Future {
			agree++
		}
	}
	assert.InDelta(t, 0.5, float64(agree)/float64(total), 0.01)
}

func TestGenerateHeraldRate(t *testing.T) {
	b, err := Generate(Params{Trials: 200000, PSucc: 0.05}, NewSource(42))
	require.NoError(t, err)
	assert.InDelta(t, 0.05, heraldRate(b), 0.002)
}

func TestGenerateNoisyHeraldOnlyLosesSuccesses(t *testing.T) {
	// AND of true and observed herald: readout error can only remove
	// successes, so the rate is p_succ * (1 - readout_error).
	p := Params{Trials: 200000, PSucc: 0.2, ReadoutError: 0.1, Mode: ModeNoisy}
	b, err := Generate(p, NewSource(11))
	require.NoError(t, err)
	assert.InDelta(t, 0.18, heraldRate(b), 0.004)
}

func TestGenerateInvalidParams(t *testing.T) {
	cases := []struct {
		name string
		p    Params
	}{
		{"zero trials", Params{Trials: 0, PSucc: 0.1}},
		{"negative trials", Params{Trials: -5, PSucc: 0.1}},
		{"zero p_succ", Params{Trials: 10, PSucc: 0}},
		{"p_succ above one", Params{Trials: 10, PSucc: 1.2}},
		{"negative noise", Params{Trials: 10, PSucc: 0.1, Noise: -0.1}},
		{"noise one", Params{Trials: 10, PSucc: 0.1, Noise: 1}},
		{"readout above one", Params{Trials: 10, PSucc: 0.1, ReadoutError: 2, Mode: ModeNoisy}},
		{"bad mode", Params{Trials: 10, PSucc: 0.1, Mode: "sideways"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.p, NewSource(1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}

	_, err := Generate(Params{Trials: 10, PSucc: 0.5}, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("noisy")
	require.NoError(t, err)
	assert.Equal(t, ModeNoisy, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDirect, m)

	_, err = ParseMode("quantum")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
