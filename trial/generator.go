// Package trial draws batches of heralded binary-channel trials.
//
// Every sampling call takes an explicit rand.Source so a batch is a pure
// function of its parameters and seed.
package trial

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidParameter is returned for out-of-range inputs before any sampling.
var ErrInvalidParameter = errors.New("invalid parameter")

// Mode selects how the herald outcome is produced.
type Mode string

const (
	// ModeDirect draws the herald directly as Bernoulli(PSucc).
	ModeDirect Mode = "direct"
	// ModeNoisy passes a true herald through a readout-error channel and
	// keeps only trials that are both truly and observably heralded.
	ModeNoisy Mode = "noisy"
)

// ParseMode maps a config string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDirect, "":
		return ModeDirect, nil
	case ModeNoisy:
		return ModeNoisy, nil
	}
	return "", fmt.Errorf("%w: unknown herald mode %q", ErrInvalidParameter, s)
}

// Trial is a single attempt. Present only carries information when Herald is set.
type Trial struct {
	Future  bool
	Herald  bool
	Present bool
}

// Batch is an ordered set of independent trials.
type Batch struct {
	Trials []Trial
}

// Len returns the number of trials.
func (b Batch) Len() int { return len(b.Trials) }

// Params are the channel parameters for one batch.
type Params struct {
	Trials       int
	PSucc        float64 // herald probability, (0,1]
	Noise        float64 // flip probability on heralded trials, [0,1)
	ReadoutError float64 // herald readout flip probability, [0,1); ModeNoisy only
	Mode         Mode
}

// Validate checks every field against its documented range.
func (p Params) Validate() error {
	if p.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidParameter, p.Trials)
	}
	if !(p.PSucc > 0 && p.PSucc <= 1) {
		return fmt.Errorf("%w: p_succ must be in (0,1], got %g", ErrInvalidParameter, p.PSucc)
	}
	if !(p.Noise >= 0 && p.Noise < 1) {
		return fmt.Errorf("%w: noise must be in [0,1), got %g", ErrInvalidParameter, p.Noise)
	}
	if !(p.ReadoutError >= 0 && p.ReadoutError < 1) {
		return fmt.Errorf("%w: readout error must be in [0,1), got %g", ErrInvalidParameter, p.ReadoutError)
	}
	switch p.Mode {
	case ModeDirect, ModeNoisy, "":
	default:
		return fmt.Errorf("%w: unknown herald mode %q", ErrInvalidParameter, p.Mode)
	}
	return nil
}

// NewSource returns a seeded random source for Generate.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// Generate draws p.Trials trials from src.
//
// Columns are drawn in a fixed order (future, herald, readout, flip, fallback
// present bit) so the same source state always yields the same batch.
func Generate(p Params, src rand.Source) (Batch, error) {
	if err := p.Validate(); err != nil {
		return Batch{}, err
	}
	if src == nil {
		return Batch{}, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}

	n := p.Trials
	trials := make([]Trial, n)

	coin := distuv.Bernoulli{P: 0.5, Src: src}
	for i := range trials {
		trials[i].Future = coin.Rand() == 1
	}

	herald := distuv.Bernoulli{P: p.PSucc, Src: src}
	for i := range trials {
		trials[i].Herald = herald.Rand() == 1
	}

	if p.Mode == ModeNoisy {
		readout := distuv.Bernoulli{P: p.ReadoutError, Src: src}
		for i := range trials {
			observed := trials[i].Herald != (readout.Rand() == 1)
			trials[i].Herald = trials[i].Herald && observed
		}
	}

	flip := distuv.Bernoulli{P: p.Noise, Src: src}
	flips := make([]bool, n)
	for i := range flips {
		flips[i] = flip.Rand() == 1
	}

	// Unheralded trials keep an independent fair bit.
	for i := range trials {
		fallback := coin.Rand() == 1
		if trials[i].Herald {
			trials[i].Present = trials[i].Future != flips[i]
		} else {
			trials[i].Present = fallback
		}
	}
	return Batch{Trials: trials}, nil
}
