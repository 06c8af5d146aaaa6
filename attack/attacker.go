// Package attack recovers the complete state of an srandom instance from its
// output alone and builds a shadow instance that predicts every later read.
package attack

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/xor-shift/srandom-break/gf2"
	"github.com/xor-shift/srandom-break/srandom"
)

const (
	DefaultValidateReads   = 16
	DefaultMaxFillRestarts = 8
	DefaultMaxFillReads    = srandom.PositionLimit * 4
)

type Attacker struct {
	variant srandom.Variant
	oracle  io.Reader
	log     zerolog.Logger

	observer        gf2.Observer
	validateReads   int
	maxFillRestarts int
	maxFillReads    int

	shadow    *srandom.Instance
	oracleOps int
}

type Option func(*Attacker)

func WithLogger(log zerolog.Logger) Option {
	return func(a *Attacker) {
		a.log = log
	}
}

// WithObserver hands obs every checkpoint of the Shift128 solve.
func WithObserver(obs gf2.Observer) Option {
	return func(a *Attacker) {
		a.observer = obs
	}
}

func WithValidateReads(n int) Option {
	return func(a *Attacker) {
		a.validateReads = n
	}
}

// WithFillLimits bounds the array fill: how often a buggy-layout pass may be
// restarted and how many oracle reads a single pass may take.
func WithFillLimits(restarts, reads int) Option {
	return func(a *Attacker) {
		a.maxFillRestarts = restarts
		a.maxFillReads = reads
	}
}

// New prepares an attack on oracle, which must serve variant v. Each Read on
// oracle is taken to be exactly one srandom read.
func New(v srandom.Variant, oracle io.Reader, opts ...Option) (*Attacker, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", srandom.ErrUnknownVariant, int(v))
	}

	a := &Attacker{
		variant:         v,
		oracle:          oracle,
		log:             zerolog.Nop(),
		validateReads:   DefaultValidateReads,
		maxFillRestarts: DefaultMaxFillRestarts,
		maxFillReads:    DefaultMaxFillReads,
		shadow:          srandom.NewInstance(v),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.log = a.log.With().Str("variant", v.String()).Logger()

	return a, nil
}

// Shadow returns the reconstruction in its current, possibly partial, state.
func (a *Attacker) Shadow() *srandom.Instance {
	return a.shadow
}

// OracleReads is the number of oracle reads issued so far.
func (a *Attacker) OracleReads() int {
	return a.oracleOps
}

// Run executes every phase in order and returns the shadow instance once it
// has been validated against the oracle.
func (a *Attacker) Run() (*srandom.Instance, error) {
	phases := []func() error{
		a.RecoverMix64,
		a.Resync,
		a.RecoverShift128,
		a.ReconstructArrays,
		a.Validate,
	}

	for _, phase := range phases {
		if err := phase(); err != nil {
			a.log.Error().Err(err).Int("oracle_reads", a.oracleOps).Msg("attack failed")
			return nil, err
		}
	}

	a.log.Info().
		Str("mix64", a.shadow.Mix64.String()).
		Str("shift128", a.shadow.Shift128.String()).
		Int("position", a.shadow.Position).
		Int("oracle_reads", a.oracleOps).
		Msg("full state recovered")

	return a.shadow, nil
}

func (a *Attacker) read(size int) ([]byte, error) {
	buf := make([]byte, size)

	n, err := a.oracle.Read(buf)
	a.oracleOps++

	if n < size {
		if err != nil {
			return nil, fmt.Errorf("%w: got %d of %d bytes: %v", ErrOracleShortRead, n, size, err)
		}

		return nil, fmt.Errorf("%w: got %d of %d bytes", ErrOracleShortRead, n, size)
	}

	return buf, nil
}

func (a *Attacker) readWords(count int) ([]uint64, error) {
	buf, err := a.read(count * 8)
	if err != nil {
		return nil, err
	}

	return srandom.Words(buf), nil
}

// skipRead issues a one-byte oracle read whose content is irrelevant and
// mirrors the single data re-key it causes on scratch.
func (a *Attacker) skipRead(scratch []uint64) error {
	if _, err := a.read(1); err != nil {
		return err
	}

	a.shadow.RekeyData(scratch)

	return nil
}
