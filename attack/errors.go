package attack

import (
	"errors"
	"fmt"

	"github.com/xor-shift/srandom-break/gf2"
)

var (
	ErrOracleShortRead        = errors.New("oracle returned fewer bytes than requested")
	ErrAmbiguousAlignment     = errors.New("window fits neither re-key alignment")
	ErrResyncExhausted        = errors.New("position counter never wrapped")
	ErrReconstructionMismatch = errors.New("shadow output differs from oracle output")
	ErrUnsupportedVariant     = errors.New("variant keeps its Shift128 stream out of served output")
	ErrFillExhausted          = errors.New("arrays could not all be observed")

	// ErrSingularSystem is returned when the Shift128 LSB system has no unique
	// solution.
	ErrSingularSystem = gf2.ErrSingular
)

type Phase int

const (
	PhaseMix64 Phase = iota + 1
	PhaseResync
	PhaseShift128
	PhaseArrays
	PhaseValidate
)

func (p Phase) String() string {
	switch p {
	case PhaseMix64:
		return "mix64 recovery"
	case PhaseResync:
		return "position resync"
	case PhaseShift128:
		return "shift128 recovery"
	case PhaseArrays:
		return "array reconstruction"
	case PhaseValidate:
		return "validation"
	}

	return fmt.Sprintf("Phase(%d)", int(p))
}

// PhaseError tags an error with the phase it stopped the attack in.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func phaseError(phase Phase, err error) error {
	if err == nil {
		return nil
	}

	return &PhaseError{Phase: phase, Err: err}
}
