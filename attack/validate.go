package attack

import (
	"bytes"
	"fmt"
)

const validateReadSize = 8

// Validate compares further reads of the oracle and the shadow. A mismatch is
// not retried.
func (a *Attacker) Validate() error {
	want := make([]byte, validateReadSize)

	for i := 0; i < a.validateReads; i++ {
		got, err := a.read(validateReadSize)
		if err != nil {
			return phaseError(PhaseValidate, err)
		}

		_, _ = a.shadow.Read(want)

		if !bytes.Equal(got, want) {
			return phaseError(PhaseValidate, fmt.Errorf("%w: read %d: oracle %x, shadow %x", ErrReconstructionMismatch, i, got, want))
		}
	}

	a.log.Info().Int("reads", a.validateReads).Msg("shadow output matches oracle")

	return nil
}
