package attack

import (
	"github.com/xor-shift/srandom-break/srandom"
)

// Resync finds the read in which the oracle's position counter wrapped. A
// wrap re-keys the selector before the data block is served, which shows up
// as a first data draw the known Mix64 stream did not predict. After that
// read the oracle's counter is zero.
func (a *Attacker) Resync() error {
	for i := 0; i < srandom.PositionLimit; i++ {
		expected := a.shadow.Mix64
		predicted := expected.Next()

		state, z1, err := a.recoverWindow()
		if err != nil {
			return phaseError(PhaseResync, err)
		}

		a.shadow.Mix64 = state

		if z1 != predicted {
			a.shadow.Position = 0

			a.log.Info().
				Int("window_reads", i+1).
				Str("mix64", state.String()).
				Msg("position counter synchronised")

			return nil
		}

		a.log.Trace().Int("window", i).Msg("no selector re-key")
	}

	return phaseError(PhaseResync, ErrResyncExhausted)
}
