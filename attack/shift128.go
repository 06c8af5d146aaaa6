package attack

import (
	"github.com/xor-shift/srandom-break/srandom"
	"github.com/xor-shift/srandom-break/util/rng"
)

const (
	// four observed re-keys plus the block they started from
	shiftWindowBlocks = 5
	shiftWindowWords  = shiftWindowBlocks * srandom.BlockWords
	// a read of whole blocks re-keys once past its last block
	shiftWindowRekeys = shiftWindowBlocks + 1
	// Shift128 draws per 128-bit keyed re-key
	shiftDrawsPerRekey = srandom.BlockWords / 2
)

// RecoverShift128 reads five consecutive states of one array and recovers
// every Shift128 draw of the four re-keys between them. Their LSBs are linear
// in the Shift128 state, 128 of them pin it down.
//
// Only the 128-bit keyed data re-key exposes Shift128, so the wide variants
// are rejected.
func (a *Attacker) RecoverShift128() error {
	if a.shadow.Layout.Narrow {
		return phaseError(PhaseShift128, ErrUnsupportedVariant)
	}

	// the counter was zero, this read moves it to one without a wrap
	a.shadow.Position++

	b, err := a.readWords(shiftWindowWords)
	if err != nil {
		return phaseError(PhaseShift128, err)
	}

	var lsbs [2]uint64
	bit := 0
	push := func(v uint64) {
		lsbs[bit/64] |= (v & 1) << (bit % 64)
		bit++
	}

	for i := srandom.BlockWords; i < shiftWindowWords; i += srandom.BlockWords {
		z1 := a.shadow.Mix64.Next()
		z2 := a.shadow.Mix64.Next()
		z3 := a.shadow.Mix64.Next()

		after, before := b[i:], b[i-srandom.BlockWords:]
		for j := 0; j < srandom.BlockWords; j += 4 {
			if z1&1 == 0 {
				push(after[j+2] ^ before[j+3] ^ z2)
				push(after[j+1] ^ before[j+2] ^ z1)
			} else {
				push(after[j] ^ before[j+1] ^ z2)
				push(after[j+2] ^ before[j+3] ^ z3)
			}
		}
	}

	a.shadow.Mix64.Skip(wideKeyDraws * (shiftWindowRekeys - (shiftWindowBlocks - 1)))

	state, err := rng.RecoverShift128(lsbs, a.observer)
	if err != nil {
		return phaseError(PhaseShift128, err)
	}

	for i := 0; i < shiftWindowRekeys*shiftDrawsPerRekey; i++ {
		state.Next()
	}

	a.shadow.Shift128 = state

	a.log.Info().
		Str("shift128", state.String()).
		Str("mix64", a.shadow.Mix64.String()).
		Msg("shift128 state recovered")

	return nil
}
