package rng

import (
	"fmt"

	"github.com/xor-shift/srandom-break/gf2"
)

// the same transform as xorshift128PPermuteState, applied to symbolic words
func xorshift128PPermuteSymbolic(s0, s1 *gf2.Word) {
	t := *s0

	t = t.Xor(t.Shl(23))
	t = t.Xor(t.Shr(17)).Xor(*s1).Xor(s1.Shr(26))

	*s0 = *s1
	*s1 = t
}

// Shift128System builds the equations tying the seed bits of a Shift128State
// to the least significant bits of its next gf2.Size outputs. Unknown i is bit
// i of State[0] for i < 64 and bit i-64 of State[1] otherwise. Row t is the
// LSB of output t+1: an addition's LSB is the XOR of its addends' LSBs, so it
// is linear in the seed even though the rest of the output is not.
//
// lsbs packs the observed bits, output 1 in bit 0 of lsbs[0].
func Shift128System(lsbs [2]uint64, obs gf2.Observer) *gf2.System {
	var s0, s1 gf2.Word
	sys := &gf2.System{}

	for i := 0; i < 64; i++ {
		s0[i] = gf2.Unit(i)
		s1[i] = gf2.Unit(64 + i)
	}

	for t := 0; t < gf2.Size; t++ {
		xorshift128PPermuteSymbolic(&s0, &s1)
		sys.Rows[t] = s0[0].Xor(s1[0])

		gf2.Notify(obs, gf2.StageBuild, t, sys)
	}

	sys.Answers = gf2.Row(lsbs)
	gf2.Notify(obs, gf2.StageAnswers, 0, sys)

	return sys
}

// RecoverShift128 returns the state that produced the gf2.Size outputs whose
// least significant bits are packed in lsbs.
func RecoverShift128(lsbs [2]uint64, obs gf2.Observer) (Shift128State, error) {
	sys := Shift128System(lsbs, obs)

	solution, err := sys.Solve(obs)
	if err != nil {
		return Shift128State{}, fmt.Errorf("recovering xorshift128+ state: %w", err)
	}

	return Shift128State{State: [2]uint64{solution[0], solution[1]}}, nil
}
