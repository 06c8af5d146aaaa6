package attack

import (
	"github.com/xor-shift/srandom-break/srandom"
	"github.com/xor-shift/srandom-break/util/rng"
)

// windowWords covers one served block plus the first group of the block the
// following re-key produced. A read of this size re-keys twice.
const windowWords = srandom.BlockWords + 4

const (
	// mix64 draws of one 128-bit keyed re-key
	wideKeyDraws = 3
	// mix64 draws of one narrow re-key
	narrowKeyDraws = 1 + srandom.BlockWords/4
)

// fitNormWindow solves the first group of a 128-bit keyed re-key for its
// Mix64 draws. w[0:4] is the group before and w[64:68] after. Either branch
// hides one draw behind a plain xor, which Mix64Unmix turns into a state; the
// other branch equation then has to hold for the guess to be accepted.
//
// The returned state is the one after the second re-key of the window read.
func fitNormWindow(w []uint64) (state rng.Mix64State, z1 uint64, ok bool) {
	b := w[srandom.BlockWords:]

	z3 := w[1] ^ b[0] ^ b[3]
	state.State = rng.Mix64Unmix(z3)
	state.Skip(-3)
	z1 = state.Next()
	z2 := state.Next()
	state.Skip(1)

	x := w[3] ^ b[2] ^ z2
	y := w[2] ^ b[1] ^ z1
	if z1&1 == 0 && b[3] == x^y^z3 {
		state.Skip(wideKeyDraws)
		return state, z1, true
	}

	z1 = w[2] ^ b[1] ^ b[3]
	state.State = rng.Mix64Unmix(z1)
	z2 = state.Next()
	z3 = state.Next()

	x = w[1] ^ b[0] ^ z2
	y = w[3] ^ b[2] ^ z3
	if z1&1 == 1 && b[3] == x^y^z1 {
		state.Skip(wideKeyDraws)
		return state, z1, true
	}

	return rng.Mix64State{}, 0, false
}

// fitWideWindow is fitNormWindow for the narrow re-key, where z1 and the first
// group draw are both exposed.
func fitWideWindow(w []uint64) (state rng.Mix64State, z1 uint64, ok bool) {
	b := w[srandom.BlockWords:]

	x := b[0] ^ w[1]
	z1 = b[3] ^ x
	state.State = rng.Mix64Unmix(z1)
	if z1&1 == 0 && x == state.Next() {
		state.Skip(narrowKeyDraws - 2 + narrowKeyDraws)
		return state, z1, true
	}

	x = b[1] ^ w[2]
	z1 = b[3] ^ x
	state.State = rng.Mix64Unmix(z1)
	if z1&1 == 1 && x == state.Next() {
		state.Skip(narrowKeyDraws - 2 + narrowKeyDraws)
		return state, z1, true
	}

	return rng.Mix64State{}, 0, false
}

func (a *Attacker) fitWindow(w []uint64) (rng.Mix64State, uint64, bool) {
	if a.shadow.Layout.Narrow {
		return fitWideWindow(w)
	}

	return fitNormWindow(w)
}

// recoverWindow reads one window and returns the Mix64 state following it
// together with the first draw of its first re-key.
func (a *Attacker) recoverWindow() (rng.Mix64State, uint64, error) {
	w, err := a.readWords(windowWords)
	if err != nil {
		return rng.Mix64State{}, 0, err
	}

	state, z1, ok := a.fitWindow(w)
	if !ok {
		return rng.Mix64State{}, 0, ErrAmbiguousAlignment
	}

	return state, z1, nil
}

// RecoverMix64 learns the shadow's Mix64 state from a single window.
func (a *Attacker) RecoverMix64() error {
	state, z1, err := a.recoverWindow()
	if err != nil {
		return phaseError(PhaseMix64, err)
	}

	a.shadow.Mix64 = state

	a.log.Info().
		Str("mix64", state.String()).
		Bool("odd_branch", z1&1 == 1).
		Msg("mix64 state recovered")

	return nil
}
