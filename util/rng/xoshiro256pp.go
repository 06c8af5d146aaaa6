package rng

import (
	"encoding/binary"

	"github.com/xor-shift/srandom-break/util"
)

// Xoshiro256PPState doubles as a reproducible seed stream: it implements
// io.Reader so it can stand in for the cryptographic source when seeding a
// generator in tests and in the CLI's --seed mode.
type Xoshiro256PPState struct {
	State [4]uint64

	spare  [8]byte
	unread int
}

func NewXoshiro256PP() *Xoshiro256PPState {
	state := Xoshiro256PPState{
		State: [4]uint64{0, 0, 0, 0},
	}

	return &state
}

// NewXoshiro256PPFromSeed expands seed through splitmix64, which is how the
// xoshiro authors recommend initializing the state.
func NewXoshiro256PPFromSeed(seed uint64) *Xoshiro256PPState {
	state := NewXoshiro256PP()
	expander := NewMix64(seed)

	for i := range state.State {
		state.State[i] = expander.Next()
	}

	return state
}

func (state *Xoshiro256PPState) Next() uint64 {
	return xoshiro256PPPermuteState(state.State[:])
}

// Read fills p with little-endian outputs. It never fails.
func (state *Xoshiro256PPState) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if state.unread == 0 {
			binary.LittleEndian.PutUint64(state.spare[:], state.Next())
			state.unread = len(state.spare)
		}

		copied := copy(p[n:], state.spare[len(state.spare)-state.unread:])
		state.unread -= copied
		n += copied
	}

	return n, nil
}

func (state *Xoshiro256PPState) String() string {
	return util.ArrayToString(state.State[:])
}
