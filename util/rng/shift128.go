package rng

import (
	"github.com/xor-shift/srandom-break/util"
)

// Shift128State is xorshift128+ as srandom ships it. The state transform is
// linear over GF(2), only the output addition is not.
type Shift128State struct {
	State [2]uint64
}

func NewShift128(s0, s1 uint64) *Shift128State {
	return &Shift128State{
		State: [2]uint64{s0, s1},
	}
}

func (state *Shift128State) Next() uint64 {
	return xorshift128PPermuteState(state.State[:])
}

// Undo steps the generator back by one output.
func (state *Shift128State) Undo() {
	xorshift128PUnpermuteState(state.State[:])
}

func (state *Shift128State) String() string {
	return util.ArrayToString(state.State[:])
}
