package rng

import "fmt"

// Mix64State is the 64-bit generator srandom calls xorshft64. It is splitmix64:
// a Weyl sequence with a fixed odd increment fed through an invertible
// finalizer, so a single output gives the whole state away.
type Mix64State struct {
	State uint64
}

func NewMix64(seed uint64) *Mix64State {
	return &Mix64State{
		State: seed,
	}
}

func (state *Mix64State) Next() uint64 {
	return mix64PermuteState(&state.State)
}

// Skip moves the state count outputs forward, or backward for negative counts.
func (state *Mix64State) Skip(count int64) {
	state.State += uint64(count) * mix64Increment
}

func (state *Mix64State) String() string {
	return fmt.Sprintf("%016x", state.State)
}

// Mix64Unmix returns the state the generator held right after producing
// output, i.e. the post-increment value that was finalized.
func Mix64Unmix(output uint64) uint64 {
	return mix64Unfinalize(output)
}
