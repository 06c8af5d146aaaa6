package srandom

import (
	"fmt"

	"github.com/xor-shift/srandom-break/util/rng"
)

// Instance is one of the four parallel generators inside an srandom module.
// The attack also uses it as its shadow reconstruction, so every field that
// decides future output is exported.
type Instance struct {
	Variant Variant
	Layout  Layout

	Mix64 rng.Mix64State
	// Shift128 keys every selector re-key, so the narrow variants carry it too.
	Shift128 rng.Shift128State
	Position int

	words []uint64
}

// NewInstance allocates a zeroed instance of v. It panics if v is not one of
// Variants; check Valid first for untrusted input.
func NewInstance(v Variant) *Instance {
	if !v.Valid() {
		panic(fmt.Sprintf("srandom: NewInstance(%s): %v", v, ErrUnknownVariant))
	}

	layout := v.Layout()

	return &Instance{
		Variant: v,
		Layout:  layout,
		words:   make([]uint64, layout.WordCount),
	}
}

// Array returns the storage view of array k. Views of the buggy layouts
// overlap, writes through one are visible through the others.
func (inst *Instance) Array(k int) []uint64 {
	offset := inst.Layout.ArrayOffset(k)
	end := offset + inst.Layout.ArrayWidth

	return inst.words[offset:end:end]
}

func (inst *Instance) Selector() []uint64 {
	return inst.Array(inst.Layout.NumArrays)
}

// Storage exposes the flat word storage.
func (inst *Instance) Storage() []uint64 {
	return inst.words
}

func (inst *Instance) Clone() *Instance {
	clone := *inst
	clone.words = make([]uint64, len(inst.words))
	copy(clone.words, inst.words)

	return &clone
}

// SameServedState reports whether both instances will produce identical
// output forever: equal generator states, equal position and equal content
// in every word that can be served or re-keyed.
func (inst *Instance) SameServedState(other *Instance) bool {
	if inst.Variant != other.Variant ||
		inst.Mix64 != other.Mix64 ||
		inst.Shift128 != other.Shift128 ||
		inst.Position != other.Position {
		return false
	}

	for k := 0; k <= inst.Layout.NumArrays; k++ {
		ours, theirs := inst.Array(k)[:BlockWords], other.Array(k)[:BlockWords]
		for i := range ours {
			if ours[i] != theirs[i] {
				return false
			}
		}
	}

	return true
}
