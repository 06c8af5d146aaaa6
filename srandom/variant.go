// Package srandom emulates the array cache of the srandom 1.41.1 kernel
// module, including the two shape defects of its *_ARRAY_BUG versions.
package srandom

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BlockBytes is the size of one block served out of an array.
	BlockBytes = 512
	// BlockWords is BlockBytes in 64-bit words. Only these words of an array
	// are ever served or re-keyed.
	BlockWords = BlockBytes / 8
	// PositionLimit is where the position counter wraps and the selector is
	// re-keyed.
	PositionLimit = 1021
	// PositionsPerWord is how many selector nibbles one selector word holds.
	PositionsPerWord = 16

	normArrayWidth = 67
	wideArrayWidth = 65
	normArrayCount = 16
	wideArrayCount = 32
)

var ErrUnknownVariant = errors.New("unknown srandom variant")

// Variant numbers follow the version constants of the original module, which
// also fixes the order in which a Generator is seeded.
type Variant int

const (
	VariantNormBuggy Variant = iota
	VariantNorm
	VariantWideBuggy
	VariantWide
)

// Variants lists every variant in version order.
var Variants = []Variant{VariantNormBuggy, VariantNorm, VariantWideBuggy, VariantWide}

var variantNames = map[Variant]string{
	VariantNormBuggy: "norm-buggy",
	VariantNorm:      "norm",
	VariantWideBuggy: "wide-buggy",
	VariantWide:      "wide",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}

	return fmt.Sprintf("Variant(%d)", int(v))
}

func (v Variant) Valid() bool {
	return v >= VariantNormBuggy && v <= VariantWide
}

func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Layout describes how a variant's flat word storage is carved into arrays.
//
// Array k occupies words [k*Stride, k*Stride+ArrayWidth) and array NumArrays
// is the selector. A normal layout has Stride == ArrayWidth. The buggy shape
// declared its rows as [NumArrays+1] words, so Stride is NumArrays+1 while
// every read and re-key still touches BlockWords words: neighbouring arrays
// overlap, and the last data arrays overlap the selector.
type Layout struct {
	NumArrays  int
	ArrayWidth int
	Stride     int
	WordCount  int
	BuggyShape bool
	// Narrow variants re-key their data arrays from Mix64 alone.
	Narrow bool
}

func (v Variant) Layout() Layout {
	layout := Layout{
		NumArrays:  normArrayCount,
		ArrayWidth: normArrayWidth,
	}

	if v == VariantWide || v == VariantWideBuggy {
		layout.NumArrays = wideArrayCount
		layout.ArrayWidth = wideArrayWidth
		layout.Narrow = true
	}

	layout.WordCount = (layout.NumArrays + 1) * layout.ArrayWidth
	layout.Stride = layout.ArrayWidth

	if v == VariantNormBuggy || v == VariantWideBuggy {
		layout.BuggyShape = true
		layout.Stride = layout.NumArrays + 1
	}

	return layout
}

// ArrayOffset is the first storage word of array k.
func (l Layout) ArrayOffset(k int) int {
	return k * l.Stride
}

// SelectorOffset is the first storage word of the selector.
func (l Layout) SelectorOffset() int {
	return l.ArrayOffset(l.NumArrays)
}

// SelectorOverlap returns how many leading selector words are shared with
// data arrays. It is zero for normal layouts.
func (l Layout) SelectorOverlap() int {
	lastEnd := l.ArrayOffset(l.NumArrays-1) + BlockWords
	if overlap := lastEnd - l.SelectorOffset(); overlap > 0 {
		return overlap
	}

	return 0
}

// FirstSafePosition is the first position counter value whose selector word
// no data array can write.
func (l Layout) FirstSafePosition() int {
	return PositionsPerWord * l.SelectorOverlap()
}
