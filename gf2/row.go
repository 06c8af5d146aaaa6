// Package gf2 solves 128-variable linear systems over GF(2).
//
// Rows are packed two words wide; column i lives in bit i%64 of word i/64.
// The packing is only a storage detail, every operation goes through Row and
// Word.
package gf2

import "fmt"

// Size is the number of unknowns and equations of a System.
const Size = 128

// Row is a 128-bit vector over GF(2).
type Row [2]uint64

// Unit returns the row with only column i set.
func Unit(i int) Row {
	var r Row
	r.SetBit(i, 1)
	return r
}

func (r Row) Bit(i int) int {
	return int(r[i/64]>>(uint(i)%64)) & 1
}

func (r *Row) SetBit(i, value int) {
	word, shift := i/64, uint(i)%64
	r[word] = r[word]&^(1<<shift) | uint64(value&1)<<shift
}

func (r Row) Xor(o Row) Row {
	return Row{r[0] ^ o[0], r[1] ^ o[1]}
}

func (r Row) IsZero() bool {
	return r[0] == 0 && r[1] == 0
}

func (r Row) String() string {
	return fmt.Sprintf("%016x%016x", r[1], r[0])
}

// Word is a 64-bit machine word whose bits are tracked symbolically: bit i is
// the XOR of the unknowns set in Word[i].
type Word [64]Row

func (w Word) Xor(o Word) Word {
	var ret Word

	for i := range w {
		ret[i] = w[i].Xor(o[i])
	}

	return ret
}

func (w Word) Shl(shift int) Word {
	var ret Word

	for i := 63 - shift; i >= 0; i-- {
		ret[i+shift] = w[i]
	}

	return ret
}

func (w Word) Shr(shift int) Word {
	var ret Word

	for i := 0; i < 64-shift; i++ {
		ret[i] = w[i+shift]
	}

	return ret
}
