package rng

import "unsafe"

func GenericRotLeft[T uint8 | uint16 | uint32 | uint64](x T, k int) T {
	bitWidth := int(unsafe.Sizeof(x) * 8)
	return (x << k) | (x >> (bitWidth - k))
}

// InverseMod2Pow64 returns y such that x*y == 1 (mod 2^64). x must be odd.
// Every Newton round doubles the number of correct low bits, starting from the
// 3 bits that x*x == 1 (mod 8) gives for free, so 5 rounds cover 64 bits.
func InverseMod2Pow64(x uint64) uint64 {
	y := x

	for i := 0; i < 5; i++ {
		y *= 2 - x*y
	}

	return y
}

// undoRightShiftXor inverts y = x ^ (x >> shift).
func undoRightShiftXor(y uint64, shift uint) uint64 {
	x := y
	for s := shift; s < 64; s += shift {
		x ^= y >> s
	}

	return x
}

// undoLeftShiftXor inverts y = x ^ (x << shift).
func undoLeftShiftXor(y uint64, shift uint) uint64 {
	x := y
	for s := shift; s < 64; s += shift {
		x ^= y << s
	}

	return x
}
