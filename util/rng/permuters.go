package rng

const (
	mix64Increment = 0x9E3779B97F4A7C15
	mix64Mul1      = 0xBF58476D1CE4E5B9
	mix64Mul2      = 0x94D049BB133111EB
)

var (
	mix64InvMul1 = InverseMod2Pow64(mix64Mul1)
	mix64InvMul2 = InverseMod2Pow64(mix64Mul2)
)

// advances a single uint64 state according to splitmix64
// https://prng.di.unimi.it/splitmix64.c
func mix64PermuteState(s *uint64) uint64 {
	*s += mix64Increment
	return mix64Finalize(*s)
}

func mix64Finalize(z uint64) uint64 {
	z = (z ^ (z >> 30)) * mix64Mul1
	z = (z ^ (z >> 27)) * mix64Mul2
	return z ^ (z >> 31)
}

// undoes mix64Finalize, one xor-shift-multiply stage at a time from the outside in
func mix64Unfinalize(z uint64) uint64 {
	z = undoRightShiftXor(z, 31) * mix64InvMul2
	z = undoRightShiftXor(z, 27) * mix64InvMul1
	return undoRightShiftXor(z, 30)
}

// permutes a [2]uint64 state according to xorshift128+ with the 23/17/26 shift triple
// https://vigna.di.unimi.it/ftp/papers/xorshiftplus.pdf
func xorshift128PPermuteState(s []uint64) (result uint64) {
	s0 := s[0]
	s1 := s[1]

	s0 ^= s0 << 23
	s0 ^= (s0 >> 17) ^ s1 ^ (s1 >> 26)

	s[0] = s1
	s[1] = s0
	result = s0 + s1

	return
}

// steps a [2]uint64 xorshift128+ state back by one output
func xorshift128PUnpermuteState(s []uint64) {
	s1 := s[0]
	s0 := s[1]

	s0 ^= s1 ^ (s1 >> 26)
	s0 = undoRightShiftXor(s0, 17)
	s0 = undoLeftShiftXor(s0, 23)

	s[0] = s0
	s[1] = s1
}

// permutes a [4]uint64 state according to xoshiro256++
// https://prng.di.unimi.it/xoshiro256plusplus.c
func xoshiro256PPPermuteState(s []uint64) (result uint64) {
	result = GenericRotLeft(s[0]+s[3], 23) + s[0]

	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = GenericRotLeft(s[3], 45)

	return
}
