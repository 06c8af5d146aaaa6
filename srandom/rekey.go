package srandom

// Both re-key loops stop four words short of the nominal array width, so only
// the first BlockWords words of an array ever change.
const (
	rekeyLimit       = normArrayWidth - 4
	rekeyLimitNarrow = wideArrayWidth - 4
)

// Rekey is the 128-bit keyed update: three Mix64 draws pick the branch and
// the constants, each group of four words folds in two Shift128 draws.
func (inst *Instance) Rekey(a []uint64) {
	z1 := inst.Mix64.Next()
	z2 := inst.Mix64.Next()
	z3 := inst.Mix64.Next()

	if z1&1 == 0 {
		for i := 0; i < rekeyLimit; i += 4 {
			x := inst.Shift128.Next()
			y := inst.Shift128.Next()
			a[i] = a[i+1] ^ x ^ y
			a[i+1] = a[i+2] ^ y ^ z1
			a[i+2] = a[i+3] ^ x ^ z2
			a[i+3] = x ^ y ^ z3
		}

		return
	}

	for i := 0; i < rekeyLimit; i += 4 {
		x := inst.Shift128.Next()
		y := inst.Shift128.Next()
		a[i] = a[i+1] ^ x ^ z2
		a[i+1] = a[i+2] ^ x ^ y
		a[i+2] = a[i+3] ^ y ^ z3
		a[i+3] = x ^ y ^ z1
	}
}

// RekeyNarrow is the update the wide variants apply to their data arrays. It
// draws from Mix64 alone, one draw for the branch and one per group.
func (inst *Instance) RekeyNarrow(a []uint64) {
	z1 := inst.Mix64.Next()

	if z1&1 == 0 {
		for i := 0; i < rekeyLimitNarrow; i += 4 {
			x := inst.Mix64.Next()
			a[i] = a[i+1] ^ x
			a[i+1] = a[i+2] ^ x ^ z1
			a[i+2] = a[i+3] ^ x ^ z1
			a[i+3] = x ^ z1
		}

		return
	}

	for i := 0; i < rekeyLimitNarrow; i += 4 {
		x := inst.Mix64.Next()
		a[i] = a[i+1] ^ x ^ z1
		a[i+1] = a[i+2] ^ x
		a[i+2] = a[i+3] ^ x ^ z1
		a[i+3] = x ^ z1
	}
}

// RekeyData applies whichever update the read path uses for data arrays.
func (inst *Instance) RekeyData(a []uint64) {
	if inst.Layout.Narrow {
		inst.RekeyNarrow(a)
		return
	}

	inst.Rekey(a)
}
