package srandom

import (
	"encoding/binary"
)

// NextArrayIndex consumes one selector nibble. Reaching PositionLimit wraps
// the counter and re-keys the selector.
func (inst *Instance) NextArrayIndex() int {
	selector := inst.Selector()
	word, roll := inst.Position/PositionsPerWord, inst.Position%PositionsPerWord

	index := int((selector[word] >> (roll * 4)) & uint64(inst.Layout.NumArrays-1))

	inst.Position++
	if inst.Position >= PositionLimit {
		inst.Position = 0
		inst.Rekey(selector)
	}

	return index
}

// Read serves len(p) bytes out of a single array. Blocks are copied out and
// the array re-keyed len(p)/BlockBytes+1 times, so a read of exactly one
// block re-keys twice. It never fails.
func (inst *Instance) Read(p []byte) (int, error) {
	array := inst.Array(inst.NextArrayIndex())

	var block [BlockBytes]byte
	for b := 0; b <= len(p)/BlockBytes; b++ {
		if offset := b * BlockBytes; offset < len(p) {
			PutWords(block[:], array[:BlockWords])
			copy(p[offset:], block[:])
		}

		inst.RekeyData(array)
	}

	return len(p), nil
}

// PutWords encodes words little-endian into p, which must hold 8*len(words)
// bytes.
func PutWords(p []byte, words []uint64) {
	for i, w := range words {
		binary.LittleEndian.PutUint64(p[i*8:], w)
	}
}

// Words decodes little-endian words out of p. Trailing bytes are ignored.
func Words(p []byte) []uint64 {
	words := make([]uint64, len(p)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(p[i*8:])
	}

	return words
}
