package srandom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrSeedSourceUnavailable means the seed source could not deliver the bytes
// a reset needs. There is no degraded mode: callers should treat it as fatal.
var ErrSeedSourceUnavailable = errors.New("seed source unavailable")

func readSeedWords(src io.Reader, dst []uint64) error {
	buf := make([]byte, len(dst)*8)
	if _, err := io.ReadFull(src, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrSeedSourceUnavailable, err)
	}

	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}

	return nil
}

// Reset seeds a single instance from src: its Mix64 word, its Shift128 pair,
// then its whole storage. The position counter starts at zero.
func (inst *Instance) Reset(src io.Reader) error {
	var state [3]uint64
	if err := readSeedWords(src, state[:]); err != nil {
		return err
	}

	if err := readSeedWords(src, inst.words); err != nil {
		return err
	}

	inst.Mix64.State = state[0]
	inst.Shift128.State = [2]uint64{state[1], state[2]}
	inst.Position = 0

	return nil
}

// Skew moves the instance to an unpredictable position the way srandom's own
// test harness does: one 8-byte read, then that value mod PositionLimit
// single-byte reads. It returns the number of single-byte reads.
func (inst *Instance) Skew() int {
	var num [8]byte
	_, _ = inst.Read(num[:])

	rounds := int(binary.LittleEndian.Uint64(num[:]) % PositionLimit)

	var one [1]byte
	for i := 0; i < rounds; i++ {
		_, _ = inst.Read(one[:])
	}

	return rounds
}
