package attack

import (
	"fmt"
	"io"

	"github.com/xor-shift/srandom-break/srandom"
)

// Family is the re-key shape a stream was recognised by.
type Family int

const (
	FamilyNone Family = iota
	FamilyNorm
	FamilyWide
)

func (f Family) String() string {
	switch f {
	case FamilyNorm:
		return "norm"
	case FamilyWide:
		return "wide"
	}

	return "none"
}

// DetectWindow runs the Mix64 alignment check of both re-key shapes on a
// single window of windowWords words. A random window passes either check
// with a chance of about 2^-62.
func DetectWindow(w []uint64) Family {
	if len(w) < windowWords {
		return FamilyNone
	}

	if _, _, ok := fitNormWindow(w); ok {
		return FamilyNorm
	}

	if _, _, ok := fitWideWindow(w); ok {
		return FamilyWide
	}

	return FamilyNone
}

// WindowBytes is how much one detection round reads.
const WindowBytes = windowWords * 8

// Detect reads rounds windows from r and reports the family only if every
// window agrees on it.
func Detect(r io.Reader, rounds int) (Family, error) {
	family := FamilyNone
	buf := make([]byte, WindowBytes)

	for i := 0; i < rounds; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return FamilyNone, fmt.Errorf("detect round %d: %w", i, err)
		}

		got := DetectWindow(srandom.Words(buf))
		if got == FamilyNone || (i > 0 && got != family) {
			return FamilyNone, nil
		}

		family = got
	}

	return family, nil
}
