package srandom

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xor-shift/srandom-break/util/rng"
)

var mix64Increment uint64 = 0x9E3779B97F4A7C15

func seededInstance(t *testing.T, v Variant, seed uint64) *Instance {
	t.Helper()

	inst := NewInstance(v)
	require.NoError(t, inst.Reset(rng.NewXoshiro256PPFromSeed(seed)))

	return inst
}

func TestLayouts(t *testing.T) {
	tests := []struct {
		variant   Variant
		stride    int
		words     int
		overlap   int
		firstSafe int
	}{
		{VariantNorm, 67, 17 * 67, 0, 0},
		{VariantNormBuggy, 17, 17 * 67, 47, 752},
		{VariantWide, 65, 33 * 65, 0, 0},
		{VariantWideBuggy, 33, 33 * 65, 31, 496},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			layout := tt.variant.Layout()
			assert.Equal(t, tt.stride, layout.Stride)
			assert.Equal(t, tt.words, layout.WordCount)
			assert.Equal(t, tt.overlap, layout.SelectorOverlap())
			assert.Equal(t, tt.firstSafe, layout.FirstSafePosition())
			assert.LessOrEqual(t, layout.SelectorOffset()+layout.ArrayWidth, layout.WordCount)
		})
	}
}

func TestBuggyAliasing(t *testing.T) {
	inst := seededInstance(t, VariantNormBuggy, 1)
	layout := inst.Layout

	last := inst.Array(layout.NumArrays - 1)
	selector := inst.Selector()

	overlap := layout.SelectorOverlap()
	shift := layout.SelectorOffset() - layout.ArrayOffset(layout.NumArrays-1)
	for i := 0; i < overlap; i++ {
		last[shift+i] = uint64(i) + 1
	}

	for i := 0; i < overlap; i++ {
		assert.Equal(t, uint64(i)+1, selector[i])
	}

	before := append([]uint64(nil), selector[:BlockWords]...)
	inst.RekeyData(last)
	assert.NotEqual(t, before[:overlap], selector[:overlap])
	assert.Equal(t, before[overlap:], selector[overlap:BlockWords])

	// neighbouring data arrays share storage as well
	inst.Array(0)[layout.Stride] = 0xdead
	assert.Equal(t, uint64(0xdead), inst.Array(1)[0])

	normal := seededInstance(t, VariantNorm, 1)
	normalSelector := append([]uint64(nil), normal.Selector()...)
	normal.RekeyData(normal.Array(normal.Layout.NumArrays - 1))
	assert.Equal(t, normalSelector, normal.Selector())
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants {
		parsed, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseVariant("uhs")
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestReadDeterminism(t *testing.T) {
	for _, v := range Variants {
		t.Run(v.String(), func(t *testing.T) {
			a := seededInstance(t, v, 0x5eed)
			b := seededInstance(t, v, 0x5eed)

			bufA := make([]byte, BlockBytes)
			bufB := make([]byte, BlockBytes)

			for i := 0; i < 10000; i++ {
				n, err := a.Read(bufA)
				require.NoError(t, err)
				require.Equal(t, BlockBytes, n)

				_, _ = b.Read(bufB)
				require.True(t, bytes.Equal(bufA, bufB), "read %d diverged", i)
			}

			assert.True(t, a.SameServedState(b))
		})
	}
}

func TestNextArrayIndexLiveness(t *testing.T) {
	for _, v := range Variants {
		t.Run(v.String(), func(t *testing.T) {
			inst := seededInstance(t, v, 77)

			seen := make(map[int]bool)
			for i := 0; i < PositionLimit*4 && len(seen) < inst.Layout.NumArrays; i++ {
				index := inst.NextArrayIndex()
				require.GreaterOrEqual(t, index, 0)
				require.Less(t, index, inst.Layout.NumArrays)
				seen[index] = true
			}

			assert.Len(t, seen, inst.Layout.NumArrays)
		})
	}
}

func TestPositionWrapRekeysSelector(t *testing.T) {
	inst := seededInstance(t, VariantNorm, 3)
	inst.Position = PositionLimit - 1

	selector := append([]uint64(nil), inst.Selector()...)
	mix := inst.Mix64

	inst.NextArrayIndex()

	assert.Equal(t, 0, inst.Position)
	assert.NotEqual(t, selector[:BlockWords], inst.Selector()[:BlockWords])
	assert.Equal(t, selector[BlockWords:], inst.Selector()[BlockWords:])
	assert.Equal(t, mix.State+3*mix64Increment, inst.Mix64.State)
}

func TestReadRekeyCount(t *testing.T) {
	tests := []struct {
		variant Variant
		size    int
		draws   uint64
	}{
		{VariantNorm, 1, 3},
		{VariantNorm, 511, 3},
		{VariantNorm, 512, 6},
		{VariantNorm, 544, 6},
		{VariantNorm, 2560, 18},
		{VariantWide, 1, 17},
		{VariantWide, 512, 34},
	}

	for _, tt := range tests {
		inst := seededInstance(t, tt.variant, 9)
		before := inst.Mix64.State

		n, err := inst.Read(make([]byte, tt.size))
		require.NoError(t, err)
		assert.Equal(t, tt.size, n)
		assert.Equal(t, before+tt.draws*mix64Increment, inst.Mix64.State, "%s read of %d", tt.variant, tt.size)
	}
}

func TestReadServesArrayThenRekeys(t *testing.T) {
	inst := seededInstance(t, VariantNorm, 11)
	shadow := inst.Clone()

	buf := make([]byte, 2*BlockBytes+8)
	_, _ = inst.Read(buf)

	array := shadow.Array(shadow.NextArrayIndex())
	assert.Equal(t, array[:BlockWords], Words(buf[:BlockBytes]))

	shadow.RekeyData(array)
	assert.Equal(t, array[:BlockWords], Words(buf[BlockBytes:2*BlockBytes]))

	shadow.RekeyData(array)
	assert.Equal(t, array[0], Words(buf[2*BlockBytes:])[0])

	shadow.RekeyData(array)
	assert.True(t, inst.SameServedState(shadow))
}

func TestSkew(t *testing.T) {
	inst := seededInstance(t, VariantNormBuggy, 21)

	rounds := inst.Skew()
	assert.GreaterOrEqual(t, rounds, 0)
	assert.Less(t, rounds, PositionLimit)
	assert.Equal(t, (rounds+1)%PositionLimit, inst.Position)
}

func TestGeneratorSeedOrder(t *testing.T) {
	var stream []uint64
	src := rng.NewXoshiro256PPFromSeed(99)
	total := 4 + 8 + 2*(17*67) + 2*(33*65)
	for i := 0; i < total; i++ {
		stream = append(stream, src.Next())
	}

	raw := make([]byte, len(stream)*8)
	PutWords(raw, stream)

	g := NewGenerator()
	require.NoError(t, g.Reset(bytes.NewReader(raw)))

	for _, v := range Variants {
		inst := g.Instance(v)
		assert.Equal(t, stream[v], inst.Mix64.State)
		assert.Equal(t, [2]uint64{stream[4+2*v], stream[5+2*v]}, inst.Shift128.State)
		assert.Equal(t, 0, inst.Position)
	}

	offset := 12
	for _, v := range seedOrder {
		storage := g.Instance(v).Storage()
		assert.Equal(t, stream[offset:offset+len(storage)], storage, v.String())
		offset += len(storage)
	}
	assert.Equal(t, total, offset)
}

func TestGeneratorShortSeed(t *testing.T) {
	g := NewGenerator()
	err := g.Reset(bytes.NewReader(make([]byte, 100)))
	assert.True(t, errors.Is(err, ErrSeedSourceUnavailable))

	inst := NewInstance(VariantNorm)
	err = inst.Reset(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, ErrSeedSourceUnavailable))
}

func TestNewInstanceRejectsUnknownVariant(t *testing.T) {
	for _, v := range []Variant{-1, 4, 7} {
		assert.Panics(t, func() { NewInstance(v) }, v.String())
	}
}

func TestGeneratorOracle(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Reset(rng.NewXoshiro256PPFromSeed(5)))

	shadow := g.Instance(VariantWideBuggy).Clone()

	got := make([]byte, 100)
	n, err := g.Oracle(VariantWideBuggy).Read(got)
	require.NoError(t, err)
	require.Equal(t, 100, n)

	want := make([]byte, 100)
	_, _ = shadow.Read(want)
	assert.Equal(t, want, got)

	_, err = g.Read(Variant(7), got)
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestGeneratorLazySeed(t *testing.T) {
	g := NewGenerator()

	n, err := g.Read(VariantNorm, make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, 16, n)
}
