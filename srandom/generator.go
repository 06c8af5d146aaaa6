package srandom

import (
	"crypto/rand"
	"fmt"
	"io"
)

// seedOrder is the order in which srandom fills its array storage at reset.
var seedOrder = []Variant{VariantNorm, VariantNormBuggy, VariantWide, VariantWideBuggy}

// Generator owns the four instances a loaded srandom module holds.
type Generator struct {
	instances [4]*Instance
	seeded    bool
}

func NewGenerator() *Generator {
	g := &Generator{}
	for _, v := range Variants {
		g.instances[v] = NewInstance(v)
	}

	return g
}

// Reset reseeds every instance, consuming src exactly as srandom consumes its
// cryptographic source: the four Mix64 words, the four Shift128 pairs, then
// the storage of each variant in seedOrder.
func (g *Generator) Reset(src io.Reader) error {
	var mix [4]uint64
	if err := readSeedWords(src, mix[:]); err != nil {
		return err
	}

	var shift [8]uint64
	if err := readSeedWords(src, shift[:]); err != nil {
		return err
	}

	for _, v := range seedOrder {
		if err := readSeedWords(src, g.instances[v].words); err != nil {
			return err
		}
	}

	for _, v := range Variants {
		inst := g.instances[v]
		inst.Mix64.State = mix[v]
		inst.Shift128.State = [2]uint64{shift[2*v], shift[2*v+1]}
		inst.Position = 0
	}

	g.seeded = true

	return nil
}

// Instance returns the live instance behind v.
func (g *Generator) Instance(v Variant) *Instance {
	if !v.Valid() {
		return nil
	}

	return g.instances[v]
}

// Read serves p from variant v, seeding from crypto/rand first if the
// generator was never reset.
func (g *Generator) Read(v Variant, p []byte) (int, error) {
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}

	if !g.seeded {
		if err := g.Reset(rand.Reader); err != nil {
			return 0, err
		}
	}

	return g.instances[v].Read(p)
}

// Oracle adapts one variant of the generator to an io.Reader. Every Read call
// is one srandom read.
func (g *Generator) Oracle(v Variant) io.Reader {
	return oracle{g: g, v: v}
}

type oracle struct {
	g *Generator
	v Variant
}

func (o oracle) Read(p []byte) (int, error) {
	return o.g.Read(o.v, p)
}
