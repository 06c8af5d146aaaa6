package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/xor-shift/srandom-break/attack"
	"github.com/xor-shift/srandom-break/config"
	"github.com/xor-shift/srandom-break/diag"
	"github.com/xor-shift/srandom-break/logger"
	"github.com/xor-shift/srandom-break/srandom"
	"github.com/xor-shift/srandom-break/util"
	"github.com/xor-shift/srandom-break/util/rng"
)

type attackCmd struct {
	Variant    string `name:"variant" short:"v" enum:"norm-buggy,norm,wide-buggy,wide" default:"${variant}" help:"srandom variant to attack (${enum})"`
	Seed       string `name:"seed" short:"s" default:"${seed}" help:"seed the emulated module from a xoshiro256++ stream instead of crypto/rand"`
	Validate   int    `name:"validate" default:"${validate_reads}" help:"8-byte reads compared after reconstruction"`
	Frames     string `name:"frames" default:"${frames_dir}" help:"directory for BMP frames of the GF(2) solve, disabled when empty"`
	FrameEvery int    `name:"frame-every" default:"${frame_every}" help:"write a frame every N rows and columns"`
	NoSkew     bool   `name:"no-skew" help:"do not move the emulated module to a random position first"`
}

func (c *attackCmd) Run(log *zerolog.Logger) error {
	v, err := srandom.ParseVariant(c.Variant)
	if err != nil {
		return err
	}

	g := newGenerator(c.Seed, log)
	truth := g.Instance(v)

	if !c.NoSkew {
		rounds := truth.Skew()
		log.Debug().Int("rounds", rounds).Int("position", truth.Position).Msg("emulated module skewed")
	}

	opts := []attack.Option{
		attack.WithLogger(*log),
		attack.WithValidateReads(c.Validate),
	}

	if c.Frames != "" {
		rec, err := diag.NewFrameRecorder(c.Frames, c.FrameEvery, *log)
		if err != nil {
			return err
		}

		opts = append(opts, attack.WithObserver(rec))
	}

	attacker, err := attack.New(v, g.Oracle(v), opts...)
	if err != nil {
		return err
	}

	shadow, err := attacker.Run()
	if err != nil {
		return err
	}

	if !shadow.SameServedState(truth) {
		return errors.New("reconstruction predicts the oracle but differs from the emulated instance")
	}

	printSideBySide(os.Stdout, truth, shadow)

	return nil
}

type detectCmd struct {
	Source  string `name:"source" enum:"srandom,urandom,stdin" default:"srandom" help:"stream to probe (${enum})"`
	Variant string `name:"variant" short:"v" enum:"norm-buggy,norm,wide-buggy,wide" default:"${variant}" help:"variant served when probing the emulated module"`
	Seed    string `name:"seed" short:"s" default:"${seed}" help:"seed for the emulated module"`
	Rounds  int    `name:"rounds" default:"4" help:"windows that must all be recognised"`
}

func (c *detectCmd) Run(log *zerolog.Logger) error {
	var r io.Reader

	switch c.Source {
	case "srandom":
		v, err := srandom.ParseVariant(c.Variant)
		if err != nil {
			return err
		}

		r = newGenerator(c.Seed, log).Oracle(v)
	case "urandom":
		r = rand.Reader
	case "stdin":
		r = os.Stdin
	}

	family, err := attack.Detect(r, c.Rounds)
	if err != nil {
		return err
	}

	log.Info().Str("source", c.Source).Str("family", family.String()).Int("rounds", c.Rounds).Msg("detection finished")

	if family == attack.FamilyNone {
		fmt.Println("srandom not detected")
	} else {
		fmt.Printf("srandom detected (%s re-key)\n", family)
	}

	return nil
}

var cli struct {
	LogLevel string `name:"log-level" default:"${log_level}" help:"trace, debug, info, warn or error"`

	Attack attackCmd `cmd:"" help:"recover the full state of an emulated srandom module from its output"`
	Detect detectCmd `cmd:"" help:"check whether a stream comes from srandom"`
}

// newGenerator seeds a fresh emulated module. Losing the seed source is fatal.
func newGenerator(seed string, log *zerolog.Logger) *srandom.Generator {
	var src io.Reader = rand.Reader

	if seed != "" {
		value, err := strconv.ParseUint(seed, 0, 64)
		if err != nil {
			log.Fatal().Err(err).Str("seed", seed).Msg("bad seed")
		}

		src = rng.NewXoshiro256PPFromSeed(value)
	}

	g := srandom.NewGenerator()
	if err := g.Reset(src); err != nil {
		logger.Fatal(err, "seeding the emulated module failed")
	}

	return g
}

func printSideBySide(w io.Writer, truth, shadow *srandom.Instance) {
	const rows, perRow = 4, 4

	for _, side := range []struct {
		name string
		inst *srandom.Instance
	}{{"srandom", truth}, {"recovered", shadow}} {
		fmt.Fprintf(w, "%s:\n", side.name)

		buf := make([]byte, 8)
		for i := 0; i < rows; i++ {
			words := make([]uint64, perRow)
			for j := range words {
				_, _ = side.inst.Read(buf)
				words[j] = srandom.Words(buf)[0]
			}

			fmt.Fprintf(w, "    %s\n", util.WordsToString(words))
		}
	}
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration failed: %s\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&cli,
		kong.Name("srandom-break"),
		kong.Description("State recovery against the srandom 1.41.1 generator."),
		kong.UsageOnError(),
		kong.Vars{
			"variant":        cfg.Variant,
			"seed":           cfg.Seed,
			"log_level":      cfg.LogLevel,
			"validate_reads": strconv.Itoa(cfg.ValidateReads),
			"frames_dir":     cfg.FramesDir,
			"frame_every":    strconv.Itoa(cfg.FrameEvery),
		},
	)

	if err := logger.SetStderr(cli.LogLevel); err != nil {
		ctx.FatalIfErrorf(err)
	}

	ctx.FatalIfErrorf(ctx.Run(logger.Log()))
}
