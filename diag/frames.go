// Package diag renders the Shift128 solve as a series of bitmap frames.
package diag

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/image/bmp"

	"github.com/xor-shift/srandom-break/gf2"
)

const (
	FrameWidth  = gf2.Size + 2
	FrameHeight = gf2.Size

	separatorColumn = gf2.Size
	answerColumn    = gf2.Size + 1
)

var palette = color.Palette{color.Black, color.White}

// Frame draws the system with row 0 on top. Column x < gf2.Size shows
// coefficient gf2.Size-1-x, then a black separator column, then the answer.
func Frame(sys *gf2.System) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, FrameWidth, FrameHeight), palette)

	for y := 0; y < gf2.Size; y++ {
		row := sys.Rows[y]
		for x := 0; x < gf2.Size; x++ {
			img.SetColorIndex(x, y, uint8(row.Bit(gf2.Size-1-x)))
		}

		img.SetColorIndex(separatorColumn, y, 0)
		img.SetColorIndex(answerColumn, y, uint8(sys.Answers.Bit(y)))
	}

	return img
}

// FrameRecorder is a gf2.Observer writing numbered BMP frames to a directory:
// every Nth row built, the answers, then every Nth eliminated column. The
// last row and column are always written. A failed write disables it.
type FrameRecorder struct {
	dir   string
	every int
	log   zerolog.Logger

	frames int
	err    error
}

func NewFrameRecorder(dir string, every int, log zerolog.Logger) (*FrameRecorder, error) {
	if every < 1 {
		return nil, fmt.Errorf("frame interval must be positive, got %d", every)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}

	return &FrameRecorder{
		dir:   dir,
		every: every,
		log:   log,
	}, nil
}

func (r *FrameRecorder) Observe(stage gf2.Stage, step int, sys *gf2.System) {
	if r.err != nil {
		return
	}

	switch stage {
	case gf2.StageAnswers:
	case gf2.StageBuild, gf2.StageEliminate:
		if step%r.every != r.every-1 && step != gf2.Size-1 {
			return
		}
	default:
		return
	}

	if err := r.write(sys); err != nil {
		r.err = err
		r.log.Warn().Err(err).Msg("frame recording disabled")
	}
}

func (r *FrameRecorder) write(sys *gf2.System) error {
	path := filepath.Join(r.dir, fmt.Sprintf("%04d.bmp", r.frames))

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := bmp.Encode(f, Frame(sys)); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return err
	}

	r.frames++
	r.log.Trace().Str("path", path).Msg("frame written")

	return nil
}

// Frames is the number of frames written so far.
func (r *FrameRecorder) Frames() int {
	return r.frames
}

// Err is the write error that disabled the recorder, if any.
func (r *FrameRecorder) Err() error {
	return r.err
}
