package gf2

import (
	"errors"
	"fmt"
)

// ErrSingular is returned when some column has no pivot left. A well-formed
// generator never produces one; corrupted output bits can.
var ErrSingular = errors.New("singular linear system")

type Stage int

const (
	// StageBuild fires after each equation row is filled in.
	StageBuild Stage = iota
	// StageAnswers fires once the right-hand side is loaded.
	StageAnswers
	// StageEliminate fires after each pivot column is cleared.
	StageEliminate
	// StageSolved fires once, after the last column.
	StageSolved
)

func (s Stage) String() string {
	switch s {
	case StageBuild:
		return "build"
	case StageAnswers:
		return "answers"
	case StageEliminate:
		return "eliminate"
	case StageSolved:
		return "solved"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Observer gets a look at the system at every checkpoint. It must not modify
// sys; it exists for visual inspection only.
type Observer interface {
	Observe(stage Stage, step int, sys *System)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(stage Stage, step int, sys *System)

func (f ObserverFunc) Observe(stage Stage, step int, sys *System) {
	f(stage, step, sys)
}

// Notify hands sys to obs. A nil obs is allowed.
func Notify(obs Observer, stage Stage, step int, sys *System) {
	if obs != nil {
		obs.Observe(stage, step, sys)
	}
}

// System is Size equations: Rows[i] · x = Answers.Bit(i).
type System struct {
	Rows    [Size]Row
	Answers Row
}

func (sys *System) swapRows(a, b int) {
	sys.Rows[a], sys.Rows[b] = sys.Rows[b], sys.Rows[a]

	bitA, bitB := sys.Answers.Bit(a), sys.Answers.Bit(b)
	sys.Answers.SetBit(a, bitB)
	sys.Answers.SetBit(b, bitA)
}

func (sys *System) nextRowWithBitSet(column, from int) int {
	for row := from; row < Size; row++ {
		if sys.Rows[row].Bit(column) == 1 {
			return row
		}
	}

	return -1
}

// Solve runs Gauss-Jordan elimination in place. On success row i has only
// column i left and the returned vector holds x.
func (sys *System) Solve(obs Observer) (Row, error) {
	for i := 0; i < Size; i++ {
		row := sys.nextRowWithBitSet(i, i)
		if row < 0 {
			return Row{}, fmt.Errorf("no pivot for column %d: %w", i, ErrSingular)
		}
		sys.swapRows(i, row)

		pivot := sys.Rows[i]
		answer := sys.Answers.Bit(i)
		for j := 0; j < Size; j++ {
			if j != i && sys.Rows[j].Bit(i) == 1 {
				sys.Rows[j] = sys.Rows[j].Xor(pivot)
				sys.Answers.SetBit(j, sys.Answers.Bit(j)^answer)
			}
		}

		Notify(obs, StageEliminate, i, sys)
	}

	Notify(obs, StageSolved, Size-1, sys)

	return sys.Answers, nil
}
