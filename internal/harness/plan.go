package harness

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/copybench/copybench/internal/config"
	"github.com/copybench/copybench/internal/copier"
)

// ErrOutputIsInput is returned by Plan when an output path would overwrite
// the input file.
var ErrOutputIsInput = errors.New("output path is the input file")

// Spec describes a task that has not been opened yet.
type Spec struct {
	Label      string
	Strategy   copier.Strategy
	Input      string
	Output     string
	SearchDirs []string
}

// Open turns the spec into a runnable Task.
func (s Spec) Open() (*Task, error) {
	return NewTask(s.Label, s.Strategy, s.Input, s.Output, s.SearchDirs...)
}

// Plan builds the benchmark line-up from settings: byte-wise copy, one block
// copy per configured size, then line copy, each writing to its own output.
// The input is resolved up front so a missing file fails before any copy.
func Plan(s *config.Settings) ([]Spec, error) {
	sizes, err := s.BlockSizeBytes()
	if err != nil {
		return nil, err
	}

	input, err := ResolveInput(s.Input, s.SearchDirs)
	if err != nil {
		return nil, err
	}
	absInput, _ := filepath.Abs(input)

	strategies := copier.Strategies(sizes)
	plan := lo.Map(strategies, func(st copier.Strategy, i int) Spec {
		return Spec{
			Label:    Label(i, st),
			Strategy: st,
			Input:    input,
			Output:   s.OutputPath(i),
		}
	})

	for _, spec := range plan {
		if abs, _ := filepath.Abs(spec.Output); abs == absInput {
			return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, spec.Output)
		}
	}
	return plan, nil
}

// Label numbers a strategy description the way the report lists it,
// e.g. "1.Copy a file byte-by-byte".
func Label(i int, s copier.Strategy) string {
	return fmt.Sprintf("%d.%s", i+1, s.Description())
}
