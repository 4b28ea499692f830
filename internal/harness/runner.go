package harness

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/copybench/copybench/internal/benchmark"
	"github.com/copybench/copybench/internal/copier"
	"github.com/copybench/copybench/internal/utils"
)

// Result is the outcome of one task.
type Result struct {
	Label    string
	Strategy copier.Strategy
	Input    string
	Output   string
	// Padded is set when a block strategy wrote stale buffer bytes past the
	// end of the input.
	Padded bool

	benchmark.Results
	Err error
}

// Reporter receives each result as soon as its task finishes.
type Reporter interface {
	TaskDone(res Result)
}

// Runner executes tasks sequentially.
type Runner struct {
	RunID    string
	reporter Reporter
	log      zerolog.Logger
}

// NewRunner creates a runner reporting to r. r may be nil.
func NewRunner(r Reporter) *Runner {
	id := uuid.New().String()
	return &Runner{
		RunID:    id,
		reporter: r,
		log:      utils.Logger().With().Str("run", id[:8]).Logger(),
	}
}

// Run measures and reports every task in order. It stops at the first task
// that fails, closes the tasks that did not run, and returns the results
// collected so far together with the failure.
func (r *Runner) Run(tasks []*Task) ([]Result, error) {
	results := make([]Result, 0, len(tasks))
	for i, t := range tasks {
		res := r.MeasureAndPrint(t)
		results = append(results, res)
		if res.Err != nil {
			for _, rest := range tasks[i+1:] {
				_ = rest.Close()
			}
			return results, res.Err
		}
	}
	return results, nil
}

// RunPlan opens each planned task right before running it, so that only
// one task holds files at any time.
func (r *Runner) RunPlan(plan []Spec) ([]Result, error) {
	results := make([]Result, 0, len(plan))
	for _, spec := range plan {
		t, err := spec.Open()
		if err != nil {
			r.log.Error().Str("task", spec.Label).Err(err).Msg("failed to open task")
			return results, err
		}
		res := r.MeasureAndPrint(t)
		results = append(results, res)
		if res.Err != nil {
			return results, res.Err
		}
	}
	return results, nil
}

// MeasureAndPrint runs a single task, times it and hands the result to the
// reporter.
func (r *Runner) MeasureAndPrint(t *Task) Result {
	log := r.log.With().Str("task", t.Strategy.Name).Logger()
	r.warn(log, t)

	log.Debug().
		Str("input", t.InputPath).
		Str("output", t.OutputPath).
		Int64("size", t.InputSize()).
		Msg("starting copy")

	m := benchmark.NewMetrics()
	read, written, err := t.Run()
	m.Finish(read, written)

	res := Result{
		Label:    t.Label,
		Strategy: t.Strategy,
		Input:    t.InputPath,
		Output:   t.OutputPath,
		Padded:   err == nil && t.Strategy.Pads(read),
		Results:  m.Results(),
		Err:      err,
	}

	if err != nil {
		log.Error().Str("cause", copier.Detail(err)).Msg("copy failed")
	} else {
		log.Debug().
			Dur("elapsed", res.Elapsed).
			Int64("read", read).
			Int64("written", written).
			Uint64("allocated", res.AllocatedBytes).
			Msg("copy finished\n" + res.Results.String())
	}

	if r.reporter != nil {
		r.reporter.TaskDone(res)
	}
	return res
}

func (r *Runner) warn(log zerolog.Logger, t *Task) {
	switch t.Strategy.Kind {
	case copier.KindBlock:
		if t.Strategy.Pads(t.InputSize()) {
			log.Warn().
				Int("block_size", t.Strategy.BlockSize).
				Int64("input_size", t.InputSize()).
				Int64("output_size", copier.PaddedLength(t.InputSize(), t.Strategy.BlockSize)).
				Msg("block size does not divide input length, final block will carry stale bytes")
		}
	case copier.KindLine:
		mime, binary, err := SniffBinary(t.InputPath)
		if err != nil {
			log.Debug().Err(err).Msg("failed to sniff input type")
		} else if binary {
			log.Warn().Str("type", mime).Msg("input looks binary, line copy will rewrite line terminators and invalid UTF-8")
		}
	}
}
