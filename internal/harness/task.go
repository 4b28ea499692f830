// Package harness binds copy strategies to files, runs them one after
// another and measures each run.
package harness

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/copybench/copybench/internal/copier"
)

var (
	// ErrOpenInput is returned when the input file cannot be found or opened.
	ErrOpenInput = errors.New("cannot open input file")
	// ErrOpenOutput is returned when the output file cannot be created.
	ErrOpenOutput = errors.New("could not open output file")
	// ErrTaskClosed is returned by Run on a task that already ran.
	ErrTaskClosed = errors.New("task already ran")
)

// Task is a strategy bound to an open input file and an open output file.
// A task runs once; its files are closed when Run returns.
type Task struct {
	Label      string
	Strategy   copier.Strategy
	InputPath  string
	OutputPath string

	in        *os.File
	out       *os.File
	inputSize int64
}

// NewTask resolves and opens input, then creates or truncates output.
// It fails before touching output when the input cannot be opened.
func NewTask(label string, s copier.Strategy, input, output string, searchDirs ...string) (*Task, error) {
	path, err := ResolveInput(input, searchDirs)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenInput, input, err)
	}
	info, err := in.Stat()
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrOpenInput, input, err)
	}

	out, err := os.Create(output)
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrOpenOutput, output, err)
	}

	return &Task{
		Label:      label,
		Strategy:   s,
		InputPath:  path,
		OutputPath: output,
		in:         in,
		out:        out,
		inputSize:  info.Size(),
	}, nil
}

// InputSize is the size of the input file when the task was created.
func (t *Task) InputSize() int64 {
	return t.inputSize
}

// Run copies the input to the output with the task's strategy and closes
// both files. It returns the bytes consumed from the input and the bytes
// written to the output.
func (t *Task) Run() (read, written int64, err error) {
	if t.in == nil || t.out == nil {
		return 0, 0, ErrTaskClosed
	}

	src := &countingReader{r: t.in}
	written, err = t.Strategy.Copy(t.out, src)

	if cerr := t.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %w", copier.ErrCopyFailed, cerr)
	}
	return src.n, written, err
}

// Close releases the task's files without running it. Closing the output
// may report a delayed write error.
func (t *Task) Close() error {
	var errs []error
	if t.in != nil {
		errs = append(errs, t.in.Close())
		t.in = nil
	}
	if t.out != nil {
		errs = append(errs, t.out.Close())
		t.out = nil
	}
	return errors.Join(errs...)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ResolveInput returns the path to open for name. A name that exists as
// given is used directly; otherwise a relative name is looked up in each
// search directory in order.
func ResolveInput(name string, searchDirs []string) (string, error) {
	if isFile(name) {
		return name, nil
	}
	if !filepath.IsAbs(name) {
		for _, dir := range searchDirs {
			candidate := filepath.Join(dir, name)
			if isFile(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w %s: %w", ErrOpenInput, name, fs.ErrNotExist)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
