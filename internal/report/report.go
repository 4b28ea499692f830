// Package report prints benchmark results as they arrive and a summary
// table at the end.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/copybench/copybench/internal/harness"
	"github.com/copybench/copybench/internal/utils"
)

var (
	colorLabel = lipgloss.AdaptiveColor{Light: "#5d40c9", Dark: "#bd93f9"}
	colorValue = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#50fa7b"}
	colorWarn  = lipgloss.AdaptiveColor{Light: "#f57c00", Dark: "#ffb86c"}
	colorError = lipgloss.AdaptiveColor{Light: "#d32f2f", Dark: "#ff5555"}
	colorDim   = lipgloss.AdaptiveColor{Light: "#4a4a4a", Dark: "#a9b1d6"}
)

// Printer writes results to a terminal or any other writer.
type Printer struct {
	w io.Writer
	r *lipgloss.Renderer

	label lipgloss.Style
	value lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	dim   lipgloss.Style
}

// New returns a Printer that colors its output only when w is a terminal
// that supports it and NO_COLOR is not set.
func New(w io.Writer) *Printer {
	return NewWithProfile(w, termenv.NewOutput(w).EnvColorProfile())
}

// NewWithProfile returns a Printer rendering with a fixed color profile.
// termenv.Ascii disables colors.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &Printer{
		w:     w,
		r:     r,
		label: r.NewStyle().Foreground(colorLabel),
		value: r.NewStyle().Foreground(colorValue),
		warn:  r.NewStyle().Foreground(colorWarn),
		fail:  r.NewStyle().Foreground(colorError),
		dim:   r.NewStyle().Foreground(colorDim),
	}
}

// Header prints the run banner.
func (p *Printer) Header(runID, input string, size int64) {
	_, _ = fmt.Fprintf(p.w, "%s %s (%s)\n",
		p.dim.Render("Copying"),
		p.label.Render(input),
		utils.ConvertBytesToHumanReadable(size))
	_, _ = fmt.Fprintln(p.w, p.dim.Render("run "+runID))
}

// TaskDone prints "<label> : <seconds> sec" for one finished task.
func (p *Printer) TaskDone(res harness.Result) {
	if res.Err != nil {
		_, _ = fmt.Fprintf(p.w, "%s : %s\n", p.label.Render(res.Label), p.fail.Render("FAILED ("+res.Err.Error()+")"))
		return
	}

	line := p.label.Render(res.Label) + " : " + p.value.Render(res.Seconds())
	if res.Padded {
		line += " " + p.warn.Render("(final block padded)")
	}
	_, _ = fmt.Fprintln(p.w, line)
}

// Summary prints a table of all results.
func (p *Printer) Summary(results []harness.Result) {
	if len(results) == 0 {
		return
	}

	rows := make([][]string, 0, len(results))
	for i, res := range results {
		note := ""
		switch {
		case res.Err != nil:
			note = "failed"
		case res.Padded:
			note = "padded"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			res.Strategy.Name,
			res.Seconds(),
			utils.ConvertBytesToHumanReadable(res.BytesRead),
			utils.ConvertBytesToHumanReadable(res.BytesWritten),
			res.Throughput(),
			note,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.dim).
		Headers("#", "Strategy", "Elapsed", "Read", "Written", "Throughput", "Note").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := p.r.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Inherit(p.label)
			}
			if col == 6 && row >= 0 && row < len(rows) && rows[row][6] != "" {
				return style.Inherit(p.warn)
			}
			return style
		})

	_, _ = fmt.Fprintln(p.w, t.Render())
}
