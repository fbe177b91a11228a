// Package progress implements the pipeline's progress-reporting
// collaborator: a small interface the orchestrator calls as each
// stage advances, with a no-op implementation for library use and a
// terminal thermometer-bar implementation for the CLI.
package progress

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
)

// Progress receives stage-advancement callbacks from pkg/pipeline.
type Progress interface {
	// Stage announces the start of a named pipeline stage with its
	// total unit count (e.g. layer count).
	Stage(name string, total int)
	// Step advances the current stage by one unit.
	Step()
	// Done marks the whole pipeline finished.
	Done()
}

// NoOp implements Progress with no output, the default for library
// callers that don't want terminal side effects.
type NoOp struct{}

func (NoOp) Stage(string, int) {}
func (NoOp) Step()             {}
func (NoOp) Done()             {}

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var labelStyle = lipgloss.NewStyle().Bold(true)

// Thermometer renders a width-wide "[####....] 42%" bar to w after
// every Step, redrawing in place with a carriage return.
type Thermometer struct {
	w           io.Writer
	width       int
	stage       string
	total, done int
}

// NewThermometer creates a terminal progress bar writing to w, barWidth
// characters wide.
func NewThermometer(w io.Writer, barWidth int) *Thermometer {
	if barWidth <= 0 {
		barWidth = 30
	}
	return &Thermometer{w: w, width: barWidth}
}

func (t *Thermometer) Stage(name string, total int) {
	if t.stage != "" {
		fmt.Fprintln(t.w)
	}
	t.stage = name
	t.total = total
	t.done = 0
	t.render()
}

func (t *Thermometer) Step() {
	t.done++
	if t.total <= 0 {
		return
	}
	t.render()
}

func (t *Thermometer) Done() {
	if t.stage != "" {
		fmt.Fprintln(t.w)
	}
}

func (t *Thermometer) render() {
	pct := 0
	filled := 0
	if t.total > 0 {
		pct = t.done * 100 / t.total
		filled = t.done * t.width / t.total
	}
	if filled > t.width {
		filled = t.width
	}
	bar := barStyle.Render(strings.Repeat("#", filled)) + strings.Repeat(".", t.width-filled)
	fmt.Fprintf(t.w, "\r%s [%s] %3d%%", labelStyle.Render(t.stage), bar, pct)
}
