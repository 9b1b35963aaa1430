package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
)

// progressBar draws a single-line bar on a terminal. It renders the bubbles
// progress model directly instead of running a tea.Program.
type progressBar struct {
	w     io.Writer
	model progress.Model
	last  int
	drawn bool
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{
		w:     w,
		model: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		last:  -1,
	}
}

// Update redraws the bar when the whole-percent value changes.
func (p *progressBar) Update(done, total int) {
	if total <= 0 {
		return
	}
	pct := float64(done) / float64(total)
	step := int(pct * 100)
	if step == p.last {
		return
	}
	p.last = step
	p.drawn = true
	fmt.Fprintf(p.w, "\r%s", p.model.ViewAs(pct))
}

// Finish ends the bar's line.
func (p *progressBar) Finish() {
	if p.drawn {
		fmt.Fprintln(p.w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
