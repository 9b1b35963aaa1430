package img2ascii

import (
	"errors"
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is a step of a render pass.
type State int

const (
	StateInitializing State = iota
	StatePlanning
	StateRendering
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StatePlanning:
		return "planning"
	case StateRendering:
		return "rendering"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Renderer converts images to glyph art. A Renderer holds configuration
// only; Render may be called concurrently and repeatedly.
type Renderer struct {
	// Configuration options
	FontSize   float64
	Scale      float64
	Background color.RGBA
	Workers    int

	font       *Font
	source     Source
	onProgress func(done, total int)
	onState    func(State)
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: FontSize=12, Scale=1.0, Background=opaque black,
// Workers=GOMAXPROCS, Source=Random over the latin charset, Font=Go Mono.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		FontSize:   12,
		Scale:      1.0,
		Background: color.RGBA{A: 255},
		Workers:    runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithFont sets the font. Without it the embedded Go Mono font is used.
func WithFont(f *Font) RendererOption {
	return func(r *Renderer) {
		r.font = f
	}
}

// WithFontSize sets the point size that determines the cell size.
func WithFontSize(size float64) RendererOption {
	return func(r *Renderer) {
		r.FontSize = size
	}
}

// WithScale sets the output scale relative to the cell grid.
func WithScale(scale float64) RendererOption {
	return func(r *Renderer) {
		r.Scale = scale
	}
}

// WithSource sets the character source. Every rune in src.Runes() is
// rasterized once per Render before drawing starts, so large charsets such
// as cjkunified (about 21k runes) add noticeable setup time to each render.
func WithSource(src Source) RendererOption {
	return func(r *Renderer) {
		r.source = src
	}
}

// WithBackground sets the color the canvas is filled with before drawing.
func WithBackground(c color.RGBA) RendererOption {
	return func(r *Renderer) {
		r.Background = c
	}
}

// WithWorkers sets the number of rows rendered in parallel.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		r.Workers = n
	}
}

// WithProgress registers a callback invoked after each finished row. Calls
// are serialized.
func WithProgress(fn func(done, total int)) RendererOption {
	return func(r *Renderer) {
		r.onProgress = fn
	}
}

// WithStateHook registers a callback invoked on every state transition.
func WithStateHook(fn func(State)) RendererOption {
	return func(r *Renderer) {
		r.onState = fn
	}
}

// Result is the output of a successful render.
type Result struct {
	Canvas  *image.RGBA
	Grid    Grid
	Skipped int // cells left blank because their glyph could not be drawn
}

// pass is the state of one Render call.
type pass struct {
	r     *Renderer
	state State
}

func (p *pass) enter(s State) {
	p.state = s
	Logger().Debug("render state", "state", s.String())
	if p.r.onState != nil {
		p.r.onState(s)
	}
}

func (p *pass) fail(err error) (*Result, error) {
	Logger().Debug("render failed", "from", p.state.String(), "err", err)
	p.enter(StateFailed)
	return nil, err
}

// Render converts img in a single pass. Any configuration, font or grid error
// aborts the pass before drawing starts. Cells whose glyph is missing from
// the font are left as background and counted in Result.Skipped.
func (r *Renderer) Render(img image.Image) (*Result, error) {
	p := &pass{r: r}
	p.enter(StateInitializing)

	if img == nil || img.Bounds().Empty() {
		return p.fail(&InvalidConfigError{Field: "image", Value: "(empty)", Reason: "nothing to render"})
	}
	if !(r.Scale > 0) || math.IsInf(r.Scale, 0) {
		return p.fail(&InvalidConfigError{Field: "scale", Value: r.Scale, Reason: "must be positive"})
	}
	if !(r.FontSize > 0) || math.IsInf(r.FontSize, 0) {
		return p.fail(&InvalidConfigError{Field: "font size", Value: r.FontSize, Reason: "must be positive"})
	}
	fnt := r.font
	if fnt == nil {
		var err error
		if fnt, err = DefaultFont(); err != nil {
			return p.fail(err)
		}
	}
	src := r.source
	if src == nil {
		charset, _ := Charset(DefaultCharset)
		src, _ = NewRandom(charset)
	}

	p.enter(StatePlanning)
	base, err := fnt.Face(r.FontSize)
	if err != nil {
		return p.fail(err)
	}
	defer base.Close()

	cellW, cellH := base.CellSize()
	bounds := img.Bounds()
	grid, err := PlanGrid(bounds.Dx(), bounds.Dy(), cellW, cellH, r.Scale)
	if err != nil {
		return p.fail(err)
	}

	face := base
	if r.Scale != 1 {
		if face, err = fnt.Face(r.FontSize * r.Scale); err != nil {
			return p.fail(err)
		}
		defer face.Close()
	}
	atlas := NewAtlas(face, src.Runes())

	Logger().Debug("grid planned",
		"cols", grid.Cols, "rows", grid.Rows,
		"cell", image.Pt(cellW, cellH), "canvas", grid.Bounds().Size(),
		"glyphs", atlas.Len())

	p.enter(StateRendering)
	start := time.Now()
	canvas := image.NewRGBA(grid.Bounds())
	fill(canvas, r.Background)

	skipped, err := r.renderRows(canvas, img, grid, src, atlas)
	if err != nil {
		return p.fail(err)
	}

	Logger().Debug("render finished", "cells", grid.Len(), "skipped", skipped,
		"elapsed", time.Since(start))
	p.enter(StateDone)
	return &Result{Canvas: canvas, Grid: grid, Skipped: skipped}, nil
}

// renderRows draws every row of the grid, distributing rows over the worker
// pool. Each worker only writes inside the cells of its own row.
func (r *Renderer) renderRows(canvas *image.RGBA, img image.Image, grid Grid, src Source, atlas *Atlas) (int, error) {
	// Source rectangles are zero based; shift them onto the image.
	origin := img.Bounds().Min

	var (
		skipped atomic.Int64
		mu      sync.Mutex
		done    int
		g       errgroup.Group
	)
	g.SetLimit(max(r.Workers, 1))

	for row := 0; row < grid.Rows; row++ {
		g.Go(func() error {
			for col := 0; col < grid.Cols; col++ {
				cell := grid.Cell(row, col)
				tint := AverageColor(img, cell.Src.Add(origin))
				ch := src.At(grid.Index(row, col))

				glyph, err := atlas.Glyph(ch)
				if err == nil {
					err = Composite(canvas, cell.Dst, glyph, tint)
				}
				if err != nil {
					var gre *GlyphRasterError
					if !errors.As(err, &gre) {
						return err
					}
					skipped.Add(1)
				}
			}

			if r.onProgress != nil {
				mu.Lock()
				done++
				r.onProgress(done, grid.Rows)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(skipped.Load()), nil
}
