package img2ascii

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// DPI is the resolution font sizes are interpreted at. At 72 DPI one
	// point is one pixel.
	DPI = 72

	// MaxFontSize is the largest point size a face is built at.
	MaxFontSize = 1 << 14

	// cellReference is the rune whose advance sets the cell width.
	cellReference = 'M'
)

// Font is a parsed TrueType or OpenType font. It is immutable after load and
// may be shared by any number of renderers.
type Font struct {
	name string
	tt   *truetype.Font
	ot   *sfnt.Font
}

var defaultFont = sync.OnceValues(func() (*Font, error) {
	return parseFont("Go Mono", "", gomono.TTF)
})

// DefaultFont returns the embedded Go Mono font.
func DefaultFont() (*Font, error) {
	return defaultFont()
}

// LoadFont parses font data held in memory.
func LoadFont(data []byte) (*Font, error) {
	return parseFont("", "", data)
}

// LoadFontFile reads and parses the font at path.
func LoadFontFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	return parseFont(path, path, data)
}

// parseFont tries freetype first, which handles the TrueType outlines most
// monospaced fonts ship with, then falls back to x/image's sfnt parser for
// CFF-flavoured OpenType.
func parseFont(name, path string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, &FontLoadError{Path: path, Err: errors.New("empty font data")}
	}

	tt, ttErr := parseTrueType(data)
	if ttErr == nil {
		return &Font{name: name, tt: tt}, nil
	}

	ot, otErr := opentype.Parse(data)
	if otErr == nil {
		return &Font{name: name, ot: ot}, nil
	}

	return nil, &FontLoadError{Path: path, Err: errors.Join(ttErr, otErr)}
}

// parseTrueType wraps truetype.Parse, which panics on some malformed tables.
func parseTrueType(data []byte) (f *truetype.Font, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("truetype: malformed font: %v", r)
		}
	}()
	return truetype.Parse(data)
}

// Name returns the name the font was loaded under.
func (f *Font) Name() string {
	return f.name
}

// HasGlyph reports whether the font maps r to a real glyph rather than the
// .notdef fallback.
func (f *Font) HasGlyph(r rune) bool {
	if f.tt != nil {
		return f.tt.Index(r) != 0
	}
	var buf sfnt.Buffer
	idx, err := f.ot.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// Face returns a face at the given point size.
func (f *Font) Face(size float64) (*Face, error) {
	if !(size > 0) || math.IsInf(size, 0) {
		return nil, &InvalidConfigError{Field: "font size", Value: size, Reason: "must be positive"}
	}
	if size > MaxFontSize {
		return nil, &InvalidConfigError{
			Field:  "font size",
			Value:  size,
			Reason: fmt.Sprintf("must be at most %d", MaxFontSize),
		}
	}

	var face font.Face
	if f.tt != nil {
		face = truetype.NewFace(f.tt, &truetype.Options{
			Size:    size,
			DPI:     DPI,
			Hinting: font.HintingFull,
		})
	} else {
		var err error
		face, err = opentype.NewFace(f.ot, &opentype.FaceOptions{
			Size:    size,
			DPI:     DPI,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, &FontLoadError{Path: f.name, Err: err}
		}
	}

	metrics := face.Metrics()
	advance, ok := face.GlyphAdvance(cellReference)
	if !ok || advance <= 0 {
		// No reference glyph: fall back to half an em.
		advance = fixed.Int26_6(size * 32)
	}

	return &Face{
		font:   f,
		size:   size,
		face:   face,
		width:  max(advance.Ceil(), 1),
		height: max((metrics.Ascent + metrics.Descent).Ceil(), 1),
		ascent: metrics.Ascent.Ceil(),
	}, nil
}

// Face is a font at one size. The cell geometry is computed once, when the
// face is created, so every cell of a grid has the same size.
//
// Glyph uses the underlying font.Face which keeps scratch buffers between
// calls, so a Face must not be used from several goroutines. Build an Atlas
// for concurrent lookups.
type Face struct {
	font   *Font
	size   float64
	face   font.Face
	width  int
	height int
	ascent int
}

// Size returns the point size of the face.
func (fa *Face) Size() float64 { return fa.size }

// CellSize returns the advance width and line height of a cell in pixels.
func (fa *Face) CellSize() (width, height int) {
	return fa.width, fa.height
}

// Ascent returns the distance from the top of a cell to the baseline.
func (fa *Face) Ascent() int { return fa.ascent }

// Glyph rasterizes r into a mask whose bounds are relative to the top-left
// corner of a cell.
func (fa *Face) Glyph(r rune) (*Glyph, error) {
	if !fa.font.HasGlyph(r) {
		return nil, &GlyphRasterError{Rune: r}
	}

	dr, mask, maskp, _, ok := fa.face.Glyph(fixed.P(0, fa.ascent), r)
	if !ok {
		return nil, &GlyphRasterError{Rune: r}
	}

	// The face reuses its mask buffer on the next call.
	m := image.NewAlpha(dr)
	if !dr.Empty() {
		draw.Draw(m, dr, mask, maskp, draw.Src)
	}
	return &Glyph{Rune: r, Mask: m}, nil
}

// Close releases the underlying face.
func (fa *Face) Close() error {
	return fa.face.Close()
}

// Glyph is the coverage mask of one rune. Mask bounds are in cell-local
// coordinates and may extend past the cell.
type Glyph struct {
	Rune rune
	Mask *image.Alpha
}

// Atlas is a read-only table of pre-rasterized glyphs. It is filled once and
// safe for concurrent lookups afterwards.
type Atlas struct {
	glyphs  map[rune]*Glyph
	missing int
}

// NewAtlas rasterizes every distinct rune in runes with face. Runes the font
// cannot render are remembered as missing and reported in a single warning.
func NewAtlas(face *Face, runes []rune) *Atlas {
	a := &Atlas{glyphs: make(map[rune]*Glyph, len(runes))}
	var first rune
	for _, r := range runes {
		if _, seen := a.glyphs[r]; seen {
			continue
		}
		g, err := face.Glyph(r)
		if err != nil {
			if a.missing == 0 {
				first = r
			}
			a.missing++
		}
		a.glyphs[r] = g
	}
	if a.missing > 0 {
		Logger().Warn("glyphs missing from font",
			"font", face.font.name, "missing", a.missing, "of", len(a.glyphs),
			"first", fmt.Sprintf("U+%04X", first))
	}
	return a
}

// Missing returns the number of distinct runes the font could not render.
func (a *Atlas) Missing() int { return a.missing }

// Glyph returns the glyph for r, or a *GlyphRasterError when r is missing
// from the font or was never rasterized.
func (a *Atlas) Glyph(r rune) (*Glyph, error) {
	if g := a.glyphs[r]; g != nil {
		return g, nil
	}
	return nil, &GlyphRasterError{Rune: r}
}

// Len returns the number of renderable glyphs in the atlas.
func (a *Atlas) Len() int {
	n := 0
	for _, g := range a.glyphs {
		if g != nil {
			n++
		}
	}
	return n
}
