package img2ascii

import (
	"errors"
	"fmt"
)

// ErrEmptyTextSource is returned when a text source has no letters left
// after filtering.
var ErrEmptyTextSource = errors.New("img2ascii: text source has no alphabetic characters")

// FontLoadError is returned when font data cannot be read or parsed.
type FontLoadError struct {
	Path string // empty when the font came from memory
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("img2ascii: failed to load font: %v", e.Err)
	}
	return fmt.Sprintf("img2ascii: failed to load font %q: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// DegenerateGridError is returned when an image cannot hold a single cell,
// or when the scaled canvas would have no pixels.
type DegenerateGridError struct {
	ImageWidth, ImageHeight int
	CellWidth, CellHeight   int
	Cols, Rows              int
}

func (e *DegenerateGridError) Error() string {
	return fmt.Sprintf("img2ascii: %dx%d image cannot hold a %dx%d cell grid (%d cols, %d rows)",
		e.ImageWidth, e.ImageHeight, e.CellWidth, e.CellHeight, e.Cols, e.Rows)
}

// GlyphRasterError is returned when a rune has no renderable glyph. The
// render engine recovers from it by leaving the cell blank.
type GlyphRasterError struct {
	Rune rune
}

func (e *GlyphRasterError) Error() string {
	return fmt.Sprintf("img2ascii: no glyph for %q (U+%04X)", e.Rune, e.Rune)
}

// InvalidConfigError reports a configuration value that cannot be used.
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("img2ascii: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
