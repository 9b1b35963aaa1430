package img2ascii

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Composite draws g into dst with its mask origin at cell.Min, tinted with
// tint. Drawing is clipped to cell, so neighbouring cells never touch each
// other's pixels. Fully covered pixels take the tint, edge pixels blend with
// what is already there in proportion to coverage, and uncovered pixels are
// left alone.
func Composite(dst *image.RGBA, cell image.Rectangle, g *Glyph, tint color.Color) error {
	if g == nil || g.Mask == nil {
		var r rune
		if g != nil {
			r = g.Rune
		}
		return &GlyphRasterError{Rune: r}
	}

	clip := g.Mask.Bounds().Add(cell.Min).Intersect(cell)
	if clip.Empty() {
		return nil
	}
	draw.DrawMask(dst, clip, image.NewUniform(tint), image.Point{},
		g.Mask, clip.Min.Sub(cell.Min), draw.Over)
	return nil
}

// fill paints the whole of dst with c.
func fill(dst *image.RGBA, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}
