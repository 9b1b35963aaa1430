// Package imageutil loads, saves and resizes the raster images that
// img2ascii reads and writes.
package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// ToRGBA returns img as an *image.RGBA whose bounds start at the origin.
// An *image.RGBA already anchored at the origin is returned unchanged.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Clone returns a deep copy of img.
func Clone(img *image.RGBA) *image.RGBA {
	clone := image.NewRGBA(img.Bounds())
	copy(clone.Pix, img.Pix)
	return clone
}
