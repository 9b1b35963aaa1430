package imageutil

import (
	"image"

	"github.com/nfnt/resize"
)

// FitWidth shrinks img to maxWidth pixels wide, keeping its aspect ratio.
// Images that already fit, or a maxWidth of zero or less, are returned
// unchanged. Images are never enlarged.
func FitWidth(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
}
