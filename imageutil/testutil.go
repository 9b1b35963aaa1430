package imageutil

import (
	"image"
	"image/color"
)

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// CreateQuadrantImage creates an image split into four equal quadrants,
// colored top-left, top-right, bottom-left, bottom-right.
func CreateQuadrantImage(width, height int, quads [4]color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := 0
			if x >= width/2 {
				i++
			}
			if y >= height/2 {
				i += 2
			}
			img.SetRGBA(x, y, quads[i])
		}
	}
	return img
}

// CreateGradientImage creates a horizontal gray gradient test image.
func CreateGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / max(width-1, 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}
	return img
}

// CalculateMaxDiff calculates the maximum channel difference between two
// images. Images of different sizes report 256.
func CalculateMaxDiff(img1, img2 *image.RGBA) int {
	if img1.Bounds() != img2.Bounds() {
		return 256
	}

	maxDiff := 0
	for i := range img1.Pix {
		d := int(img1.Pix[i]) - int(img2.Pix[i])
		if d < 0 {
			d = -d
		}
		maxDiff = max(maxDiff, d)
	}
	return maxDiff
}
