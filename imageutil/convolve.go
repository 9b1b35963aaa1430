package imageutil

import (
	"image"
	"math"
)

// Kernel is a convolution kernel. Values is indexed [row][column].
type Kernel struct {
	Values        [][]float64
	Width, Height int
}

// NewKernel creates a kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	k := &Kernel{Values: values, Height: len(values)}
	if k.Height > 0 {
		k.Width = len(values[0])
	}
	return k
}

// SharpeningKernel returns a mild sharpening kernel. Its weights sum to 1,
// so flat regions come through unchanged.
func SharpeningKernel() *Kernel {
	return NewKernel([][]float64{
		{0, -0.5, 0},
		{-0.5, 3, -0.5},
		{0, -0.5, 0},
	})
}

// Convolve applies kernel to the color channels of img. Alpha is copied as
// is and border pixels are replicated. The result is anchored at the origin.
func Convolve(img *image.RGBA, kernel *Kernel) *image.RGBA {
	src := ToRGBA(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewRGBA(src.Bounds())

	halfKW, halfKH := kernel.Width/2, kernel.Height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum [3]float64
			for ky := 0; ky < kernel.Height; ky++ {
				sy := min(max(y+ky-halfKH, 0), height-1)
				for kx := 0; kx < kernel.Width; kx++ {
					sx := min(max(x+kx-halfKW, 0), width-1)
					i := src.PixOffset(sx, sy)
					k := kernel.Values[ky][kx]
					sum[0] += float64(src.Pix[i]) * k
					sum[1] += float64(src.Pix[i+1]) * k
					sum[2] += float64(src.Pix[i+2]) * k
				}
			}

			// Premultiplied channels may not exceed alpha
			i := dst.PixOffset(x, y)
			a := src.Pix[i+3]
			dst.Pix[i] = min(clampUint8(sum[0]), a)
			dst.Pix[i+1] = min(clampUint8(sum[1]), a)
			dst.Pix[i+2] = min(clampUint8(sum[2]), a)
			dst.Pix[i+3] = a
		}
	}
	return dst
}

// Sharpen applies SharpeningKernel to img.
func Sharpen(img *image.RGBA) *image.RGBA {
	return Convolve(img, SharpeningKernel())
}

// clampUint8 clamps v to [0, 255] and rounds it.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
