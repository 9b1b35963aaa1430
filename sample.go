package img2ascii

import (
	"image"
	"image/color"
)

// AverageColor returns the mean of every channel over the pixels of img
// inside r. Channels are averaged in premultiplied 8-bit RGBA and rounded to
// the nearest integer. An empty region yields transparent black.
func AverageColor(img image.Image, r image.Rectangle) color.RGBA {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return color.RGBA{}
	}

	var sum [4]uint64
	switch src := img.(type) {
	case *image.RGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			i := src.PixOffset(r.Min.X, y)
			for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
				sum[0] += uint64(src.Pix[i])
				sum[1] += uint64(src.Pix[i+1])
				sum[2] += uint64(src.Pix[i+2])
				sum[3] += uint64(src.Pix[i+3])
			}
		}
	case *image.NRGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			i := src.PixOffset(r.Min.X, y)
			for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
				a := uint32(src.Pix[i+3])
				sum[0] += uint64(premultiply(src.Pix[i], a))
				sum[1] += uint64(premultiply(src.Pix[i+1], a))
				sum[2] += uint64(premultiply(src.Pix[i+2], a))
				sum[3] += uint64(a)
			}
		}
	default:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				sum[0] += uint64(c.R)
				sum[1] += uint64(c.G)
				sum[2] += uint64(c.B)
				sum[3] += uint64(c.A)
			}
		}
	}

	n := uint64(r.Dx() * r.Dy())
	return color.RGBA{
		R: uint8((sum[0] + n/2) / n),
		G: uint8((sum[1] + n/2) / n),
		B: uint8((sum[2] + n/2) / n),
		A: uint8((sum[3] + n/2) / n),
	}
}

// premultiply matches color.NRGBA's conversion to color.RGBA.
func premultiply(c uint8, a uint32) uint8 {
	v := uint32(c) * 0x101 * a / 0xff
	return uint8(v >> 8)
}
