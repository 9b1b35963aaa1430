package img2ascii

import (
	"fmt"
	"image"
	"math"
)

// MaxCanvasPixels caps the area of a scaled canvas, which is about 1 GiB of
// RGBA.
const MaxCanvasPixels = 1 << 28

// Grid is the cell layout of one conversion. Columns and rows are counted
// in source pixels; Width and Height are the scaled canvas size.
type Grid struct {
	Cols, Rows            int
	CellWidth, CellHeight int
	Scale                 float64
	Width, Height         int
}

// Cell is one grid position: the source region it samples and the canvas
// region it is drawn into.
type Cell struct {
	Row, Col int
	Src      image.Rectangle
	Dst      image.Rectangle
}

// PlanGrid fits as many whole cells as possible into an image. Source pixels
// to the right of the last column or below the last row are dropped, not
// padded.
func PlanGrid(imageWidth, imageHeight, cellWidth, cellHeight int, scale float64) (Grid, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Grid{}, &InvalidConfigError{Field: "scale", Value: scale, Reason: "must be positive"}
	}
	if cellWidth <= 0 || cellHeight <= 0 {
		return Grid{}, &InvalidConfigError{
			Field:  "cell size",
			Value:  image.Pt(cellWidth, cellHeight),
			Reason: "must be positive",
		}
	}

	g := Grid{
		Cols:       max(imageWidth, 0) / cellWidth,
		Rows:       max(imageHeight, 0) / cellHeight,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Scale:      scale,
	}
	degenerate := &DegenerateGridError{
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		CellWidth:   cellWidth,
		CellHeight:  cellHeight,
		Cols:        g.Cols,
		Rows:        g.Rows,
	}
	if g.Cols == 0 || g.Rows == 0 {
		return Grid{}, degenerate
	}

	w := math.Round(float64(g.Cols*cellWidth) * scale)
	h := math.Round(float64(g.Rows*cellHeight) * scale)
	if w > MaxCanvasPixels || h > MaxCanvasPixels || w*h > MaxCanvasPixels {
		return Grid{}, &InvalidConfigError{
			Field:  "scale",
			Value:  scale,
			Reason: fmt.Sprintf("canvas of %.0fx%.0f exceeds %d pixels", w, h, MaxCanvasPixels),
		}
	}
	g.Width, g.Height = int(w), int(h)
	if g.Width == 0 || g.Height == 0 {
		return Grid{}, degenerate
	}
	return g, nil
}

// scaled rounds v*scale to the nearest pixel. Callers keep v*scale within
// the canvas, which PlanGrid has bounded by MaxCanvasPixels.
func scaled(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.Cols * g.Rows }

// Index returns the row-major index of a cell.
func (g Grid) Index(row, col int) int { return row*g.Cols + col }

// Bounds returns the canvas rectangle.
func (g Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.Width, g.Height) }

// Cell returns the geometry of the cell at (row, col). Canvas edges are
// rounded from the same scaled positions for neighbouring cells, so the
// cells tile the canvas exactly.
func (g Grid) Cell(row, col int) Cell {
	x0, y0 := col*g.CellWidth, row*g.CellHeight
	x1, y1 := x0+g.CellWidth, y0+g.CellHeight
	return Cell{
		Row: row,
		Col: col,
		Src: image.Rect(x0, y0, x1, y1),
		Dst: image.Rect(
			scaled(x0, g.Scale), scaled(y0, g.Scale),
			scaled(x1, g.Scale), scaled(y1, g.Scale),
		),
	}
}
