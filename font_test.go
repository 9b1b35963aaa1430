package img2ascii

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const missingRune = 0x1F600 // not in the Go fonts

func newFace(t *testing.T, f *Font, size float64) *Face {
	t.Helper()
	face, err := f.Face(size)
	if err != nil {
		t.Fatalf("Face(%v) failed: %v", size, err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

func defaultFace(t *testing.T, size float64) *Face {
	t.Helper()
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}
	return newFace(t, f, size)
}

func TestDefaultFont(t *testing.T) {
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}
	if f.Name() != "Go Mono" {
		t.Errorf("Expected Go Mono, got %q", f.Name())
	}
	again, _ := DefaultFont()
	if again != f {
		t.Error("DefaultFont should parse the embedded font once")
	}
}

func TestFaceCellSize(t *testing.T) {
	face := defaultFace(t, 12)
	w, h := face.CellSize()
	if w <= 0 || h <= 0 {
		t.Fatalf("Expected positive cell size, got %dx%d", w, h)
	}
	if h <= w {
		t.Errorf("Expected a monospace cell taller than wide, got %dx%d", w, h)
	}
	if face.Ascent() <= 0 || face.Ascent() > h {
		t.Errorf("Ascent %d outside cell height %d", face.Ascent(), h)
	}
	if face.Size() != 12 {
		t.Errorf("Expected size 12, got %v", face.Size())
	}

	big := defaultFace(t, 48)
	bw, bh := big.CellSize()
	if bw <= w || bh <= h {
		t.Errorf("Larger size should give a larger cell: %dx%d vs %dx%d", bw, bh, w, h)
	}
}

func TestFaceInvalidSize(t *testing.T) {
	f, _ := DefaultFont()
	for _, size := range []float64{0, -3, MaxFontSize + 1, 1e22} {
		var ice *InvalidConfigError
		if _, err := f.Face(size); !errors.As(err, &ice) {
			t.Errorf("size %v: expected InvalidConfigError, got %v", size, err)
		}
	}
}

func TestLoadFont(t *testing.T) {
	f, err := LoadFont(goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFont failed: %v", err)
	}
	if !f.HasGlyph('A') {
		t.Error("Go Regular should have A")
	}

	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = LoadFontFile(path)
	if err != nil {
		t.Fatalf("LoadFontFile failed: %v", err)
	}
	if f.Name() != path {
		t.Errorf("Expected name %q, got %q", path, f.Name())
	}
}

func TestLoadFontErrors(t *testing.T) {
	var fle *FontLoadError

	if _, err := LoadFont([]byte("this is definitely not a font file")); !errors.As(err, &fle) {
		t.Errorf("Expected FontLoadError for garbage, got %v", err)
	}
	if _, err := LoadFont(nil); !errors.As(err, &fle) {
		t.Errorf("Expected FontLoadError for empty data, got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.ttf")
	_, err := LoadFontFile(missing)
	if !errors.As(err, &fle) {
		t.Fatalf("Expected FontLoadError for missing file, got %v", err)
	}
	if fle.Path != missing {
		t.Errorf("Expected path %q in error, got %q", missing, fle.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("FontLoadError should unwrap to the read error")
	}
}

func TestFaceGlyph(t *testing.T) {
	face := defaultFace(t, 24)
	w, h := face.CellSize()

	g, err := face.Glyph('A')
	if err != nil {
		t.Fatalf("Glyph failed: %v", err)
	}
	if g.Rune != 'A' {
		t.Errorf("Expected rune A, got %q", g.Rune)
	}
	if !g.Mask.Bounds().Overlaps(image.Rect(0, 0, w, h)) {
		t.Fatalf("Mask %v does not overlap cell %dx%d", g.Mask.Bounds(), w, h)
	}
	var covered int
	for _, a := range g.Mask.Pix {
		if a > 0 {
			covered++
		}
	}
	if covered == 0 {
		t.Error("Expected some coverage in the mask of A")
	}

	// The mask is a copy, so a second glyph does not clobber the first
	before := append([]uint8(nil), g.Mask.Pix...)
	if _, err := face.Glyph('W'); err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if g.Mask.Pix[i] != before[i] {
			t.Fatal("Mask of A changed after rasterizing W")
		}
	}
}

func TestFaceGlyphMissing(t *testing.T) {
	face := defaultFace(t, 12)
	f, _ := DefaultFont()
	if f.HasGlyph(missingRune) {
		t.Skip("font unexpectedly has the test rune")
	}

	_, err := face.Glyph(missingRune)
	var gre *GlyphRasterError
	if !errors.As(err, &gre) {
		t.Fatalf("Expected GlyphRasterError, got %v", err)
	}
	if gre.Rune != missingRune {
		t.Errorf("Expected rune U+%04X in error, got U+%04X", missingRune, gre.Rune)
	}
}

func TestOpenTypeBackend(t *testing.T) {
	ot, err := opentype.Parse(gomono.TTF)
	if err != nil {
		t.Fatal(err)
	}
	f := &Font{name: "sfnt", ot: ot}

	if !f.HasGlyph('A') || f.HasGlyph(missingRune) {
		t.Error("sfnt glyph lookup disagrees with the font's cmap")
	}

	face := newFace(t, f, 16)
	if w, h := face.CellSize(); w <= 0 || h <= 0 {
		t.Errorf("Expected positive cell size, got %dx%d", w, h)
	}
	if _, err := face.Glyph('A'); err != nil {
		t.Errorf("Glyph failed: %v", err)
	}
}

func TestAtlas(t *testing.T) {
	face := defaultFace(t, 12)
	atlas := NewAtlas(face, []rune{'A', 'B', 'A', missingRune})

	if atlas.Len() != 2 {
		t.Errorf("Expected 2 glyphs, got %d", atlas.Len())
	}
	if g, err := atlas.Glyph('B'); err != nil || g.Rune != 'B' {
		t.Errorf("Expected glyph B, got %v, %v", g, err)
	}

	var gre *GlyphRasterError
	if _, err := atlas.Glyph(missingRune); !errors.As(err, &gre) {
		t.Errorf("Expected GlyphRasterError for missing glyph, got %v", err)
	}
	if _, err := atlas.Glyph('Z'); !errors.As(err, &gre) {
		t.Errorf("Expected GlyphRasterError for rune not in atlas, got %v", err)
	}
}
