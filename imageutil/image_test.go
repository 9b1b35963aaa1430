package imageutil

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 14, 23))
	src.SetNRGBA(10, 20, color.NRGBA{R: 255, A: 255})

	rgba := ToRGBA(src)
	if rgba.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("Expected bounds (0,0)-(4,3), got %v", rgba.Bounds())
	}
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Expected red at origin, got %v", got)
	}
}

func TestToRGBAPassThrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ToRGBA(img) != img {
		t.Error("Origin-anchored RGBA should be returned unchanged")
	}
}

func TestClone(t *testing.T) {
	img := CreateSolidImage(4, 4, color.RGBA{R: 255, A: 255})
	clone := Clone(img)
	clone.SetRGBA(1, 1, color.RGBA{G: 255, A: 255})
	if img.RGBAAt(1, 1).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestCreateQuadrantImage(t *testing.T) {
	quads := [4]color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	img := CreateQuadrantImage(10, 10, quads)

	points := []image.Point{{0, 0}, {9, 0}, {0, 9}, {9, 9}}
	for i, p := range points {
		if got := img.RGBAAt(p.X, p.Y); got != quads[i] {
			t.Errorf("Quadrant %d: expected %v, got %v", i, quads[i], got)
		}
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateCheckerboardImage(32, 32, 4)

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		path := filepath.Join(tmpDir, "test"+ext)
		if err := SaveImage(img, path); err != nil {
			t.Fatalf("Failed to save %s: %v", ext, err)
		}

		loaded, err := LoadImage(path)
		if err != nil {
			t.Fatalf("Failed to load %s: %v", ext, err)
		}

		// These formats are lossless
		if diff := CalculateMaxDiff(img, loaded); diff != 0 {
			t.Errorf("%s should be lossless, max diff %d", ext, diff)
		}
	}
}

func TestSaveImageLeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.png")
	if err := SaveImage(CreateGradientImage(8, 8), path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.png" {
		t.Errorf("Expected only out.png in directory, got %v", entries)
	}
}

func TestSaveImageMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := SaveImage(CreateGradientImage(8, 8), path); err == nil {
		t.Error("Expected error saving into a missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No output file should exist after a failed save")
	}
}

func TestLoadImageErrors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestFitWidth(t *testing.T) {
	img := CreateGradientImage(200, 100)

	resized := FitWidth(img, 50)
	if resized.Bounds().Dx() != 50 || resized.Bounds().Dy() != 25 {
		t.Errorf("Expected 50x25, got %dx%d", resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	if FitWidth(img, 0) != image.Image(img) {
		t.Error("maxWidth 0 should leave the image unchanged")
	}
	if FitWidth(img, 400) != image.Image(img) {
		t.Error("FitWidth should never enlarge")
	}
}

func TestCalculateMaxDiff(t *testing.T) {
	a := CreateSolidImage(4, 4, color.RGBA{R: 10, A: 255})
	b := CreateSolidImage(4, 4, color.RGBA{R: 40, A: 255})
	if d := CalculateMaxDiff(a, b); d != 30 {
		t.Errorf("Expected 30, got %d", d)
	}
	if d := CalculateMaxDiff(a, CreateSolidImage(2, 2, color.RGBA{})); d != 256 {
		t.Errorf("Expected 256 for size mismatch, got %d", d)
	}
}

func TestSharpen(t *testing.T) {
	flat := CreateSolidImage(8, 8, color.RGBA{R: 100, G: 150, B: 200, A: 255})
	if d := CalculateMaxDiff(flat, Sharpen(flat)); d != 0 {
		t.Errorf("Sharpening a flat image should not change it, max diff %d", d)
	}

	// A dark line on gray gets darker centre and brighter flanks
	img := CreateSolidImage(9, 9, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	for y := 0; y < 9; y++ {
		img.SetRGBA(4, y, color.RGBA{R: 64, G: 64, B: 64, A: 255})
	}
	sharp := Sharpen(img)
	if got := sharp.RGBAAt(4, 4).R; got >= 64 {
		t.Errorf("Expected line darkened below 64, got %d", got)
	}
	if got := sharp.RGBAAt(3, 4).R; got <= 128 {
		t.Errorf("Expected flank brightened above 128, got %d", got)
	}
	if sharp.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), sharp.Bounds())
	}
}
