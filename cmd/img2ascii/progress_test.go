package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBarRedrawsPerPercent(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf)

	for done := 1; done <= 1000; done++ {
		bar.Update(done, 1000)
	}
	bar.Finish()

	out := buf.String()
	if n := strings.Count(out, "\r"); n != 101 {
		t.Errorf("Expected 101 redraws (0 through 100 percent), got %d", n)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Finish should end the line")
	}
}

func TestProgressBarFinishWithoutDraw(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf)
	bar.Update(0, 0)
	bar.Finish()
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("A buffer is not a terminal")
	}
}
