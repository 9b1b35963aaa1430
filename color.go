package img2ascii

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses a "#rrggbb" (or "rrggbb") string into an opaque
// color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, &InvalidConfigError{Field: "color", Value: s, Reason: "want #rrggbb"}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, &InvalidConfigError{Field: "color", Value: s, Reason: "not hexadecimal"}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
