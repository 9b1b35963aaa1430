package img2ascii

import (
	"slices"
	"strings"
	"unicode"
)

// charsetTable maps a charset name to the function generating its runes.
var charsetTable = map[string]func() []rune{
	"latin":        func() []rune { return letterRange(0x0041, 0x007A) },
	"cyrillic":     func() []rune { return letterRange(0x0400, 0x04FF) },
	"runic":        func() []rune { return letterRange(0x16A0, 0x16FF) },
	"hebrew":       func() []rune { return letterRange(0x0590, 0x05FF) },
	"hiragana":     func() []rune { return letterRange(0x3040, 0x309F) },
	"katakana":     func() []rune { return letterRange(0x30A0, 0x30FF) },
	"hangul":       func() []rune { return letterRange(0x1100, 0x11FF) },
	"cjkunified":   func() []rune { return letterRange(0x4E00, 0x9FFF) },
	"greek":        func() []rune { return letterRange(0x0370, 0x03E1) },
	"emoticons":    func() []rune { return runeRange(0x1F600, 0x1F64F) },
	"decimal":      func() []rune { return runeRange('0', '9') },
	"hexadecimal":  func() []rune { return append(runeRange('0', '9'), runeRange('A', 'F')...) },
	"binary":       func() []rune { return []rune{'0', '1'} },
	"braille":      func() []rune { return runeRange(0x2800, 0x28FF) },
	"playingcards": playingCards,
}

// DefaultCharset is the charset used by random mode when none is given.
const DefaultCharset = "latin"

// Charset returns the runes of the named charset. Names are case
// insensitive.
func Charset(name string) ([]rune, error) {
	gen, ok := charsetTable[strings.ToLower(name)]
	if !ok {
		return nil, &InvalidConfigError{
			Field:  "charset",
			Value:  name,
			Reason: "want one of " + strings.Join(CharsetNames(), ", "),
		}
	}
	return gen(), nil
}

// CharsetNames returns the known charset names in sorted order.
func CharsetNames() []string {
	names := make([]string, 0, len(charsetTable))
	for name := range charsetTable {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CustomCharset turns the contents of a charset file into a charset.
// Surrounding whitespace is trimmed; everything else is kept as is.
func CustomCharset(text string) ([]rune, error) {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil, &InvalidConfigError{Field: "charset", Value: "(custom)", Reason: "no characters"}
	}
	return runes, nil
}

func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// letterRange returns the letters in [lo, hi]; unassigned code points and
// punctuation inside a block are skipped.
func letterRange(lo, hi rune) []rune {
	var out []rune
	for r := lo; r <= hi; r++ {
		if unicode.IsLetter(r) {
			out = append(out, r)
		}
	}
	return out
}

// playingCards is the playing cards block minus its unassigned slots.
func playingCards() []rune {
	var out []rune
	for r := rune(0x1F0A0); r <= 0x1F0DF; r++ {
		switch r {
		case 0x1F0AF, 0x1F0B0, 0x1F0C0, 0x1F0D0:
			continue
		}
		out = append(out, r)
	}
	return out
}
