package img2ascii

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Source decides which character goes in each cell. It is implemented by
// Random, Fixed and Text only.
//
// At must be safe for concurrent use. The render engine calls it with the
// row-major index of a cell, so a Source never holds a shared cursor; use a
// Stream for sequential next-character access.
type Source interface {
	// At returns the character for cell i.
	At(i int) rune
	// Runes returns every character At can return.
	Runes() []rune

	source()
}

// Random draws characters uniformly from a charset.
type Random struct {
	charset []rune
	seeded  bool
	seed    uint64
}

// NewRandom returns a Random source over charset. Draws are not
// reproducible across runs.
func NewRandom(charset []rune) (*Random, error) {
	if len(charset) == 0 {
		return nil, &InvalidConfigError{Field: "charset", Value: "(empty)", Reason: "no characters"}
	}
	return &Random{charset: slices.Clone(charset)}, nil
}

// NewSeededRandom returns a Random source whose draw for cell i depends only
// on seed and i, so renders repeat exactly whatever order cells are visited
// in.
func NewSeededRandom(charset []rune, seed uint64) (*Random, error) {
	s, err := NewRandom(charset)
	if err != nil {
		return nil, err
	}
	s.seeded, s.seed = true, seed
	return s, nil
}

// At returns a charset rune for cell i.
func (s *Random) At(i int) rune {
	if !s.seeded {
		return s.charset[rand.IntN(len(s.charset))]
	}
	rng := rand.New(rand.NewPCG(s.seed, uint64(i)))
	return s.charset[rng.IntN(len(s.charset))]
}

// Runes returns a copy of the charset.
func (s *Random) Runes() []rune { return slices.Clone(s.charset) }

func (*Random) source() {}

// Fixed returns the same character for every cell.
type Fixed struct {
	r rune
}

// NewFixed returns a source that puts r in every cell.
func NewFixed(r rune) *Fixed { return &Fixed{r: r} }

// At returns the fixed rune whatever the cell.
func (s *Fixed) At(int) rune { return s.r }

// Runes returns the fixed rune.
func (s *Fixed) Runes() []rune { return []rune{s.r} }

func (*Fixed) source() {}

// Text cycles through the letters of a text. Only letters are kept;
// whitespace, digits, punctuation and newlines are dropped.
type Text struct {
	buf []rune
}

// NewText filters raw down to its letters. It returns ErrEmptyTextSource if
// none are left.
func NewText(raw string) (*Text, error) {
	filtered, err := lettersOnly(raw)
	if err != nil {
		return nil, fmt.Errorf("img2ascii: failed to filter text: %w", err)
	}
	buf := []rune(filtered)
	if len(buf) == 0 {
		return nil, ErrEmptyTextSource
	}
	return &Text{buf: buf}, nil
}

// NewTextFile reads the file at path and passes its contents to NewText.
func NewTextFile(path string) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("img2ascii: failed to read text file: %w", err)
	}
	return NewText(string(data))
}

// lettersOnly composes decomposed accents first so that "e" followed by a
// combining acute survives as a single "é".
func lettersOnly(s string) (string, error) {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(func(r rune) bool {
		return !unicode.IsLetter(r)
	})))
	out, _, err := transform.String(t, s)
	return out, err
}

// At returns letter i of the text, wrapping around at the end.
func (s *Text) At(i int) rune {
	n := len(s.buf)
	return s.buf[((i%n)+n)%n]
}

// Len returns the number of letters in the filtered buffer.
func (s *Text) Len() int { return len(s.buf) }

// Letters returns a copy of the filtered buffer.
func (s *Text) Letters() []rune { return slices.Clone(s.buf) }

// Runes returns the distinct letters in order of first appearance.
func (s *Text) Runes() []rune {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s.buf {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func (*Text) source() {}

// Stream is a cursor over a Source.
type Stream struct {
	src Source
	pos int
}

// NewStream returns a cursor at the start of src.
func NewStream(src Source) *Stream {
	return &Stream{src: src}
}

// Next returns the character at the cursor and advances it.
func (s *Stream) Next() rune {
	r := s.src.At(s.pos)
	s.pos++
	return r
}

// Pos returns the number of characters taken so far.
func (s *Stream) Pos() int { return s.pos }

// Reset rewinds the cursor to the start.
func (s *Stream) Reset() { s.pos = 0 }
