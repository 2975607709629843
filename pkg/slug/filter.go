package slug

import (
	"fmt"
	"unicode"
)

// Filter decides whether a code point is kept verbatim as word content.
// Rejected code points act as word breaks.
type Filter interface {
	Keep(r rune) bool
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(r rune) bool

// Keep calls f(r).
func (f FilterFunc) Keep(r rune) bool {
	return f(r)
}

// Predefined filters.
var (
	// Latin1AlphaNum keeps letters and numbers within the Latin-1 range.
	// It is the default filter.
	Latin1AlphaNum Filter = FilterFunc(func(r rune) bool {
		return r <= unicode.MaxLatin1 && (unicode.IsLetter(r) || unicode.IsNumber(r))
	})

	// Latin1 keeps every code point within the Latin-1 range, spaces and
	// punctuation included.
	Latin1 Filter = FilterFunc(func(r rune) bool {
		return r <= unicode.MaxLatin1
	})

	// ASCIIAlphaNum keeps [a-zA-Z0-9] only.
	ASCIIAlphaNum Filter = FilterFunc(isASCIIAlphaNum)
)

// Filter names accepted by NamedFilter.
const (
	FilterLatin1AlphaNum = "latin1-alnum"
	FilterLatin1         = "latin1"
	FilterASCIIAlphaNum  = "ascii-alnum"
)

// NamedFilter resolves a predefined filter by name.
// An empty name resolves to the default filter.
func NamedFilter(name string) (Filter, error) {
	switch name {
	case "", FilterLatin1AlphaNum:
		return Latin1AlphaNum, nil
	case FilterLatin1:
		return Latin1, nil
	case FilterASCIIAlphaNum:
		return ASCIIAlphaNum, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
}

func isASCIIAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
