package slug

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slug is a validated slug. The zero value is not a valid slug.
//
// A Slug is never empty, never starts or ends with its separator, never holds
// two separators in a row and, when lower-casing is on, holds no upper-case
// characters. Values are only produced by Generate, Parse, Truncate and the
// decoders, which all validate through the same pipeline.
type Slug struct {
	s string
}

// String returns the slug text.
func (s Slug) String() string {
	return s.s
}

// IsZero reports whether s is the zero value.
func (s Slug) IsZero() bool {
	return s.s == ""
}

// Len returns the length of the slug in code points.
func (s Slug) Len() int {
	return utf8.RuneCountInString(s.s)
}

// Compare returns -1, 0 or +1 by byte-wise comparison of the slug texts.
func Compare(a, b Slug) int {
	return strings.Compare(a.s, b.s)
}

// Concat joins two slugs without inserting a separator.
// Under the default options the result is itself a valid slug.
func Concat(a, b Slug) Slug {
	return Slug{s: a.s + b.s}
}

// Generate builds a slug from free-form text using DefaultOptions.
//
//	s, err := slug.Generate("My article title!")
//	// s.String() == "my-article-title"
//
// Returns ErrUngeneratable when no word survives filtering.
func Generate(text string) (Slug, error) {
	return GenerateWithOptions(DefaultOptions(), text)
}

// GenerateWithOptions builds a slug from free-form text.
// Returns ErrUngeneratable when no word survives filtering.
func GenerateWithOptions(opts Options, text string) (Slug, error) {
	s, ok := build(opts, text)
	if !ok {
		return Slug{}, ErrUngeneratable
	}
	return Slug{s: s}, nil
}

// Parse validates text as a slug under DefaultOptions without transforming it.
func Parse(text string) (Slug, error) {
	return ParseWithOptions(DefaultOptions(), text)
}

// ParseWithOptions validates text as a slug without transforming it.
// Text is accepted only if generating a slug from it yields text itself.
// Returns ErrUngeneratable or ErrNotSlug.
func ParseWithOptions(opts Options, text string) (Slug, error) {
	s, err := GenerateWithOptions(opts, text)
	if err != nil {
		return Slug{}, err
	}
	if s.s != text {
		return Slug{}, ErrNotSlug
	}
	return s, nil
}

// Truncate shortens s to at most maxLen code points, regenerating the cut
// prefix with DefaultOptions so a dangling separator is dropped.
// The result is maxLen or maxLen-1 code points long.
func Truncate(maxLen int, s Slug) (Slug, error) {
	return TruncateWithOptions(DefaultOptions(), maxLen, s)
}

// TruncateWithOptions is Truncate for slugs produced under opts.
func TruncateWithOptions(opts Options, maxLen int, s Slug) (Slug, error) {
	if maxLen < 1 {
		return Slug{}, ErrInvalidLength
	}
	if s.IsZero() {
		return Slug{}, ErrUngeneratable
	}
	if maxLen >= s.Len() {
		return s, nil
	}
	return GenerateWithOptions(opts, prefix(s.s, maxLen))
}

// build runs the transformation pipeline: strip apostrophes, lower-case,
// replace rejected code points with spaces, split on spaces, join.
// It reports false when no word remains.
func build(opts Options, text string) (string, bool) {
	if opts.StripApostrophes {
		text = strings.Map(func(r rune) rune {
			if isApostrophe(r) {
				return -1
			}
			return r
		}, text)
	}

	if opts.LowerCase {
		// A Caser keeps state between calls, so each call gets its own.
		text = cases.Lower(language.Und).String(text)
	}

	keep := opts.filter()
	text = strings.Map(func(r rune) rune {
		if keep.Keep(r) {
			return r
		}
		return ' '
	}, text)

	words := make([]string, 0, 8)
	for w := range strings.SplitSeq(text, " ") {
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return "", false
	}

	return strings.Join(words, opts.Separator), true
}

func isApostrophe(r rune) bool {
	return r == '\''
}

// prefix returns the first n code points of s.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
