package slug

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// defaultSuffixLength is the suffix length used for reserved slugs and MinLength padding.
	defaultSuffixLength = 6

	// MaxSuffixLength is the longest suffix WithSuffix produces.
	MaxSuffixLength = 32
)

// Option configures Make.
type Option func(*makeOptions)

type makeOptions struct {
	replacements map[string]string
	reserved     map[string]struct{}
	separator    string
	stripChars   string
	maxLength    int
	minLength    int
	suffixLength int
	lowercase    bool
}

func defaultMakeOptions() *makeOptions {
	return &makeOptions{
		separator: DefaultSeparator,
		lowercase: true,
	}
}

// Separator sets the string placed between words.
// Default: "-".
func Separator(sep string) Option {
	return func(o *makeOptions) {
		o.separator = sep
	}
}

// Lowercase controls case conversion.
// Default: true.
func Lowercase(enabled bool) Option {
	return func(o *makeOptions) {
		o.lowercase = enabled
	}
}

// MaxLength limits the slug length in runes. Zero or negative means no limit.
func MaxLength(n int) Option {
	return func(o *makeOptions) {
		o.maxLength = max(n, 0)
	}
}

// MinLength pads slugs shorter than n runes with a random suffix.
func MinLength(n int) Option {
	return func(o *makeOptions) {
		o.minLength = max(n, 0)
	}
}

// StripChars removes every listed character before processing.
func StripChars(chars string) Option {
	return func(o *makeOptions) {
		o.stripChars += chars
	}
}

// CustomReplace applies string replacements before slugification.
// Longer keys win over shorter ones that share a prefix.
func CustomReplace(replacements map[string]string) Option {
	return func(o *makeOptions) {
		if o.replacements == nil {
			o.replacements = make(map[string]string, len(replacements))
		}
		maps.Copy(o.replacements, replacements)
	}
}

// WithSuffix appends a random alphanumeric suffix of n characters,
// capped at MaxSuffixLength.
func WithSuffix(n int) Option {
	return func(o *makeOptions) {
		o.suffixLength = min(max(n, 0), MaxSuffixLength)
	}
}

// ReservedSlugs lists slugs that must not be produced as-is (case-insensitive).
// A reserved result gets a random suffix.
func ReservedSlugs(slugs ...string) Option {
	return func(o *makeOptions) {
		if o.reserved == nil {
			o.reserved = make(map[string]struct{}, len(slugs))
		}
		for _, s := range slugs {
			o.reserved[strings.ToLower(s)] = struct{}{}
		}
	}
}

// Make converts s into a slug, never failing. It returns "" when nothing usable
// remains and no suffix was requested.
//
//	slug.Make("Hello, World!")                          // "hello-world"
//	slug.Make("Café & Restaurant")                      // "cafe-restaurant"
//	slug.Make("Long Article Title", slug.MaxLength(12)) // "long-article"
//
// Unlike Generate, Make transliterates Latin diacritics to ASCII and keeps
// apostrophes as word breaks.
func Make(s string, opts ...Option) string {
	o := defaultMakeOptions()
	for _, opt := range opts {
		opt(o)
	}

	base := o.slugify(s)

	suffixLen := o.suffixLength
	explicit := suffixLen > 0
	if !explicit && o.isReserved(base) {
		suffixLen = defaultSuffixLength
	}

	var result string
	switch {
	case suffixLen > 0:
		result = o.appendSuffix(base, suffixLen, explicit)
	case o.maxLength > 0:
		result = o.truncate(base, o.maxLength)
	default:
		result = base
	}

	if o.minLength > 0 && utf8.RuneCountInString(result) < o.minLength {
		result = o.pad(result)
	}

	return result
}

func (o *makeOptions) pipeline() Options {
	return Options{
		Filter:    ASCIIAlphaNum,
		Separator: o.separator,
		LowerCase: o.lowercase,
	}
}

func (o *makeOptions) slugify(s string) string {
	if o.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	if len(o.replacements) > 0 {
		s = newReplacer(o.replacements).Replace(s)
	}

	out, _ := build(o.pipeline(), transliterate(s))
	return out
}

func (o *makeOptions) isReserved(s string) bool {
	if s == "" || len(o.reserved) == 0 {
		return false
	}
	_, ok := o.reserved[strings.ToLower(s)]
	return ok
}

// truncate cuts s to n runes and rebuilds it so no separator dangles.
func (o *makeOptions) truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	out, _ := build(o.pipeline(), prefix(s, n))
	return out
}

// appendSuffix adds a random suffix of n runes while honouring maxLength.
// An explicit suffix keeps its length and shortens the base; a suffix added
// for a reserved slug shrinks first.
func (o *makeOptions) appendSuffix(base string, n int, explicit bool) string {
	if o.maxLength == 0 {
		return o.join(base, randomSuffix(n, o.lowercase))
	}

	sepLen := utf8.RuneCountInString(o.separator)
	if !explicit && base != "" {
		if room := o.maxLength - utf8.RuneCountInString(base) - sepLen; room > 0 {
			return o.join(base, randomSuffix(min(n, room), o.lowercase))
		}
	}

	avail := o.maxLength - sepLen - n
	if base == "" || avail < 1 {
		return randomSuffix(min(n, o.maxLength), o.lowercase)
	}
	return o.join(o.truncate(base, avail), randomSuffix(n, o.lowercase))
}

// pad appends a defaultSuffixLength suffix, shrunk to fit maxLength.
func (o *makeOptions) pad(s string) string {
	n := defaultSuffixLength
	if o.maxLength > 0 {
		room := o.maxLength - utf8.RuneCountInString(s)
		if s != "" {
			room -= utf8.RuneCountInString(o.separator)
		}
		n = min(n, room)
	}
	if n <= 0 {
		return s
	}
	return o.join(s, randomSuffix(n, o.lowercase))
}

func (o *makeOptions) join(base, suffix string) string {
	if base == "" {
		return suffix
	}
	if suffix == "" {
		return base
	}
	return base + o.separator + suffix
}

// newReplacer orders keys longest first so "C++" beats "C".
func newReplacer(m map[string]string) *strings.Replacer {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		if k == "" {
			continue
		}
		pairs = append(pairs, k, m[k])
	}
	return strings.NewReplacer(pairs...)
}
