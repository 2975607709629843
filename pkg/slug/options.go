package slug

import (
	"fmt"
	"unicode"
)

// DefaultSeparator is the separator used by DefaultOptions.
const DefaultSeparator = "-"

// Options parameterizes Generate, Parse and Truncate.
//
// Options is a plain value: start from DefaultOptions and override fields.
//
//	opts := slug.DefaultOptions()
//	opts.Separator = "_"
//	s, err := slug.GenerateWithOptions(opts, "Product Name")
//	// s.String() == "product_name"
type Options struct {
	// Filter decides which code points are word content. Nil means Latin1AlphaNum.
	Filter Filter

	// Separator is inserted between words. It may be empty.
	Separator string

	// LowerCase lower-cases the input before filtering.
	LowerCase bool

	// StripApostrophes deletes apostrophes before any other processing so that
	// contractions stay one word ("library's" -> "librarys").
	StripApostrophes bool
}

// DefaultOptions returns the options used by Generate, Parse and Truncate:
// "-" separator, Latin-1 letters and numbers, lower-casing and apostrophe stripping.
func DefaultOptions() Options {
	return Options{
		Filter:           Latin1AlphaNum,
		Separator:        DefaultSeparator,
		LowerCase:        true,
		StripApostrophes: true,
	}
}

// Validate reports whether the separator can be told apart from word content.
//
// The pipeline itself does not guard against an overlapping separator: with
// separator "a" and an alphanumeric filter a generated slug may start with the
// separator or contain it twice in a row. Boundaries accepting user supplied
// options should call Validate first. An empty separator is valid.
func (o Options) Validate() error {
	keep := o.filter()
	for _, r := range o.Separator {
		if keep.Keep(r) || (o.LowerCase && keep.Keep(unicode.ToLower(r))) {
			return fmt.Errorf("%w: %q", ErrSeparatorOverlap, r)
		}
		if o.StripApostrophes && isApostrophe(r) {
			return fmt.Errorf("%w: %q is stripped as an apostrophe", ErrSeparatorOverlap, r)
		}
	}
	return nil
}

func (o Options) filter() Filter {
	if o.Filter == nil {
		return Latin1AlphaNum
	}
	return o.Filter
}
