// Package slug generates and validates URL-safe slugs.
//
// The package offers two layers:
//
//   - A validated [Slug] type built by [Generate], checked by [Parse] and
//     shortened by [Truncate]. A Slug value always satisfies the slug invariants
//     for the [Options] it was produced with.
//   - [Make], a forgiving string generator with transliteration, length limits
//     and collision-resistant suffixes. It never fails.
//
// # Validated slugs
//
//	s, err := slug.Generate("My article title!")
//	// s.String() == "my-article-title"
//
//	_, err = slug.Generate("¬¬¬{}¬¬¬")
//	// errors.Is(err, slug.ErrUngeneratable)
//
//	s, err = slug.Generate("This library's great")
//	// s.String() == "this-librarys-great" (apostrophes never split words)
//
// Parse accepts only text that is already a slug; it never fixes input:
//
//	_, err = slug.Parse("My-Title")
//	// errors.Is(err, slug.ErrNotSlug)
//
// Truncate cuts a slug to a maximum length in code points and drops a dangling
// separator:
//
//	s, _ = slug.Generate("My article title is long!")
//	s, _ = slug.Truncate(3, s)
//	// s.String() == "my"
//
// # Options
//
// Generation runs a fixed pipeline: strip apostrophes, lower-case, replace every
// code point rejected by the filter with a space, split on spaces and join the
// words with the separator. Each stage is controlled by [Options]:
//
//	opts := slug.DefaultOptions()
//	opts.Filter = slug.Latin1
//	opts.LowerCase = false
//	opts.StripApostrophes = false
//	s, _ = slug.GenerateWithOptions(opts, "This is my article's title!")
//	// s.String() == "This-is-my-article's-title!"
//
// A separator made of characters the filter keeps makes word boundaries
// ambiguous. The pipeline does not prevent it; call [Options.Validate] before
// using options that come from users.
//
// # Encoding
//
// Slug implements encoding.TextMarshaler (and therefore JSON), yaml.v3
// marshalling and database/sql scanning. Decoding always validates with
// [Parse] under [DefaultOptions] and fails with [ErrDecode].
//
// # Make
//
//	slug.Make("Hello, World!")
//	// Output: "hello-world"
//
//	slug.Make("Café & Restaurant")
//	// Output: "cafe-restaurant"
//
//	slug.Make("Long Article Title",
//		slug.MaxLength(20),
//		slug.WithSuffix(6),
//	)
//	// Output: "long-article-x3k7f9"
//
// MaxLength limits the slug length (rune-based):
//
//	slug.Make("Very long title", slug.MaxLength(15))
//	// Output: "very-long-title"
//
// MinLength pads short slugs with a random suffix:
//
//	slug.Make("hi", slug.MinLength(10))
//	// Output: "hi-a3f7k2" (6-character suffix)
//
// Separator and Lowercase control the output shape:
//
//	slug.Make("Product Name", slug.Separator("_"), slug.Lowercase(false))
//	// Output: "Product_Name"
//
// StripChars and CustomReplace run before slugification:
//
//	slug.Make("Price: $100", slug.StripChars("$:"))
//	// Output: "price-100"
//
//	slug.Make("Fish & Chips", slug.CustomReplace(map[string]string{"&": "and"}))
//	// Output: "fish-and-chips"
//
// ReservedSlugs forces a suffix onto reserved results (case-insensitive):
//
//	slug.Make("admin", slug.ReservedSlugs("admin", "api"))
//	// Output: "admin-k7x2m4"
//
// Make folds common Latin diacritics to ASCII ("München straße" becomes
// "munchen-strase"); unsupported scripts become separators.
package slug
