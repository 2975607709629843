package title_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/slugkit/pkg/slug"
	"github.com/dmitrymomot/slugkit/pkg/title"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		format   title.Format
		expected string
	}{
		{name: "plain collapses whitespace", input: "  Hello \n\t World  ", format: title.Plain, expected: "Hello World"},
		{name: "plain keeps markup literal", input: "a <b> c", format: title.Plain, expected: "a <b> c"},
		{name: "html strips tags", input: `<p>Hello <strong>world</strong></p>`, format: title.HTML, expected: "Hello world"},
		{name: "html drops scripts", input: `<p>Hello</p><script>alert('xss')</script>`, format: title.HTML, expected: "Hello"},
		{name: "html keeps link text", input: `<a href="javascript:alert('xss')">click</a>`, format: title.HTML, expected: "click"},
		{name: "html separates blocks", input: `<h1>One</h1><p>Two</p>`, format: title.HTML, expected: "One Two"},
		{name: "html unescapes entities", input: `<h1>Fish &amp; <em>Chips</em></h1>`, format: title.HTML, expected: "Fish & Chips"},
		{name: "html numeric entities", input: `Tom &amp; Jerry&#39;s`, format: title.HTML, expected: "Tom & Jerry's"},
		{name: "html empty", input: `<img src="x" onerror="alert(1)">`, format: title.HTML, expected: ""},
		{name: "markdown heading", input: "# Hello *World*", format: title.Markdown, expected: "Hello World"},
		{name: "markdown ampersand", input: "Fish & Chips", format: title.Markdown, expected: "Fish & Chips"},
		{name: "markdown links and code", input: "[Link text](https://example.com) and `code`", format: title.Markdown, expected: "Link text and code"},
		{name: "markdown raw html omitted", input: "<script>alert(1)</script>\n\nTitle", format: title.Markdown, expected: "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := title.Extract(tt.input, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := title.Extract("x", title.Format("rst"))
		require.ErrorIs(t, err, title.ErrUnknownFormat)
	})
}

func TestExtractThenGenerate(t *testing.T) {
	t.Parallel()

	text, err := title.Extract("## Fish &amp; *Chips*: a **history**", title.Markdown)
	require.NoError(t, err)

	s, err := slug.Generate(text)
	require.NoError(t, err)
	assert.Equal(t, "fish-chips-a-history", s.String())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected title.Format
		err      error
	}{
		{input: "", expected: title.Plain},
		{input: "plain", expected: title.Plain},
		{input: "text", expected: title.Plain},
		{input: "HTML", expected: title.HTML},
		{input: " markdown ", expected: title.Markdown},
		{input: "md", expected: title.Markdown},
		{input: "rst", err: title.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			f, err := title.ParseFormat(tt.input)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func BenchmarkExtract(b *testing.B) {
	input := "## Fish &amp; *Chips*: a **history** of [British](https://example.com) food"

	b.ReportAllocs()
	for b.Loop() {
		_, _ = title.Extract(input, title.Markdown)
	}
}
