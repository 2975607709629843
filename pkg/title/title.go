package title

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Format names the markup a title is written in.
type Format string

// Supported formats.
const (
	Plain    Format = "plain"
	HTML     Format = "html"
	Markdown Format = "markdown"
)

// ParseFormat resolves a format name, case-insensitively.
// An empty name resolves to Plain; "text" and "md" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain", "text":
		return Plain, nil
	case "html":
		return HTML, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

var (
	stripPolicy *bluemonday.Policy
	markdown    goldmark.Markdown
	initOnce    sync.Once
)

func initRenderers() {
	initOnce.Do(func() {
		// StrictPolicy drops every element; the space keeps adjacent blocks apart.
		stripPolicy = bluemonday.StrictPolicy()
		stripPolicy.AddSpaceWhenStrippingTag(true)

		markdown = goldmark.New()
	})
}

// Extract returns the plain text of s written in format f,
// with entities unescaped and runs of whitespace collapsed to one space.
func Extract(s string, f Format) (string, error) {
	switch f {
	case Plain:
		return collapse(s), nil
	case HTML:
		return stripHTML(s), nil
	case Markdown:
		initRenderers()
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(s), &buf); err != nil {
			return "", errors.Join(ErrRender, err)
		}
		return stripHTML(buf.String()), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

func stripHTML(s string) string {
	initRenderers()
	return collapse(html.UnescapeString(stripPolicy.Sanitize(s)))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
