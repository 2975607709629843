// Package title turns titles authored as plain text, HTML or Markdown into
// plain text ready for slug generation.
//
// Markup never reaches the slug pipeline: HTML is stripped with a strict
// bluemonday policy, Markdown is rendered with goldmark first and then stripped
// the same way. Entities are unescaped and whitespace is collapsed, so
//
//	t, _ := title.Extract("<h1>Fish &amp; <em>Chips</em></h1>", title.HTML)
//	// t == "Fish & Chips"
//
//	t, _ = title.Extract("# Hello *World*", title.Markdown)
//	// t == "Hello World"
//
// Use ParseFormat to resolve a format name coming from a request or flag.
package title
