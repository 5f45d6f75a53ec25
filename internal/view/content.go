package view

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in descriptions is passed through by goldmark and cleaned by the
// sanitizer afterwards.
var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func render(src string) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Markdown renders backend-authored Markdown to sanitised HTML.
func Markdown(src string) template.HTML {
	out, err := render(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(ugc.SanitizeBytes(out))
}

// PlainText renders Markdown, strips all markup and collapses whitespace.
func PlainText(src string) string {
	out, err := render(src)
	if err != nil {
		out = []byte(src)
	}
	text := html.UnescapeString(strict.Sanitize(string(out)))
	return strings.Join(strings.Fields(text), " ")
}

// Truncate shortens s to at most n runes, cutting at a word boundary when possible.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
