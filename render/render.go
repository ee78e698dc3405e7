package render

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// policy allows the common markdown tags while stripping anything that could
// carry a script. Mirrors the allow-list of the web front end.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "strong", "em", "u", "code", "pre",
		"ul", "ol", "li", "blockquote",
		"a", "img",
	)
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}

// SummaryHTML converts a markdown summary into sanitized HTML safe to embed
// in the result view.
func SummaryHTML(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	raw := markdown.ToHTML([]byte(md), p, renderer)
	return template.HTML(policy.SanitizeBytes(raw))
}
