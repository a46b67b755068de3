// Package markup renders user-authored markdown into HTML that is safe
// to embed unescaped in templates.
package markup

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var ugcPolicy = bluemonday.UGCPolicy()

// SafeHTML converts markdown to HTML and strips anything the UGC policy
// does not allow. Never trust the author.
func SafeHTML(md string) template.HTML {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	opts := html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank}
	renderer := html.NewRenderer(opts)

	unsafe := markdown.Render(doc, renderer)
	return template.HTML(ugcPolicy.SanitizeBytes(unsafe))
}
