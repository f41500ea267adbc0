package views

import (
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	g "github.com/maragudk/gomponents"
)

// Markdown renders post text. Raw HTML in the source is dropped.
func Markdown(text string) g.Node {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(text))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML | mdhtml.Safelink,
	})

	return g.Raw(string(markdown.Render(doc, renderer)))
}
