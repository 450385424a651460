package report

import (
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"godilemma/domain/verdict"
)

// HTMLWriter renders the markdown summary as a standalone HTML page.
type HTMLWriter struct{}

func (HTMLWriter) Write(w io.Writer, result *verdict.Result) error {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: result.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	_, err := w.Write(markdown.ToHTML([]byte(Markdown(result)), p, renderer))
	return err
}

func (HTMLWriter) ContentType() string { return "text/html; charset=utf-8" }
