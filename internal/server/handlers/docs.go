package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/plenar/internal/logfields"
)

//go:embed apidocs/*.md
var apiDocs embed.FS

// API reference pages.
const (
	DocsNLP     = "nlp"
	DocsWrapped = "wrapped"
)

const docsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
code, pre { background: #f4f4f4; }
pre { padding: 0.6rem; overflow-x: auto; }
</style>
</head>
<body>
%s</body>
</html>
`

// RenderDocs converts the embedded Markdown reference of an API to an HTML
// page.
func RenderDocs(name string) ([]byte, error) {
	src, err := apiDocs.ReadFile("apidocs/" + name + ".md")
	if err != nil {
		return nil, fmt.Errorf("read api docs %s: %w", name, err)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("render api docs %s: %w", name, err)
	}
	title := html.EscapeString("plenar " + name + " API")
	return fmt.Appendf(nil, docsTemplate, title, body.String()), nil
}

// DocsHandler serves the rendered reference. The page is rendered once.
func DocsHandler(name string, logger *slog.Logger) (http.HandlerFunc, error) {
	page, err := RenderDocs(name)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(page); err != nil {
			logger.Error("failed writing docs page", logfields.Error(err))
		}
	}, nil
}
