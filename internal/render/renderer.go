// Package render turns fetched page content into the landing page HTML.
// Every section degrades on its own: a missing document yields either its
// fallback copy or a placeholder, never an error.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/hutchinsdata/site/internal/content"
	"github.com/hutchinsdata/site/internal/mediaurl"
	"github.com/hutchinsdata/site/pkg/logger"
)

//go:embed templates/*.html.tmpl
var templates embed.FS

type Options struct {
	// SiteURL is the canonical origin, used for the canonical link.
	SiteURL            string
	GoogleVerification string
	Now                func() time.Time
}

type Renderer struct {
	images *mediaurl.Builder
	md     goldmark.Markdown
	tmpl   *template.Template
	opts   Options
	now    func() time.Time
}

// New parses the embedded page template. images may be nil, in which case
// every image uses its static fallback.
func New(images *mediaurl.Builder, opts Options) (*Renderer, error) {
	tmpl, err := template.New("page.html.tmpl").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templates, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Renderer{
		images: images,
		// raw HTML in editor text is escaped, not passed through
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		tmpl: tmpl,
		opts: opts,
		now:  now,
	}, nil
}

func (r *Renderer) markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		logger.Warnf("render: markdown conversion failed: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Render writes the full page for page. preview adds the draft banner.
func (r *Renderer) Render(w io.Writer, page *content.PageData, preview bool) error {
	v := r.Build(page)
	v.Preview = preview
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
