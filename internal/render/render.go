// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Each page template is paired with the base layout at startup; rendering
// buffers the full page so a template failure never emits a half page.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"polyblog/internal/i18n"
)

//go:embed templates/site/*.html
var siteFS embed.FS

// pageTemplates lists the page templates paired with the base layout.
var pageTemplates = []string{
	"home", "blog", "post", "portfolio", "portfolio_item",
	"career", "contact", "notfound", "error",
}

// PageData holds everything a page template can reach. Handlers fill Data
// with page-specific view models; the rest is common chrome.
type PageData struct {
	SiteName string
	Title    string
	Locale   string
	// Path is the current path without the locale prefix, used by the
	// language selector to link the same page in other locales.
	Path    string
	Locales map[string]string // locale code → native display name
	Year    int
	Data    map[string]any

	translator *i18n.Translator
}

// T resolves a translation key for the page's locale. Exposed to templates
// as {{.T "nav.blog"}}.
func (d *PageData) T(key string) string {
	if d.translator == nil {
		return key
	}
	return d.translator.T(d.Locale, key, nil)
}

// Renderer executes the parsed page templates.
type Renderer struct {
	siteName   string
	templates  map[string]*template.Template
	translator *i18n.Translator
}

// New parses all site templates from the embedded filesystem, pairing each
// page with the base layout.
func New(siteName string, translator *i18n.Translator) (*Renderer, error) {
	r := &Renderer{
		siteName:   siteName,
		templates:  make(map[string]*template.Template, len(pageTemplates)),
		translator: translator,
	}

	for _, name := range pageTemplates {
		t, err := template.ParseFS(siteFS,
			"templates/site/base.html",
			"templates/site/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Page renders a named page template to a byte slice, suitable for both
// the HTTP response and the page cache.
func (r *Renderer) Page(name, locale, path, title string, data map[string]any) ([]byte, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}

	pd := &PageData{
		SiteName:   r.siteName,
		Title:      title,
		Locale:     locale,
		Path:       path,
		Locales:    i18n.LocaleNames,
		Year:       time.Now().Year(),
		Data:       data,
		translator: r.translator,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", pd); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
