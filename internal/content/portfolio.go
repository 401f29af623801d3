// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"polyblog/internal/i18n"
)

// PortfolioRepository reads portfolio items laid out flat per locale:
//
//	<root>/<locale>/<slug>.md
type PortfolioRepository struct {
	root string
}

// NewPortfolioRepository creates a repository rooted at dir.
func NewPortfolioRepository(dir string) *PortfolioRepository {
	return &PortfolioRepository{root: dir}
}

// Slugs enumerates all portfolio slugs for a locale. A missing locale
// directory yields an empty list.
func (r *PortfolioRepository) Slugs(locale string) []string {
	entries, err := os.ReadDir(filepath.Join(r.root, locale))
	if err != nil {
		return nil
	}
	var slugs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(e.Name(), ".md"))
	}
	return slugs
}

// BySlug parses the portfolio item for (slug, locale), falling back to the
// default locale, then failing with ErrNotFound.
func (r *PortfolioRepository) BySlug(slug, locale string) (Portfolio, error) {
	slug = strings.TrimSuffix(slug, ".md")

	for _, loc := range fallbackChain(locale) {
		path := filepath.Join(r.root, loc, slug+".md")
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		p, err := parsePortfolio(slug, string(raw))
		if err != nil {
			return Portfolio{}, fmt.Errorf("parse %s: %w", path, err)
		}
		return p, nil
	}
	return Portfolio{}, fmt.Errorf("portfolio %q in locale %q: %w", slug, locale, ErrNotFound)
}

// All returns every portfolio item for a locale, sorted by manual order
// then date descending. Unparseable files are skipped with a warning.
func (r *PortfolioRepository) All(locale string) []Portfolio {
	var items []Portfolio
	for _, slug := range r.Slugs(locale) {
		p, err := r.BySlug(slug, locale)
		if err != nil {
			slog.Warn("skipping unreadable portfolio item", "slug", slug, "locale", locale, "error", err)
			continue
		}
		items = append(items, p)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].Date > items[j].Date
	})
	return items
}

// Metadata returns All with content bodies stripped.
func (r *PortfolioRepository) Metadata(locale string) []Portfolio {
	items := r.All(locale)
	for i := range items {
		items[i] = items[i].Metadata()
	}
	return items
}

// Featured returns up to limit items flagged featured, in All order.
func (r *PortfolioRepository) Featured(locale string, limit int) []Portfolio {
	var out []Portfolio
	for _, p := range r.All(locale) {
		if p.Featured {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// ByTech returns items whose tech stack contains tech (case-insensitive
// exact match).
func (r *PortfolioRepository) ByTech(tech, locale string) []Portfolio {
	var out []Portfolio
	for _, p := range r.All(locale) {
		for _, t := range p.Tech {
			if strings.EqualFold(t, tech) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Search returns items matching query as a case-insensitive substring of
// title, description, content, or tech tags.
func (r *PortfolioRepository) Search(query, locale string) []Portfolio {
	term := strings.ToLower(query)
	var out []Portfolio
	for _, p := range r.All(locale) {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Content), term) ||
			techMatches(p.Tech, term) {
			out = append(out, p)
		}
	}
	return out
}

func techMatches(tech []string, term string) bool {
	for _, t := range tech {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// Technologies returns the sorted set of distinct tech tags across a
// locale's portfolio.
func (r *PortfolioRepository) Technologies(locale string) []string {
	set := make(map[string]bool)
	for _, p := range r.All(locale) {
		for _, t := range p.Tech {
			set[t] = true
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// fallbackChain returns the locales to try for a lookup: the requested
// locale followed by the default, without repeating it.
func fallbackChain(locale string) []string {
	if locale == i18n.DefaultLocale {
		return []string{locale}
	}
	return []string{locale, i18n.DefaultLocale}
}
