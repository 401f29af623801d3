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
	"polyblog/internal/taxonomy"
)

// PostRepository reads blog posts laid out as
//
//	<root>/<locale>/<parentCategory>/<category>/<slug>.md
//
// where the directory levels come from the taxonomy store. A missing
// locale directory is an empty result, never an error.
type PostRepository struct {
	root     string
	taxonomy *taxonomy.Store
}

// NewPostRepository creates a repository rooted at dir (the posts
// directory, not the data directory).
func NewPostRepository(dir string, tax *taxonomy.Store) *PostRepository {
	return &PostRepository{root: dir, taxonomy: tax}
}

// categoryDirs yields every (parentID, categoryID) directory pair the
// taxonomy defines, in taxonomy file order. Scan order is fixed so that
// duplicate-slug resolution is deterministic.
func (r *PostRepository) categoryDirs() [][2]string {
	var dirs [][2]string
	for _, p := range r.taxonomy.Parents() {
		for _, c := range r.taxonomy.ChildrenOf(p.ID) {
			dirs = append(dirs, [2]string{p.ID, c.ID})
		}
	}
	// Flat taxonomies: categories without a parent live directly under the
	// locale directory.
	for _, c := range r.taxonomy.Categories() {
		if c.ParentID == "" {
			dirs = append(dirs, [2]string{"", c.ID})
		}
	}
	return dirs
}

// Slugs enumerates all post slugs available for a locale by scanning each
// category directory for .md files. Duplicate slugs across category
// directories are reported once (first occurrence wins) and logged.
func (r *PostRepository) Slugs(locale string) []string {
	localeDir := filepath.Join(r.root, locale)

	var slugs []string
	seen := make(map[string]bool)

	for _, dir := range r.categoryDirs() {
		path := filepath.Join(localeDir, dir[0], dir[1])
		entries, err := os.ReadDir(path)
		if err != nil {
			// Missing category or locale directory: nothing to list.
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			slug := strings.TrimSuffix(e.Name(), ".md")
			if seen[slug] {
				slog.Warn("duplicate post slug, first occurrence wins",
					"slug", slug, "locale", locale, "dir", path)
				continue
			}
			seen[slug] = true
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

// BySlug locates and parses the post for (slug, locale). When no localized
// file exists, the default locale's file stands in; when that is also
// absent, ErrNotFound is returned.
func (r *PostRepository) BySlug(slug, locale string) (Post, error) {
	slug = strings.TrimSuffix(slug, ".md")

	if p, ok, err := r.findInLocale(slug, locale); ok || err != nil {
		return p, err
	}
	if locale != i18n.DefaultLocale {
		if p, ok, err := r.findInLocale(slug, i18n.DefaultLocale); ok || err != nil {
			return p, err
		}
	}
	return Post{}, fmt.Errorf("post %q in locale %q: %w", slug, locale, ErrNotFound)
}

// findInLocale scans the locale's category directories for slug.md.
func (r *PostRepository) findInLocale(slug, locale string) (Post, bool, error) {
	for _, dir := range r.categoryDirs() {
		path := filepath.Join(r.root, locale, dir[0], dir[1], slug+".md")
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		p, err := parsePost(slug, string(raw))
		if err != nil {
			return Post{}, true, fmt.Errorf("parse %s: %w", path, err)
		}
		return p, true, nil
	}
	return Post{}, false, nil
}

// All returns every post for a locale sorted by date descending. A file
// that fails to parse is skipped with a warning rather than failing the
// whole listing.
func (r *PostRepository) All(locale string) []Post {
	var posts []Post
	for _, slug := range r.Slugs(locale) {
		p, err := r.BySlug(slug, locale)
		if err != nil {
			slog.Warn("skipping unreadable post", "slug", slug, "locale", locale, "error", err)
			continue
		}
		posts = append(posts, p)
	}
	sortByDateDesc(posts)
	return posts
}

// Metadata returns All with content bodies stripped, for listing pages.
func (r *PostRepository) Metadata(locale string) []Post {
	posts := r.All(locale)
	for i := range posts {
		posts[i] = posts[i].Metadata()
	}
	return posts
}

// ByCategory returns the posts whose category set contains categoryID
// (case-insensitive), newest first.
func (r *PostRepository) ByCategory(categoryID, locale string) []Post {
	var out []Post
	for _, p := range r.All(locale) {
		for _, c := range p.Categories {
			if strings.EqualFold(c, categoryID) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Search returns posts matching query as a case-insensitive substring of
// the title, excerpt, content, categories, or tags. Result order is the
// natural All order.
func (r *PostRepository) Search(query, locale string) []Post {
	term := strings.ToLower(query)
	var out []Post
	for _, p := range r.All(locale) {
		if postMatches(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func postMatches(p Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Excerpt), term) ||
		strings.Contains(strings.ToLower(p.Content), term) {
		return true
	}
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// FeaturedPosts returns up to limit posts flagged featured, newest first.
func (r *PostRepository) FeaturedPosts(locale string, limit int) []Post {
	var out []Post
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

// PrevNext returns the neighbours of slug in the date-descending listing,
// for the previous/next navigation under a post. Either may be zero-valued
// when the post is at an edge or unknown.
func (r *PostRepository) PrevNext(slug, locale string) (prev, next Post, ok bool) {
	posts := r.Metadata(locale)
	for i, p := range posts {
		if p.Slug != slug {
			continue
		}
		if i > 0 {
			prev = posts[i-1]
		}
		if i < len(posts)-1 {
			next = posts[i+1]
		}
		return prev, next, true
	}
	return Post{}, Post{}, false
}

// ByYear groups a locale's post metadata by the leading year of the date
// string, preserving newest-first order within each group.
func (r *PostRepository) ByYear(locale string) map[string][]Post {
	groups := make(map[string][]Post)
	for _, p := range r.Metadata(locale) {
		year := p.Date
		if len(year) > 4 {
			year = year[:4]
		}
		groups[year] = append(groups[year], p)
	}
	return groups
}

// sortByDateDesc sorts newest-first. Dates are fixed-width ISO strings, so
// string comparison orders correctly. The sort is stable to keep file-scan
// order for equal dates.
func sortByDateDesc(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}
