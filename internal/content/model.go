// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content reads locale-partitioned markdown files from disk and
// exposes slug-based lookup, listing, category filtering, and free-text
// search over blog posts and portfolio items. Files are read fresh on
// every call; there is no in-package cache.
package content

import "errors"

// ErrNotFound is returned when a slug has no file in the requested locale
// nor in the default locale. Callers map it to a 404 page.
var ErrNotFound = errors.New("content not found")

// Post is a blog entry parsed from a markdown file. Date is kept as the
// raw ISO-8601 frontmatter string; the fixed-width format makes plain
// string comparison a valid sort key.
type Post struct {
	Slug       string
	Title      string
	Date       string
	Excerpt    string
	CoverImage string
	Categories []string
	Tags       []string
	Author     string
	ReadTime   int // minutes
	Featured   bool
	Content    string // raw markdown body; empty in metadata projections
}

// Metadata returns a copy of the post with the body stripped, for listing
// pages that never render content.
func (p Post) Metadata() Post {
	p.Content = ""
	return p
}

// Portfolio is a project entry. Order is a manual sort key; items without
// one sort last among equals by date.
type Portfolio struct {
	Slug        string
	Title       string
	Description string
	Date        string
	CoverImage  string
	Tech        []string
	ProjectURL  string
	GithubURL   string
	Order       int
	Featured    bool
	Content     string
}

// Metadata returns a copy of the portfolio item with the body stripped.
func (p Portfolio) Metadata() Portfolio {
	p.Content = ""
	return p
}
