// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// frontmatter is the typed schema for the YAML block at the top of a
// content file. Every field is optional; defaults are applied in the
// parse functions below rather than scattered at call sites.
type frontmatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Excerpt     string   `yaml:"excerpt"`
	Description string   `yaml:"description"`
	CoverImage  string   `yaml:"coverImage"`
	Categories  []string `yaml:"categories"`
	Tags        []string `yaml:"tags"`
	Author      string   `yaml:"author"`
	ReadTime    int      `yaml:"readTime"`
	Featured    bool     `yaml:"featured"`
	Tech        []string `yaml:"tech"`
	ProjectURL  string   `yaml:"projectUrl"`
	GithubURL   string   `yaml:"githubUrl"`
	Order       int      `yaml:"order"`
}

const frontmatterDelimiter = "---"

// splitFrontmatter separates the leading YAML block from the markdown
// body. A file without a frontmatter block yields an empty frontmatter and
// the whole file as body.
func splitFrontmatter(raw string) (fm frontmatter, body string, err error) {
	// Normalize CRLF so delimiter matching works on files edited on Windows.
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	if !strings.HasPrefix(raw, frontmatterDelimiter+"\n") {
		return frontmatter{}, raw, nil
	}

	rest := raw[len(frontmatterDelimiter)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return frontmatter{}, "", fmt.Errorf("unterminated frontmatter block")
	}

	block := rest[:end]
	body = rest[end+len(frontmatterDelimiter)+1:]
	body = strings.TrimLeft(body, "\n")

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return frontmatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, body, nil
}

// estimateReadTime derives reading minutes from the body at 200 words per
// minute, rounded up. Matches the listing badge shown on post cards.
func estimateReadTime(body string) int {
	words := len(strings.Fields(body))
	return (words + 199) / 200
}

// parsePost applies post defaults to a parsed file.
func parsePost(slug, raw string) (Post, error) {
	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return Post{}, err
	}

	p := Post{
		Slug:       slug,
		Title:      fm.Title,
		Date:       fm.Date,
		Excerpt:    fm.Excerpt,
		CoverImage: fm.CoverImage,
		Categories: fm.Categories,
		Tags:       fm.Tags,
		Author:     fm.Author,
		ReadTime:   fm.ReadTime,
		Featured:   fm.Featured,
		Content:    body,
	}
	if p.Title == "" {
		p.Title = "Untitled"
	}
	if p.Date == "" {
		p.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.ReadTime == 0 {
		p.ReadTime = estimateReadTime(body)
	}
	return p, nil
}

// parsePortfolio applies portfolio defaults to a parsed file.
func parsePortfolio(slug, raw string) (Portfolio, error) {
	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return Portfolio{}, err
	}

	p := Portfolio{
		Slug:        slug,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        fm.Date,
		CoverImage:  fm.CoverImage,
		Tech:        fm.Tech,
		ProjectURL:  fm.ProjectURL,
		GithubURL:   fm.GithubURL,
		Order:       fm.Order,
		Featured:    fm.Featured,
		Content:     body,
	}
	if p.Title == "" {
		p.Title = "Untitled"
	}
	if p.Date == "" {
		p.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if p.Tech == nil {
		p.Tech = []string{}
	}
	return p, nil
}
