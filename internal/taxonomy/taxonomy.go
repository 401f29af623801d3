// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy loads the static two-level category tree (parent
// category → category) and exposes localized name/description lookups.
// The tree is loaded once and immutable afterwards, so a Store is safe for
// concurrent readers.
package taxonomy

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ParentCategory is a top-level grouping in the category tree.
type ParentCategory struct {
	ID          string            `yaml:"id"`
	Name        map[string]string `yaml:"name"`
	Description map[string]string `yaml:"description"`
	Icon        string            `yaml:"icon"`
	Color       string            `yaml:"color"`
	Order       int               `yaml:"order"`
}

// Category is a leaf category. ParentID references a ParentCategory.
type Category struct {
	ID          string            `yaml:"id"`
	ParentID    string            `yaml:"parentId"`
	Name        map[string]string `yaml:"name"`
	Description map[string]string `yaml:"description"`
}

// Crumb is one element of a category breadcrumb path.
type Crumb struct {
	ID   string
	Name string
}

// Store holds the loaded category tree. Construct with Load; zero value is
// usable but empty.
type Store struct {
	parents    []ParentCategory
	categories []Category
	byID       map[string]*Category
	parentByID map[string]*ParentCategory
}

// file is the on-disk shape of the taxonomy source.
type file struct {
	Parents    []ParentCategory `yaml:"parents"`
	Categories []Category       `yaml:"categories"`
}

// fallbackStore returns the built-in single-category tree used when the
// taxonomy file is absent or unreadable. Matches the seed data shipped with
// the site so pages still render.
func fallbackStore() *Store {
	return newStore(file{
		Categories: []Category{{
			ID: "general",
			Name: map[string]string{
				"en": "General", "ko": "일반", "zh": "一般", "ja": "一般",
			},
			Description: map[string]string{
				"en": "General posts", "ko": "일반 포스트", "zh": "一般帖子", "ja": "一般的な投稿",
			},
		}},
	})
}

// Load reads the taxonomy from path. On any read or parse error it returns
// the built-in fallback tree together with the error, so callers can log
// and continue; a broken taxonomy file never takes the site down.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fallbackStore(), fmt.Errorf("read taxonomy: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fallbackStore(), fmt.Errorf("parse taxonomy: %w", err)
	}

	return newStore(f), nil
}

func newStore(f file) *Store {
	s := &Store{
		parents:    f.Parents,
		categories: f.Categories,
		byID:       make(map[string]*Category, len(f.Categories)),
		parentByID: make(map[string]*ParentCategory, len(f.Parents)),
	}
	for i := range s.categories {
		s.byID[s.categories[i].ID] = &s.categories[i]
	}
	for i := range s.parents {
		s.parentByID[s.parents[i].ID] = &s.parents[i]
	}
	return s
}

// Categories returns all leaf categories in file order.
func (s *Store) Categories() []Category {
	return s.categories
}

// Parents returns all parent categories in file order.
func (s *Store) Parents() []ParentCategory {
	return s.parents
}

// ChildrenOf returns the categories whose ParentID equals parentID.
func (s *Store) ChildrenOf(parentID string) []Category {
	var out []Category
	for _, c := range s.categories {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}

// Name returns the localized display name for a category or parent
// category. Resolution order: requested locale → English → any available
// locale → the raw id. It never fails; a dangling category reference in a
// post degrades to its id.
func (s *Store) Name(id, locale string) string {
	if c, ok := s.byID[id]; ok {
		return localized(c.Name, locale, id)
	}
	if p, ok := s.parentByID[id]; ok {
		return localized(p.Name, locale, id)
	}
	return id
}

// Description returns the localized description for a category or parent
// category, or "" when none exists. Same fallback chain as Name.
func (s *Store) Description(id, locale string) string {
	if c, ok := s.byID[id]; ok {
		return localized(c.Description, locale, "")
	}
	if p, ok := s.parentByID[id]; ok {
		return localized(p.Description, locale, "")
	}
	return ""
}

// Path returns the breadcrumb for a category: [parent, category] when the
// category has a known parent, otherwise [category]. Unknown ids yield a
// single crumb carrying the id itself.
func (s *Store) Path(id, locale string) []Crumb {
	c, ok := s.byID[id]
	if !ok {
		return []Crumb{{ID: id, Name: s.Name(id, locale)}}
	}
	if _, ok := s.parentByID[c.ParentID]; ok {
		return []Crumb{
			{ID: c.ParentID, Name: s.Name(c.ParentID, locale)},
			{ID: c.ID, Name: s.Name(c.ID, locale)},
		}
	}
	return []Crumb{{ID: c.ID, Name: s.Name(c.ID, locale)}}
}

// localized resolves a locale-indexed string map using the uniform fallback
// chain: exact locale → "en" → first available entry → fallback.
func localized(m map[string]string, locale, fallback string) string {
	if v, ok := m[locale]; ok && v != "" {
		return v
	}
	if v, ok := m["en"]; ok && v != "" {
		return v
	}
	for _, v := range m {
		if v != "" {
			return v
		}
	}
	return fallback
}
