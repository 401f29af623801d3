// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package rank scores content items by category/tag overlap to build
// "related posts" lists.
package rank

import (
	"sort"

	"polyblog/internal/content"
)

// categoryWeight makes a shared category count double a shared tag.
const categoryWeight = 2

// Related returns up to limit posts from pool ranked by similarity to
// current: score = 2×|shared categories| + |shared tags|. The sort is
// stable, so ties keep pool order (date-descending when the pool comes
// from the repository). Zero-score items are kept, which pads short
// results with the most recent unrelated posts.
func Related(current content.Post, pool []content.Post, limit int) []content.Post {
	candidates := make([]content.Post, 0, len(pool))
	for _, p := range pool {
		if p.Slug != current.Slug {
			candidates = append(candidates, p)
		}
	}

	scores := make(map[string]int, len(candidates))
	for _, p := range candidates {
		scores[p.Slug] = Score(current, p)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i].Slug] > scores[candidates[j].Slug]
	})

	if limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return candidates
}

// Score computes the similarity between two posts.
func Score(a, b content.Post) int {
	return categoryWeight*overlap(a.Categories, b.Categories) + overlap(a.Tags, b.Tags)
}

// overlap counts elements of b present in a.
func overlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	n := 0
	for _, v := range b {
		if set[v] {
			n++
		}
	}
	return n
}
