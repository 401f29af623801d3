// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package paginate slices ordered lists into fixed-size pages for listing
// handlers and page-number controls.
package paginate

// Result holds one page of items plus the figures the pagination control
// needs. Pages are 1-based.
type Result[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrev     bool
}

// Page returns the page-th slice of items. An out-of-range page yields an
// empty Items slice; the helper does not clamp, callers rendering page
// controls must stay within TotalPages.
func Page[T any](items []T, pageSize, page int) Result[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Result[T]{
		Items:       items[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
