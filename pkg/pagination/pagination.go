package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used for list endpoints when no size is requested.
	DefaultPageSize = 10
	// DashboardPageSize is the size of each dashboard pane.
	DashboardPageSize = 5
	// MaxPageSize caps how many rows a single page may hold.
	MaxPageSize = 100
)

// Page describes one page of a numbered result set.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_previous"`
}

// Offset is the number of rows to skip to reach this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// NormalizeSize applies the default and maximum page size.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// ParseNumber converts a raw page parameter; anything non-numeric means page 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// Resolve clamps the requested page number into [1, TotalPages].
// An empty result set still has a single empty page.
func Resolve(requested, size int, total int64) Page {
	size = NormalizeSize(size)
	if total < 0 {
		total = 0
	}

	pages := int((total + int64(size) - 1) / int64(size))
	if pages == 0 {
		pages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    number < pages,
		HasPrev:    number > 1,
	}
}
