// Package page describes one page of an ordered result set: what the caller
// asked for (Request) and what the store returned (Page).
package page

import (
	"math"
	"strings"
)

// Direction is the sort order of a page request.
type Direction string

const (
	// Asc sorts in ascending order.
	Asc Direction = "asc"
	// Desc sorts in descending order.
	Desc Direction = "desc"
)

// ParseDirection maps a caller-supplied sort direction to a Direction.
// Only "asc" (any case) is ascending; every other value is descending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

// Request selects a zero-based page of Size items ordered by SortBy.
type Request struct {
	Number int
	Size   int
	SortBy string
	Dir    Direction
}

// NewRequest builds a Request from raw query parameters.
func NewRequest(number, size int, sortBy, sortDir string) Request {
	return Request{
		Number: number,
		Size:   size,
		SortBy: strings.TrimSpace(sortBy),
		Dir:    ParseDirection(sortDir),
	}
}

// Offset returns the number of items preceding this page. It is only
// meaningful when OffsetOverflows reports false.
func (r Request) Offset() int {
	return r.Number * r.Size
}

// MaxNumber is the largest page number whose offset fits in an int for the
// given page size.
func MaxNumber(size int) int {
	if size <= 0 {
		return math.MaxInt
	}
	return math.MaxInt / size
}

// OffsetOverflows reports whether Number*Size does not fit in an int.
func (r Request) OffsetOverflows() bool {
	return r.Number > MaxNumber(r.Size)
}

// Page is a slice of an ordered result set together with the size of the
// whole set.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int64
}

// New assembles a Page for the given request.
func New[T any](req Request, items []T, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:         items,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
	}
}

// TotalPages returns ceil(TotalElements / Size).
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.TotalElements <= 0 {
		return 0
	}
	size := int64(p.Size)
	return int((p.TotalElements + size - 1) / size)
}

// IsLast reports whether no page follows this one. An empty result set has a
// single, last, page.
func (p Page[T]) IsLast() bool {
	return p.Number >= p.TotalPages()-1
}

// Map converts the items of a page while keeping its position.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{
		Items:         out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
}
