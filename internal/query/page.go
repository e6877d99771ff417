package query

import (
	"math"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortField orders results by a top-level document field.
type SortField struct {
	Field string
	Desc  bool
}

// PageRequest selects a window of a result set. Page is zero-based.
// A Size of zero means unpaged: the whole match set in one page.
type PageRequest struct {
	Page int
	Size int
	Sort []SortField
}

func NewPageRequest(page, size int, sort ...SortField) PageRequest {
	return PageRequest{Page: page, Size: size, Sort: sort}
}

// Unpaged requests every matching document.
func Unpaged() PageRequest { return PageRequest{} }

func (r PageRequest) IsPaged() bool { return r.Size > 0 }

// Offset is the number of matching documents skipped before the window.
// It saturates instead of overflowing for pages past maxPage.
func (r PageRequest) Offset() int {
	if !r.IsPaged() || r.Page <= 0 {
		return 0
	}
	if r.Page > maxPage(r.Size) {
		return math.MaxInt - r.Size
	}
	return r.Page * r.Size
}

// maxPage is the largest page whose window end still fits in an int.
func maxPage(size int) int {
	return (math.MaxInt - size) / size
}

// NormalizePage applies the page-size policy of the public list surfaces:
// negative pages become 0, non-positive sizes DefaultPageSize, and sizes
// above MaxPageSize are capped. Pages are capped so that page*size+size
// never overflows.
func NormalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page > maxPage(size) {
		page = maxPage(size)
	}
	return page, size
}

// ParseSort reads "field" or "field,asc|desc" entries. Blank entries are
// skipped.
func ParseSort(values []string) []SortField {
	out := make([]SortField, 0, len(values))
	for _, v := range values {
		field, dir, _ := strings.Cut(strings.TrimSpace(v), ",")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		out = append(out, SortField{
			Field: field,
			Desc:  strings.EqualFold(strings.TrimSpace(dir), "desc"),
		})
	}
	return out
}

// Page is the result shape returned by every list operation.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	Size          int   `json:"size"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// NewPage assembles a page from one window of content and the independently
// counted total.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	if !req.IsPaged() {
		return Page[T]{
			Content:       content,
			TotalElements: total,
			TotalPages:    1,
			CurrentPage:   0,
			Size:          len(content),
		}
	}

	size := int64(req.Size)
	totalPages := int((total + size - 1) / size)

	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   req.Page,
		Size:          req.Size,
		HasNext:       req.Page+1 < totalPages,
		HasPrevious:   req.Page > 0,
	}
}
