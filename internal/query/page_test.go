package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 10, 0, 10},
		{-3, 10, 0, 10},
		{2, 0, 2, DefaultPageSize},
		{2, -1, 2, DefaultPageSize},
		{1, 101, 1, MaxPageSize},
		{1, 100, 1, 100},
		{math.MaxInt, 10, (math.MaxInt - 10) / 10, 10},
		{math.MaxInt, 0, (math.MaxInt - DefaultPageSize) / DefaultPageSize, DefaultPageSize},
	}
	for _, c := range cases {
		p, s := NormalizePage(c.page, c.size)
		assert.Equal(t, c.wantPage, p)
		assert.Equal(t, c.wantSize, s)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, Unpaged().Offset())
	assert.Equal(t, 0, NewPageRequest(-1, 10).Offset())
	assert.Equal(t, 30, NewPageRequest(3, 10).Offset())

	t.Run("huge pages stay past the end", func(t *testing.T) {
		for _, page := range []int{math.MaxInt, math.MaxInt / 10, math.MaxInt/10 + 1} {
			off := NewPageRequest(page, 10).Offset()
			assert.Positive(t, off)
			assert.LessOrEqual(t, off, math.MaxInt-10)
		}

		page, size := NormalizePage(math.MaxInt, 10)
		req := NewPageRequest(page, size)
		assert.Equal(t, page*size, req.Offset())
		assert.Positive(t, req.Offset())
	})
}

func TestNewPage(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := NewPage([]int{4, 5, 6}, NewPageRequest(1, 3), 10)
		assert.Equal(t, int64(10), p.TotalElements)
		assert.Equal(t, 4, p.TotalPages)
		assert.Equal(t, 1, p.CurrentPage)
		assert.Equal(t, 3, p.Size)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrevious)
	})

	t.Run("last page", func(t *testing.T) {
		p := NewPage([]int{10}, NewPageRequest(3, 3), 10)
		assert.Equal(t, 4, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrevious)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := NewPage([]int{1, 2}, NewPageRequest(0, 2), 4)
		assert.Equal(t, 2, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrevious)
	})

	t.Run("empty result", func(t *testing.T) {
		p := NewPage[int](nil, NewPageRequest(0, 10), 0)
		assert.NotNil(t, p.Content)
		assert.Empty(t, p.Content)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
	})

	t.Run("page past the end", func(t *testing.T) {
		p := NewPage[int](nil, NewPageRequest(5, 10), 12)
		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrevious)
	})

	t.Run("unpaged", func(t *testing.T) {
		p := NewPage([]int{1, 2, 3}, Unpaged(), 3)
		assert.Equal(t, 1, p.TotalPages)
		assert.Equal(t, 3, p.Size)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrevious)
	})
}

func TestParseSort(t *testing.T) {
	got := ParseSort([]string{"title", "deadLine,desc", " ", "status, ASC"})
	assert.Equal(t, []SortField{
		{Field: "title"},
		{Field: "deadLine", Desc: true},
		{Field: "status"},
	}, got)
}
