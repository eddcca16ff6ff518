package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first page", func(t *testing.T) {
		page, pag := Paginate(items, &PaginationParams{Page: 1, PerPage: 2})
		assert.Equal(t, []int{1, 2}, page)
		assert.Equal(t, int64(5), pag.Total)
		assert.Equal(t, 3, pag.TotalPages)
		assert.True(t, pag.HasNext)
		assert.False(t, pag.HasPrev)
	})

	t.Run("last short page", func(t *testing.T) {
		page, pag := Paginate(items, &PaginationParams{Page: 3, PerPage: 2})
		assert.Equal(t, []int{5}, page)
		assert.False(t, pag.HasNext)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, _ := Paginate(items, &PaginationParams{Page: 9, PerPage: 2})
		assert.Empty(t, page)
	})

	t.Run("invalid params fall back to defaults", func(t *testing.T) {
		page, pag := Paginate(items, &PaginationParams{Page: 0, PerPage: -1})
		assert.Len(t, page, 5)
		assert.Equal(t, 1, pag.CurrentPage)
		assert.Equal(t, 15, pag.PerPage)
	})
}
