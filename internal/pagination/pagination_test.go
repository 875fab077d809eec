package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0))
	assert.Equal(t, 1, TotalPages(1))
	assert.Equal(t, 1, TotalPages(10))
	assert.Equal(t, 2, TotalPages(11))
	assert.Equal(t, 2, TotalPages(20))
	assert.Equal(t, 3, TotalPages(21))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 25))
	assert.Equal(t, 1, ClampPage(-3, 25))
	assert.Equal(t, 2, ClampPage(2, 25))
	assert.Equal(t, 3, ClampPage(99, 25))
	assert.Equal(t, 1, ClampPage(99, 0))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 11)
	for i := range items {
		items[i] = i
	}

	page1, meta := Paginate(items, 1)
	assert.Len(t, page1, 10)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, int64(11), meta.Count)

	page2, meta := Paginate(items, 2)
	assert.Len(t, page2, 1)
	assert.Equal(t, 10, page2[0])
	assert.Equal(t, 2, meta.Page)

	// Out-of-range page clamps to the last page rather than erroring.
	last, meta := Paginate(items, 99)
	assert.Len(t, last, 1)
	assert.Equal(t, 2, meta.Page)

	empty, meta := Paginate([]int{}, 5)
	assert.Empty(t, empty)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 1, meta.TotalPages)
}
