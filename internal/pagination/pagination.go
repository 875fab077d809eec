// Package pagination slices ordered result sets into fixed-size pages.
package pagination

// PerPage is the number of posts shown on every listing page.
const PerPage = 10

// Meta describes the window a listing response covers.
type Meta struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Count      int64 `json:"count"`
	PerPage    int   `json:"per_page"`
}

// TotalPages returns the number of pages needed for count items. An empty
// result set still has one (empty) page.
func TotalPages(count int64) int {
	if count <= 0 {
		return 1
	}
	pages := int((count + PerPage - 1) / PerPage)
	return pages
}

// ClampPage normalizes a requested page number: anything below 1 falls back
// to the first page, anything past the end falls back to the last page.
func ClampPage(page int, count int64) int {
	if page < 1 {
		return 1
	}
	if total := TotalPages(count); page > total {
		return total
	}
	return page
}

// Window returns the clamped page plus the limit/offset pair for it.
func Window(page int, count int64) (Meta, int, int) {
	clamped := ClampPage(page, count)
	meta := Meta{
		Page:       clamped,
		TotalPages: TotalPages(count),
		Count:      count,
		PerPage:    PerPage,
	}
	return meta, PerPage, (clamped - 1) * PerPage
}

// Paginate slices an in-memory ordered sequence into the requested page.
// It has no side effects; out-of-range pages clamp the same way Window does.
func Paginate[T any](items []T, page int) ([]T, Meta) {
	count := int64(len(items))
	meta, limit, offset := Window(page, count)
	if offset >= len(items) {
		return []T{}, meta
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], meta
}
