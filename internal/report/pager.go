package report

import "context"

// pageFetch retrieves one page of a remote collection and reports the
// collection's total size. The total must be stable across pages.
type pageFetch[T any] func(ctx context.Context, page int) (items []T, total int, err error)

// collectPages fetches page 0 to learn the collection total, then walks the
// remaining pages. The page count is fixed after the first response:
// ceil(min(total, max) / pageSize), so a final partial page is never
// dropped. A max of zero means the whole collection.
func collectPages[T any](ctx context.Context, pageSize, max int, fetch pageFetch[T]) ([]T, int, error) {
	first, total, err := fetch(ctx, 0)
	if err != nil {
		return nil, 0, err
	}

	want := total
	if max > 0 && want > max {
		want = max
	}
	pages := (want + pageSize - 1) / pageSize

	items := make([]T, 0, want)
	items = append(items, first...)

	for page := 1; page < pages; page++ {
		next, _, err := fetch(ctx, page)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, next...)
	}

	if max > 0 && len(items) > max {
		items = items[:max]
	}

	return items, total, nil
}
