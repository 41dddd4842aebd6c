package pipeline

import "context"

// PageFunc fetches the page addressed by token. The first call receives an
// empty token. An empty next token marks the last page.
type PageFunc[T any] func(ctx context.Context, token string) (items []T, next string, err error)

// Paginate flattens a paged API into a single iterator. Pages are fetched
// only when the previous one is used up; a failed fetch is retried with the
// same token on the next call.
func Paginate[T any](fetch PageFunc[T]) Iterator[T] {
	return &pageIter[T]{fetch: fetch}
}

type pageIter[T any] struct {
	fetch PageFunc[T]
	page  []T
	index int
	token string
	last  bool
}

func (it *pageIter[T]) Next(ctx context.Context) (T, bool, error) {
	for it.index >= len(it.page) {
		var zero T
		if it.last {
			return zero, false, nil
		}
		items, next, err := it.fetch(ctx, it.token)
		if err != nil {
			return zero, false, err
		}
		it.page, it.index, it.token = items, 0, next
		it.last = next == ""
	}
	val := it.page[it.index]
	it.index++
	return val, true, nil
}

func (it *pageIter[T]) Close() error {
	it.page, it.last = nil, true
	return nil
}
