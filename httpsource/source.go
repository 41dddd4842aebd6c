package httpsource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kbukum/lazykit/pipeline"
)

// Source pages through the endpoint, decoding every element into T. A page
// is requested only when the previous one has been consumed; a failed
// request is repeated with the same token on the next pull.
func Source[T any](c *Client) pipeline.Iterator[T] {
	return pipeline.Paginate(func(ctx context.Context, token string) ([]T, string, error) {
		p, err := c.fetch(ctx, token)
		if err != nil {
			return nil, "", err
		}
		items := make([]T, len(p.items))
		for i, raw := range p.items {
			if err := json.Unmarshal(raw, &items[i]); err != nil {
				return nil, "", fmt.Errorf("httpsource: decode element %d: %w", i, err)
			}
		}
		return items, p.next, nil
	})
}

// Strings pages through the endpoint yielding every element as text: JSON
// strings are unquoted, any other value is kept as its JSON encoding.
func Strings(c *Client) pipeline.Iterator[string] {
	return pipeline.Paginate(func(ctx context.Context, token string) ([]string, string, error) {
		p, err := c.fetch(ctx, token)
		if err != nil {
			return nil, "", err
		}
		items := make([]string, len(p.items))
		for i, raw := range p.items {
			if err := json.Unmarshal(raw, &items[i]); err != nil {
				items[i] = string(raw)
			}
		}
		return items, p.next, nil
	})
}
