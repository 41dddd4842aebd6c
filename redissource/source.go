package redissource

import (
	"context"
	"strconv"

	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/pipeline"
)

// ListSource reads the Redis LIST at key page by page. Each page is one
// LRANGE call of pageSize elements, issued only when the previous page has
// been consumed. Elements pushed while the source is being read are picked
// up as long as the source has not yet seen a short page.
func ListSource(client *Client, key string, pageSize int) pipeline.Iterator[string] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return pipeline.Paginate(func(ctx context.Context, token string) ([]string, string, error) {
		offset := 0
		if token != "" {
			var err error
			if offset, err = strconv.Atoi(token); err != nil {
				return nil, "", err
			}
		}

		page, err := client.Range(ctx, key, int64(offset), int64(offset+pageSize-1))
		if err != nil {
			client.log.Warn("redis page fetch failed", logger.Fields(
				"key", key,
				"offset", offset,
				logger.FieldError, err.Error(),
			))
			return nil, "", err
		}
		client.log.Debug("redis page fetched", logger.Fields("key", key, "offset", offset, "size", len(page)))

		if len(page) < pageSize {
			return page, "", nil
		}
		return page, strconv.Itoa(offset + len(page)), nil
	})
}

// ConfiguredSource reads the configured Key, then each of Keys, with the
// configured page size. A list is not queried until the ones before it are
// exhausted.
func (c *Client) ConfiguredSource() pipeline.Iterator[string] {
	if len(c.cfg.Keys) == 0 {
		return ListSource(c, c.cfg.Key, c.cfg.PageSize)
	}
	iters := make([]pipeline.Iterator[string], 0, 1+len(c.cfg.Keys))
	iters = append(iters, ListSource(c, c.cfg.Key, c.cfg.PageSize))
	for _, key := range c.cfg.Keys {
		iters = append(iters, ListSource(c, key, c.cfg.PageSize))
	}
	return pipeline.Concat(iters...)
}
