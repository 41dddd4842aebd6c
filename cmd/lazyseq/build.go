package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/httpsource"
	"github.com/kbukum/lazykit/lazylist"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/pipeline"
	"github.com/kbukum/lazykit/redissource"
	"github.com/kbukum/lazykit/sqlsource"
)

// buildList appends every configured source to a new list in order. No
// source is read here; connections are opened but nothing is fetched. The
// returned closers release those connections and must be called even when
// an error is returned.
func buildList(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...lazylist.Option) (*lazylist.List[string], []func(context.Context) error, error) {
	l := lazylist.New[string](opts...)
	var closers []func(context.Context) error

	for i, s := range cfg.Sources {
		log.Debug("source configured", logger.Fields(
			logger.FieldSourceKind, s.Kind,
			"index", i,
			"id", s.ID,
		))

		switch s.Kind {
		case config.KindSlice:
			l.ExtendSlice(s.Items)

		case config.KindRange:
			l.Extend(pipeline.Map(pipeline.Range(s.Start, s.Stop), func(_ context.Context, n int) (string, error) {
				return strconv.Itoa(n), nil
			}))

		case config.KindRedis:
			client, err := redissource.New(*s.Redis, logger.Get(logger.ComponentRedisSource))
			if err != nil {
				return nil, closers, fmt.Errorf("sources[%d]: %w", i, err)
			}
			closers = append(closers, func(context.Context) error { return client.Close() })
			l.Extend(client.ConfiguredSource())

		case config.KindSQL:
			db, err := sqlsource.Open(ctx, *s.SQL, logger.Get(logger.ComponentSQLSource))
			if err != nil {
				return nil, closers, fmt.Errorf("sources[%d]: %w", i, err)
			}
			closers = append(closers, func(context.Context) error { return db.Close() })
			l.Extend(db.ConfiguredSource())

		case config.KindHTTP:
			client, err := httpsource.New(*s.HTTP, logger.Get(logger.ComponentHTTPSource))
			if err != nil {
				return nil, closers, fmt.Errorf("sources[%d]: %w", i, err)
			}
			l.Extend(httpsource.Strings(client))

		default:
			return nil, closers, fmt.Errorf("sources[%d]: unknown kind %q", i, s.Kind)
		}
	}
	return l, closers, nil
}
