package sqlsource

import (
	"context"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/pipeline"
)

// Scope narrows the query a source pages through, typically with Table,
// Where and Order. It must give rows a stable order.
type Scope func(tx *gorm.DB) *gorm.DB

// Rows pages through the rows selected by scope, pageSize rows per query,
// decoding each row into T. A page is queried only when the previous page
// has been consumed.
func Rows[T any](db *DB, scope Scope, pageSize int) pipeline.Iterator[T] {
	return paged(db, pageSize, func(tx *gorm.DB) ([]T, error) {
		var page []T
		err := scope(tx).Find(&page).Error
		return page, err
	})
}

// Column pages through the values of one column of table, ordered by
// orderBy. where, when non-empty, is applied as a raw SQL condition.
func Column(db *DB, table, column, orderBy, where string, pageSize int) pipeline.Iterator[string] {
	return paged(db, pageSize, func(tx *gorm.DB) ([]string, error) {
		tx = tx.Table(table).Order(clause.OrderByColumn{Column: clause.Column{Name: orderBy}})
		if where != "" {
			tx = tx.Where(where)
		}
		var page []string
		err := tx.Pluck(column, &page).Error
		return page, err
	})
}

// ConfiguredSource returns Column for the table, column, order and filter
// in the database's configuration.
func (d *DB) ConfiguredSource() pipeline.Iterator[string] {
	return Column(d, d.cfg.Table, d.cfg.Column, d.cfg.OrderBy, d.cfg.Where, d.cfg.PageSize)
}

func paged[T any](db *DB, pageSize int, query func(tx *gorm.DB) ([]T, error)) pipeline.Iterator[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return pipeline.Paginate(func(ctx context.Context, token string) ([]T, string, error) {
		offset := 0
		if token != "" {
			var err error
			if offset, err = strconv.Atoi(token); err != nil {
				return nil, "", err
			}
		}

		page, err := query(db.WithContext(ctx).Offset(offset).Limit(pageSize))
		if err != nil {
			db.log.Warn("sql page fetch failed", logger.Fields("offset", offset, logger.FieldError, err.Error()))
			return nil, "", err
		}
		if len(page) < pageSize {
			return page, "", nil
		}
		return page, strconv.Itoa(offset + len(page)), nil
	})
}
