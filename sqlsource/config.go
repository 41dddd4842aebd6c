package sqlsource

import (
	"fmt"
	"time"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/validation"
)

// Config holds the database connection and the column to read.
type Config struct {
	// DSN is the SQLite data source name (a file path or "file::memory:?cache=shared").
	DSN string `mapstructure:"dsn" validate:"required"`

	// Table is the table read by ConfiguredSource.
	Table string `mapstructure:"table"`

	// Column is the column whose values become list elements.
	Column string `mapstructure:"column"`

	// OrderBy is the column that gives pages a stable order.
	OrderBy string `mapstructure:"order_by"`

	// Where is an optional SQL condition applied to every page.
	Where string `mapstructure:"where"`

	// PageSize is the number of rows fetched per query.
	PageSize int `mapstructure:"page_size" validate:"gte=0"`

	// MaxOpenConns sets the maximum number of open connections to the database.
	MaxOpenConns int `mapstructure:"max_open_conns" validate:"gte=0"`

	// MaxIdleConns sets the maximum number of idle connections in the pool.
	MaxIdleConns int `mapstructure:"max_idle_conns" validate:"gte=0"`

	// ConnMaxLifetime is the maximum time a connection may be reused (e.g. "1h").
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`

	// MaxRetries is the number of connection attempts before giving up.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0"`

	// SlowQueryThreshold is the duration above which queries are logged as slow (e.g. "200ms").
	SlowQueryThreshold string `mapstructure:"slow_query_threshold"`

	// LogLevel is the gorm log level: silent, error, warn or info.
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=silent error warn info"`
}

// DefaultPageSize is used when PageSize is zero.
const DefaultPageSize = 100

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.OrderBy == "" {
		c.OrderBy = "rowid"
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetime == "" {
		c.ConnMaxLifetime = "1h"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.SlowQueryThreshold == "" {
		c.SlowQueryThreshold = "200ms"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return apperrors.InvalidConfig("sql config is invalid").WithCause(err)
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return apperrors.InvalidConfig(fmt.Sprintf("sql max_idle_conns (%d) must be <= max_open_conns (%d)", c.MaxIdleConns, c.MaxOpenConns))
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		return apperrors.InvalidConfig(fmt.Sprintf("sql conn_max_lifetime %q is not a duration", c.ConnMaxLifetime)).WithCause(err)
	}
	if _, err := time.ParseDuration(c.SlowQueryThreshold); err != nil {
		return apperrors.InvalidConfig(fmt.Sprintf("sql slow_query_threshold %q is not a duration", c.SlowQueryThreshold)).WithCause(err)
	}
	return nil
}
