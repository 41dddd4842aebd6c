package redissource

import (
	"fmt"
	"time"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/validation"
)

// Config holds Redis connection settings and the list to read.
type Config struct {
	// Addr is the Redis server address (host:port).
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`

	// Password is the Redis server password.
	Password string `mapstructure:"password"`

	// DB is the Redis database number.
	DB int `mapstructure:"db" validate:"gte=0"`

	// Key names the Redis LIST read by ListSource.
	Key string `mapstructure:"key"`

	// Keys names further LISTs read after Key, in order.
	Keys []string `mapstructure:"keys" validate:"dive,required"`

	// PageSize is the number of elements fetched per LRANGE call.
	PageSize int `mapstructure:"page_size" validate:"gte=0"`

	// PoolSize is the maximum number of socket connections.
	PoolSize int `mapstructure:"pool_size" validate:"gte=0"`

	// MaxRetries is the maximum number of retries before giving up.
	MaxRetries int `mapstructure:"max_retries"`

	// DialTimeout is the timeout for establishing new connections (e.g. "5s").
	DialTimeout string `mapstructure:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads (e.g. "3s").
	ReadTimeout string `mapstructure:"read_timeout"`

	// WriteTimeout is the timeout for socket writes (e.g. "3s").
	WriteTimeout string `mapstructure:"write_timeout"`
}

// DefaultPageSize is used when PageSize is zero.
const DefaultPageSize = 100

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "5s"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "3s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "3s"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return apperrors.InvalidConfig("redis config is invalid").WithCause(err)
	}
	for name, value := range map[string]string{
		"dial_timeout":  c.DialTimeout,
		"read_timeout":  c.ReadTimeout,
		"write_timeout": c.WriteTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return apperrors.InvalidConfig(fmt.Sprintf("redis %s %q is not a duration", name, value)).WithCause(err)
		}
	}
	return nil
}
