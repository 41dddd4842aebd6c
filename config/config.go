package config

import (
	"fmt"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/httpsource"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/observability"
	"github.com/kbukum/lazykit/redissource"
	"github.com/kbukum/lazykit/sqlsource"
	"github.com/kbukum/lazykit/validation"
)

// Source kinds.
const (
	KindSlice = "slice"
	KindRange = "range"
	KindRedis = "redis"
	KindSQL   = "sql"
	KindHTTP  = "http"
)

// Config is the lazyseq configuration: service metadata, logging,
// telemetry and the ordered list of sources a lazy list is built from.
//
// Example:
//
//	name: lazyseq
//	logging:
//	  level: debug
//	sources:
//	  - kind: slice
//	    items: [a, b]
//	  - kind: redis
//	    redis: {addr: "localhost:6379", key: events}
type Config struct {
	Name        string                     `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string                     `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string                     `yaml:"version" mapstructure:"version"`
	Logging     logger.Config              `yaml:"logging" mapstructure:"logging"`
	Metrics     observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
	Tracing     observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Sources     []SourceConfig             `yaml:"sources" mapstructure:"sources" validate:"dive"`
}

// SourceConfig describes one source appended to the list.
type SourceConfig struct {
	// ID optionally names the source in logs; it must be a UUID when set.
	ID string `yaml:"id" mapstructure:"id"`

	// Kind selects which of the remaining fields apply.
	Kind string `yaml:"kind" mapstructure:"kind" validate:"required,oneof=slice range redis sql http"`

	// Items are the elements of a slice source.
	Items []string `yaml:"items" mapstructure:"items"`

	// Start and Stop bound a range source, stop exclusive.
	Start int `yaml:"start" mapstructure:"start"`
	Stop  int `yaml:"stop" mapstructure:"stop"`

	Redis *redissource.Config `yaml:"redis" mapstructure:"redis"`
	SQL   *sqlsource.Config   `yaml:"sql" mapstructure:"sql"`
	HTTP  *httpsource.Config  `yaml:"http" mapstructure:"http"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = c.Version
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.Version
	}
	c.Metrics.ApplyDefaults(c.Name)
	c.Tracing.ApplyDefaults(c.Name)

	for i := range c.Sources {
		s := &c.Sources[i]
		if s.Redis != nil {
			s.Redis.ApplyDefaults()
		}
		if s.SQL != nil {
			s.SQL.ApplyDefaults()
		}
		if s.HTTP != nil {
			s.HTTP.ApplyDefaults()
		}
	}
}

// Validate checks struct tags first, then the rules that depend on a
// source's kind.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return apperrors.InvalidConfig("config is invalid").WithCause(err)
	}
	if err := c.Logging.Validate(); err != nil {
		return apperrors.InvalidConfig("config.logging is invalid").WithCause(err)
	}

	v := validation.New()
	for i, s := range c.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		v.OptionalUUID(field+".id", s.ID)
		switch s.Kind {
		case KindRedis:
			v.Custom(s.Redis != nil, field+".redis", "is required for kind redis")
			v.Custom(s.Redis == nil || s.Redis.Key != "", field+".redis.key", "is required")
		case KindSQL:
			v.Custom(s.SQL != nil, field+".sql", "is required for kind sql")
			v.Custom(s.SQL == nil || s.SQL.Table != "", field+".sql.table", "is required")
			v.Custom(s.SQL == nil || s.SQL.Column != "", field+".sql.column", "is required")
		case KindHTTP:
			v.Custom(s.HTTP != nil, field+".http", "is required for kind http")
		}
	}
	if err := v.Validate(); err != nil {
		return apperrors.InvalidConfig("config sources are invalid").WithCause(err)
	}

	for i, s := range c.Sources {
		var err error
		switch {
		case s.Kind == KindRedis && s.Redis != nil:
			err = s.Redis.Validate()
		case s.Kind == KindSQL && s.SQL != nil:
			err = s.SQL.Validate()
		case s.Kind == KindHTTP && s.HTTP != nil:
			err = s.HTTP.Validate()
		}
		if err != nil {
			return apperrors.InvalidConfig(fmt.Sprintf("sources[%d] is invalid", i)).WithCause(err)
		}
	}
	return nil
}

// Load reads the configuration for serviceName, applies defaults and
// validates it. Values already set in base are kept unless overridden.
func Load(serviceName string, base Config, opts ...LoaderOption) (*Config, error) {
	cfg := base
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
