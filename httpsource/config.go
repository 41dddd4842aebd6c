package httpsource

import (
	"time"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/validation"
)

const (
	defaultTimeout = 30 * time.Second

	// DefaultPageSize is used when PageSize is zero.
	DefaultPageSize = 100
)

// Config describes a paginated JSON endpoint. Each response is an object
// holding the page's elements under ItemsField and the token of the next
// page under NextField; an empty or missing token ends the sequence.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Path is appended to BaseURL for every page request.
	Path string `yaml:"path" mapstructure:"path"`

	// Timeout bounds each page request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are sent with every page request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// PageSize is sent as SizeParam. Zero means DefaultPageSize.
	PageSize int `yaml:"page_size" mapstructure:"page_size" validate:"gte=0"`

	// TokenParam is the query parameter carrying the page token.
	TokenParam string `yaml:"token_param" mapstructure:"token_param"`

	// SizeParam is the query parameter carrying the page size.
	SizeParam string `yaml:"size_param" mapstructure:"size_param"`

	// ItemsField is the response field holding the page's elements.
	ItemsField string `yaml:"items_field" mapstructure:"items_field"`

	// NextField is the response field holding the next page token.
	NextField string `yaml:"next_field" mapstructure:"next_field"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.TokenParam == "" {
		c.TokenParam = "page_token"
	}
	if c.SizeParam == "" {
		c.SizeParam = "page_size"
	}
	if c.ItemsField == "" {
		c.ItemsField = "items"
	}
	if c.NextField == "" {
		c.NextField = "next_page_token"
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return apperrors.InvalidConfig("http source config is invalid").WithCause(err)
	}
	return nil
}
