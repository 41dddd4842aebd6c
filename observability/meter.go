package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lazykit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// Enabled starts the exporter. A disabled meter leaves the global no-op provider in place.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true,omitempty,hostname_port"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// ApplyDefaults fills empty fields from DefaultMeterConfig.
func (c *MeterConfig) ApplyDefaults(serviceName string) {
	d := DefaultMeterConfig(serviceName)
	if c.ServiceName == "" {
		c.ServiceName = d.ServiceName
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = d.ServiceVersion
	}
	if c.Environment == "" {
		c.Environment = d.Environment
	}
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.Interval == 0 {
		c.Interval = d.Interval
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricMaterializations   = "lazylist.materializations"
	MetricValuesPulled       = "lazylist.values.pulled"
	MetricMaterializeSeconds = "lazylist.materialize.duration"
	MetricSourcesActivated   = "lazylist.sources.activated"
	MetricSourceErrors       = "lazylist.source.errors"
)

// Metrics holds the instruments describing how lists materialize.
type Metrics struct {
	materializations metric.Int64Counter
	pulled           metric.Int64Counter
	duration         metric.Float64Histogram
	activations      metric.Int64Counter
	errors           metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	materializations, err := meter.Int64Counter(MetricMaterializations,
		metric.WithDescription("Number of times a list pulled from its sources"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricMaterializations, err)
	}

	pulled, err := meter.Int64Counter(MetricValuesPulled,
		metric.WithDescription("Values moved from sources into strict prefixes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricValuesPulled, err)
	}

	duration, err := meter.Float64Histogram(MetricMaterializeSeconds,
		metric.WithDescription("Time spent pulling from sources"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricMaterializeSeconds, err)
	}

	activations, err := meter.Int64Counter(MetricSourcesActivated,
		metric.WithDescription("Iterators that became the active source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSourcesActivated, err)
	}

	errors, err := meter.Int64Counter(MetricSourceErrors,
		metric.WithDescription("Source failures surfaced by list operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSourceErrors, err)
	}

	return &Metrics{
		materializations: materializations,
		pulled:           pulled,
		duration:         duration,
		activations:      activations,
		errors:           errors,
	}, nil
}

// RecordMaterialize records one pull batch. need is the requested index,
// negative when everything was requested.
func (m *Metrics) RecordMaterialize(ctx context.Context, list string, need, pulled int, err error, elapsed time.Duration) {
	scope := "index"
	if need < 0 {
		scope = "all"
	}
	status := "ok"
	if err != nil {
		status = "error"
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrList, list)))
	}
	m.materializations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrList, list),
		attribute.String("scope", scope),
		attribute.String(AttrStatus, status),
	))
	m.pulled.Add(ctx, int64(pulled), metric.WithAttributes(attribute.String(AttrList, list)))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String(AttrList, list)))
}

// RecordSourceActivated counts an iterator becoming the active source.
func (m *Metrics) RecordSourceActivated(ctx context.Context, list, kind string) {
	m.activations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrList, list),
		attribute.String(AttrKind, kind),
	))
}
