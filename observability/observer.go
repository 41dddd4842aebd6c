package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lazykit/lazylist"
)

// Observer reports list materialization as spans and metrics. Either the
// tracer or the metrics may be nil.
type Observer struct {
	list    string
	tracer  trace.Tracer
	metrics *Metrics
}

var _ lazylist.Observer = (*Observer)(nil)

// NewObserver returns an Observer labelling everything with list.
func NewObserver(list string, tracer trace.Tracer, metrics *Metrics) *Observer {
	return &Observer{list: list, tracer: tracer, metrics: metrics}
}

// Materialize opens a span covering one pull batch.
func (o *Observer) Materialize(ctx context.Context, need int) func(pulled int, err error) {
	start := time.Now()
	var span trace.Span
	if o.tracer != nil {
		ctx, span = o.tracer.Start(ctx, SpanMaterialize, trace.WithAttributes(
			attribute.String(AttrList, o.list),
			attribute.Int(AttrNeed, need),
		))
	}
	return func(pulled int, err error) {
		if span != nil {
			span.SetAttributes(attribute.Int(AttrPulled, pulled))
			SetSpanError(span, err)
			span.End()
		}
		if o.metrics != nil {
			o.metrics.RecordMaterialize(ctx, o.list, need, pulled, err, time.Since(start))
		}
	}
}

// SourceActivated counts the activation.
func (o *Observer) SourceActivated(kind lazylist.SourceKind) {
	if o.metrics != nil {
		o.metrics.RecordSourceActivated(context.Background(), o.list, kind.String())
	}
}
