package lazylist

import (
	"context"

	"github.com/kbukum/lazykit/logger"
)

var nopLogger = logger.Nop()

// Observer receives materialization events. Implementations must be cheap;
// they run inline with every pull batch.
type Observer interface {
	// Materialize is called before the list pulls from its sources to reach
	// index need (negative: everything). The returned func is called with
	// the number of values pulled and the source error, if any.
	Materialize(ctx context.Context, need int) func(pulled int, err error)
	// SourceActivated is called when an iterator becomes the active source.
	SourceActivated(kind SourceKind)
}

type nopObserver struct{}

func (nopObserver) Materialize(context.Context, int) func(int, error) { return func(int, error) {} }
func (nopObserver) SourceActivated(SourceKind)                         {}

type options struct {
	name string
	log  *logger.Logger
	obs  Observer
}

func (o options) observer() Observer {
	if o.obs == nil {
		return nopObserver{}
	}
	return o.obs
}

// Option configures a List.
type Option func(*options)

// WithLogger sets the logger used for debug output about sources.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			log = log.WithComponent(logger.ComponentLazyList)
		}
		o.log = log
	}
}

// WithObserver sets the observer notified about materialization.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.obs = obs }
}

// WithName names the list in logs and Debug output.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}
