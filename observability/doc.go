// Package observability exports list materialization through OpenTelemetry.
//
// Observer implements lazylist.Observer: every pull batch becomes a
// "lazylist.materialize" span and feeds the lazylist.* instruments.
//
//	mp, err := observability.InitMeter(ctx, &meterCfg)
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(observability.Meter("lazyseq"))
//	obs := observability.NewObserver("events", observability.Tracer("lazyseq"), metrics)
//	l := lazylist.From(src, lazylist.WithObserver(obs))
package observability
