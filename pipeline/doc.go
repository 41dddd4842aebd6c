// Package pipeline provides pull-based iterators and the operators used to
// feed lazy containers.
//
// Iterators are lazy: no work happens until values are pulled with Next,
// Collect, or ForEach. Each stage pulls from the previous stage on demand,
// so an unbounded source costs nothing until something asks for a value.
//
// # Sources
//
//   - FromSlice, Slice: in-memory values (natively reversible)
//   - Range: integer ranges (natively reversible)
//   - FromSeq: range-over-func sequences, started on first pull
//   - FromFunc: generator functions
//   - Paginate: page-token APIs fetched one page at a time
//
// # Operators
//
//   - Map, Filter, Take, Tap, Concat: per-value transforms and joins
//   - Tee: fork one single-pass iterator into independent copies
//   - Reversed: lazy reversal, native when the source is Reversible
//
// # Usage
//
//	src := pipeline.Range(0, 10)
//	evens := pipeline.Filter(src, func(n int) bool { return n%2 == 0 })
//	forks := pipeline.Tee(evens, 2)
//	back, _ := pipeline.Collect(ctx, pipeline.Reversed(forks[1]))
//	front, _ := pipeline.Collect(ctx, forks[0])
package pipeline
