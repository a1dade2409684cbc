// Package stream provides a lazy, pull-based pipeline builder.
//
// A Stream[T] does no work until it is iterated, collected, or run. Every
// builder method returns a new, independent Stream — nothing is mutated in
// place, and a Stream can be iterated more than once.
//
// # Operators
//
// Type-preserving (methods on *Stream[T]):
//
//   - Do: side effect per element, original element passed through
//   - Filter: keep elements matching a predicate
//   - Batch: group elements by size and/or time
//   - Slow: enforce a minimum inter-element interval
//   - Catch / CatchAny: suppress element errors matching a predicate
//   - Observe: log progress at logarithmic checkpoints
//   - Chain / Plus: concatenate with one or more other streams
//
// Type-changing (package-level generic functions, since a method cannot
// introduce a type parameter beyond its receiver's):
//
//   - Map[T, R]: transform each element, optionally with bounded concurrency
//   - Flatten[R]: concatenate a stream of streams, optionally with bounded
//     concurrent sub-stream consumption
//
// # Usage
//
//	src := stream.FromSlice([]int{1, 2, 3, 4, 5})
//	doubled := stream.Map(src, func(n int) (int, error) { return n * 2, nil }, 1)
//	evens := doubled.Filter(func(n int) bool { return n%2 == 0 })
//	results, err := evens.Run(ctx, stream.RunOptions{CollectLimit: 100})
//
// Concurrent map with error tolerance:
//
//	fetched := stream.Map(urls, fetchOne, 8)
//	tolerant := fetched.Catch(func(err error) bool { return true })
//	results, err := tolerant.Run(ctx, stream.RunOptions{
//	    CollectLimit:          1000,
//	    RaiseIfMoreErrorsThan: 5,
//	})
package stream
