// Package worker runs batches of independent work units on a bounded set of
// goroutines.
//
// A batch never aborts early: every submitted unit is attempted, a panic in
// one unit is recovered at the worker boundary and recorded as that unit's
// failure, and the batch result aggregates every failure.
//
//	pool := worker.NewPool(cfg, "RenderSources")
//	if err := pool.Execute(ctx, units); err != nil {
//		var agg *worker.AggregatedError
//		if errors.As(err, &agg) {
//			// agg.Failures() lists every failing unit
//		}
//	}
package worker
