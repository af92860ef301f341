// Package metrics provides observability hooks for generation runs.
//
// Components receive a Recorder through injection and default to NoopRecorder,
// so no call site needs a nil check:
//
//	pool := worker.NewPool(cfg, "RenderSources")
//	pool.SetRecorder(metrics.NewPrometheusRecorder(reg))
//
// The CLI has no long-running HTTP surface, so a PrometheusRecorder is
// exported once per run with WriteTextfile when --metrics-file is set.
package metrics
