// Package metrics records role and render metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites need no nil checks:
//
//	rec := metrics.NewPrometheusRecorder(prom.NewRegistry())
//	renderer := markdown.NewRenderer(reg, cfg, src, markdown.WithRecorder(rec))
//
// PrometheusRecorder registers its collectors on the registry it is given.
// The CLI dumps that registry in text exposition format with --metrics.
package metrics
