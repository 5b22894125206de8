// Package metrics records run metrics behind a small Recorder interface.
//
// Components default to NoopRecorder so no call site needs a nil check.
// When a metrics textfile is configured the CLI swaps in a
// PrometheusRecorder backed by a private registry and writes the registry
// in the Prometheus text exposition format once the run ends:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	assembler := site.New(cfg, logger).WithRecorder(rec)
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/forumarchive.prom")
package metrics
