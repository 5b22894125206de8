package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "forumarchive"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	stageDuration   *prom.HistogramVec
	runDuration     prom.Histogram
	stageResults    *prom.CounterVec
	runOutcome      *prom.CounterVec
	documents       *prom.CounterVec
	linkResolutions *prom.CounterVec
	renderWarnings  *prom.CounterVec
	verifyProblems  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual run stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Run outcomes by final status",
	}, []string{"outcome"})
	pr.documents = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "documents_rendered_total",
		Help:      "Documents written per collection and dialect",
	}, []string{"collection", "dialect"})
	pr.linkResolutions = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "link_resolutions_total",
		Help:      "Anchors resolved by classification",
	}, []string{"kind"})
	pr.renderWarnings = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "render_warnings_total",
		Help:      "Documents that fell back to degraded output",
	}, []string{"dialect"})
	pr.verifyProblems = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "verification_problems_total",
		Help:      "Broken links found when verifying output",
	}, []string{"dialect"})
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.runOutcome,
		pr.documents, pr.linkResolutions, pr.renderWarnings, pr.verifyProblems)
	return pr
}

// Registry returns the registry the metrics live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes the registry in text exposition format, for the node
// exporter textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncDocumentsRendered(collection, dialect string) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.WithLabelValues(collection, dialect).Inc()
}

func (p *PrometheusRecorder) IncLinkResolution(kind string) {
	if p == nil || p.linkResolutions == nil {
		return
	}
	p.linkResolutions.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncRenderWarning(dialect string) {
	if p == nil || p.renderWarnings == nil {
		return
	}
	p.renderWarnings.WithLabelValues(dialect).Inc()
}

func (p *PrometheusRecorder) AddVerificationProblems(dialect string, n int) {
	if p == nil || p.verifyProblems == nil || n <= 0 {
		return
	}
	p.verifyProblems.WithLabelValues(dialect).Add(float64(n))
}
