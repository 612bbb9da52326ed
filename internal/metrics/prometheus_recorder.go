package metrics

import (
	"io"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "docroles"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	roleInvocations *prom.CounterVec
	renderDuration  prom.Histogram
	documents       *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		roleInvocations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "role_invocations_total",
			Help:      "Role invocations by role name and outcome",
		}, []string{"role", "result"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of rendering one document",
			Buckets:   prom.DefBuckets,
		}),
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rendered_total",
			Help:      "Rendered documents by success/failure",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.roleInvocations, pr.renderDuration, pr.documents)
	return pr
}

func (p *PrometheusRecorder) IncRoleInvocation(role string, result ResultLabel) {
	if p == nil {
		return
	}
	p.roleInvocations.WithLabelValues(role, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentsRendered(success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.documents.WithLabelValues(res).Inc()
}

// WriteText gathers the registry and writes it in text exposition format.
func (p *PrometheusRecorder) WriteText(w io.Writer) error {
	mfs, err := p.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
