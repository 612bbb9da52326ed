package metrics

import (
	"bytes"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncRoleInvocation("bokeh-issue", ResultOK)
	pr.IncRoleInvocation("bokeh-issue", ResultOK)
	pr.IncRoleInvocation("bokeh-issue", ResultInvalid)
	pr.ObserveRenderDuration(15 * time.Millisecond)
	pr.IncDocumentsRendered(true)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.roleInvocations.WithLabelValues("bokeh-issue", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.roleInvocations.WithLabelValues("bokeh-issue", "invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.documents.WithLabelValues("success")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 3)
}

func TestPrometheusRecorder_WriteText(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRoleInvocation("bokeh-tree", ResultOK)

	var buf bytes.Buffer
	require.NoError(t, pr.WriteText(&buf))
	assert.Contains(t, buf.String(), `docroles_role_invocations_total{result="ok",role="bokeh-tree"} 1`)
}

func TestNilAndNoopRecorders(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncRoleInvocation("x", ResultFault)
		pr.ObserveRenderDuration(time.Second)
		pr.IncDocumentsRendered(false)
	})

	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.IncRoleInvocation("x", ResultUnknown)
		r.ObserveRenderDuration(time.Second)
		r.IncDocumentsRendered(true)
	})
}
