package metrics

import "time"

// ResultLabel enumerates role invocation outcomes.
type ResultLabel string

const (
	ResultOK      ResultLabel = "ok"      // role produced its output
	ResultInvalid ResultLabel = "invalid" // role reported an authoring error
	ResultFault   ResultLabel = "fault"   // role returned an unrecovered error
	ResultUnknown ResultLabel = "unknown" // no handler registered under the name
)

// Recorder defines observability hooks for role rendering.
type Recorder interface {
	IncRoleInvocation(role string, result ResultLabel)
	ObserveRenderDuration(d time.Duration)
	IncDocumentsRendered(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncRoleInvocation(string, ResultLabel) {}
func (NoopRecorder) ObserveRenderDuration(time.Duration)   {}
func (NoopRecorder) IncDocumentsRendered(bool)             {}
