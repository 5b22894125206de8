package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	NoopRecorder
	stageDurations map[string]int
	documents      map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageDurations: map[string]int{}, documents: map[string]int{}}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}

func (t *testRecorder) IncDocumentsRendered(collection, dialect string) {
	t.documents[collection+"/"+dialect]++
}

func TestRecorderInterfaceSatisfied(t *testing.T) {
	var r Recorder = newTestRecorder()
	r.ObserveStageDuration("load", time.Millisecond)
	r.IncDocumentsRendered("blog", "html")
	r.IncLinkResolution("external")

	tr := r.(*testRecorder)
	if tr.stageDurations["load"] != 1 {
		t.Fatalf("expected one load observation, got %d", tr.stageDurations["load"])
	}
	if tr.documents["blog/html"] != 1 {
		t.Fatalf("expected one blog/html document, got %d", tr.documents["blog/html"])
	}
	var _ Recorder = NoopRecorder{}
	var _ Recorder = (*PrometheusRecorder)(nil)
}
