package documents

import "testing"

func TestCanTransitionForwardEdges(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusProcessing, StatusCompleted},
		{StatusProcessing, StatusFailed},
	}
	for _, edge := range allowed {
		if !CanTransition(edge.from, edge.to) {
			t.Errorf("expected %s→%s to be allowed", edge.from, edge.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusFailed},
		{StatusPending, StatusPending},
		{StatusProcessing, StatusPending},
		{StatusCompleted, StatusProcessing},
		{StatusCompleted, StatusFailed},
		{StatusFailed, StatusCompleted},
		{StatusFailed, StatusPending},
	}
	for _, edge := range denied {
		if CanTransition(edge.from, edge.to) {
			t.Errorf("expected %s→%s to be denied", edge.from, edge.to)
		}
	}
}

func TestIsRetry(t *testing.T) {
	if !IsRetry(StatusFailed, StatusProcessing) {
		t.Error("failed→processing should count as a retry")
	}
	if IsRetry(StatusCompleted, StatusProcessing) {
		t.Error("completed→processing is not a retry")
	}
	if IsRetry(StatusPending, StatusProcessing) {
		t.Error("pending→processing is a normal forward edge, not a retry")
	}
}

func TestStatusHelpers(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("queued").Valid() {
		t.Error("unknown status should be invalid")
	}
	if StatusPending.Terminal() || StatusProcessing.Terminal() {
		t.Error("pending/processing are not terminal")
	}
	if !StatusCompleted.Terminal() || !StatusFailed.Terminal() {
		t.Error("completed/failed are terminal")
	}
}
