package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitIsIdempotent(t *testing.T) {
	// A second Init must not panic with a duplicate registration
	Init()
	Init()

	if FoldersRemovedTotal == nil || RemovalErrorsTotal == nil || BytesFreedTotal == nil || SweepDuration == nil {
		t.Fatal("Init must create all metrics")
	}
}

func TestCountersAccumulate(t *testing.T) {
	Init()

	before := testutil.ToFloat64(RemovalErrorsTotal)
	RemovalErrorsTotal.Inc()
	after := testutil.ToFloat64(RemovalErrorsTotal)

	if after-before != 1 {
		t.Errorf("Expected counter delta of 1, got %v", after-before)
	}
}
