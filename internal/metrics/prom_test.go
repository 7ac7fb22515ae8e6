package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromSink_RecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	sink.RecordSolve("dp", 3*time.Millisecond, 40)
	sink.RecordSolve("dp", time.Millisecond, 2)
	sink.RecordSolve("brute", time.Millisecond, 720)

	expected := `
# HELP maintshop_solves_total Total number of solver calls
# TYPE maintshop_solves_total counter
maintshop_solves_total{solver="brute"} 1
maintshop_solves_total{solver="dp"} 2
`
	if err := testutil.CollectAndCompare(sink.solves, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	assert.Equal(t, 42.0, testutil.ToFloat64(sink.evaluations.WithLabelValues("dp")))
	if c := testutil.CollectAndCount(sink.latency); c != 2 {
		t.Errorf("expected 2 latency series, got %d", c)
	}
}

func TestPromSink_InstancesAndMismatches(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	sink.RecordInstance(6)
	sink.RecordInstance(6)
	sink.RecordMismatch(6)

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.instances.WithLabelValues("6")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.mismatches.WithLabelValues("6")))
}

func TestNewPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSink(reg)
	require.NoError(t, err)
	second, err := NewPromSink(reg)
	require.NoError(t, err)

	first.RecordInstance(3)
	second.RecordInstance(3)
	assert.Equal(t, 2.0, testutil.ToFloat64(first.instances.WithLabelValues("3")))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)
	sink.RecordMismatch(4)

	path := filepath.Join(t.TempDir(), "maintshop.prom")
	require.NoError(t, WriteTextfile(path, reg))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `maintshop_mismatches_total{jobs="4"} 1`)
}

func TestNopSink(t *testing.T) {
	var s Sink = NopSink{}
	s.RecordSolve("dp", time.Second, 1)
	s.RecordInstance(1)
	s.RecordMismatch(1)
}
