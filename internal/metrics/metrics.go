package metrics

import "time"

// Sink records solver activity from the differential harness.
type Sink interface {
	RecordSolve(solver string, d time.Duration, evaluations int)
	RecordInstance(jobs int)
	RecordMismatch(jobs int)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordSolve(string, time.Duration, int) {}
func (NopSink) RecordInstance(int)                     {}
func (NopSink) RecordMismatch(int)                     {}
