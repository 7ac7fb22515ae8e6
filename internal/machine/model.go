package machine

import "fmt"

// Rule decides when a job counts as late.
type Rule string

const (
	// RuleStart: late when the effective start is at or after the deadline.
	RuleStart Rule = "start"
	// RuleFinish: late when the nominal finish (start + a) passes the deadline.
	RuleFinish Rule = "finish"
)

func (r Rule) Validate() error {
	switch r {
	case "", RuleStart, RuleFinish:
		return nil
	default:
		return fmt.Errorf("unknown lateness rule %q", r)
	}
}

func (r Rule) late(start int, j Job) bool {
	if r == RuleFinish {
		return start+j.A > j.D
	}
	return start >= j.D
}

// Tier is the processing-time regime a job ran under.
type Tier int

const (
	TierOnTime Tier = iota
	TierLate
	TierLateAfterMaintenance
)

func (t Tier) String() string {
	switch t {
	case TierOnTime:
		return "on-time"
	case TierLate:
		return "late"
	case TierLateAfterMaintenance:
		return "late-after-maintenance"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Step is one scheduled job: Ready is when the machine became free, Start the
// effective start after maintenance avoidance.
type Step struct {
	Job        Job
	Ready      int
	Start      int
	Finish     int
	Processing int
	Tier       Tier
}

// Delayed reports whether maintenance pushed the start back.
func (s Step) Delayed() bool { return s.Start != s.Ready }

func (s Step) String() string {
	return fmt.Sprintf("Job %d: Start=%d, End=%d, P=%d", s.Job.ID, s.Start, s.Finish, s.Processing)
}

// EffectiveStart applies maintenance avoidance to a machine that is free at t.
// A job may not start inside the window, nor start before it and still be
// running at its start under the nominal time a.
func EffectiveStart(t int, j Job, ma Maintenance) int {
	if ma.Duration <= 0 {
		return t
	}
	if ma.Contains(t) {
		return ma.End()
	}
	if t < ma.Start && t+j.A > ma.Start {
		return ma.End()
	}
	return t
}

// Advance schedules j on a machine that is free at t.
func Advance(t int, j Job, ma Maintenance, rule Rule) Step {
	s := EffectiveStart(t, j, ma)
	step := Step{Job: j, Ready: t, Start: s}
	switch {
	case !rule.late(s, j):
		step.Processing = j.A
		step.Tier = TierOnTime
	case s < ma.Start:
		step.Processing = j.A - j.B
		step.Tier = TierLate
	default:
		step.Processing = j.A - j.C
		step.Tier = TierLateAfterMaintenance
	}
	step.Finish = s + step.Processing
	return step
}

// Finish is Advance reduced to the finish time; the DP transition uses it.
func Finish(t int, j Job, ma Maintenance, rule Rule) int {
	return Advance(t, j, ma, rule).Finish
}

// Horizon bounds every finish time reachable by any order of jobs. Finish
// times never decrease, each job adds at most a, and the only idle gap is a
// single jump to ma.End(), after which no further jump can happen.
func Horizon(jobs []Job, ma Maintenance) int {
	h := 0
	for _, j := range jobs {
		h += max(j.A, j.A-j.B, j.A-j.C)
	}
	if ma.Duration > 0 {
		h += ma.End()
	}
	return h
}
