package machine

import (
	"errors"
	"fmt"
	"math/rand"
)

// Job is one unit of work. A is the nominal processing time, B the reduction
// when the job is late before maintenance, C the reduction when it is late
// after maintenance, D the deadline.
type Job struct {
	ID int
	A  int
	B  int
	C  int
	D  int
}

// Maintenance blocks the machine on [Start, Start+Duration).
type Maintenance struct {
	Start    int
	Duration int
}

// End is the first instant the machine is available again.
func (m Maintenance) End() int { return m.Start + m.Duration }

// Contains reports whether t falls inside the blocked interval.
func (m Maintenance) Contains(t int) bool {
	return m.Duration > 0 && t >= m.Start && t < m.End()
}

type Instance struct {
	Jobs        []Job
	Maintenance Maintenance
	Rule        Rule
}

// NewInstance copies jobs so the instance owns its job list.
func NewInstance(jobs []Job, ma Maintenance, rule Rule) (*Instance, error) {
	own := make([]Job, len(jobs))
	copy(own, jobs)
	inst := &Instance{Jobs: own, Maintenance: ma, Rule: rule}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Maintenance.Start < 0 {
		return fmt.Errorf("maintenance start must be >= 0 (got %d)", inst.Maintenance.Start)
	}
	if inst.Maintenance.Duration < 0 {
		return fmt.Errorf("maintenance duration must be >= 0 (got %d)", inst.Maintenance.Duration)
	}
	if err := inst.Rule.Validate(); err != nil {
		return err
	}
	seen := make(map[int]struct{}, len(inst.Jobs))
	for i, j := range inst.Jobs {
		if j.A <= 0 {
			return fmt.Errorf("jobs[%d] (id %d): a must be > 0 (got %d)", i, j.ID, j.A)
		}
		if j.B < 0 || j.B > j.A {
			return fmt.Errorf("jobs[%d] (id %d): b must be in [0,%d] (got %d)", i, j.ID, j.A, j.B)
		}
		if j.C < 0 || j.C > j.A {
			return fmt.Errorf("jobs[%d] (id %d): c must be in [0,%d] (got %d)", i, j.ID, j.A, j.C)
		}
		if j.D < 0 {
			return fmt.Errorf("jobs[%d] (id %d): deadline must be >= 0 (got %d)", i, j.ID, j.D)
		}
		if _, dup := seen[j.ID]; dup {
			return fmt.Errorf("duplicate job id %d", j.ID)
		}
		seen[j.ID] = struct{}{}
	}
	return nil
}

func (inst *Instance) Len() int { return len(inst.Jobs) }

// Order maps a permutation of job indices to the jobs themselves.
func (inst *Instance) Order(perm []int) []Job {
	out := make([]Job, len(perm))
	for i, idx := range perm {
		out[i] = inst.Jobs[idx]
	}
	return out
}

// IDs maps a permutation of job indices to job identifiers.
func (inst *Instance) IDs(perm []int) []int {
	out := make([]int, len(perm))
	for i, idx := range perm {
		out[i] = inst.Jobs[idx].ID
	}
	return out
}

// Range is an inclusive integer interval used by the sampler.
type Range struct {
	Min int
	Max int
}

func (r Range) sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

func (r Range) validate(name string, lo int) error {
	if r.Min < lo || r.Max < r.Min {
		return fmt.Errorf("%s range [%d,%d] invalid (min must be >= %d and <= max)", name, r.Min, r.Max, lo)
	}
	return nil
}

// Ranges bounds every sampled value. B and C are clamped to the sampled A.
type Ranges struct {
	A             Range
	B             Range
	C             Range
	D             Range
	MaintStart    Range
	MaintDuration Range
}

// DefaultRanges returns the bounds used by the differential check: c is drawn
// above b so the post-maintenance discount dominates.
func DefaultRanges() Ranges {
	return Ranges{
		A:             Range{Min: 1, Max: 5},
		B:             Range{Min: 1, Max: 3},
		C:             Range{Min: 4, Max: 5},
		D:             Range{Min: 5, Max: 15},
		MaintStart:    Range{Min: 2, Max: 10},
		MaintDuration: Range{Min: 1, Max: 4},
	}
}

func (r Ranges) Validate() error {
	checks := []struct {
		name string
		rng  Range
		lo   int
	}{
		{"a", r.A, 1},
		{"b", r.B, 0},
		{"c", r.C, 0},
		{"d", r.D, 0},
		{"maintenance start", r.MaintStart, 0},
		{"maintenance duration", r.MaintDuration, 0},
	}
	for _, c := range checks {
		if err := c.rng.validate(c.name, c.lo); err != nil {
			return err
		}
	}
	return nil
}

// RandomInstance samples n jobs with IDs 1..n and one maintenance window.
func RandomInstance(n int, ranges Ranges, rule Rule, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("random source is nil")
	}
	if n < 0 {
		panic("job count must be >= 0")
	}
	if err := ranges.Validate(); err != nil {
		panic(err)
	}
	jobs := make([]Job, n)
	for i := range jobs {
		a := ranges.A.sample(rng)
		jobs[i] = Job{
			ID: i + 1,
			A:  a,
			B:  min(ranges.B.sample(rng), a),
			C:  min(ranges.C.sample(rng), a),
			D:  ranges.D.sample(rng),
		}
	}
	ma := Maintenance{
		Start:    ranges.MaintStart.sample(rng),
		Duration: ranges.MaintDuration.sample(rng),
	}
	inst, err := NewInstance(jobs, ma, rule)
	if err != nil {
		panic(err)
	}
	return inst
}
