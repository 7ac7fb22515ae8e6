package machine

import (
	"fmt"
	"strings"
)

type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

// Makespan runs the jobs in perm order from time 0 and returns C_max.
func (e *Evaluator) Makespan(perm []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePermutation(perm, e.inst.Len()); err != nil {
		return 0, err
	}
	return e.makespan(perm), nil
}

// makespan skips validation; callers own a known-good permutation.
func (e *Evaluator) makespan(perm []int) int {
	ma := e.inst.Maintenance
	t, cmax := 0, 0
	for _, idx := range perm {
		t = Finish(t, e.inst.Jobs[idx], ma, e.inst.Rule)
		if t > cmax {
			cmax = t
		}
	}
	return cmax
}

func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// Trace is Makespan with every step recorded.
func (e *Evaluator) Trace(perm []int) ([]Step, int, error) {
	if e == nil || e.inst == nil {
		return nil, 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePermutation(perm, e.inst.Len()); err != nil {
		return nil, 0, err
	}
	steps := make([]Step, 0, len(perm))
	t, cmax := 0, 0
	for _, idx := range perm {
		st := Advance(t, e.inst.Jobs[idx], e.inst.Maintenance, e.inst.Rule)
		steps = append(steps, st)
		t = st.Finish
		cmax = max(cmax, t)
	}
	return steps, cmax, nil
}

// FormatTrace renders one line per step and a closing C_max line.
func FormatTrace(steps []Step, makespan int) string {
	var sb strings.Builder
	for _, st := range steps {
		sb.WriteString(st.String())
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "C_max = %d\n", makespan)
	return sb.String()
}
