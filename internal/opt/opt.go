package opt

import (
	"context"
	"time"

	"maintShop/internal/machine"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *machine.Instance) (Result, error)
}

// Result of one solver call. Permutation indexes inst.Jobs and may be nil
// when the solver computed only the makespan.
type Result struct {
	Permutation []int
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// HasOrder reports whether the solver produced a witnessing permutation.
func (r Result) HasOrder() bool { return r.Permutation != nil }
