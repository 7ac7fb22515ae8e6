package dp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"maintShop/internal/machine"
	"maintShop/internal/opt"
)

var ErrCapacityExceeded = errors.New("dp: capacity exceeded")

// CapacityError describes an instance whose state table would not fit the
// configured limits. It unwraps to ErrCapacityExceeded.
type CapacityError struct {
	Jobs      int
	MaxJobs   int
	Horizon   int
	MaxStates int
}

func (e *CapacityError) Error() string {
	if e.Jobs > e.MaxJobs {
		return fmt.Sprintf("dp: capacity exceeded: %d jobs (limit %d)", e.Jobs, e.MaxJobs)
	}
	return fmt.Sprintf("dp: capacity exceeded: 2^%d x %d states (limit %d)", e.Jobs, e.Horizon+1, e.MaxStates)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

const unreached = math.MaxInt

// table holds dp[mask][t] in a flat slice with stride horizon+1. The value is
// the smallest running makespan over orders of mask whose last job finishes
// exactly at t.
type table struct {
	n       int
	horizon int
	val     []int
	// predecessors, only with Config.Reconstruct
	predJob []int8
	predT   []int32
}

func (tb *table) idx(mask, t int) int { return mask*(tb.horizon+1) + t }

func (tb *table) full() int { return 1<<tb.n - 1 }

// Solver — точное решение динамическим программированием по (подмножество, время).
type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

func (s *Solver) Solve(ctx context.Context, inst *machine.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}

	tb, st, err := s.fill(ctx, inst)
	if err != nil {
		return opt.Result{}, err
	}

	full := tb.full()
	best, bestT := unreached, -1
	for t := 0; t <= tb.horizon; t++ {
		if v := tb.val[tb.idx(full, t)]; v < best {
			best, bestT = v, t
		}
	}
	if bestT < 0 {
		return opt.Result{}, fmt.Errorf("dp: no complete schedule reached within horizon %d", tb.horizon)
	}

	res := opt.Result{
		Makespan:    best,
		Evaluations: st.transitions,
		Iterations:  st.reached,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"horizon": tb.horizon,
			"states":  len(tb.val),
			"reached": st.reached,
		},
	}
	if s.Cfg.Reconstruct {
		res.Permutation = tb.order(bestT)
	}
	return res, nil
}

type stats struct {
	transitions int
	reached     int
}

// capacity rejects instances instead of truncating the state space.
func (s *Solver) capacity(n, horizon int) error {
	if n > s.Cfg.MaxJobs {
		return &CapacityError{Jobs: n, MaxJobs: s.Cfg.MaxJobs, Horizon: horizon, MaxStates: s.Cfg.MaxStates}
	}
	if horizon+1 > s.Cfg.MaxStates>>n || (s.Cfg.Reconstruct && horizon > math.MaxInt32) {
		return &CapacityError{Jobs: n, MaxJobs: s.Cfg.MaxJobs, Horizon: horizon, MaxStates: s.Cfg.MaxStates}
	}
	return nil
}

func (s *Solver) fill(ctx context.Context, inst *machine.Instance) (*table, stats, error) {
	n := inst.Len()
	horizon := machine.Horizon(inst.Jobs, inst.Maintenance)
	if err := s.capacity(n, horizon); err != nil {
		return nil, stats{}, err
	}

	tb := &table{n: n, horizon: horizon, val: make([]int, (1<<n)*(horizon+1))}
	for i := range tb.val {
		tb.val[i] = unreached
	}
	if s.Cfg.Reconstruct {
		tb.predJob = make([]int8, len(tb.val))
		tb.predT = make([]int32, len(tb.val))
	}
	tb.val[tb.idx(0, 0)] = 0

	var st stats
	ma, rule := inst.Maintenance, inst.Rule
	for mask := 0; mask < 1<<n; mask++ {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		for t := 0; t <= horizon; t++ {
			v := tb.val[tb.idx(mask, t)]
			if v == unreached {
				continue
			}
			st.reached++
			for j := 0; j < n; j++ {
				if mask&(1<<j) != 0 {
					continue
				}
				finish := machine.Finish(t, inst.Jobs[j], ma, rule)
				if finish > horizon {
					return nil, st, fmt.Errorf("dp: finish time %d beyond horizon %d", finish, horizon)
				}
				st.transitions++
				next := tb.idx(mask|1<<j, finish)
				if cand := max(v, finish); cand < tb.val[next] {
					tb.val[next] = cand
					if tb.predJob != nil {
						tb.predJob[next] = int8(j)
						tb.predT[next] = int32(t)
					}
				}
			}
		}
	}
	return tb, st, nil
}

// order walks predecessors back from (full, t).
func (tb *table) order(t int) []int {
	perm := make([]int, tb.n)
	mask := tb.full()
	for k := tb.n - 1; k >= 0; k-- {
		i := tb.idx(mask, t)
		j := int(tb.predJob[i])
		perm[k] = j
		t = int(tb.predT[i])
		mask &^= 1 << j
	}
	return perm
}
