package brute

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/combin"

	"maintShop/internal/machine"
	"maintShop/internal/opt"
)

var ErrTooManyJobs = errors.New("brute: too many jobs for exhaustive search")

// Solver — полный перебор перестановок; эталон для проверки DP.
type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Solve перебирает все порядки в лексикографическом порядке идентификаторов
// работ. При равенстве остаётся первый найденный порядок.
func (s *Solver) Solve(ctx context.Context, inst *machine.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	n := inst.Len()
	if s.Cfg.MaxJobs > 0 && n > s.Cfg.MaxJobs {
		return opt.Result{}, fmt.Errorf("%w: %d jobs (limit %d)", ErrTooManyJobs, n, s.Cfg.MaxJobs)
	}

	eval, err := machine.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	// ranks перебираются лексикографически, base переводит ранг в индекс работы.
	base := inst.CanonicalOrder()
	ranks := make([]int, n)
	for i := range ranks {
		ranks[i] = i
	}
	perm := make([]int, n)
	best := make([]int, n)
	bestCost := math.MaxInt
	evals := 0

	for {
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Permutation: best,
				Makespan:    bestCost,
				Evaluations: evals,
				Iterations:  evals,
				Duration:    time.Since(start),
				Meta:        map[string]any{"stopped": "context"},
			}, err
		}
		for i, r := range ranks {
			perm[i] = base[r]
		}
		cost := eval.MustMakespan(perm)
		evals++
		if cost < bestCost {
			bestCost = cost
			copy(best, perm)
		}
		if !machine.NextPermutation(ranks) {
			break
		}
	}

	return opt.Result{
		Permutation: best,
		Makespan:    bestCost,
		Evaluations: evals,
		Iterations:  evals,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"permutations": combin.NumPermutations(n, n),
		},
	}, nil
}
