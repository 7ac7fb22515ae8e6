package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"maintShop/internal/logger"
	"maintShop/internal/machine"
	"maintShop/internal/metrics"
	"maintShop/internal/opt"
)

// Algorithm pairs a solver with the name used in logs and metrics.
type Algorithm struct {
	Name   string
	Solver opt.Optimizer
}

// Case is one differential run: Tests random instances of Jobs jobs each.
// Test i is sampled from Seed+i so any failure can be replayed alone.
type Case struct {
	Jobs  int
	Tests int
	Seed  int64
	Rule  machine.Rule
}

type Record struct {
	RunID string
	Rule  string
	Jobs  int
	Tests int

	BruteBestMs float64
	BruteMeanMs float64
	BruteStdMs  float64

	DPBestMs float64
	DPMeanMs float64
	DPStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64
}

type Runner struct {
	Ranges        machine.Ranges
	Oracle        Algorithm
	Exact         Algorithm
	PerRunTimeout time.Duration // 0 = no timeout

	Log     logger.Logger
	Metrics metrics.Sink
}

func (r Runner) log() logger.Logger {
	if r.Log == nil {
		return logger.NopLogger{}
	}
	return r.Log
}

func (r Runner) sink() metrics.Sink {
	if r.Metrics == nil {
		return metrics.NopSink{}
	}
	return r.Metrics
}

// Instance returns the instance Verify uses for test i of c.
func (r Runner) Instance(c Case, i int) *machine.Instance {
	return machine.RandomInstance(c.Jobs, r.Ranges, c.Rule, randForSeed(c.Seed+int64(i)))
}

// Verify runs both solvers on every instance of c, strictly in sequence, and
// stops at the first disagreement with a *Mismatch.
func (r Runner) Verify(ctx context.Context, c Case) (Record, error) {
	if r.Oracle.Solver == nil || r.Exact.Solver == nil {
		return Record{}, fmt.Errorf("runner needs both an oracle and an exact solver")
	}
	if c.Tests <= 0 {
		return Record{}, fmt.Errorf("tests must be > 0 (got %d)", c.Tests)
	}
	if err := r.Ranges.Validate(); err != nil {
		return Record{}, err
	}
	runID := uuid.NewString()
	log := r.log()
	sink := r.sink()

	bruteMs := make([]float64, 0, c.Tests)
	dpMs := make([]float64, 0, c.Tests)
	makespans := make([]int, 0, c.Tests)

	for i := 1; i <= c.Tests; i++ {
		inst := r.Instance(c, i)
		sink.RecordInstance(c.Jobs)

		bf, err := r.solve(ctx, r.Oracle, inst)
		if err != nil {
			return Record{}, fmt.Errorf("test %d: %s: %w", i, r.Oracle.Name, err)
		}
		ex, err := r.solve(ctx, r.Exact, inst)
		if err != nil {
			return Record{}, fmt.Errorf("test %d: %s: %w", i, r.Exact.Name, err)
		}

		if reason := check(inst, bf, ex); reason != "" {
			sink.RecordMismatch(c.Jobs)
			m := &Mismatch{
				Test:     i,
				Seed:     c.Seed + int64(i),
				Instance: inst,
				Brute:    bf.Makespan,
				DP:       ex.Makespan,
				Reason:   reason,
			}
			log.Errorf("run %s: %v", runID, m)
			return Record{}, m
		}

		bruteMs = append(bruteMs, ms(bf.Duration))
		dpMs = append(dpMs, ms(ex.Duration))
		makespans = append(makespans, ex.Makespan)
		log.Debugw("test passed", map[string]any{
			"run":      runID,
			"test":     i,
			"makespan": ex.Makespan,
			"brute_ms": ms(bf.Duration),
			"dp_ms":    ms(ex.Duration),
		})
	}

	bStats := CalcFloatStats(bruteMs)
	dStats := CalcFloatStats(dpMs)
	mStats := CalcIntStats(makespans)
	log.Infof("run %s: all %d tests passed for %d jobs (rule %s)", runID, c.Tests, c.Jobs, ruleName(c.Rule))

	return Record{
		RunID: runID,
		Rule:  ruleName(c.Rule),
		Jobs:  c.Jobs,
		Tests: c.Tests,

		BruteBestMs: bStats.Best,
		BruteMeanMs: bStats.Mean,
		BruteStdMs:  bStats.Std,

		DPBestMs: dStats.Best,
		DPMeanMs: dStats.Mean,
		DPStdMs:  dStats.Std,

		MakespanBest: mStats.Best,
		MakespanMean: mStats.Mean,
		MakespanStd:  mStats.Std,
	}, nil
}

func (r Runner) solve(ctx context.Context, a Algorithm, inst *machine.Instance) (opt.Result, error) {
	runCtx := ctx
	cancel := func() {}
	if r.PerRunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
	}
	start := time.Now()
	res, err := a.Solver.Solve(runCtx, inst)
	dur := time.Since(start)
	cancel()

	if err != nil && runCtx.Err() != nil {
		return opt.Result{}, fmt.Errorf("cancelled/timeout: %w", err)
	}
	if err != nil {
		return opt.Result{}, err
	}
	res.Duration = dur
	r.sink().RecordSolve(a.Name, dur, res.Evaluations)
	return res, nil
}

// check returns a non-empty reason when the results are inconsistent.
func check(inst *machine.Instance, oracle, exact opt.Result) string {
	if oracle.Makespan != exact.Makespan {
		return "makespans differ"
	}
	eval, err := machine.NewEvaluator(inst)
	if err != nil {
		return err.Error()
	}
	if got, err := eval.Makespan(oracle.Permutation); err != nil || got != oracle.Makespan {
		return "oracle order does not reproduce its makespan"
	}
	if exact.HasOrder() {
		if got, err := eval.Makespan(exact.Permutation); err != nil || got != exact.Makespan {
			return "dp order does not reproduce its makespan"
		}
	}
	return ""
}

func ruleName(r machine.Rule) string {
	if r == "" {
		return string(machine.RuleStart)
	}
	return string(r)
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"run_id", "rule", "jobs", "tests",
		"brute_best_ms", "brute_mean_ms", "brute_std_ms",
		"dp_best_ms", "dp_mean_ms", "dp_std_ms",
		"makespan_best", "makespan_mean", "makespan_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.RunID,
			r.Rule,
			itoa(r.Jobs),
			itoa(r.Tests),

			ftoa(r.BruteBestMs),
			ftoa(r.BruteMeanMs),
			ftoa(r.BruteStdMs),

			ftoa(r.DPBestMs),
			ftoa(r.DPMeanMs),
			ftoa(r.DPStdMs),

			itoa(r.MakespanBest),
			ftoa(r.MakespanMean),
			ftoa(r.MakespanStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
