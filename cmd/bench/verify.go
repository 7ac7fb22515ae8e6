package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"maintShop/internal/bench"
	"maintShop/internal/machine"
)

var verifyFlags struct {
	jobs  int
	tests int
	seed  int64
	rule  string
	out   string
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Сверка DP с полным перебором на случайных экземплярах",
	RunE:  runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.IntVar(&verifyFlags.jobs, "jobs", 0, "количество работ в экземпляре (перекрывает verify.jobs)")
	f.IntVar(&verifyFlags.tests, "tests", 0, "количество случайных экземпляров (перекрывает verify.tests)")
	f.Int64Var(&verifyFlags.seed, "seed", 0, "базовый сид генератора (перекрывает verify.seed)")
	f.StringVar(&verifyFlags.rule, "rule", "", "правило опоздания: start | finish")
	f.StringVar(&verifyFlags.out, "out", "", "путь к CSV с временем работы (перекрывает verify.out)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if f.Changed("jobs") {
		cfg.Verify.Jobs = verifyFlags.jobs
	}
	if f.Changed("tests") {
		cfg.Verify.Tests = verifyFlags.tests
	}
	if f.Changed("seed") {
		cfg.Verify.Seed = verifyFlags.seed
	}
	if f.Changed("rule") {
		cfg.Verify.Rule = verifyFlags.rule
	}
	if f.Changed("out") {
		cfg.Verify.Out = verifyFlags.out
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runner, err := newRunner("verify")
	if err != nil {
		return err
	}
	rec, err := runner.Verify(cmd.Context(), bench.Case{
		Jobs:  cfg.Verify.Jobs,
		Tests: cfg.Verify.Tests,
		Seed:  cfg.Verify.Seed,
		Rule:  machine.Rule(cfg.Verify.Rule),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "All %d tests passed successfully.\n", rec.Tests)
	fmt.Fprintf(out, "  DP: среднее=%.3fms | Перебор: среднее=%.3fms\n", rec.DPMeanMs, rec.BruteMeanMs)
	if cfg.Verify.Out != "" {
		if err := bench.WriteCSV(cfg.Verify.Out, []bench.Record{rec}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintln(out, "Saved:", cfg.Verify.Out)
	}
	return nil
}
