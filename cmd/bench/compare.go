package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"maintShop/internal/bench"
	"maintShop/internal/machine"
)

var compareFlags struct {
	jobs  string
	tests int
	out   string
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Сравнение времени работы DP и перебора по числу работ",
	RunE:  runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareFlags.jobs, "jobs", "2,4,6,8", "список чисел работ (через запятую)")
	f.IntVar(&compareFlags.tests, "tests", 20, "количество экземпляров на каждое число работ")
	f.StringVar(&compareFlags.out, "out", "artifacts/compare.csv", "путь к выходному CSV-файлу")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	sizes, err := parseSizes(compareFlags.jobs)
	if err != nil {
		return err
	}
	runner, err := newRunner("compare")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var records []bench.Record
	for i, n := range sizes {
		fmt.Fprintf(out, "Запуск: %d работ (экземпляров=%d)...\n", n, compareFlags.tests)
		rec, err := runner.Verify(cmd.Context(), bench.Case{
			Jobs:  n,
			Tests: compareFlags.tests,
			Seed:  cfg.Verify.Seed + int64(i)*10_000 + int64(n)*100,
			Rule:  machine.Rule(cfg.Verify.Rule),
		})
		if err != nil {
			return err
		}
		records = append(records, rec)
		fmt.Fprintf(out, "  DP: лучшее=%.3fms среднее=%.3fms | Перебор: лучшее=%.3fms среднее=%.3fms | C_max среднее=%.2f\n",
			rec.DPBestMs, rec.DPMeanMs, rec.BruteBestMs, rec.BruteMeanMs, rec.MakespanMean)
	}

	if err := bench.WriteCSV(compareFlags.out, records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Fprintln(out, "Saved:", compareFlags.out)
	return nil
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("число работ %q: %w", p, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("число работ должно быть >= 0 (получено %d)", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("список чисел работ пуст")
	}
	return out, nil
}
