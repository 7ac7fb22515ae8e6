package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"maintShop/internal/brute"
	"maintShop/internal/dp"
	"maintShop/internal/machine"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Решение эталонного примера с выводом расписания",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func demoInstance() (*machine.Instance, error) {
	return machine.NewInstance([]machine.Job{
		{ID: 1, A: 2, B: 1, C: 1, D: 5},
		{ID: 2, A: 1, B: 1, C: 1, D: 4},
		{ID: 3, A: 3, B: 2, C: 1, D: 6},
		{ID: 4, A: 2, B: 1, C: 1, D: 5},
	}, machine.Maintenance{Start: 3, Duration: 4}, machine.RuleStart)
}

func runDemo(cmd *cobra.Command, args []string) error {
	inst, err := demoInstance()
	if err != nil {
		return err
	}
	bf, err := brute.New(cfg.BruteConfig())
	if err != nil {
		return err
	}
	ex, err := dp.New(cfg.DPConfig())
	if err != nil {
		return err
	}
	oracle, err := bf.Solve(cmd.Context(), inst)
	if err != nil {
		return err
	}
	exact, err := ex.Solve(cmd.Context(), inst)
	if err != nil {
		return err
	}
	eval, err := machine.NewEvaluator(inst)
	if err != nil {
		return err
	}
	steps, cmax, err := eval.Trace(oracle.Permutation)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Best job order: %v\n", inst.IDs(oracle.Permutation))
	fmt.Fprint(out, machine.FormatTrace(steps, cmax))
	fmt.Fprintf(out, "Optimal C_max using Bitmask DP = %d\n", exact.Makespan)
	return nil
}
