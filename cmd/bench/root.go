package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"maintShop/internal/bench"
	"maintShop/internal/brute"
	"maintShop/internal/config"
	"maintShop/internal/dp"
	"maintShop/internal/logger"
	"maintShop/internal/metrics"
)

var (
	cfgPath string
	cfg     *config.Config
	reg     = prometheus.NewRegistry()
)

var rootCmd = &cobra.Command{
	Use:           "maintshop",
	Short:         "Single-machine scheduling with deadlines and a maintenance window",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil || cfg.Metrics.Textfile == "" {
			return nil
		}
		return metrics.WriteTextfile(cfg.Metrics.Textfile, reg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "файл конфигурации (yaml/json); пусто — значения по умолчанию")
}

// newRunner builds the differential runner from the loaded configuration.
func newRunner(component string) (bench.Runner, error) {
	log := logger.NewWithWriter(component, os.Stderr, cfg.Logging.Level)
	if os.Getenv("APP_ENV") == "dev" {
		log = logger.NewZerologLogger(component)
	}
	bf, err := brute.New(cfg.BruteConfig())
	if err != nil {
		return bench.Runner{}, fmt.Errorf("brute config: %w", err)
	}
	ex, err := dp.New(cfg.DPConfig())
	if err != nil {
		return bench.Runner{}, fmt.Errorf("dp config: %w", err)
	}
	sink, err := metrics.NewPromSink(reg)
	if err != nil {
		return bench.Runner{}, fmt.Errorf("metrics: %w", err)
	}
	return bench.Runner{
		Ranges:  cfg.Ranges.ToMachine(),
		Oracle:  bench.Algorithm{Name: "brute", Solver: bf},
		Exact:   bench.Algorithm{Name: "dp", Solver: ex},
		Log:     log,
		Metrics: sink,
	}, nil
}
