package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"maintShop/internal/brute"
	"maintShop/internal/dp"
	"maintShop/internal/machine"
)

// EnvPrefix marks environment overrides: MS_VERIFY__TESTS=50 sets verify.tests.
const EnvPrefix = "MS_"

type Config struct {
	Logging LoggingConfig `json:"logging"`
	Verify  VerifyConfig  `json:"verify"`
	Ranges  RangesConfig  `json:"ranges"`
	Brute   BruteConfig   `json:"brute"`
	DP      DPConfig      `json:"dp"`
	Metrics MetricsConfig `json:"metrics"`
}

type LoggingConfig struct {
	// Level is a zerolog level name.
	Level string `json:"level"`
}

type VerifyConfig struct {
	Jobs  int    `json:"jobs"`
	Tests int    `json:"tests"`
	Seed  int64  `json:"seed"`
	Rule  string `json:"rule"`
	// Out is the CSV file for timing records; empty disables it.
	Out string `json:"out"`
}

type RangeConfig struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type RangesConfig struct {
	A             RangeConfig `json:"a"`
	B             RangeConfig `json:"b"`
	C             RangeConfig `json:"c"`
	D             RangeConfig `json:"d"`
	MaintStart    RangeConfig `json:"maint_start"`
	MaintDuration RangeConfig `json:"maint_duration"`
}

type BruteConfig struct {
	MaxJobs int `json:"max_jobs"`
}

type DPConfig struct {
	MaxJobs   int `json:"max_jobs"`
	MaxStates int `json:"max_states"`
}

type MetricsConfig struct {
	// Textfile receives the Prometheus text exposition after a run.
	Textfile string `json:"textfile"`
}

// Default mirrors the package defaults of the solvers and the sampler.
func Default() Config {
	r := machine.DefaultRanges()
	bc := brute.DefaultConfig()
	dc := dp.DefaultConfig()
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Verify: VerifyConfig{
			Jobs:  6,
			Tests: 300,
			Seed:  1000,
			Rule:  string(machine.RuleStart),
			Out:   "artifacts/verify.csv",
		},
		Ranges: RangesConfig{
			A:             fromRange(r.A),
			B:             fromRange(r.B),
			C:             fromRange(r.C),
			D:             fromRange(r.D),
			MaintStart:    fromRange(r.MaintStart),
			MaintDuration: fromRange(r.MaintDuration),
		},
		Brute: BruteConfig{MaxJobs: bc.MaxJobs},
		DP:    DPConfig{MaxJobs: dc.MaxJobs, MaxStates: dc.MaxStates},
	}
}

// Load reads path (YAML or JSON) over the defaults and then applies MS_*
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.Verify.Jobs < 0 {
		return fmt.Errorf("verify.jobs must be >= 0 (got %d)", c.Verify.Jobs)
	}
	if c.Verify.Tests <= 0 {
		return fmt.Errorf("verify.tests must be > 0 (got %d)", c.Verify.Tests)
	}
	if err := machine.Rule(c.Verify.Rule).Validate(); err != nil {
		return fmt.Errorf("verify.rule: %w", err)
	}
	if err := c.Ranges.ToMachine().Validate(); err != nil {
		return fmt.Errorf("ranges: %w", err)
	}
	if err := c.BruteConfig().Validate(); err != nil {
		return fmt.Errorf("brute: %w", err)
	}
	if err := c.DPConfig().Validate(); err != nil {
		return fmt.Errorf("dp: %w", err)
	}
	return nil
}

func (c Config) BruteConfig() brute.Config {
	return brute.Config{MaxJobs: c.Brute.MaxJobs}
}

// DPConfig always enables order reconstruction; the harness checks the order.
func (c Config) DPConfig() dp.Config {
	return dp.Config{MaxJobs: c.DP.MaxJobs, MaxStates: c.DP.MaxStates, Reconstruct: true}
}

func (r RangesConfig) ToMachine() machine.Ranges {
	return machine.Ranges{
		A:             r.A.toRange(),
		B:             r.B.toRange(),
		C:             r.C.toRange(),
		D:             r.D.toRange(),
		MaintStart:    r.MaintStart.toRange(),
		MaintDuration: r.MaintDuration.toRange(),
	}
}

func (r RangeConfig) toRange() machine.Range { return machine.Range{Min: r.Min, Max: r.Max} }

func fromRange(r machine.Range) RangeConfig { return RangeConfig{Min: r.Min, Max: r.Max} }
