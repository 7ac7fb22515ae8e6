package brute

import "fmt"

// Предел по умолчанию: 10! = 3 628 800 перестановок.
const DefaultMaxJobs = 10

type Config struct {
	// MaxJobs — верхняя граница числа работ; 0 отключает проверку.
	MaxJobs int
}

func DefaultConfig() Config {
	return Config{MaxJobs: DefaultMaxJobs}
}

func (c Config) Validate() error {
	if c.MaxJobs < 0 {
		return fmt.Errorf("MaxJobs должно быть >= 0 (получено %d)", c.MaxJobs)
	}
	return nil
}
