package dp

import "fmt"

const (
	// HardMaxJobs keeps masks and predecessor indices in range.
	HardMaxJobs = 30

	DefaultMaxJobs   = 20
	DefaultMaxStates = 1 << 25
)

type Config struct {
	// MaxJobs — предельное число работ (не больше HardMaxJobs).
	MaxJobs int
	// MaxStates — предельный размер таблицы 2^n × (T_max+1).
	MaxStates int
	// Reconstruct включает хранение предшественников для восстановления порядка.
	Reconstruct bool
}

func DefaultConfig() Config {
	return Config{
		MaxJobs:     DefaultMaxJobs,
		MaxStates:   DefaultMaxStates,
		Reconstruct: true,
	}
}

func (c Config) Validate() error {
	if c.MaxJobs <= 0 || c.MaxJobs > HardMaxJobs {
		return fmt.Errorf("MaxJobs должно лежать в интервале [1,%d] (получено %d)", HardMaxJobs, c.MaxJobs)
	}
	if c.MaxStates <= 0 {
		return fmt.Errorf("MaxStates должно быть > 0 (получено %d)", c.MaxStates)
	}
	return nil
}
