package bench

import (
	"fmt"
	"strings"

	"maintShop/internal/machine"
)

// Mismatch is returned by Runner.Verify when the two solvers disagree, or
// when a returned order does not re-evaluate to the reported makespan.
type Mismatch struct {
	Test     int
	Seed     int64
	Instance *machine.Instance
	Brute    int
	DP       int
	// Reason names which check failed.
	Reason string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("mismatch in test #%d (%s): brute=%d dp=%d", m.Test, m.Reason, m.Brute, m.DP)
}

// Report renders the failing instance for a human.
func (m *Mismatch) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mismatch found in test #%d (seed %d): %s\n", m.Test, m.Seed, m.Reason)
	fmt.Fprintf(&sb, "DP result = %d, Brute force result = %d\n", m.DP, m.Brute)
	if m.Instance != nil {
		ma := m.Instance.Maintenance
		fmt.Fprintf(&sb, "Maintenance: start=%d duration=%d rule=%s\n", ma.Start, ma.Duration, m.Instance.Rule)
		for _, j := range m.Instance.Jobs {
			fmt.Fprintf(&sb, "Job %d: a=%d b=%d c=%d d=%d\n", j.ID, j.A, j.B, j.C, j.D)
		}
	}
	return sb.String()
}
