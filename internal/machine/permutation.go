package machine

import (
	"fmt"
	"sort"
)

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("permutation length must be %d (got %d)", n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("perm[%d]=%d out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("duplicate job index %d in permutation", v)
		}
		seen[v] = true
	}
	return nil
}

// NextPermutation rearranges p into its lexicographic successor and reports
// false once p is the last permutation (it is then left unchanged).
func NextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

// CanonicalOrder returns job indices sorted by job ID.
func (inst *Instance) CanonicalOrder() []int {
	idx := make([]int, inst.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return inst.Jobs[idx[a]].ID < inst.Jobs[idx[b]].ID
	})
	return idx
}
