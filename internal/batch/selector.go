package batch

import "sort"

// SelectIndices computes which chunk indices to materialize: the first
// `first` indices unconditionally, then, when prune is set, a stride sample
// of the remainder anchored at its first element (first, first+P, first+2P,
// ... stopping before total). A nil prune selects the prefix only. The
// result is sorted and duplicate-free.
func SelectIndices(total, first int, prune *int) ([]int, error) {
	if prune != nil && *prune <= 0 {
		return nil, Usagef("--prune must be a positive integer")
	}
	if total <= 0 {
		return nil, nil
	}
	if first < 0 {
		first = 0
	}
	if first > total {
		first = total
	}

	selected := make([]int, 0, total)
	for i := 0; i < first; i++ {
		selected = append(selected, i)
	}
	if prune != nil {
		remaining := total - first
		for j := 0; j < remaining; j += *prune {
			selected = append(selected, first+j)
		}
	}

	sort.Ints(selected)
	out := selected[:0]
	for _, idx := range selected {
		if len(out) == 0 || idx != out[len(out)-1] {
			out = append(out, idx)
		}
	}
	return out, nil
}
