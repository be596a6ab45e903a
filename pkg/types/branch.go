package types

import "sort"

// GroupBranches groups checkpoints by branch and sorts each branch by
// (Order, declaration index). The returned names list MainBranch first, then
// the remaining branches alphabetically. Checkpoints are expected to be
// normalized.
func GroupBranches(cps []Checkpoint) (names []string, groups map[string][]Checkpoint) {
	groups = make(map[string][]Checkpoint)
	for _, cp := range cps {
		groups[cp.Branch] = append(groups[cp.Branch], cp)
	}
	for name, branch := range groups {
		// SliceStable keeps declaration order for equal Order values.
		sort.SliceStable(branch, func(i, j int) bool {
			return branch[i].Order < branch[j].Order
		})
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == MainBranch {
			return names[j] != MainBranch
		}
		if names[j] == MainBranch {
			return false
		}
		return names[i] < names[j]
	})
	return names, groups
}
