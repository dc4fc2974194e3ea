package graph

import "github.com/platformbuilds/studygraph/internal/models"

// visit is one study in pre-order. parent is the index of the resolved
// parent inside the group, or -1 when the study was laid out as a root.
type visit struct {
	index  int
	depth  int
	parent int
}

// buildForest orders a subproduct's studies depth-first. A study is a root
// when its parent id is empty, unresolvable in the group, or itself. Studies
// only reachable through a cycle are visited as roots after the rest, in
// input order. Duplicate ids resolve to their first occurrence.
func buildForest(group []models.Study) []visit {
	firstByID := make(map[string]int, len(group))
	for i := range group {
		if _, ok := firstByID[group[i].ID]; !ok {
			firstByID[group[i].ID] = i
		}
	}

	children := make(map[int][]int)
	var roots []int
	for i := range group {
		pid := group[i].ParentID
		j, ok := firstByID[pid]
		if pid == "" || !ok || j == i {
			roots = append(roots, i)
			continue
		}
		children[j] = append(children[j], i)
	}

	order := make([]visit, 0, len(group))
	seen := make([]bool, len(group))
	var walk func(i, depth, parent int)
	walk = func(i, depth, parent int) {
		seen[i] = true
		order = append(order, visit{index: i, depth: depth, parent: parent})
		for _, c := range children[i] {
			if !seen[c] {
				walk(c, depth+1, i)
			}
		}
	}

	for _, r := range roots {
		if !seen[r] {
			walk(r, 0, -1)
		}
	}
	for i := range group {
		if !seen[i] {
			walk(i, 0, -1)
		}
	}
	return order
}
