package schedule

// Diff partitions a resubmitted assignee list against the previous one.
// The three slices are disjoint; order follows the submitted list (Removed
// follows the previous list).
type Diff struct {
	Added    []int64
	Retained []int64
	Removed  []int64
}

// DiffAssignees computes added/retained/removed between the previous and
// the newly submitted assignee sets. Duplicates are collapsed. Validation
// (a task needs at least one assignee) happens upstream; an empty submitted
// set simply marks everyone as removed.
func DiffAssignees(previous, submitted []int64) Diff {
	prev := toSet(previous)
	next := toSet(submitted)

	var d Diff
	seen := make(map[int64]bool, len(submitted))
	for _, id := range submitted {
		if seen[id] {
			continue
		}
		seen[id] = true
		if prev[id] {
			d.Retained = append(d.Retained, id)
		} else {
			d.Added = append(d.Added, id)
		}
	}
	seen = make(map[int64]bool, len(previous))
	for _, id := range previous {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !next[id] {
			d.Removed = append(d.Removed, id)
		}
	}
	return d
}

func toSet(ids []int64) map[int64]bool {
	s := make(map[int64]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
