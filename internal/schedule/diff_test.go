package schedule

import (
	"sort"
	"testing"
)

func TestDiffAssigneesScenario(t *testing.T) {
	// previous {A=1, B=2}, submitted {B=2, C=3}
	d := DiffAssignees([]int64{1, 2}, []int64{2, 3})

	if got := d.Added; len(got) != 1 || got[0] != 3 {
		t.Errorf("added = %v, want [3]", got)
	}
	if got := d.Retained; len(got) != 1 || got[0] != 2 {
		t.Errorf("retained = %v, want [2]", got)
	}
	if got := d.Removed; len(got) != 1 || got[0] != 1 {
		t.Errorf("removed = %v, want [1]", got)
	}
}

func TestDiffAssigneesProperties(t *testing.T) {
	cases := []struct {
		name      string
		previous  []int64
		submitted []int64
	}{
		{"disjoint", []int64{1, 2}, []int64{3, 4}},
		{"identical", []int64{1, 2, 3}, []int64{1, 2, 3}},
		{"create", nil, []int64{5}},
		{"clear", []int64{7, 8}, nil},
		{"duplicates", []int64{1, 1, 2}, []int64{2, 2, 9}},
		{"overlap", []int64{1, 2, 3, 4}, []int64{3, 4, 5, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := DiffAssignees(tc.previous, tc.submitted)

			// added ∪ retained = submitted
			if got, want := sortedUnion(d.Added, d.Retained), dedupSorted(tc.submitted); !equal(got, want) {
				t.Errorf("added ∪ retained = %v, want %v", got, want)
			}
			// retained ∪ removed = previous
			if got, want := sortedUnion(d.Retained, d.Removed), dedupSorted(tc.previous); !equal(got, want) {
				t.Errorf("retained ∪ removed = %v, want %v", got, want)
			}
			// added ∩ removed = ∅
			for _, a := range d.Added {
				for _, r := range d.Removed {
					if a == r {
						t.Errorf("id %d both added and removed", a)
					}
				}
			}
		})
	}
}

func TestDiffAssigneesPreservesSubmittedOrder(t *testing.T) {
	d := DiffAssignees([]int64{10}, []int64{30, 10, 20})
	if len(d.Added) != 2 || d.Added[0] != 30 || d.Added[1] != 20 {
		t.Errorf("added = %v, want submitted order [30 20]", d.Added)
	}
}

func sortedUnion(a, b []int64) []int64 {
	out := append(append([]int64{}, a...), b...)
	return dedupSorted(out)
}

func dedupSorted(in []int64) []int64 {
	seen := map[int64]bool{}
	var out []int64
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
