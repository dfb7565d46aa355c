package resolver

import (
	"sort"

	"github.com/anvil-platform/depgame/internal/graph"
	"github.com/anvil-platform/depgame/internal/semver"
)

// MaxCandidates bounds the number of candidate selections a search examines.
//
// Puzzle graphs are a few dozen nodes at most; beyond 13 nodes the search is
// no longer exhaustive and an empty result does not prove unsatisfiability.
const MaxCandidates = 10000

// FindSolutions returns up to maxCount solutions in search order.
//
// The result is empty, not nil, when none is found within the search bound.
func (m *Model) FindSolutions(maxCount int) []Selection {
	return m.Enumerate(maxCount).Solutions
}

// Enumerate walks subsets of the nodes with a binary counter over node order
// (bit i selects node i) and keeps the first maxCount subsets that contain the root
// and satisfy every clause. At most min(2^n, MaxCandidates) subsets are visited.
func (m *Model) Enumerate(maxCount int) Enumeration {
	out := Enumeration{Solutions: []Selection{}}
	if maxCount <= 0 {
		return out
	}

	nodes := m.graph.Nodes()
	limit, complete := candidateLimit(len(nodes))
	rootIdx, _ := m.graph.Index(m.root)
	rootBit := bit(rootIdx)

	var mask uint64
	for mask = 0; mask < limit && len(out.Solutions) < maxCount; mask++ {
		out.Examined++
		if mask&rootBit == 0 {
			continue
		}
		sel := NewSelection()
		for i, n := range nodes {
			if mask&bit(i) != 0 {
				sel.Insert(n)
			}
		}
		if m.Satisfied(sel) {
			out.Solutions = append(out.Solutions, sel)
		}
	}
	out.Exhausted = complete && mask == limit
	return out
}

func candidateLimit(n int) (limit uint64, complete bool) {
	if n >= 63 || uint64(1)<<uint(n) > MaxCandidates {
		return MaxCandidates, false
	}
	return uint64(1) << uint(n), true
}

// bit returns the mask bit for node i; nodes past the word size never get one.
func bit(i int) uint64 {
	if i < 0 || i >= 64 {
		return 0
	}
	return uint64(1) << uint(i)
}

// SortedPairs renders sel as (name, version) pairs ordered by name, then by
// semantic version.
func SortedPairs(sel Selection) []NameVersion {
	out := make([]NameVersion, 0, sel.Len())
	for t := range sel {
		name, version := graph.Parse(t)
		out = append(out, NameVersion{Name: name, Version: version})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return semver.CompareRaw(out[i].Version, out[j].Version) < 0
	})
	return out
}
