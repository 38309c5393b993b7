package pipeline

import (
	"sort"
	"strings"
)

// Combination is a set of foods and the number of meal sets containing it.
type Combination struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

// Label joins the items for display.
func (c Combination) Label() string {
	return strings.Join(c.Items, ", ")
}

// CombinationCounter counts, for every k-subset generated from the input
// sets, how many input sets contain it.
type CombinationCounter struct {
	order  []string
	items  map[string][]string
	counts map[string]int
	// Skipped is the number of sets too large to enumerate. They still
	// count as containers.
	Skipped int
}

const keySep = "\x1f"

// CountCombinations enumerates the k-subsets of every set and counts their
// occurrence across all sets. Sets with more than maxSetSize distinct items
// are not enumerated; maxSetSize <= 0 disables the cap.
func CountCombinations(sets [][]string, k, maxSetSize int) *CombinationCounter {
	c := &CombinationCounter{items: make(map[string][]string), counts: make(map[string]int)}
	if k < 1 {
		return c
	}

	members := make([]map[string]struct{}, len(sets))
	distinct := make([][]string, len(sets))
	for i, set := range sets {
		members[i] = make(map[string]struct{}, len(set))
		for _, item := range set {
			if _, ok := members[i][item]; !ok {
				members[i][item] = struct{}{}
				distinct[i] = append(distinct[i], item)
			}
		}
		sort.Strings(distinct[i])
	}

	for _, items := range distinct {
		if maxSetSize > 0 && len(items) > maxSetSize {
			c.Skipped++
			continue
		}
		eachSubset(items, k, func(subset []string) {
			key := strings.Join(subset, keySep)
			if _, ok := c.items[key]; ok {
				return
			}
			c.items[key] = append([]string(nil), subset...)
			c.order = append(c.order, key)
		})
	}

	for _, key := range c.order {
		subset := c.items[key]
		n := 0
		for _, m := range members {
			if containsAll(m, subset) {
				n++
			}
		}
		c.counts[key] = n
	}
	return c
}

// Len returns the number of distinct subsets.
func (c *CombinationCounter) Len() int { return len(c.order) }

// Count returns the occurrence count of the given subset.
func (c *CombinationCounter) Count(items ...string) int {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return c.counts[strings.Join(sorted, keySep)]
}

// MostCommon returns the n most frequent subsets, ties in the order they
// were first generated. n < 0 returns all of them.
func (c *CombinationCounter) MostCommon(n int) []Combination {
	out := make([]Combination, len(c.order))
	for i, key := range c.order {
		out[i] = Combination{Items: c.items[key], Count: c.counts[key]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func containsAll(set map[string]struct{}, items []string) bool {
	for _, it := range items {
		if _, ok := set[it]; !ok {
			return false
		}
	}
	return true
}

// eachSubset calls fn with every k-subset of items in lexicographic index
// order. The slice passed to fn is reused.
func eachSubset(items []string, k int, fn func([]string)) {
	n := len(items)
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	subset := make([]string, k)
	for {
		for i, j := range idx {
			subset[i] = items[j]
		}
		fn(subset)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
