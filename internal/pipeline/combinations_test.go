package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountCombinations(t *testing.T) {
	sets := [][]string{
		{"a", "b", "c"},
		{"a", "b", "c"},
		{"x", "y"},
		{"x", "z"},
		{"x", "w"},
	}
	c := CountCombinations(sets, 2, 0)

	assert.Equal(t, 6, c.Len())
	assert.Equal(t, 2, c.Count("a", "b"))
	assert.Equal(t, 2, c.Count("c", "a"))
	assert.Equal(t, 2, c.Count("b", "c"))
	assert.Equal(t, 1, c.Count("x", "y"))
	assert.Equal(t, 1, c.Count("x", "z"))
	assert.Equal(t, 1, c.Count("w", "x"))
	assert.Equal(t, 0, c.Count("a", "x"))
}

func TestCountCombinationsCountsContainersNotGenerators(t *testing.T) {
	sets := [][]string{{"a", "b"}, {"a", "b", "c"}}
	c := CountCombinations(sets, 2, 0)
	assert.Equal(t, 2, c.Count("a", "b"))
	assert.Equal(t, 1, c.Count("b", "c"))
}

func TestMostCommonKeepsFirstEncounteredOrderOnTies(t *testing.T) {
	sets := [][]string{
		{"x", "y"},
		{"a", "b"},
		{"a", "b"},
		{"m", "n"},
	}
	top := CountCombinations(sets, 2, 0).MostCommon(3)
	require.Len(t, top, 3)
	assert.Equal(t, Combination{Items: []string{"a", "b"}, Count: 2}, top[0])
	assert.Equal(t, []string{"x", "y"}, top[1].Items)
	assert.Equal(t, []string{"m", "n"}, top[2].Items)
	assert.Equal(t, "a, b", top[0].Label())

	assert.Len(t, CountCombinations(sets, 2, 0).MostCommon(-1), 3)
}

func TestCountCombinationsEdgeCases(t *testing.T) {
	assert.Equal(t, 0, CountCombinations([][]string{{"a"}}, 2, 0).Len())
	assert.Equal(t, 0, CountCombinations([][]string{{"a", "b"}}, 0, 0).Len())
	assert.Equal(t, 1, CountCombinations([][]string{{"a", "a", "b"}}, 2, 0).Len())
}

func TestCountCombinationsSkipsOversizedSets(t *testing.T) {
	sets := [][]string{
		{"a", "b", "c", "d"},
		{"a", "b"},
	}
	c := CountCombinations(sets, 2, 3)
	assert.Equal(t, 1, c.Skipped)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Count("a", "b"), "oversized sets still count as containers")
}

func TestEachSubset(t *testing.T) {
	var got [][]string
	eachSubset([]string{"a", "b", "c", "d"}, 3, func(s []string) {
		got = append(got, append([]string(nil), s...))
	})
	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"a", "b", "d"},
		{"a", "c", "d"},
		{"b", "c", "d"},
	}, got)
}
