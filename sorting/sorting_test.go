// ABOUTME: Tests for the sorting runners
// ABOUTME: Covers final order, counter semantics, snapshot isolation and the text golden output

package sorting

import (
	"slices"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algoviz/dataset"
	"algoviz/trace"
)

var inputs = map[string][]int{
	"default":    dataset.Default(),
	"single":     {7},
	"pair":       {2, 1},
	"sorted":     {1, 2, 3, 4, 5},
	"reversed":   {5, 4, 3, 2, 1},
	"duplicates": {3, 1, 3, 2, 1},
}

func TestRunAllAlgorithmsSort(t *testing.T) {
	for _, alg := range Algorithms() {
		for name, in := range inputs {
			t.Run(string(alg)+"/"+name, func(t *testing.T) {
				original := slices.Clone(in)

				tr, err := Run(alg, in)
				require.NoError(t, err)
				require.False(t, tr.Empty())

				assert.Equal(t, original, in, "input must not be mutated")
				assert.Equal(t, string(alg), tr.Algorithm())

				want := slices.Clone(in)
				slices.Sort(want)

				last := tr.Last()
				assert.Equal(t, trace.KindDone, last.Kind)
				assert.True(t, last.Terminal())
				assert.Equal(t, want, last.Array)
				assert.Equal(t, trace.Span(0, len(in)-1), last.Highlights.Get(trace.Sorted))
				assert.Equal(t, 1, tr.Count(trace.KindDone))
			})
		}
	}
}

func TestStatsNeverDecrease(t *testing.T) {
	for _, alg := range Algorithms() {
		tr, err := Run(alg, dataset.Default())
		require.NoError(t, err)

		steps := tr.Steps()
		for i := 1; i < len(steps); i++ {
			assert.True(t, steps[i].Stats.AtLeast(steps[i-1].Stats),
				"%s step %d counters went backwards", alg, i)
		}
	}
}

func TestComparisonCounterMatchesCompareSteps(t *testing.T) {
	for _, alg := range Algorithms() {
		tr, err := Run(alg, dataset.Default())
		require.NoError(t, err)

		assert.Equal(t, tr.Count(trace.KindCompare), tr.Last().Stats.Comparisons, alg)

		if alg != Merge {
			assert.Equal(t, tr.Count(trace.KindSwap), tr.Last().Stats.Swaps, alg)
		}
	}
}

func TestSnapshotsArePermutations(t *testing.T) {
	in := dataset.Default()
	want := slices.Sorted(slices.Values(in))

	// merge sort writes through an auxiliary buffer so its snapshots may repeat values
	for _, alg := range []Algorithm{Bubble, Selection, Insertion, Quick, Heap} {
		tr, err := Run(alg, in)
		require.NoError(t, err)

		for i, s := range tr.Steps() {
			got := slices.Sorted(slices.Values(s.Array))
			require.Equal(t, want, got, "%s step %d", alg, i)
		}
	}
}

func TestHeapSortMarksEachExtraction(t *testing.T) {
	tr := HeapSort([]int{4, 1, 3, 2})

	var sorted []trace.Step
	for _, s := range tr.Steps() {
		if s.Kind == trace.KindSorted {
			sorted = append(sorted, s)
		}
	}

	require.Len(t, sorted, 3)

	for i, s := range sorted {
		assert.Equal(t, trace.Tail(4, i+1), s.Highlights.Get(trace.Sorted))
		assert.Equal(t, 4-i, s.Array[3-i], "extraction %d", i)
	}
}

func TestBubbleSortFirstSteps(t *testing.T) {
	tr := BubbleSort([]int{5, 3, 1})

	first := tr.At(0)
	assert.Equal(t, trace.KindCompare, first.Kind)
	assert.Equal(t, []int{0, 1}, first.Highlights.Get(trace.Comparing))
	assert.Equal(t, []int{5, 3, 1}, first.Array)

	second := tr.At(1)
	assert.Equal(t, trace.KindSwap, second.Kind)
	assert.Equal(t, []int{3, 5, 1}, second.Array)
	assert.Equal(t, []int{0, 1}, second.Highlights.Get(trace.Selected))
}

func TestQuadraticComparisonCounts(t *testing.T) {
	in := dataset.Default()
	n := len(in)

	for _, alg := range []Algorithm{Bubble, Selection} {
		tr, err := Run(alg, in)
		require.NoError(t, err)
		assert.Equal(t, n*(n-1)/2, tr.Last().Stats.Comparisons, alg)
	}
}

func TestInsertionSortCounts(t *testing.T) {
	sorted := InsertionSort([]int{1, 2, 3, 4, 5}).Last().Stats
	assert.Equal(t, 4, sorted.Comparisons)
	assert.Equal(t, 0, sorted.Swaps)

	reversed := InsertionSort([]int{5, 4, 3, 2, 1}).Last().Stats
	assert.Equal(t, 10, reversed.Comparisons)
	assert.Equal(t, 10, reversed.Swaps)
}

func TestMergeSortCounts(t *testing.T) {
	tr := MergeSort([]int{4, 3, 2, 1})

	assert.Equal(t, 4, tr.Last().Stats.Comparisons)
	assert.Equal(t, 0, tr.Last().Stats.Swaps)
	assert.Equal(t, 3, tr.Count(trace.KindDivide))
	assert.Equal(t, 8, tr.Count(trace.KindMove))
}

func TestQuickSortSkipsSelfSwaps(t *testing.T) {
	tr := QuickSort([]int{1, 2, 3})

	assert.Equal(t, 0, tr.Last().Stats.Swaps)
	assert.Equal(t, 3, tr.Last().Stats.Comparisons)
	assert.Equal(t, 2, tr.Count(trace.KindPivot))
}

func TestSingleElement(t *testing.T) {
	for _, alg := range Algorithms() {
		tr, err := Run(alg, []int{42})
		require.NoError(t, err)
		assert.Equal(t, 0, tr.Last().Stats.Comparisons, alg)
		assert.Equal(t, []int{42}, tr.Last().Array, alg)
	}
}

func TestRunErrors(t *testing.T) {
	_, err := Run(Bubble, nil)
	require.ErrorIs(t, err, dataset.ErrEmpty)

	_, err = Run("bogus", []int{1})
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"bubble", Bubble},
		{"bubbleSort", Bubble},
		{"bubble-sort", Bubble},
		{"heap_sort", Heap},
		{" Quick ", Quick},
		{"MergeSort", Merge},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := Parse("bogo")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestBubbleSortGolden(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "bubble_two", []byte(trace.Text(BubbleSort([]int{2, 1}))))
}

func permutations(in []int) [][]int {
	if len(in) <= 1 {
		return [][]int{slices.Clone(in)}
	}

	var out [][]int

	for i := range in {
		rest := slices.Concat(in[:i], in[i+1:])
		for _, p := range permutations(rest) {
			out = append(out, append([]int{in[i]}, p...))
		}
	}

	return out
}

func TestEveryPermutationSorts(t *testing.T) {
	multiset := []int{4, 1, 3, 1, 2}
	want := slices.Sorted(slices.Values(multiset))

	for _, alg := range Algorithms() {
		for _, p := range permutations(multiset) {
			tr, err := Run(alg, p)
			require.NoError(t, err)
			require.Equal(t, want, tr.Last().Array, "%s on %v", alg, p)
		}
	}
}
