// ABOUTME: Divide and conquer runners: quick sort (Lomuto) and top-down merge sort
// ABOUTME: Finalized positions accumulate in the sorted highlight as partitions resolve

package sorting

import (
	"fmt"
	"slices"

	"algoviz/trace"
)

// QuickSort partitions around the last element of each range
func QuickSort(input []int) trace.Trace {
	s := newSorter(Quick, input)
	q := &quick{sorter: s}

	q.sort(0, len(s.arr)-1)

	return s.done(Quick)
}

type quick struct {
	*sorter
	final []int
}

func (q *quick) settle(idx int) {
	q.final = append(q.final, idx)
	slices.Sort(q.final)
}

func (q *quick) sort(low, high int) {
	if low > high {
		return
	}

	if low == high {
		q.settle(low)
		q.record(trace.KindSorted, trace.Highlights{trace.Sorted: q.final},
			fmt.Sprintf("Element %d is in its final position", q.arr[low]))

		return
	}

	q.rec.Stats.Iterations++
	p := q.partition(low, high)
	q.sort(low, p-1)
	q.sort(p+1, high)
}

func (q *quick) partition(low, high int) int {
	pivot := q.arr[high]

	q.record(trace.KindPivot, trace.Highlights{
		trace.Pivot:  {high},
		trace.Range:  trace.Span(low, high),
		trace.Sorted: q.final,
	}, fmt.Sprintf("Pivot selected: %d", pivot))

	i := low - 1

	for j := low; j < high; j++ {
		q.compare(trace.Highlights{
			trace.Comparing: {j, high},
			trace.Pivot:     {high},
			trace.Sorted:    q.final,
		}, fmt.Sprintf("Comparing %d with pivot %d", q.arr[j], pivot))

		if q.arr[j] < pivot {
			i++

			if i != j {
				q.swap(i, j, trace.Highlights{
					trace.Selected: {i, j},
					trace.Pivot:    {high},
					trace.Sorted:   q.final,
				}, func() string {
					return fmt.Sprintf("Swapped %d and %d", q.arr[j], q.arr[i])
				})
			}
		}
	}

	p := i + 1
	if p != high {
		q.swap(p, high, trace.Highlights{
			trace.Selected: {p, high},
			trace.Pivot:    {p},
			trace.Sorted:   q.final,
		}, func() string {
			return fmt.Sprintf("Moved pivot %d into position %d", pivot, p)
		})
	}

	q.settle(p)
	q.record(trace.KindSorted, trace.Highlights{
		trace.Pivot:  {p},
		trace.Sorted: q.final,
	}, fmt.Sprintf("Pivot %d placed at correct position", pivot))

	return p
}

// MergeSort records each division, every merge comparison and every placement
func MergeSort(input []int) trace.Trace {
	s := newSorter(Merge, input)

	mergeSort(s, 0, len(s.arr)-1)

	return s.done(Merge)
}

func mergeSort(s *sorter, left, right int) {
	if left >= right {
		return
	}

	mid := left + (right-left)/2

	s.record(trace.KindDivide, trace.Highlights{trace.Range: trace.Span(left, right)},
		fmt.Sprintf("Dividing array from index %d to %d", left, right))

	mergeSort(s, left, mid)
	mergeSort(s, mid+1, right)
	merge(s, left, mid, right)
}

func merge(s *sorter, left, mid, right int) {
	s.rec.Stats.Iterations++

	s.record(trace.KindMerge, trace.Highlights{trace.Selected: trace.Span(left, right)},
		fmt.Sprintf("Merging subarrays [%d..%d] and [%d..%d]", left, mid, mid+1, right))

	lo := slices.Clone(s.arr[left : mid+1])
	hi := slices.Clone(s.arr[mid+1 : right+1])

	i, j, k := 0, 0, left

	place := func(v int) {
		s.arr[k] = v
		s.rec.Stats.Accesses++
		s.record(trace.KindMove, trace.Highlights{
			trace.Current: {k},
			trace.Range:   trace.Span(left, right),
		}, fmt.Sprintf("Placed %d at position %d", v, k))
		k++
	}

	for i < len(lo) && j < len(hi) {
		s.compare(trace.Highlights{
			trace.Current: {k},
			trace.Range:   trace.Span(left, right),
		}, fmt.Sprintf("Comparing %d and %d", lo[i], hi[j]))

		if lo[i] <= hi[j] {
			place(lo[i])
			i++
		} else {
			place(hi[j])
			j++
		}
	}

	for ; i < len(lo); i++ {
		place(lo[i])
	}

	for ; j < len(hi); j++ {
		place(hi[j])
	}

	s.record(trace.KindMerge, trace.Highlights{trace.Selected: trace.Span(left, right)},
		fmt.Sprintf("Merged positions %d to %d", left, right))
}
