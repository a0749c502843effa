// ABOUTME: Quadratic sorting runners: bubble, selection and insertion
// ABOUTME: Each records compare and swap steps with the sorted region highlighted

package sorting

import (
	"fmt"

	"algoviz/trace"
)

// BubbleSort records adjacent comparisons pass by pass
func BubbleSort(input []int) trace.Trace {
	s := newSorter(Bubble, input)
	n := len(s.arr)

	for i := 0; i < n-1; i++ {
		s.rec.Stats.Iterations++

		for j := 0; j < n-i-1; j++ {
			s.compare(trace.Highlights{
				trace.Comparing: {j, j + 1},
				trace.Sorted:    trace.Tail(n, i),
			}, fmt.Sprintf("Comparing %d and %d", s.arr[j], s.arr[j+1]))

			if s.arr[j] > s.arr[j+1] {
				s.swap(j, j+1, trace.Highlights{
					trace.Selected: {j, j + 1},
					trace.Sorted:   trace.Tail(n, i),
				}, func() string {
					return fmt.Sprintf("Swapped %d and %d", s.arr[j+1], s.arr[j])
				})
			}
		}

		s.record(trace.KindSorted, trace.Highlights{trace.Sorted: trace.Tail(n, i+1)},
			fmt.Sprintf("Element %d is in its final position", s.arr[n-i-1]))
	}

	return s.done(Bubble)
}

// SelectionSort records the minimum search of every pass
func SelectionSort(input []int) trace.Trace {
	s := newSorter(Selection, input)
	n := len(s.arr)

	for i := 0; i < n-1; i++ {
		s.rec.Stats.Iterations++
		minIdx := i
		sorted := trace.Span(0, i-1)

		s.record(trace.KindSelect, trace.Highlights{
			trace.Selected: {i},
			trace.Min:      {i},
			trace.Sorted:   sorted,
		}, fmt.Sprintf("Finding minimum element from position %d", i))

		for j := i + 1; j < n; j++ {
			s.compare(trace.Highlights{
				trace.Comparing: {minIdx, j},
				trace.Min:       {minIdx},
				trace.Sorted:    sorted,
			}, fmt.Sprintf("Comparing %d with current minimum %d", s.arr[j], s.arr[minIdx]))

			if s.arr[j] < s.arr[minIdx] {
				minIdx = j
				s.record(trace.KindSelect, trace.Highlights{
					trace.Min:    {minIdx},
					trace.Sorted: sorted,
				}, fmt.Sprintf("New minimum found: %d", s.arr[minIdx]))
			}
		}

		if minIdx != i {
			s.swap(i, minIdx, trace.Highlights{
				trace.Selected: {i, minIdx},
				trace.Sorted:   sorted,
			}, func() string {
				return fmt.Sprintf("Swapped %d to position %d", s.arr[i], i)
			})
		}

		s.record(trace.KindSorted, trace.Highlights{trace.Sorted: trace.Span(0, i)},
			fmt.Sprintf("Position %d is now sorted", i))
	}

	return s.done(Selection)
}

// InsertionSort sinks each key into the sorted prefix with adjacent swaps,
// so every snapshot stays a permutation of the input
func InsertionSort(input []int) trace.Trace {
	s := newSorter(Insertion, input)
	n := len(s.arr)

	s.record(trace.KindSorted, trace.Highlights{trace.Sorted: {0}},
		"First element is considered sorted")

	for i := 1; i < n; i++ {
		s.rec.Stats.Iterations++
		key := s.arr[i]

		s.record(trace.KindSelect, trace.Highlights{
			trace.Selected: {i},
			trace.Sorted:   trace.Span(0, i-1),
		}, fmt.Sprintf("Inserting %d into sorted portion", key))

		j := i
		for j > 0 {
			s.compare(trace.Highlights{
				trace.Comparing: {j - 1, j},
				trace.Sorted:    trace.Span(0, i-1),
			}, fmt.Sprintf("Comparing %d with %d", s.arr[j-1], key))

			if s.arr[j-1] <= key {
				break
			}

			s.swap(j-1, j, trace.Highlights{
				trace.Selected: {j - 1, j},
				trace.Sorted:   trace.Span(0, i-1),
			}, func() string {
				return fmt.Sprintf("Moving %d to the right", s.arr[j])
			})

			j--
		}

		s.record(trace.KindSorted, trace.Highlights{
			trace.Selected: {j},
			trace.Sorted:   trace.Span(0, i),
		}, fmt.Sprintf("%d inserted at position %d", key, j))
	}

	return s.done(Insertion)
}
