// ABOUTME: Heap sort runner: builds a max heap then extracts the maximum repeatedly
// ABOUTME: Every child comparison during heapify is counted and recorded

package sorting

import (
	"fmt"

	"algoviz/trace"
)

// HeapSort records heap construction and extraction
func HeapSort(input []int) trace.Trace {
	s := newSorter(Heap, input)
	n := len(s.arr)

	if n > 1 {
		s.record(trace.KindInit, trace.Highlights{trace.Range: trace.Span(0, n-1)},
			"Building max heap")
	}

	for i := n/2 - 1; i >= 0; i-- {
		heapify(s, n, i, 0)
	}

	for i := n - 1; i > 0; i-- {
		s.rec.Stats.Iterations++

		s.swap(0, i, trace.Highlights{
			trace.Selected: {0, i},
			trace.Sorted:   trace.Tail(n, n-i),
		}, func() string {
			return fmt.Sprintf("Moved largest element %d to position %d", s.arr[i], i)
		})

		heapify(s, i, 0, n-i)

		s.record(trace.KindSorted, trace.Highlights{trace.Sorted: trace.Tail(n, n-i)},
			fmt.Sprintf("Element %d is in its final position", s.arr[i]))
	}

	return s.done(Heap)
}

// heapify sifts index i down within the first size elements; settled is the
// count of finished positions at the end of the array
func heapify(s *sorter, size, i, settled int) {
	n := len(s.arr)

	for {
		largest := i
		l, r := 2*i+1, 2*i+2

		if l < size {
			s.compare(trace.Highlights{
				trace.Comparing: {l, largest},
				trace.Sorted:    trace.Tail(n, settled),
			}, fmt.Sprintf("Comparing %d with %d", s.arr[l], s.arr[largest]))

			if s.arr[l] > s.arr[largest] {
				largest = l
			}
		}

		if r < size {
			s.compare(trace.Highlights{
				trace.Comparing: {r, largest},
				trace.Sorted:    trace.Tail(n, settled),
			}, fmt.Sprintf("Comparing %d with %d", s.arr[r], s.arr[largest]))

			if s.arr[r] > s.arr[largest] {
				largest = r
			}
		}

		if largest == i {
			return
		}

		s.swap(i, largest, trace.Highlights{
			trace.Selected: {i, largest},
			trace.Sorted:   trace.Tail(n, settled),
		}, func() string {
			return fmt.Sprintf("Swapped %d and %d to restore heap", s.arr[largest], s.arr[i])
		})

		i = largest
	}
}
