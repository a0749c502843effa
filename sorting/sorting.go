// ABOUTME: Sorting runner registry and shared step helpers
// ABOUTME: Maps algorithm ids to runners that record one step per comparison and swap

// Package sorting implements step-recording sorting runners.
package sorting

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"algoviz/dataset"
	"algoviz/trace"
)

// Algorithm identifies a sorting runner
type Algorithm string

// Supported sorting algorithms
const (
	Bubble    Algorithm = "bubble"
	Selection Algorithm = "selection"
	Insertion Algorithm = "insertion"
	Quick     Algorithm = "quick"
	Merge     Algorithm = "merge"
	Heap      Algorithm = "heap"
)

// ErrUnknownAlgorithm is returned for an unrecognized algorithm id
var ErrUnknownAlgorithm = errors.New("unknown sorting algorithm")

var runners = map[Algorithm]func([]int) trace.Trace{
	Bubble:    BubbleSort,
	Selection: SelectionSort,
	Insertion: InsertionSort,
	Quick:     QuickSort,
	Merge:     MergeSort,
	Heap:      HeapSort,
}

var names = map[Algorithm]string{
	Bubble:    "Bubble Sort",
	Selection: "Selection Sort",
	Insertion: "Insertion Sort",
	Quick:     "Quick Sort",
	Merge:     "Merge Sort",
	Heap:      "Heap Sort",
}

// Algorithms returns every supported algorithm in display order
func Algorithms() []Algorithm {
	return []Algorithm{Bubble, Selection, Insertion, Quick, Merge, Heap}
}

// Name returns the display name
func (a Algorithm) Name() string {
	if n, ok := names[a]; ok {
		return n
	}

	return string(a)
}

// Parse accepts ids like "bubble", "bubbleSort" or "bubble-sort"
func Parse(s string) (Algorithm, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	id = strings.TrimSuffix(strings.TrimSuffix(id, "sort"), "-")
	id = strings.TrimSuffix(id, "_")

	a := Algorithm(id)
	if _, ok := runners[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}

	return a, nil
}

// Run executes the algorithm over a private copy of input
func Run(a Algorithm, input []int) (trace.Trace, error) {
	fn, ok := runners[a]
	if !ok {
		return trace.Trace{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
	}

	if len(input) == 0 {
		return trace.Trace{}, dataset.ErrEmpty
	}

	return fn(input), nil
}

// sorter bundles the working copy with its recorder
type sorter struct {
	rec *trace.Recorder
	arr []int
}

func newSorter(a Algorithm, input []int) *sorter {
	return &sorter{
		rec: trace.NewRecorder(string(a)),
		arr: slices.Clone(input),
	}
}

// compare counts one comparison of two elements and records it
func (s *sorter) compare(hl trace.Highlights, msg string) {
	s.rec.Stats.Comparisons++
	s.rec.Stats.Accesses += 2
	s.rec.Array(trace.KindCompare, s.arr, hl, msg)
}

// swap exchanges two elements, counts it and records the result
func (s *sorter) swap(i, j int, hl trace.Highlights, msg func() string) {
	s.arr[i], s.arr[j] = s.arr[j], s.arr[i]
	s.rec.Stats.Swaps++
	s.rec.Stats.Accesses += 2
	s.rec.Array(trace.KindSwap, s.arr, hl, msg())
}

func (s *sorter) record(kind trace.Kind, hl trace.Highlights, msg string) {
	s.rec.Array(kind, s.arr, hl, msg)
}

// done records the terminal step with every index sorted
func (s *sorter) done(a Algorithm) trace.Trace {
	s.record(trace.KindDone, trace.Highlights{trace.Sorted: trace.Span(0, len(s.arr)-1)},
		a.Name()+" completed!")

	return s.rec.Trace()
}
