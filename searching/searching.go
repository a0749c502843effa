// ABOUTME: Linear and binary search runners
// ABOUTME: Terminal steps carry the found flag and index; binary search assumes sorted input

// Package searching implements step-recording search runners.
package searching

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"algoviz/dataset"
	"algoviz/trace"
)

// Algorithm identifies a search runner
type Algorithm string

// Supported search algorithms
const (
	Linear Algorithm = "linear"
	Binary Algorithm = "binary"
)

// ErrUnknownAlgorithm is returned for an unrecognized algorithm id
var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// Algorithms returns the supported algorithms
func Algorithms() []Algorithm {
	return []Algorithm{Linear, Binary}
}

// Name returns the display name
func (a Algorithm) Name() string {
	switch a {
	case Linear:
		return "Linear Search"
	case Binary:
		return "Binary Search"
	default:
		return string(a)
	}
}

// Parse accepts ids like "linear", "linearSearch" or "binary-search"
func Parse(s string) (Algorithm, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	id = strings.TrimRight(strings.TrimSuffix(id, "search"), "-_")

	switch a := Algorithm(id); a {
	case Linear, Binary:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// Run searches a private copy of input for target.
// Binary search on unsorted input runs unchanged and may report not found.
func Run(a Algorithm, input []int, target int) (trace.Trace, error) {
	if len(input) == 0 {
		return trace.Trace{}, dataset.ErrEmpty
	}

	switch a {
	case Linear:
		return LinearSearch(input, target), nil
	case Binary:
		return BinarySearch(input, target), nil
	default:
		return trace.Trace{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
	}
}

// LinearSearch examines each element from the left
func LinearSearch(input []int, target int) trace.Trace {
	arr := slices.Clone(input)
	rec := trace.NewRecorder(string(Linear))

	for i, v := range arr {
		rec.Stats.Comparisons++
		rec.Stats.Accesses++
		rec.Stats.Iterations++

		rec.Array(trace.KindExamine, arr, trace.Highlights{
			trace.Current: {i},
			trace.Visited: trace.Span(0, i-1),
		}, fmt.Sprintf("Checking index %d: %d", i, v))

		if v == target {
			rec.Record(trace.Step{
				Kind:       trace.KindFound,
				Array:      arr,
				Highlights: trace.Highlights{trace.Found: {i}, trace.Visited: trace.Span(0, i-1)},
				Message:    fmt.Sprintf("Found %d at index %d", target, i),
				Result:     &trace.Result{Found: true, Index: i},
			})

			return rec.Trace()
		}
	}

	rec.Record(trace.Step{
		Kind:       trace.KindNotFound,
		Array:      arr,
		Highlights: trace.Highlights{trace.Visited: trace.Span(0, len(arr)-1)},
		Message:    fmt.Sprintf("%d not found in array", target),
		Result:     &trace.Result{Found: false, Index: -1},
	})

	return rec.Trace()
}

// BinarySearch halves the [left, right] range around each midpoint
func BinarySearch(input []int, target int) trace.Trace {
	arr := slices.Clone(input)
	rec := trace.NewRecorder(string(Binary))

	left, right := 0, len(arr)-1

	rec.Array(trace.KindInit, arr, bounds(left, right, -1),
		fmt.Sprintf("Searching for %d between index %d and %d", target, left, right))

	for left <= right {
		rec.Stats.Iterations++
		rec.Stats.Comparisons++
		rec.Stats.Accesses++

		mid := left + (right-left)/2

		rec.Array(trace.KindExamine, arr, bounds(left, right, mid),
			fmt.Sprintf("Checking middle element at index %d: %d", mid, arr[mid]))

		if arr[mid] == target {
			rec.Record(trace.Step{
				Kind:       trace.KindFound,
				Array:      arr,
				Highlights: trace.Highlights{trace.Found: {mid}, trace.Mid: {mid}},
				Message:    fmt.Sprintf("Found %d at index %d", target, mid),
				Result:     &trace.Result{Found: true, Index: mid},
			})

			return rec.Trace()
		}

		var msg string
		if arr[mid] < target {
			left = mid + 1
			msg = fmt.Sprintf("%d > %d, searching right half", target, arr[mid])
		} else {
			right = mid - 1
			msg = fmt.Sprintf("%d < %d, searching left half", target, arr[mid])
		}

		rec.Array(trace.KindNarrow, arr, bounds(left, right, -1), msg)
	}

	rec.Record(trace.Step{
		Kind:    trace.KindNotFound,
		Array:   arr,
		Message: fmt.Sprintf("%d not found in array", target),
		Result:  &trace.Result{Found: false, Index: -1},
	})

	return rec.Trace()
}

// bounds builds the left/right/mid/range highlight set; mid < 0 omits it
func bounds(left, right, mid int) trace.Highlights {
	hl := trace.Highlights{trace.Range: trace.Span(left, right)}

	if left <= right {
		hl[trace.Left] = []int{left}
		hl[trace.Right] = []int{right}
	}

	if mid >= 0 {
		hl[trace.Mid] = []int{mid}
	}

	return hl
}
