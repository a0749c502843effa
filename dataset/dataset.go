// ABOUTME: Array entity model: defaults, generation, insert and delete
// ABOUTME: Every operation returns a fresh slice and never touches the caller's array

// Package dataset owns the working arrays that sorting and searching runners consume.
package dataset

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Array size bounds accepted by Generate
const (
	MinSize = 5
	MaxSize = 20
)

// Default returns the initial array shown by the sorting visualizer
func Default() []int {
	return []int{45, 23, 67, 12, 89, 34, 78, 91, 56, 29}
}

// DefaultSorted returns the initial sorted array shown by the search visualizer
func DefaultSorted() []int {
	return []int{12, 23, 34, 45, 56, 67, 78, 89, 91, 100}
}

// ClampSize limits size to [MinSize, MaxSize]
func ClampSize(size int) int {
	return min(max(size, MinSize), MaxSize)
}

// Generate returns size random values in 1..100, size clamped to the supported range
func Generate(size int, rng *rand.Rand) []int {
	size = ClampSize(size)

	out := make([]int, size)
	for i := range out {
		out[i] = rng.IntN(100) + 1
	}

	return out
}

// GenerateSorted returns a non-decreasing array suitable for binary search
func GenerateSorted(size int, rng *rand.Rand) []int {
	size = ClampSize(size)

	out := make([]int, size)
	for i := range out {
		out[i] = (i + 1) * (rng.IntN(10) + 1)
	}

	slices.Sort(out)

	return out
}

// Insert returns a copy of arr with value placed at index (0..len(arr))
func Insert(arr []int, index, value int) ([]int, error) {
	if index < 0 || index > len(arr) {
		return nil, fmt.Errorf("%w: index must be between 0 and %d", ErrIndexOutOfRange, len(arr))
	}

	out := make([]int, 0, len(arr)+1)
	out = append(out, arr[:index]...)
	out = append(out, value)
	out = append(out, arr[index:]...)

	return out, nil
}

// Delete returns a copy of arr without the element at index, plus the removed value
func Delete(arr []int, index int) ([]int, int, error) {
	if index < 0 || index >= len(arr) {
		return nil, 0, fmt.Errorf("%w: index must be between 0 and %d", ErrIndexOutOfRange, len(arr)-1)
	}

	out := slices.Delete(slices.Clone(arr), index, index+1)

	return out, arr[index], nil
}

// IsSorted reports whether arr is non-decreasing
func IsSorted(arr []int) bool {
	return slices.IsSorted(arr)
}
