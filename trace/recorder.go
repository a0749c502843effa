// ABOUTME: Recorder collects steps while a runner executes
// ABOUTME: Runners bump the counters, the recorder stamps them and copies snapshots

package trace

import "slices"

// Recorder accumulates steps for a single runner invocation.
// It is not safe for concurrent use; each runner owns its recorder.
type Recorder struct {
	algorithm string
	steps     []Step

	// Stats is the running counter set; runners increment it directly
	Stats Stats
}

// NewRecorder creates a recorder for the named algorithm
func NewRecorder(algorithm string) *Recorder {
	return &Recorder{algorithm: algorithm}
}

// Record appends a step. Snapshots are copied and the current stats are stamped,
// so the caller may keep mutating its working structure.
func (r *Recorder) Record(s Step) {
	s = s.Clone()
	s.Stats = r.Stats

	if s.Weight == 0 {
		s.Weight = s.Kind.Weight()
	}

	r.steps = append(r.steps, s)
}

// Array records an array step
func (r *Recorder) Array(kind Kind, arr []int, hl Highlights, msg string) {
	r.Record(Step{Kind: kind, Array: arr, Highlights: hl, Message: msg})
}

// Len returns the number of steps recorded so far
func (r *Recorder) Len() int {
	return len(r.steps)
}

// Trace freezes the recorded steps into an immutable trace
func (r *Recorder) Trace() Trace {
	return Trace{algorithm: r.algorithm, steps: slices.Clip(r.steps)}
}

// Span returns the indices lo..hi inclusive, or nil when hi < lo
func Span(lo, hi int) []int {
	if hi < lo {
		return nil
	}

	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}

	return out
}

// Tail returns the last k indices of an n element array, highest first
func Tail(n, k int) []int {
	if k <= 0 {
		return nil
	}

	out := make([]int, 0, k)
	for i := range k {
		out = append(out, n-1-i)
	}

	return out
}
