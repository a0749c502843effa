// ABOUTME: Step and Trace types shared by every algorithm runner
// ABOUTME: Snapshots are value copies so a recorded step can never be changed later

// Package trace defines the immutable step records produced by algorithm runners.
package trace

import "slices"

// Kind identifies what happened in a step
type Kind string

// Step kinds recorded by the runners
const (
	KindInit     Kind = "init"
	KindCompare  Kind = "compare"
	KindSwap     Kind = "swap"
	KindMove     Kind = "move"
	KindSelect   Kind = "select"
	KindPivot    Kind = "pivot"
	KindDivide   Kind = "divide"
	KindMerge    Kind = "merge"
	KindSorted   Kind = "sorted"
	KindExamine  Kind = "examine"
	KindNarrow   Kind = "narrow"
	KindVisit    Kind = "visit"
	KindProcess  Kind = "process"
	KindEnqueue  Kind = "enqueue"
	KindDequeue  Kind = "dequeue"
	KindPush     Kind = "push"
	KindInsert   Kind = "insert"
	KindDelete   Kind = "delete"
	KindReplace  Kind = "replace"
	KindFound    Kind = "found"
	KindNotFound Kind = "notfound"
	KindStage    Kind = "stage"
	KindDone     Kind = "done"
)

// Highlight names a set of indices or node ids relevant to a step
type Highlight string

// Highlight set names
const (
	Comparing Highlight = "comparing"
	Selected  Highlight = "selected"
	Sorted    Highlight = "sorted"
	Pivot     Highlight = "pivot"
	Min       Highlight = "min"
	Current   Highlight = "current"
	Visited   Highlight = "visited"
	Found     Highlight = "found"
	Path      Highlight = "path"
	Left      Highlight = "left"
	Right     Highlight = "right"
	Mid       Highlight = "mid"
	Range     Highlight = "range"
)

// Highlights maps a highlight name to array indices or tree node ids
type Highlights map[Highlight][]int

// Get returns the set for name, or nil when absent
func (h Highlights) Get(name Highlight) []int {
	return h[name]
}

// Has reports whether id is a member of the named set
func (h Highlights) Has(name Highlight, id int) bool {
	return slices.Contains(h[name], id)
}

// Clone returns a deep copy with empty sets dropped
func (h Highlights) Clone() Highlights {
	if len(h) == 0 {
		return nil
	}

	out := make(Highlights, len(h))
	for name, ids := range h {
		if len(ids) == 0 {
			continue
		}

		out[name] = slices.Clone(ids)
	}

	return out
}

// Stats holds running counters valid as of a step
type Stats struct {
	Comparisons int `json:"comparisons" yaml:"comparisons"`
	Swaps       int `json:"swaps" yaml:"swaps"`
	Accesses    int `json:"accesses" yaml:"accesses"`
	Iterations  int `json:"iterations" yaml:"iterations"`
}

// AtLeast reports whether every counter in s is >= the matching counter in prev
func (s Stats) AtLeast(prev Stats) bool {
	return s.Comparisons >= prev.Comparisons &&
		s.Swaps >= prev.Swaps &&
		s.Accesses >= prev.Accesses &&
		s.Iterations >= prev.Iterations
}

// Result is the outcome payload carried by terminal search steps
type Result struct {
	Found bool `json:"found" yaml:"found"`
	Index int  `json:"index" yaml:"index"`
}

// Node is an immutable copy of a tree node taken at record time
type Node struct {
	ID    int   `json:"id" yaml:"id"`
	Value int   `json:"value" yaml:"value"`
	Left  *Node `json:"left,omitempty" yaml:"left,omitempty"`
	Right *Node `json:"right,omitempty" yaml:"right,omitempty"`
}

// Clone deep-copies the subtree rooted at n
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	return &Node{
		ID:    n.ID,
		Value: n.Value,
		Left:  n.Left.Clone(),
		Right: n.Right.Clone(),
	}
}

// Find returns the node with the given id, or nil
func (n *Node) Find(id int) *Node {
	if n == nil {
		return nil
	}

	if n.ID == id {
		return n
	}

	if found := n.Left.Find(id); found != nil {
		return found
	}

	return n.Right.Find(id)
}

// Step is one recorded instant of an algorithm's progress
type Step struct {
	Kind       Kind       `json:"kind" yaml:"kind"`
	Array      []int      `json:"array,omitempty" yaml:"array,omitempty"`
	Tree       *Node      `json:"tree,omitempty" yaml:"tree,omitempty"`
	Highlights Highlights `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Message    string     `json:"message" yaml:"message"`
	Stats      Stats      `json:"stats" yaml:"stats"`
	Result     *Result    `json:"result,omitempty" yaml:"result,omitempty"`
	Weight     float64    `json:"weight" yaml:"weight"`
}

// Clone returns a copy that shares no memory with s
func (s Step) Clone() Step {
	out := s
	out.Array = slices.Clone(s.Array)
	out.Tree = s.Tree.Clone()
	out.Highlights = s.Highlights.Clone()

	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}

	return out
}

// Terminal reports whether the step carries a final outcome
func (s Step) Terminal() bool {
	return s.Result != nil || s.Kind == KindDone
}

// Trace is the ordered, immutable list of steps from one runner invocation
type Trace struct {
	algorithm string
	steps     []Step
}

// New builds a trace from recorded steps; the steps are copied
func New(algorithm string, steps []Step) Trace {
	owned := make([]Step, len(steps))
	for i, s := range steps {
		owned[i] = s.Clone()
	}

	return Trace{algorithm: algorithm, steps: owned}
}

// Algorithm returns the id of the runner that produced the trace
func (t Trace) Algorithm() string {
	return t.algorithm
}

// Len returns the number of steps
func (t Trace) Len() int {
	return len(t.steps)
}

// Empty reports whether the trace has no steps
func (t Trace) Empty() bool {
	return len(t.steps) == 0
}

// At returns a copy of step i
func (t Trace) At(i int) Step {
	return t.steps[i].Clone()
}

// First returns a copy of the first step
func (t Trace) First() Step {
	return t.At(0)
}

// Last returns a copy of the final step
func (t Trace) Last() Step {
	return t.At(len(t.steps) - 1)
}

// Steps returns copies of all steps
func (t Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	for i := range t.steps {
		out[i] = t.steps[i].Clone()
	}

	return out
}

// Count returns how many steps have the given kind
func (t Trace) Count(kind Kind) int {
	n := 0

	for i := range t.steps {
		if t.steps[i].Kind == kind {
			n++
		}
	}

	return n
}
