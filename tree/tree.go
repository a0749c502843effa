// ABOUTME: Binary tree entity model with stable per-tree node ids
// ABOUTME: Runners mutate a clone and hand back the new tree alongside the trace

// Package tree implements the binary tree entity and its step-recording runners.
package tree

import (
	"errors"
	"fmt"
	"strings"

	"algoviz/trace"
)

// Type selects how values are placed in the tree
type Type string

// Tree types
const (
	Generic  Type = "generic"
	BST      Type = "bst"
	Complete Type = "complete"
)

// Tree errors
var (
	ErrUnknownType  = errors.New("unknown tree type")
	ErrUnknownOrder = errors.New("unknown traversal order")
	ErrNotBST       = errors.New("operation requires a binary search tree")
)

// Types returns the supported tree types
func Types() []Type {
	return []Type{Generic, BST, Complete}
}

// Name returns the display name
func (t Type) Name() string {
	switch t {
	case Generic:
		return "Binary Tree"
	case BST:
		return "Binary Search Tree"
	case Complete:
		return "Complete Binary Tree"
	default:
		return string(t)
	}
}

// ParseType accepts "generic", "binary", "bst" or "complete"
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic", "binary":
		return Generic, nil
	case "bst":
		return BST, nil
	case "complete":
		return Complete, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

type node struct {
	id    int
	value int
	left  *node
	right *node
}

func (n *node) clone() *node {
	if n == nil {
		return nil
	}

	return &node{id: n.id, value: n.value, left: n.left.clone(), right: n.right.clone()}
}

func (n *node) snapshot() *trace.Node {
	if n == nil {
		return nil
	}

	return &trace.Node{ID: n.id, Value: n.value, Left: n.left.snapshot(), Right: n.right.snapshot()}
}

// Tree is a binary tree whose node ids come from a monotonic counter and
// are never reused, even across clones
type Tree struct {
	kind   Type
	root   *node
	nextID int
}

// New returns an empty tree of the given type
func New(kind Type) *Tree {
	return &Tree{kind: kind, nextID: 1}
}

// Sample returns the starter tree: a balanced BST of [50,30,70,20,40,60,80]
// for BST, otherwise [1..7] in level order
func Sample(kind Type) *Tree {
	t := New(kind)

	values := []int{1, 2, 3, 4, 5, 6, 7}
	if kind == BST {
		values = []int{50, 30, 70, 20, 40, 60, 80}
	}

	for _, v := range values {
		if kind == BST {
			t.placeBST(v)
		} else {
			t.placeLevelOrder(v)
		}
	}

	return t
}

// FromValues builds a tree by inserting values in order without recording
func FromValues(kind Type, values []int) *Tree {
	t := New(kind)

	for _, v := range values {
		switch kind {
		case BST:
			t.placeBST(v)
		case Complete:
			t.placeLevelOrder(v)
		default:
			t.placeGeneric(v)
		}
	}

	return t
}

// Type returns the tree type
func (t *Tree) Type() Type {
	return t.kind
}

// Empty reports whether the tree has no nodes
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Clone returns a deep copy that keeps the id counter
func (t *Tree) Clone() *Tree {
	return &Tree{kind: t.kind, root: t.root.clone(), nextID: t.nextID}
}

// Snapshot returns an immutable copy of the current structure
func (t *Tree) Snapshot() *trace.Node {
	return t.root.snapshot()
}

// Values returns the node values in level order
func (t *Tree) Values() []int {
	var out []int

	t.levelOrder(func(n *node) bool {
		out = append(out, n.value)

		return true
	})

	return out
}

// Count returns the number of nodes
func (t *Tree) Count() int {
	return len(t.Values())
}

// Height returns the number of levels; an empty tree has height 0
func (t *Tree) Height() int {
	var height func(*node) int

	height = func(n *node) int {
		if n == nil {
			return 0
		}

		return 1 + max(height(n.left), height(n.right))
	}

	return height(t.root)
}

// Contains reports whether any node holds value
func (t *Tree) Contains(value int) bool {
	found := false

	t.levelOrder(func(n *node) bool {
		found = n.value == value

		return !found
	})

	return found
}

func (t *Tree) newNode(value int) *node {
	n := &node{id: t.nextID, value: value}
	t.nextID++

	return n
}

// levelOrder calls fn for every node breadth first until fn returns false
func (t *Tree) levelOrder(fn func(*node) bool) {
	if t.root == nil {
		return
	}

	queue := []*node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if !fn(n) {
			return
		}

		if n.left != nil {
			queue = append(queue, n.left)
		}

		if n.right != nil {
			queue = append(queue, n.right)
		}
	}
}

// pathTo returns the ids from the root down to id, or nil when absent
func (t *Tree) pathTo(id int) []int {
	var walk func(*node, []int) []int

	walk = func(n *node, prefix []int) []int {
		if n == nil {
			return nil
		}

		p := append(prefix[:len(prefix):len(prefix)], n.id)
		if n.id == id {
			return p
		}

		if found := walk(n.left, p); found != nil {
			return found
		}

		return walk(n.right, p)
	}

	return walk(t.root, nil)
}

func (t *Tree) placeBST(value int) {
	if t.root == nil {
		t.root = t.newNode(value)

		return
	}

	cur := t.root
	for {
		switch {
		case value == cur.value:
			return
		case value < cur.value:
			if cur.left == nil {
				cur.left = t.newNode(value)

				return
			}

			cur = cur.left
		default:
			if cur.right == nil {
				cur.right = t.newNode(value)

				return
			}

			cur = cur.right
		}
	}
}

func (t *Tree) placeLevelOrder(value int) {
	if t.root == nil {
		t.root = t.newNode(value)

		return
	}

	t.levelOrder(func(n *node) bool {
		switch {
		case n.left == nil:
			n.left = t.newNode(value)
		case n.right == nil:
			n.right = t.newNode(value)
		default:
			return true
		}

		return false
	})
}

func (t *Tree) placeGeneric(value int) {
	if t.root == nil {
		t.root = t.newNode(value)

		return
	}

	cur := t.root
	for {
		switch {
		case cur.left == nil:
			cur.left = t.newNode(value)

			return
		case cur.right == nil:
			cur.right = t.newNode(value)

			return
		default:
			cur = cur.left
		}
	}
}

// run is the working state of one runner invocation
type run struct {
	t   *Tree
	rec *trace.Recorder
}

func newRun(t *Tree, op string) *run {
	return &run{t: t.Clone(), rec: trace.NewRecorder(string(t.kind) + "-" + op)}
}

func (r *run) step(kind trace.Kind, hl trace.Highlights, msg string) {
	r.rec.Record(trace.Step{Kind: kind, Tree: r.t.Snapshot(), Highlights: hl, Message: msg})
}

func (r *run) result(kind trace.Kind, hl trace.Highlights, msg string, res trace.Result) {
	r.rec.Record(trace.Step{Kind: kind, Tree: r.t.Snapshot(), Highlights: hl, Message: msg, Result: &res})
}

// with returns a copy of path extended by id
func with(path []int, id int) []int {
	out := make([]int, len(path), len(path)+1)
	copy(out, path)

	return append(out, id)
}
