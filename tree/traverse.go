// ABOUTME: Tree traversal runners: inorder, preorder, postorder, breadth first and depth first
// ABOUTME: Each returns the processed values in order alongside the trace

package tree

import (
	"fmt"
	"strconv"
	"strings"

	"algoviz/dataset"
	"algoviz/trace"
)

// Order is a traversal order
type Order string

// Traversal orders
const (
	Inorder   Order = "inorder"
	Preorder  Order = "preorder"
	Postorder Order = "postorder"
	BFS       Order = "bfs"
	DFS       Order = "dfs"
)

// Orders returns every traversal order
func Orders() []Order {
	return []Order{Inorder, Preorder, Postorder, BFS, DFS}
}

// ParseOrder accepts the order ids case insensitively
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Orders() {
		if o == known {
			return o, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

type walker struct {
	*run
	order   []int
	visited []int
}

// Traverse walks the tree in the given order. The structure is unchanged.
func Traverse(t *Tree, o Order) (trace.Trace, []int, error) {
	if t.Empty() {
		return trace.Trace{}, nil, dataset.ErrEmpty
	}

	w := &walker{run: newRun(t, string(o))}

	switch o {
	case Inorder, Preorder, Postorder:
		w.recurse(w.t.root, o, nil)
	case BFS:
		w.breadthFirst()
	case DFS:
		w.depthFirst()
	default:
		return trace.Trace{}, nil, fmt.Errorf("%w: %q", ErrUnknownOrder, o)
	}

	parts := make([]string, len(w.order))
	for i, v := range w.order {
		parts[i] = strconv.Itoa(v)
	}

	w.step(trace.KindDone, trace.Highlights{trace.Visited: w.visited},
		fmt.Sprintf("%s traversal: %s", strings.ToUpper(string(o)[:1])+string(o)[1:], strings.Join(parts, ", ")))

	return w.rec.Trace(), w.order, nil
}

func (w *walker) visit(n *node, path []int) {
	w.rec.Stats.Accesses++
	w.step(trace.KindVisit, trace.Highlights{
		trace.Current: {n.id},
		trace.Visited: w.visited,
		trace.Path:    path,
	}, fmt.Sprintf("Visiting node %d", n.value))
}

func (w *walker) process(n *node, path []int) {
	w.rec.Stats.Accesses++
	w.rec.Stats.Iterations++
	w.order = append(w.order, n.value)
	w.visited = with(w.visited, n.id)

	w.step(trace.KindProcess, trace.Highlights{
		trace.Found:   {n.id},
		trace.Visited: w.visited,
		trace.Path:    path,
	}, fmt.Sprintf("Processing node %d", n.value))
}

func (w *walker) recurse(n *node, o Order, path []int) {
	if n == nil {
		return
	}

	path = with(path, n.id)

	switch o {
	case Preorder:
		w.visit(n, path)
		w.process(n, path)
		w.recurse(n.left, o, path)
		w.recurse(n.right, o, path)
	case Inorder:
		w.visit(n, path)
		w.recurse(n.left, o, path)
		w.process(n, path)
		w.recurse(n.right, o, path)
	case Postorder:
		w.visit(n, path)
		w.recurse(n.left, o, path)
		w.recurse(n.right, o, path)
		w.process(n, path)
	}
}

func (w *walker) breadthFirst() {
	queue := []*node{w.t.root}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		w.process(n, w.t.pathTo(n.id))

		for _, child := range []*node{n.left, n.right} {
			if child == nil {
				continue
			}

			queue = append(queue, child)
			w.step(trace.KindEnqueue, trace.Highlights{
				trace.Current: {child.id},
				trace.Visited: w.visited,
			}, fmt.Sprintf("Enqueued %d", child.value))
		}
	}
}

func (w *walker) depthFirst() {
	stack := []*node{w.t.root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		w.process(n, w.t.pathTo(n.id))

		for _, child := range []*node{n.right, n.left} {
			if child == nil {
				continue
			}

			stack = append(stack, child)
			w.step(trace.KindPush, trace.Highlights{
				trace.Current: {child.id},
				trace.Visited: w.visited,
			}, fmt.Sprintf("Pushed %d onto the stack", child.value))
		}
	}
}
