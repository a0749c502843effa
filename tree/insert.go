// ABOUTME: Tree insert runner for BST, complete and generic placement
// ABOUTME: BST descends by value, complete fills level order, generic probes left first

package tree

import (
	"fmt"

	"algoviz/trace"
)

// Insert places value according to the tree type and returns the new tree.
// The input tree is not modified.
func Insert(t *Tree, value int) (*Tree, trace.Trace) {
	r := newRun(t, "insert")

	if r.t.root == nil {
		r.t.root = r.t.newNode(value)
		r.rec.Stats.Accesses++
		r.step(trace.KindInsert, trace.Highlights{
			trace.Found: {r.t.root.id},
			trace.Path:  {r.t.root.id},
		}, fmt.Sprintf("Inserted %d as root", value))

		return r.finish(value)
	}

	switch r.t.kind {
	case BST:
		r.insertBST(value)
	case Complete:
		r.insertComplete(value)
	default:
		r.insertGeneric(value)
	}

	return r.finish(value)
}

func (r *run) finish(value int) (*Tree, trace.Trace) {
	r.step(trace.KindDone, nil, fmt.Sprintf("Insertion of %d complete", value))

	return r.t, r.rec.Trace()
}

func (r *run) attach(parent *node, value int, left bool, path []int) {
	n := r.t.newNode(value)
	side := "right"

	if left {
		parent.left = n
		side = "left"
	} else {
		parent.right = n
	}

	r.rec.Stats.Accesses++
	r.step(trace.KindInsert, trace.Highlights{
		trace.Found: {n.id},
		trace.Path:  with(path, n.id),
	}, fmt.Sprintf("Inserted %d as %s child of %d", value, side, parent.value))
}

func (r *run) insertBST(value int) {
	var path []int

	cur := r.t.root
	for {
		path = with(path, cur.id)
		r.rec.Stats.Comparisons++
		r.rec.Stats.Accesses++

		r.step(trace.KindCompare, trace.Highlights{
			trace.Comparing: {cur.id},
			trace.Current:   {cur.id},
			trace.Path:      path,
		}, fmt.Sprintf("Comparing %d with %d", value, cur.value))

		switch {
		case value == cur.value:
			r.step(trace.KindFound, trace.Highlights{trace.Found: {cur.id}, trace.Path: path},
				fmt.Sprintf("%d already exists in the tree", value))

			return
		case value < cur.value:
			if cur.left == nil {
				r.attach(cur, value, true, path)

				return
			}

			r.step(trace.KindMove, trace.Highlights{trace.Current: {cur.left.id}, trace.Path: path},
				fmt.Sprintf("%d < %d, going left", value, cur.value))
			cur = cur.left
		default:
			if cur.right == nil {
				r.attach(cur, value, false, path)

				return
			}

			r.step(trace.KindMove, trace.Highlights{trace.Current: {cur.right.id}, trace.Path: path},
				fmt.Sprintf("%d > %d, going right", value, cur.value))
			cur = cur.right
		}
	}
}

func (r *run) insertComplete(value int) {
	var visited []int

	queue := []*node{r.t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		r.rec.Stats.Iterations++
		r.rec.Stats.Accesses++

		path := r.t.pathTo(cur.id)
		r.step(trace.KindVisit, trace.Highlights{
			trace.Current: {cur.id},
			trace.Visited: visited,
			trace.Path:    path,
		}, fmt.Sprintf("Checking node %d for an empty slot", cur.value))

		visited = with(visited, cur.id)

		switch {
		case cur.left == nil:
			r.attach(cur, value, true, path)

			return
		case cur.right == nil:
			r.attach(cur, value, false, path)

			return
		}

		queue = append(queue, cur.left, cur.right)
	}
}

func (r *run) insertGeneric(value int) {
	var path []int

	cur := r.t.root
	for {
		path = with(path, cur.id)
		r.rec.Stats.Iterations++
		r.rec.Stats.Accesses++

		r.step(trace.KindVisit, trace.Highlights{
			trace.Current: {cur.id},
			trace.Path:    path,
		}, fmt.Sprintf("Visiting node %d", cur.value))

		switch {
		case cur.left == nil:
			r.attach(cur, value, true, path)

			return
		case cur.right == nil:
			r.attach(cur, value, false, path)

			return
		}

		cur = cur.left
	}
}
