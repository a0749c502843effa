// ABOUTME: Tree search, find-min and find-max runners
// ABOUTME: Results report the matched node id as the index, or -1 when absent

package tree

import (
	"fmt"

	"algoviz/dataset"
	"algoviz/trace"
)

// Search looks for value: BST descends by ordering, other types probe left
// then right subtrees in preorder
func Search(t *Tree, value int) (trace.Trace, error) {
	if t.Empty() {
		return trace.Trace{}, dataset.ErrEmpty
	}

	r := newRun(t, "search")

	var hit *node
	if t.kind == BST {
		hit = r.searchBST(value)
	} else {
		hit = r.searchAll(r.t.root, value, nil)
	}

	if hit == nil {
		r.result(trace.KindNotFound, nil, fmt.Sprintf("%d not found in tree", value),
			trace.Result{Found: false, Index: -1})
	} else {
		r.result(trace.KindFound, trace.Highlights{
			trace.Found: {hit.id},
			trace.Path:  r.t.pathTo(hit.id),
		}, fmt.Sprintf("Found %d", value), trace.Result{Found: true, Index: hit.id})
	}

	return r.rec.Trace(), nil
}

func (r *run) searchBST(value int) *node {
	var path []int

	cur := r.t.root
	for cur != nil {
		path = with(path, cur.id)
		r.rec.Stats.Comparisons++
		r.rec.Stats.Accesses++
		r.rec.Stats.Iterations++

		r.step(trace.KindCompare, trace.Highlights{
			trace.Comparing: {cur.id},
			trace.Current:   {cur.id},
			trace.Path:      path,
		}, fmt.Sprintf("Comparing %d with %d", value, cur.value))

		switch {
		case value == cur.value:
			return cur
		case value < cur.value:
			cur = cur.left
		default:
			cur = cur.right
		}
	}

	return nil
}

func (r *run) searchAll(n *node, value int, path []int) *node {
	if n == nil {
		return nil
	}

	path = with(path, n.id)
	r.rec.Stats.Comparisons++
	r.rec.Stats.Accesses++
	r.rec.Stats.Iterations++

	r.step(trace.KindCompare, trace.Highlights{
		trace.Comparing: {n.id},
		trace.Current:   {n.id},
		trace.Path:      path,
	}, fmt.Sprintf("Comparing %d with %d", value, n.value))

	if n.value == value {
		return n
	}

	if hit := r.searchAll(n.left, value, path); hit != nil {
		return hit
	}

	return r.searchAll(n.right, value, path)
}

// FindMin walks the left spine of a BST
func FindMin(t *Tree) (trace.Trace, error) {
	return extreme(t, "min", func(n *node) *node { return n.left })
}

// FindMax walks the right spine of a BST
func FindMax(t *Tree) (trace.Trace, error) {
	return extreme(t, "max", func(n *node) *node { return n.right })
}

func extreme(t *Tree, op string, next func(*node) *node) (trace.Trace, error) {
	if t.kind != BST {
		return trace.Trace{}, fmt.Errorf("find %s: %w", op, ErrNotBST)
	}

	if t.Empty() {
		return trace.Trace{}, dataset.ErrEmpty
	}

	r := newRun(t, "find-"+op)

	var path []int

	cur := r.t.root
	for {
		path = with(path, cur.id)
		r.rec.Stats.Accesses++
		r.rec.Stats.Iterations++

		r.step(trace.KindVisit, trace.Highlights{
			trace.Current: {cur.id},
			trace.Path:    path,
		}, fmt.Sprintf("Visiting %d", cur.value))

		if next(cur) == nil {
			break
		}

		cur = next(cur)
	}

	label := "Minimum"
	if op == "max" {
		label = "Maximum"
	}

	r.result(trace.KindFound, trace.Highlights{trace.Found: {cur.id}, trace.Path: path},
		fmt.Sprintf("%s value is %d", label, cur.value), trace.Result{Found: true, Index: cur.id})

	return r.rec.Trace(), nil
}
