// ABOUTME: Tree delete runner
// ABOUTME: Splices zero or one child nodes and replaces two child nodes with their inorder successor

package tree

import (
	"fmt"

	"algoviz/dataset"
	"algoviz/trace"
)

// Delete removes the first node holding value and returns the new tree.
// Non-BST trees search the left subtree before the right one.
func Delete(t *Tree, value int) (*Tree, trace.Trace, error) {
	if t.Empty() {
		return nil, trace.Trace{}, dataset.ErrEmpty
	}

	r := newRun(t, "delete")

	root, deleted := r.remove(r.t.root, value, nil)
	r.t.root = root

	if !deleted {
		r.result(trace.KindNotFound, nil, fmt.Sprintf("%d not found for deletion", value),
			trace.Result{Found: false, Index: -1})
	} else {
		r.step(trace.KindDone, nil, fmt.Sprintf("Deletion of %d complete", value))
	}

	return r.t, r.rec.Trace(), nil
}

func (r *run) remove(n *node, value int, path []int) (*node, bool) {
	if n == nil {
		return nil, false
	}

	path = with(path, n.id)
	r.rec.Stats.Comparisons++
	r.rec.Stats.Accesses++

	r.step(trace.KindCompare, trace.Highlights{
		trace.Comparing: {n.id},
		trace.Current:   {n.id},
		trace.Path:      path,
	}, fmt.Sprintf("Comparing %d with %d", value, n.value))

	if n.value == value {
		r.step(trace.KindFound, trace.Highlights{trace.Found: {n.id}, trace.Path: path},
			fmt.Sprintf("Found %d, proceeding with deletion", value))

		return r.detach(n, path), true
	}

	var ok bool

	if r.t.kind == BST {
		if value < n.value {
			n.left, ok = r.remove(n.left, value, path)
		} else {
			n.right, ok = r.remove(n.right, value, path)
		}

		return n, ok
	}

	if n.left, ok = r.remove(n.left, value, path); ok {
		return n, true
	}

	n.right, ok = r.remove(n.right, value, path)

	return n, ok
}

// detach unlinks n and returns the subtree that takes its place
func (r *run) detach(n *node, path []int) *node {
	hl := trace.Highlights{trace.Selected: {n.id}, trace.Path: path[:len(path)-1]}

	switch {
	case n.left == nil && n.right == nil:
		r.step(trace.KindDelete, hl, fmt.Sprintf("Deleting leaf %d", n.value))

		return nil
	case n.left == nil:
		r.step(trace.KindDelete, hl, fmt.Sprintf("Deleting %d, replacing with right child", n.value))

		return n.right
	case n.right == nil:
		r.step(trace.KindDelete, hl, fmt.Sprintf("Deleting %d, replacing with left child", n.value))

		return n.left
	}

	succ := n.right
	for succ.left != nil {
		succ = succ.left
	}

	old := n.value
	n.value = succ.value
	r.rec.Stats.Accesses++

	r.step(trace.KindReplace, trace.Highlights{
		trace.Selected: {n.id},
		trace.Current:  {succ.id},
		trace.Path:     path,
	}, fmt.Sprintf("Replacing %d with inorder successor %d", old, succ.value))

	if r.t.kind == BST {
		n.right, _ = r.remove(n.right, succ.value, path)
	} else {
		n.right = r.removeLeftmost(n.right, path)
	}

	return n
}

// removeLeftmost unlinks the leftmost node of the subtree rooted at n
func (r *run) removeLeftmost(n *node, path []int) *node {
	path = with(path, n.id)
	r.rec.Stats.Accesses++

	r.step(trace.KindVisit, trace.Highlights{trace.Current: {n.id}, trace.Path: path},
		fmt.Sprintf("Visiting %d", n.value))

	if n.left == nil {
		r.step(trace.KindDelete, trace.Highlights{trace.Selected: {n.id}, trace.Path: path[:len(path)-1]},
			fmt.Sprintf("Removing successor node %d", n.value))

		return n.right
	}

	n.left = r.removeLeftmost(n.left, path)

	return n
}
