// ABOUTME: Undo/redo stack manager for entity edits
// ABOUTME: Stores deep copies of the arrays and tree with a maximum stack size

package tui

import (
	"slices"

	"algoviz/tree"
)

// EntityState captures the editable entities for undo/redo
type EntityState struct {
	Array  []int
	Sorted []int
	Tree   *tree.Tree
}

// clone copies the state so later edits cannot reach into history
func (s EntityState) clone() EntityState {
	out := EntityState{
		Array:  slices.Clone(s.Array),
		Sorted: slices.Clone(s.Sorted),
	}

	if s.Tree != nil {
		out.Tree = s.Tree.Clone()
	}

	return out
}

// UndoManager manages undo/redo stacks with maximum size limit
type UndoManager struct {
	undoStack []EntityState
	redoStack []EntityState
	maxSize   int
}

// NewUndoManager creates a new undo manager with the specified max stack size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{
		undoStack: []EntityState{},
		redoStack: []EntityState{},
		maxSize:   maxSize,
	}
}

// Push saves a new state to the undo stack
// Clears the redo stack (you can't redo after a new action)
func (um *UndoManager) Push(state EntityState) {
	um.undoStack = push(um.undoStack, state.clone(), um.maxSize)
	um.redoStack = []EntityState{}
}

// Undo restores the previous state
// Returns the state and true if undo was successful, or zero value and false if nothing to undo
func (um *UndoManager) Undo(current EntityState) (EntityState, bool) {
	if len(um.undoStack) == 0 {
		return EntityState{}, false
	}

	um.redoStack = push(um.redoStack, current.clone(), um.maxSize)

	state := um.undoStack[len(um.undoStack)-1]
	um.undoStack = um.undoStack[:len(um.undoStack)-1]

	return state, true
}

// Redo restores the next state
// Returns the state and true if redo was successful, or zero value and false if nothing to redo
func (um *UndoManager) Redo(current EntityState) (EntityState, bool) {
	if len(um.redoStack) == 0 {
		return EntityState{}, false
	}

	um.undoStack = push(um.undoStack, current.clone(), um.maxSize)

	state := um.redoStack[len(um.redoStack)-1]
	um.redoStack = um.redoStack[:len(um.redoStack)-1]

	return state, true
}

// push appends state, dropping the oldest entry beyond maxSize
func push(stack []EntityState, state EntityState, maxSize int) []EntityState {
	stack = append(stack, state)
	if len(stack) > maxSize {
		stack = stack[1:]
	}

	return stack
}

// UndoSize returns the number of items in the undo stack
func (um *UndoManager) UndoSize() int {
	return len(um.undoStack)
}

// RedoSize returns the number of items in the redo stack
func (um *UndoManager) RedoSize() int {
	return len(um.redoStack)
}

// Clear clears both stacks
func (um *UndoManager) Clear() {
	um.undoStack = []EntityState{}
	um.redoStack = []EntityState{}
}
