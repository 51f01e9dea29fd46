// Package history implements a linear undo/redo stack over whole-document
// snapshots. Entries are full copies, never deltas, so undo and redo are O(1)
// and never replay operations.
package history

// History holds an ordered list of snapshots plus a cursor. The entry at the
// cursor is always the current document. It is generic over the snapshot
// type so the section-based layout and the block-based page builder document
// share one implementation.
//
// History is not safe for concurrent use; the editor session serializes
// access.
type History[T any] struct {
	entries []T
	cursor  int
}

// New starts a history whose first entry is the initial document.
func New[T any](initial T) *History[T] {
	return &History[T]{entries: []T{initial}, cursor: 0}
}

// Push truncates any redo entries past the cursor, appends the snapshot and
// moves the cursor onto it. Every mutation operation calls Push exactly once
// with the fully-updated snapshot.
func (h *History[T]) Push(snapshot T) {
	h.entries = append(h.entries[:h.cursor+1], snapshot)
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns the snapshot there. At the oldest
// entry it is a no-op returning the current snapshot.
func (h *History[T]) Undo() T {
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor]
}

// Redo steps the cursor forward and returns the snapshot there. At the
// newest entry it is a no-op returning the current snapshot.
func (h *History[T]) Redo() T {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
	}
	return h.entries[h.cursor]
}

// Current returns the snapshot at the cursor.
func (h *History[T]) Current() T {
	return h.entries[h.cursor]
}

func (h *History[T]) CanUndo() bool {
	return h.cursor > 0
}

func (h *History[T]) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Len returns the number of entries held.
func (h *History[T]) Len() int {
	return len(h.entries)
}
