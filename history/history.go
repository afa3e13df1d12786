// Package history keeps the editor's undo/redo stack: a bounded list of
// full structure snapshots plus a cursor. Snapshots are deep clones, never
// deltas, so undo/redo is a pointer swap for the caller.
package history

import (
	"encoding/json"

	"pagefab/structure"
)

// MaxSnapshots bounds retained history; the oldest snapshot is dropped when
// the cap is exceeded.
const MaxSnapshots = 50

type History struct {
	snapshots []*structure.PageStructure
	index     int
}

func New() *History {
	return &History{index: -1}
}

// Push records a deep clone of s as the newest snapshot. Any redo branch
// beyond the cursor is discarded first.
func (h *History) Push(s *structure.PageStructure) {
	if s == nil {
		return
	}

	h.snapshots = append(h.snapshots[:h.index+1], clone(s))
	if len(h.snapshots) > MaxSnapshots {
		h.snapshots = h.snapshots[len(h.snapshots)-MaxSnapshots:]
	}
	h.index = len(h.snapshots) - 1
}

// Undo moves the cursor back one snapshot and returns a clone of it, or nil
// when already at the oldest retained snapshot.
func (h *History) Undo() *structure.PageStructure {
	if !h.CanUndo() {
		return nil
	}
	h.index--
	return clone(h.snapshots[h.index])
}

// Redo moves the cursor forward one snapshot and returns a clone of it, or
// nil when there is no redo branch.
func (h *History) Redo() *structure.PageStructure {
	if !h.CanRedo() {
		return nil
	}
	h.index++
	return clone(h.snapshots[h.index])
}

func (h *History) CanUndo() bool {
	return h.index > 0
}

func (h *History) CanRedo() bool {
	return h.index < len(h.snapshots)-1
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func clone(s *structure.PageStructure) *structure.PageStructure {
	data, err := json.Marshal(s)
	if err != nil {
		return s
	}
	var out structure.PageStructure
	if err := json.Unmarshal(data, &out); err != nil {
		return s
	}
	return &out
}
