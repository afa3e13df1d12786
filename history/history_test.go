package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"pagefab/models"
	"pagefab/structure"
)

func snapshotWithSections(n int) *structure.PageStructure {
	ps := &structure.PageStructure{}
	for i := 0; i < n; i++ {
		ps.Sections = append(ps.Sections, structure.SectionNode{
			Section: models.Section{
				ID:     fmt.Sprintf("s-%d", i),
				Order:  i,
				Layout: models.LayoutBoxed,
			},
		})
	}
	return ps
}

func TestUndoRedoSymmetry(t *testing.T) {
	h := New()
	h.Push(snapshotWithSections(0))

	const mutations = 7
	for i := 1; i <= mutations; i++ {
		h.Push(snapshotWithSections(i))
	}

	for i := 0; i < mutations; i++ {
		assert.True(t, h.CanUndo())
		h.Undo()
	}
	assert.False(t, h.CanUndo())

	var last *structure.PageStructure
	for i := 0; i < mutations; i++ {
		assert.True(t, h.CanRedo())
		last = h.Redo()
	}
	assert.False(t, h.CanRedo())
	assert.Len(t, last.Sections, mutations)
}

func TestUndoAtOriginIsNoOp(t *testing.T) {
	h := New()
	assert.False(t, h.CanUndo())
	assert.Nil(t, h.Undo())

	h.Push(snapshotWithSections(1))
	assert.False(t, h.CanUndo())
	assert.Nil(t, h.Undo())
	assert.Nil(t, h.Redo())
}

func TestPushTruncatesRedoBranch(t *testing.T) {
	h := New()
	for i := 0; i <= 3; i++ {
		h.Push(snapshotWithSections(i))
	}

	h.Undo()
	h.Undo()
	h.Push(snapshotWithSections(9))

	assert.False(t, h.CanRedo())
	undone := h.Undo()
	assert.Len(t, undone.Sections, 1)
}

func TestHistoryBound(t *testing.T) {
	h := New()
	for i := 0; i <= 80; i++ {
		h.Push(snapshotWithSections(i))
	}
	assert.Equal(t, MaxSnapshots, h.Len())

	var oldest *structure.PageStructure
	for h.CanUndo() {
		oldest = h.Undo()
	}
	// Snapshots 0..30 were dropped; undo bottoms out at the 50th-newest.
	assert.Len(t, oldest.Sections, 31)
}

func TestSnapshotsAreIsolatedClones(t *testing.T) {
	h := New()
	original := snapshotWithSections(1)
	h.Push(original)
	h.Push(snapshotWithSections(2))

	// Mutating the pushed structure must not reach the stored snapshot.
	original.Sections[0].ID = "mutated"

	restored := h.Undo()
	assert.Equal(t, "s-0", restored.Sections[0].ID)

	// Nor can a returned snapshot corrupt history.
	restored.Sections[0].ID = "also-mutated"
	again := h.Redo()
	restoredAgain := h.Undo()
	assert.Len(t, again.Sections, 2)
	assert.Equal(t, "s-0", restoredAgain.Sections[0].ID)
}
