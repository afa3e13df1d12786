package editor

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"pagefab/models"
	"pagefab/structure"
)

func loadedSession() *Session {
	s := NewSession("site-1")
	s.Load(&structure.PageStructure{
		Page: models.Page{ID: "page-1", SiteID: "site-1"},
	})
	return s
}

func pad() models.Padding {
	return models.Padding{Top: "40px", Right: "20px", Bottom: "40px", Left: "20px"}
}

func TestMutationsWithoutStructureAreNoOps(t *testing.T) {
	s := NewSession("site-1")

	s.SetBackground(models.BackgroundConfig{Type: "color", Value: "#fff"})
	s.SetLayout(models.LayoutConfig{MaxWidth: "900px"})
	assert.Nil(t, s.AddSection(models.LayoutBoxed, pad(), nil))
	s.DeleteSection("anything")
	s.ReorderSections(0, 1)
	s.Undo()
	s.Redo()

	assert.Nil(t, s.Structure())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestAddSectionAssignsTempIdAndSelects(t *testing.T) {
	s := loadedSession()

	section := s.AddSection(models.LayoutBoxed, pad(), nil)
	assert.NotNil(t, section)
	assert.Equal(t, "temp-1", section.ID)
	assert.Equal(t, 0, section.Order)
	assert.Equal(t, "page-1", section.PageID)
	assert.Equal(t, section.ID, s.SelectedSectionID())

	second := s.AddSection(models.LayoutFullWidth, pad(), nil)
	assert.Equal(t, "temp-2", second.ID)
	assert.Equal(t, 1, second.Order)
}

func TestAddElementSelectsAndOrders(t *testing.T) {
	s := loadedSession()
	section := s.AddSection(models.LayoutBoxed, pad(), nil)

	first := s.AddElement(section.ID, models.ElementText, map[string]any{"content": "a"}, nil)
	second := s.AddElement(section.ID, models.ElementButton, map[string]any{"label": "Go"}, nil)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, second.ID, s.SelectedElementID())

	assert.Nil(t, s.AddElement("missing-section", models.ElementText, nil, nil))
}

func TestDeleteSectionReindexesAndClearsSelection(t *testing.T) {
	s := loadedSession()
	a := s.AddSection(models.LayoutBoxed, pad(), nil)
	aID := a.ID
	bID := s.AddSection(models.LayoutBoxed, pad(), nil).ID
	cID := s.AddSection(models.LayoutBoxed, pad(), nil).ID

	s.SelectSection(bID)
	s.DeleteSection(bID)

	sections := s.Structure().Sections
	assert.Len(t, sections, 2)
	assert.Equal(t, aID, sections[0].ID)
	assert.Equal(t, cID, sections[1].ID)
	assert.Equal(t, 0, sections[0].Order)
	assert.Equal(t, 1, sections[1].Order)
	assert.Empty(t, s.SelectedSectionID())
}

func TestDeleteElementReindexes(t *testing.T) {
	s := loadedSession()
	section := s.AddSection(models.LayoutBoxed, pad(), nil)
	first := s.AddElement(section.ID, models.ElementText, nil, nil)
	second := s.AddElement(section.ID, models.ElementText, nil, nil)
	third := s.AddElement(section.ID, models.ElementText, nil, nil)
	firstID, secondID, thirdID := first.ID, second.ID, third.ID

	// The last add selected the third element; removing a different one
	// keeps that selection.
	s.DeleteElement(secondID)

	elements := s.Structure().Sections[0].Elements
	assert.Len(t, elements, 2)
	assert.Equal(t, firstID, elements[0].ID)
	assert.Equal(t, thirdID, elements[1].ID)
	assert.Equal(t, 0, elements[0].Order)
	assert.Equal(t, 1, elements[1].Order)
	assert.Equal(t, thirdID, s.SelectedElementID())

	// Removing the selected element clears the selection.
	s.DeleteElement(thirdID)
	assert.Len(t, s.Structure().Sections[0].Elements, 1)
	assert.Empty(t, s.SelectedElementID())
}

func TestReorderSections(t *testing.T) {
	s := loadedSession()
	aID := s.AddSection(models.LayoutBoxed, pad(), nil).ID
	bID := s.AddSection(models.LayoutBoxed, pad(), nil).ID
	cID := s.AddSection(models.LayoutBoxed, pad(), nil).ID

	s.ReorderSections(0, 2)

	sections := s.Structure().Sections
	assert.Equal(t, []string{bID, cID, aID}, []string{sections[0].ID, sections[1].ID, sections[2].ID})
	for i, section := range sections {
		assert.Equal(t, i, section.Order)
	}

	// Out-of-range indexes leave the structure alone.
	s.ReorderSections(0, 7)
	assert.Equal(t, bID, s.Structure().Sections[0].ID)
}

func TestReorderElements(t *testing.T) {
	s := loadedSession()
	section := s.AddSection(models.LayoutBoxed, pad(), nil)
	aID := s.AddElement(section.ID, models.ElementText, nil, nil).ID
	bID := s.AddElement(section.ID, models.ElementImage, nil, nil).ID

	s.ReorderElements(section.ID, 1, 0)

	elements := s.Structure().Sections[0].Elements
	assert.Equal(t, bID, elements[0].ID)
	assert.Equal(t, aID, elements[1].ID)
	assert.Equal(t, 0, elements[0].Order)
	assert.Equal(t, 1, elements[1].Order)
}

func TestUpdateElement(t *testing.T) {
	s := loadedSession()
	section := s.AddSection(models.LayoutBoxed, pad(), nil)
	element := s.AddElement(section.ID, models.ElementText, map[string]any{"content": "old"}, nil)

	s.UpdateElement(element.ID, func(el *models.Element) {
		el.Props["content"] = "new"
		el.Style.Set("fontSize", "18px")
	})

	got := s.Structure().Sections[0].Elements[0]
	assert.Equal(t, "new", got.Props["content"])
	value, ok := got.Style.Get("fontSize")
	assert.True(t, ok)
	assert.Equal(t, "18px", value)
}

func TestUndoRedoRestoresNthMutation(t *testing.T) {
	s := loadedSession()

	const mutations = 5
	for i := 0; i < mutations; i++ {
		s.AddSection(models.LayoutBoxed, pad(), nil)
	}
	want, _ := json.Marshal(s.Structure())

	for i := 0; i < mutations; i++ {
		s.Undo()
	}
	assert.Empty(t, s.Structure().Sections)
	assert.False(t, s.CanUndo())

	for i := 0; i < mutations; i++ {
		s.Redo()
	}
	got, _ := json.Marshal(s.Structure())
	assert.Equal(t, string(want), string(got))
}

func TestNewEditAfterUndoDropsRedoBranch(t *testing.T) {
	s := loadedSession()
	s.AddSection(models.LayoutBoxed, pad(), nil)
	s.AddSection(models.LayoutBoxed, pad(), nil)

	s.Undo()
	s.SetBackground(models.BackgroundConfig{Type: "color", Value: "#000"})

	assert.False(t, s.CanRedo())
	assert.Len(t, s.Structure().Sections, 1)
	assert.Equal(t, "#000", s.Structure().BackgroundConfig.Value)
}

func TestLoadResetsHistory(t *testing.T) {
	s := loadedSession()
	for i := 0; i < 3; i++ {
		s.AddSection(models.LayoutBoxed, pad(), nil)
	}

	s.Load(&structure.PageStructure{Page: models.Page{ID: "page-2"}})

	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, "page-2", s.Structure().ID)
}

func TestTempIdsAreSequential(t *testing.T) {
	s := loadedSession()
	for i := 1; i <= 3; i++ {
		section := s.AddSection(models.LayoutBoxed, pad(), nil)
		assert.Equal(t, fmt.Sprintf("temp-%d", i), section.ID)
	}
}
