// Package editor holds the in-memory editing session for one site: the
// working structure, the current selection and the undo/redo history. The
// session is an explicit handle owned by the caller, not shared state;
// every mutation records the resulting structure as a history snapshot.
//
// All mutations are no-ops while no structure is loaded, so the editor
// survives calls racing an unfinished load.
package editor

import (
	"fmt"

	"pagefab/history"
	"pagefab/models"
	"pagefab/structure"
)

type Session struct {
	SiteID string

	structure         *structure.PageStructure
	selectedSectionID string
	selectedElementID string
	hist              *history.History
	tempSeq           int
}

func NewSession(siteID string) *Session {
	return &Session{
		SiteID: siteID,
		hist:   history.New(),
	}
}

// Load replaces the working structure and resets history to a single
// snapshot, the way a fresh editor starts after fetching the saved tree.
func (s *Session) Load(ps *structure.PageStructure) {
	if ps == nil {
		return
	}
	s.structure = ps
	s.selectedSectionID = ""
	s.selectedElementID = ""
	s.hist = history.New()
	s.hist.Push(ps)
}

func (s *Session) Structure() *structure.PageStructure { return s.structure }
func (s *Session) SelectedSectionID() string           { return s.selectedSectionID }
func (s *Session) SelectedElementID() string           { return s.selectedElementID }

func (s *Session) SelectSection(id string) { s.selectedSectionID = id }
func (s *Session) SelectElement(id string) { s.selectedElementID = id }

// tempID hands out client-side ids for nodes created before a save. The
// synchronizer never trusts them; persisted ids replace them after the save
// round-trip.
func (s *Session) tempID() string {
	s.tempSeq++
	return fmt.Sprintf("temp-%d", s.tempSeq)
}

func (s *Session) record() {
	s.hist.Push(s.structure)
}

func (s *Session) SetBackground(cfg models.BackgroundConfig) {
	if s.structure == nil {
		return
	}
	s.structure.BackgroundConfig = &cfg
	s.record()
}

func (s *Session) SetLayout(cfg models.LayoutConfig) {
	if s.structure == nil {
		return
	}
	s.structure.LayoutConfig = &cfg
	s.record()
}

// AddSection appends a section at the end of the page and selects it.
func (s *Session) AddSection(layout models.LayoutType, padding models.Padding, background *models.BackgroundConfig) *structure.SectionNode {
	if s.structure == nil {
		return nil
	}

	node := structure.SectionNode{
		Section: models.Section{
			ID:                 s.tempID(),
			PageID:             s.structure.ID,
			Order:              len(s.structure.Sections),
			Layout:             layout,
			Padding:            padding,
			BackgroundOverride: background,
		},
	}
	s.structure.Sections = append(s.structure.Sections, node)
	s.selectedSectionID = node.ID
	s.record()
	return &s.structure.Sections[len(s.structure.Sections)-1]
}

// UpdateSection applies mutate to the section with the given id. Nothing is
// recorded when the id is unknown.
func (s *Session) UpdateSection(id string, mutate func(*structure.SectionNode)) {
	if s.structure == nil {
		return
	}
	for i := range s.structure.Sections {
		if s.structure.Sections[i].ID == id {
			mutate(&s.structure.Sections[i])
			s.record()
			return
		}
	}
}

func (s *Session) DeleteSection(id string) {
	if s.structure == nil {
		return
	}

	kept := s.structure.Sections[:0]
	removed := false
	for _, section := range s.structure.Sections {
		if section.ID == id {
			removed = true
			continue
		}
		section.Order = len(kept)
		kept = append(kept, section)
	}
	if !removed {
		return
	}

	s.structure.Sections = kept
	if s.selectedSectionID == id {
		s.selectedSectionID = ""
	}
	s.selectedElementID = ""
	s.record()
}

func (s *Session) ReorderSections(from, to int) {
	if s.structure == nil {
		return
	}
	sections := s.structure.Sections
	if from < 0 || from >= len(sections) || to < 0 || to >= len(sections) || from == to {
		return
	}

	moved := sections[from]
	sections = append(sections[:from], sections[from+1:]...)
	sections = append(sections[:to], append([]structure.SectionNode{moved}, sections[to:]...)...)
	for i := range sections {
		sections[i].Order = i
	}

	s.structure.Sections = sections
	s.record()
}

// AddElement appends an element to the given section and selects it.
func (s *Session) AddElement(sectionID string, typ models.ElementType, props map[string]any, style models.StyleMap) *models.Element {
	if s.structure == nil {
		return nil
	}

	for i := range s.structure.Sections {
		section := &s.structure.Sections[i]
		if section.ID != sectionID {
			continue
		}

		element := models.Element{
			ID:        s.tempID(),
			SectionID: sectionID,
			Type:      typ,
			Order:     len(section.Elements),
			Props:     props,
			Style:     style,
		}
		section.Elements = append(section.Elements, element)
		s.selectedSectionID = sectionID
		s.selectedElementID = element.ID
		s.record()
		return &section.Elements[len(section.Elements)-1]
	}
	return nil
}

func (s *Session) UpdateElement(id string, mutate func(*models.Element)) {
	if s.structure == nil {
		return
	}
	for i := range s.structure.Sections {
		elements := s.structure.Sections[i].Elements
		for j := range elements {
			if elements[j].ID == id {
				mutate(&elements[j])
				s.record()
				return
			}
		}
	}
}

func (s *Session) DeleteElement(id string) {
	if s.structure == nil {
		return
	}

	for i := range s.structure.Sections {
		section := &s.structure.Sections[i]
		kept := section.Elements[:0]
		removed := false
		for _, element := range section.Elements {
			if element.ID == id {
				removed = true
				continue
			}
			element.Order = len(kept)
			kept = append(kept, element)
		}
		if !removed {
			continue
		}

		section.Elements = kept
		if s.selectedElementID == id {
			s.selectedElementID = ""
		}
		s.record()
		return
	}
}

func (s *Session) ReorderElements(sectionID string, from, to int) {
	if s.structure == nil {
		return
	}

	for i := range s.structure.Sections {
		section := &s.structure.Sections[i]
		if section.ID != sectionID {
			continue
		}

		elements := section.Elements
		if from < 0 || from >= len(elements) || to < 0 || to >= len(elements) || from == to {
			return
		}

		moved := elements[from]
		elements = append(elements[:from], elements[from+1:]...)
		elements = append(elements[:to], append([]models.Element{moved}, elements[to:]...)...)
		for j := range elements {
			elements[j].Order = j
		}

		section.Elements = elements
		s.record()
		return
	}
}

func (s *Session) Undo() {
	if snapshot := s.hist.Undo(); snapshot != nil {
		s.structure = snapshot
	}
}

func (s *Session) Redo() {
	if snapshot := s.hist.Redo(); snapshot != nil {
		s.structure = snapshot
	}
}

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }
