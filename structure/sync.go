package structure

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pagefab/models"
)

// ErrValidation marks a structure save rejected for malformed input shape,
// before anything was written.
var ErrValidation = errors.New("invalid structure")

// SyncInput is the full desired structure sent by the editor on save.
// Section and element ids created client-side ("temp-..." or empty) are not
// trusted; anything not currently persisted is treated as a new row.
type SyncInput struct {
	BackgroundConfig *models.BackgroundConfig `json:"background_config"`
	LayoutConfig     *models.LayoutConfig     `json:"layout_config"`
	Sections         []SectionNode            `json:"sections"`
}

// SyncStructure reconciles the desired tree against the persisted rows for
// the site's page: known ids are updated in place, unknown entries are
// inserted with fresh ids, and loaded rows left unmatched are deleted. The
// whole diff runs in one transaction; on any failure nothing is persisted.
// Order columns are re-derived from slice position on both levels.
//
// There is no concurrency token: a save from a stale editor overwrites the
// newer state, last write wins.
func SyncStructure(db *gorm.DB, siteID string, input SyncInput) (*PageStructure, error) {
	page, err := GetPage(db, siteID)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return reconcile(tx, page, input)
	})
	if err != nil {
		return nil, fmt.Errorf("sync structure: %w", err)
	}

	return GetStructure(db, siteID)
}

func validateInput(input SyncInput) error {
	for i, section := range input.Sections {
		if section.Layout != models.LayoutFullWidth && section.Layout != models.LayoutBoxed {
			return fmt.Errorf("%w: section %d: unknown layout %q", ErrValidation, i, section.Layout)
		}
	}
	if input.BackgroundConfig != nil && input.BackgroundConfig.Type == "" {
		return fmt.Errorf("%w: background config missing type", ErrValidation)
	}
	return nil
}

func reconcile(tx *gorm.DB, page *models.Page, input SyncInput) error {
	var pageFields []string
	pageUpdates := models.Page{}
	if input.BackgroundConfig != nil {
		pageFields = append(pageFields, "BackgroundConfig")
		pageUpdates.BackgroundConfig = input.BackgroundConfig
	}
	if input.LayoutConfig != nil {
		pageFields = append(pageFields, "LayoutConfig")
		pageUpdates.LayoutConfig = input.LayoutConfig
	}
	if len(pageFields) > 0 {
		if err := tx.Model(page).Select(pageFields).Updates(pageUpdates).Error; err != nil {
			return fmt.Errorf("update page: %w", err)
		}
	}

	var existing []models.Section
	if err := tx.Where("page_id = ?", page.ID).Find(&existing).Error; err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	existingIDs := make(map[string]bool, len(existing))
	for _, s := range existing {
		existingIDs[s.ID] = true
	}

	kept := make(map[string]bool, len(input.Sections))

	for i := range input.Sections {
		section := &input.Sections[i]

		if section.ID != "" && existingIDs[section.ID] {
			err := tx.Model(&models.Section{ID: section.ID}).
				Select("Order", "Layout", "Padding", "BackgroundOverride").
				Updates(models.Section{
					Order:              i,
					Layout:             section.Layout,
					Padding:            section.Padding,
					BackgroundOverride: section.BackgroundOverride,
				}).Error
			if err != nil {
				return fmt.Errorf("update section %s: %w", section.ID, err)
			}
		} else {
			row := models.Section{
				PageID:             page.ID,
				Order:              i,
				Layout:             section.Layout,
				Padding:            section.Padding,
				BackgroundOverride: section.BackgroundOverride,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert section at %d: %w", i, err)
			}
			// Expose the generated id so element reconciliation below and
			// the caller's temp-id mapping can reference it.
			section.ID = row.ID
		}
		kept[section.ID] = true

		if err := reconcileElements(tx, section); err != nil {
			return err
		}
	}

	for _, s := range existing {
		if kept[s.ID] {
			continue
		}
		// Children removed explicitly before the section row.
		if err := tx.Where("section_id = ?", s.ID).Delete(&models.Element{}).Error; err != nil {
			return fmt.Errorf("delete elements of section %s: %w", s.ID, err)
		}
		if err := tx.Where("id = ?", s.ID).Delete(&models.Section{}).Error; err != nil {
			return fmt.Errorf("delete section %s: %w", s.ID, err)
		}
	}

	return nil
}

func reconcileElements(tx *gorm.DB, section *SectionNode) error {
	var existing []models.Element
	if err := tx.Where("section_id = ?", section.ID).Find(&existing).Error; err != nil {
		return fmt.Errorf("load elements: %w", err)
	}
	existingIDs := make(map[string]bool, len(existing))
	for _, e := range existing {
		existingIDs[e.ID] = true
	}

	kept := make(map[string]bool, len(section.Elements))

	for j := range section.Elements {
		element := &section.Elements[j]

		if !element.Type.Valid() {
			return fmt.Errorf("section %s element %d: unknown element type %q",
				section.ID, j, element.Type)
		}

		if element.ID != "" && existingIDs[element.ID] {
			err := tx.Model(&models.Element{ID: element.ID}).
				Select("Type", "Order", "Props", "Style").
				Updates(models.Element{
					Type:  element.Type,
					Order: j,
					Props: element.Props,
					Style: element.Style,
				}).Error
			if err != nil {
				return fmt.Errorf("update element %s: %w", element.ID, err)
			}
		} else {
			row := models.Element{
				SectionID: section.ID,
				Type:      element.Type,
				Order:     j,
				Props:     element.Props,
				Style:     element.Style,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert element at %d: %w", j, err)
			}
			element.ID = row.ID
		}
		kept[element.ID] = true
	}

	for _, e := range existing {
		if !kept[e.ID] {
			if err := tx.Where("id = ?", e.ID).Delete(&models.Element{}).Error; err != nil {
				return fmt.Errorf("delete element %s: %w", e.ID, err)
			}
		}
	}

	return nil
}
