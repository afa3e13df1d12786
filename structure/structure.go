package structure

import (
	"fmt"

	"gorm.io/gorm"

	"pagefab/models"
)

// SectionNode is a section row together with its ordered elements.
type SectionNode struct {
	models.Section
	Elements []models.Element `json:"elements"`
}

// PageStructure is the full editable tree for a site's page: the page row
// plus its ordered sections and their ordered elements.
type PageStructure struct {
	models.Page
	Sections []SectionNode `json:"sections"`
}

func GetPage(db *gorm.DB, siteID string) (*models.Page, error) {
	var page models.Page
	if err := db.Where("site_id = ?", siteID).First(&page).Error; err != nil {
		return nil, fmt.Errorf("load page for site %s: %w", siteID, err)
	}
	return &page, nil
}

// GetStructure loads the persisted tree for a site, sections and elements
// ordered by their order column.
func GetStructure(db *gorm.DB, siteID string) (*PageStructure, error) {
	page, err := GetPage(db, siteID)
	if err != nil {
		return nil, err
	}

	var sections []models.Section
	if err := db.Where("page_id = ?", page.ID).
		Order(`"order"`).
		Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	nodes := make([]SectionNode, 0, len(sections))
	for _, section := range sections {
		var elements []models.Element
		if err := db.Where("section_id = ?", section.ID).
			Order(`"order"`).
			Find(&elements).Error; err != nil {
			return nil, fmt.Errorf("load elements for section %s: %w", section.ID, err)
		}

		nodes = append(nodes, SectionNode{
			Section:  section,
			Elements: elements,
		})
	}

	return &PageStructure{
		Page:     *page,
		Sections: nodes,
	}, nil
}
