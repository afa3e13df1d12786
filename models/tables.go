package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SiteStatus string

const (
	SiteStatusDraft     SiteStatus = "draft"
	SiteStatusPublished SiteStatus = "published"
)

type LayoutType string

const (
	LayoutFullWidth LayoutType = "full_width"
	LayoutBoxed     LayoutType = "boxed"
)

type ElementType string

const (
	ElementText      ElementType = "text"
	ElementImage     ElementType = "image"
	ElementButton    ElementType = "button"
	ElementForm      ElementType = "form"
	ElementSocial    ElementType = "social"
	ElementEmbed     ElementType = "embed"
	ElementTimer     ElementType = "timer"
	ElementContainer ElementType = "container"
)

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	switch t {
	case ElementText, ElementImage, ElementButton, ElementForm,
		ElementSocial, ElementEmbed, ElementTimer, ElementContainer:
		return true
	}
	return false
}

type DomainType string

const (
	DomainSubdomain DomainType = "subdomain"
	DomainCustom    DomainType = "custom_domain"
)

type SiteSettings struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Language           string   `json:"language"`
	MetaTags           []string `json:"meta_tags"`
	FaviconURL         string   `json:"favicon_url"`
	AnalyticsID        string   `json:"analytics_id"`
	SocialPreviewImage string   `json:"social_preview_image"`
}

// BackgroundConfig is discriminated by Type: color, gradient, image or video.
// Value carries a CSS color/gradient string or an image URL depending on Type.
type BackgroundConfig struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type LayoutConfig struct {
	MaxWidth string `json:"maxWidth"`
	Padding  string `json:"padding"`
}

type Padding struct {
	Top    string `json:"top"`
	Right  string `json:"right"`
	Bottom string `json:"bottom"`
	Left   string `json:"left"`
}

type User struct {
	ID           int    `gorm:"primary_key;autoIncrement" json:"id"`
	PasswordHash string `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
	Email        string `gorm:"unique;not null" json:"email"`
}

type Site struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	UserID    int          `gorm:"not null;index" json:"user_id"`
	Name      string       `gorm:"not null" json:"name"`
	Slug      string       `gorm:"unique;not null;index" json:"slug"`
	Status    SiteStatus   `gorm:"not null;default:draft" json:"status"`
	Settings  SiteSettings `gorm:"serializer:json" json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (s *Site) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Page is the single page owned by a site. Background and layout live as
// JSON documents on the row.
type Page struct {
	ID               string            `gorm:"primaryKey;size:36" json:"id"`
	SiteID           string            `gorm:"not null;index" json:"site_id"`
	BackgroundConfig *BackgroundConfig `gorm:"serializer:json" json:"background_config"`
	LayoutConfig     *LayoutConfig     `gorm:"serializer:json" json:"layout_config"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Section rows carry a dense 0-based order within their page. The order
// column is re-derived from array position on every save, never taken from
// the client.
type Section struct {
	ID                 string            `gorm:"primaryKey;size:36" json:"id"`
	PageID             string            `gorm:"not null;index" json:"page_id"`
	Order              int               `gorm:"column:order;not null" json:"order"`
	Layout             LayoutType        `gorm:"not null" json:"layout"`
	Padding            Padding           `gorm:"serializer:json" json:"padding"`
	BackgroundOverride *BackgroundConfig `gorm:"serializer:json" json:"background_override"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Element struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	SectionID string         `gorm:"not null;index" json:"section_id"`
	Type      ElementType    `gorm:"not null" json:"type"`
	Order     int            `gorm:"column:order;not null" json:"order"`
	Props     map[string]any `gorm:"serializer:json" json:"props"`
	Style     StyleMap       `gorm:"serializer:json" json:"style"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (e *Element) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave rejects unknown element types at the row level, so a bad
// element inside a structure save aborts the surrounding transaction.
// Column updates run the hook against a bare id receiver whose type is the
// zero value; that case is skipped here and validated where the update
// value is built.
func (e *Element) BeforeSave(tx *gorm.DB) error {
	if e.Type != "" && !e.Type.Valid() {
		return fmt.Errorf("unknown element type %q", e.Type)
	}
	return nil
}

type Domain struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	SiteID          string     `gorm:"not null;index:idx_domains_site_type,unique" json:"site_id"`
	Type            DomainType `gorm:"not null;index:idx_domains_site_type,unique" json:"type"`
	Value           string     `gorm:"not null" json:"value"`
	PublishStatus   string     `gorm:"not null;default:pending" json:"publish_status"`
	LastPublishedAt *time.Time `json:"last_published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
