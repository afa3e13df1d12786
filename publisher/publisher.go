// Package publisher compiles a site and writes its static bundle to the
// per-slug publish directory, then flips the site live.
package publisher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"gorm.io/gorm"

	"pagefab/compiler"
	"pagefab/models"
	"pagefab/structure"
)

type Publisher struct {
	db         *gorm.DB
	publishDir string
	baseDomain string
}

type Result struct {
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

func New(db *gorm.DB, publishDir, baseDomain string) *Publisher {
	return &Publisher{
		db:         db,
		publishDir: publishDir,
		baseDomain: baseDomain,
	}
}

// BundleDir returns the directory a slug's published files live in.
func (p *Publisher) BundleDir(slug string) string {
	return filepath.Join(p.publishDir, slug)
}

// Publish compiles the site's persisted structure, writes index.html,
// styles.css and script.js under the slug's directory, marks the site
// published and upserts its subdomain record.
//
// The bundle write, status flip and domain upsert are three separate
// effects, not one transaction: a crash in between can leave the status
// flipped before the files land or the other way round. The writes are
// idempotent, so a retried publish converges.
func (p *Publisher) Publish(siteID string) (*Result, error) {
	var site models.Site
	if err := p.db.Where("id = ?", siteID).First(&site).Error; err != nil {
		return nil, fmt.Errorf("load site %s: %w", siteID, err)
	}

	ps, err := structure.GetStructure(p.db, siteID)
	if err != nil {
		return nil, err
	}

	bundle := compiler.Compile(site, ps)

	siteDir := p.BundleDir(site.Slug)
	if err := os.MkdirAll(siteDir, 0755); err != nil {
		return nil, fmt.Errorf("create bundle dir: %w", err)
	}

	artifacts := map[string]string{
		"index.html": bundle.HTML,
		"styles.css": bundle.CSS,
		"script.js":  bundle.JS,
	}
	for name, content := range artifacts {
		if err := writeArtifact(siteDir, name, content); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := p.db.Model(&site).Update("status", models.SiteStatusPublished).Error; err != nil {
		return nil, fmt.Errorf("mark site published: %w", err)
	}

	now := time.Now()
	value := site.Slug + "." + p.baseDomain
	if err := p.upsertSubdomain(site.ID, value, now); err != nil {
		return nil, err
	}

	return &Result{
		URL:         "https://" + value,
		PublishedAt: now,
	}, nil
}

func (p *Publisher) upsertSubdomain(siteID, value string, publishedAt time.Time) error {
	var domain models.Domain
	err := p.db.Where("site_id = ? AND type = ?", siteID, models.DomainSubdomain).
		First(&domain).Error

	switch {
	case err == nil:
		domain.Value = value
		domain.PublishStatus = "published"
		domain.LastPublishedAt = &publishedAt
		if err := p.db.Save(&domain).Error; err != nil {
			return fmt.Errorf("update domain: %w", err)
		}
	case err == gorm.ErrRecordNotFound:
		domain = models.Domain{
			SiteID:          siteID,
			Type:            models.DomainSubdomain,
			Value:           value,
			PublishStatus:   "published",
			LastPublishedAt: &publishedAt,
		}
		if err := p.db.Create(&domain).Error; err != nil {
			return fmt.Errorf("create domain: %w", err)
		}
	default:
		return fmt.Errorf("load domain: %w", err)
	}

	return nil
}

// writeArtifact writes content to dir/name, skipping the write when the
// on-disk file already carries the same xxHash digest.
func writeArtifact(dir, name, content string) error {
	path := filepath.Join(dir, name)

	if existing, err := os.ReadFile(path); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64String(content) {
			return nil
		}
	}

	return os.WriteFile(path, []byte(content), 0644)
}
