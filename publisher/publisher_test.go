package publisher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pagefab/models"
	"pagefab/structure"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&models.User{}, &models.Site{}, &models.Page{}, &models.Section{}, &models.Element{}, &models.Domain{})
	return db
}

func createTestSite(db *gorm.DB) *models.Site {
	user := &models.User{Email: "test@example.com", PasswordHash: "hashedpassword"}
	db.Create(user)

	site := &models.Site{
		UserID: user.ID,
		Name:   "Test Site",
		Slug:   "test-site",
		Settings: models.SiteSettings{
			Title: "My Landing Page",
		},
	}
	db.Create(site)
	db.Create(&models.Page{SiteID: site.ID})
	return site
}

func saveTestStructure(t *testing.T, db *gorm.DB, siteID string) {
	t.Helper()
	_, err := structure.SyncStructure(db, siteID, structure.SyncInput{
		Sections: []structure.SectionNode{
			{
				Section: models.Section{
					Layout:  models.LayoutBoxed,
					Padding: models.Padding{Top: "40px", Right: "20px", Bottom: "40px", Left: "20px"},
				},
				Elements: []models.Element{
					{Type: models.ElementText, Props: map[string]any{"content": "<p>Hi</p>"}},
				},
			},
		},
	})
	assert.NoError(t, err)
}

func TestPublishWritesBundleAndFlipsStatus(t *testing.T) {
	db := setupTestDB()
	site := createTestSite(db)
	saveTestStructure(t, db, site.ID)

	dir := t.TempDir()
	p := New(db, dir, "pagefab.test")

	result, err := p.Publish(site.ID)
	assert.NoError(t, err)
	assert.Equal(t, "https://test-site.pagefab.test", result.URL)
	assert.WithinDuration(t, time.Now(), result.PublishedAt, time.Minute)

	html, err := os.ReadFile(filepath.Join(dir, "test-site", "index.html"))
	assert.NoError(t, err)
	assert.Contains(t, string(html), `<section class="section section-boxed"`)
	assert.Contains(t, string(html), `<div class="element element-text" style=""><p>Hi</p></div>`)

	for _, name := range []string{"styles.css", "script.js"} {
		_, err := os.Stat(filepath.Join(dir, "test-site", name))
		assert.NoError(t, err)
	}

	var reloaded models.Site
	db.First(&reloaded, "id = ?", site.ID)
	assert.Equal(t, models.SiteStatusPublished, reloaded.Status)
}

func TestPublishUpsertsSubdomain(t *testing.T) {
	db := setupTestDB()
	site := createTestSite(db)
	saveTestStructure(t, db, site.ID)

	p := New(db, t.TempDir(), "pagefab.test")

	_, err := p.Publish(site.ID)
	assert.NoError(t, err)

	var domain models.Domain
	assert.NoError(t, db.Where("site_id = ?", site.ID).First(&domain).Error)
	assert.Equal(t, models.DomainSubdomain, domain.Type)
	assert.Equal(t, "test-site.pagefab.test", domain.Value)
	assert.Equal(t, "published", domain.PublishStatus)
	assert.NotNil(t, domain.LastPublishedAt)

	// Republish reuses the row instead of inserting a second one.
	firstPublish := *domain.LastPublishedAt
	time.Sleep(10 * time.Millisecond)
	_, err = p.Publish(site.ID)
	assert.NoError(t, err)

	var count int64
	db.Model(&models.Domain{}).Where("site_id = ?", site.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	db.Where("site_id = ?", site.ID).First(&domain)
	assert.True(t, domain.LastPublishedAt.After(firstPublish))
}

func TestRepublishOverwritesChangedBundle(t *testing.T) {
	db := setupTestDB()
	site := createTestSite(db)
	saveTestStructure(t, db, site.ID)

	dir := t.TempDir()
	p := New(db, dir, "pagefab.test")

	_, err := p.Publish(site.ID)
	assert.NoError(t, err)

	// Change the structure and publish again.
	_, err = structure.SyncStructure(db, site.ID, structure.SyncInput{
		Sections: []structure.SectionNode{
			{
				Section: models.Section{
					Layout:  models.LayoutFullWidth,
					Padding: models.Padding{Top: "0", Right: "0", Bottom: "0", Left: "0"},
				},
				Elements: []models.Element{
					{Type: models.ElementText, Props: map[string]any{"content": "<p>Updated</p>"}},
				},
			},
		},
	})
	assert.NoError(t, err)

	_, err = p.Publish(site.ID)
	assert.NoError(t, err)

	html, _ := os.ReadFile(filepath.Join(dir, "test-site", "index.html"))
	assert.Contains(t, string(html), "<p>Updated</p>")
	assert.NotContains(t, string(html), "<p>Hi</p>")
}

func TestPublishSkipsUnchangedArtifacts(t *testing.T) {
	db := setupTestDB()
	site := createTestSite(db)
	saveTestStructure(t, db, site.ID)

	dir := t.TempDir()
	p := New(db, dir, "pagefab.test")

	_, err := p.Publish(site.ID)
	assert.NoError(t, err)

	scriptPath := filepath.Join(dir, "test-site", "script.js")
	before, err := os.Stat(scriptPath)
	assert.NoError(t, err)

	// Backdate the file so an unnecessary rewrite would be visible.
	old := time.Now().Add(-time.Hour)
	assert.NoError(t, os.Chtimes(scriptPath, old, old))

	_, err = p.Publish(site.ID)
	assert.NoError(t, err)

	after, err := os.Stat(scriptPath)
	assert.NoError(t, err)
	assert.True(t, after.ModTime().Before(before.ModTime()))
}

func TestPublishUnknownSite(t *testing.T) {
	db := setupTestDB()
	p := New(db, t.TempDir(), "pagefab.test")

	_, err := p.Publish("nope")
	assert.Error(t, err)
}
