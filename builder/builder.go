// Package builder exposes the site CRUD, structure save and publish
// operations over HTTP. Handlers stay thin: ownership gating plus calls
// into the structure and publisher packages.
package builder

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pagefab/auth"
	"pagefab/models"
	"pagefab/publisher"
	"pagefab/structure"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

type BuilderModule struct {
	db        *gorm.DB
	auth      *auth.AuthModule
	publisher *publisher.Publisher
}

func NewBuilderModule(db *gorm.DB, authModule *auth.AuthModule, pub *publisher.Publisher) *BuilderModule {
	return &BuilderModule{
		db:        db,
		auth:      authModule,
		publisher: pub,
	}
}

func (b *BuilderModule) RegisterRoutes(router *gin.Engine) {
	sites := router.Group("/api/sites")
	sites.Use(b.auth.RequireAuth)
	{
		sites.POST("", b.createSite)
		sites.GET("", b.listSites)

		withSite := sites.Group("/:siteId")
		withSite.Use(b.loadSite)
		{
			withSite.GET("", b.getSite)
			withSite.PUT("", b.updateSite)
			withSite.DELETE("", b.deleteSite)
			withSite.GET("/structure", b.getStructure)
			withSite.PUT("/structure", b.updateStructure)
			withSite.POST("/publish", b.publish)
		}
	}

	// Published bundles, also reachable via the subdomain rewrite.
	router.GET("/@/:slug", b.servePublished)
	router.GET("/@/:slug/*file", b.servePublished)
}

// loadSite resolves the site and enforces ownership. Non-owned sites are
// reported as not found, never as forbidden.
func (b *BuilderModule) loadSite(c *gin.Context) {
	userID := c.GetInt("user_id")
	siteID := c.Param("siteId")

	var site models.Site
	if err := b.db.Where("id = ? AND user_id = ?", siteID, userID).First(&site).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		c.Abort()
		return
	}

	c.Set("site", &site)
	c.Next()
}

func (b *BuilderModule) site(c *gin.Context) *models.Site {
	return c.MustGet("site").(*models.Site)
}

type createSiteRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (b *BuilderModule) createSite(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req createSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and slug are required"})
		return
	}
	if !slugRe.MatchString(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must contain only lowercase letters, numbers, and hyphens"})
		return
	}

	var existing models.Site
	if err := b.db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already taken"})
		return
	}

	site := models.Site{
		UserID: userID,
		Name:   req.Name,
		Slug:   req.Slug,
		Status: models.SiteStatusDraft,
	}

	// A site starts with its single empty page; both rows or neither.
	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&site).Error; err != nil {
			return err
		}
		return tx.Create(&models.Page{SiteID: site.ID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create site"})
		return
	}

	c.JSON(http.StatusCreated, site)
}

func (b *BuilderModule) listSites(c *gin.Context) {
	userID := c.GetInt("user_id")

	var sites []models.Site
	if err := b.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sites"})
		return
	}

	c.JSON(http.StatusOK, sites)
}

func (b *BuilderModule) getSite(c *gin.Context) {
	c.JSON(http.StatusOK, b.site(c))
}

type updateSiteRequest struct {
	Name     *string              `json:"name"`
	Slug     *string              `json:"slug"`
	Status   *models.SiteStatus   `json:"status"`
	Settings *models.SiteSettings `json:"settings"`
}

func (b *BuilderModule) updateSite(c *gin.Context) {
	site := b.site(c)

	var req updateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must not be empty"})
			return
		}
		site.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != site.Slug {
		if !slugRe.MatchString(*req.Slug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must contain only lowercase letters, numbers, and hyphens"})
			return
		}
		var existing models.Site
		if err := b.db.Where("slug = ?", *req.Slug).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already taken"})
			return
		}
		site.Slug = *req.Slug
	}
	if req.Status != nil {
		if *req.Status != models.SiteStatusDraft && *req.Status != models.SiteStatusPublished {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		site.Status = *req.Status
	}
	if req.Settings != nil {
		site.Settings = *req.Settings
	}

	if err := b.db.Save(site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update site"})
		return
	}

	c.JSON(http.StatusOK, site)
}

func (b *BuilderModule) deleteSite(c *gin.Context) {
	site := b.site(c)

	err := b.db.Transaction(func(tx *gorm.DB) error {
		var page models.Page
		if err := tx.Where("site_id = ?", site.ID).First(&page).Error; err == nil {
			var sections []models.Section
			if err := tx.Where("page_id = ?", page.ID).Find(&sections).Error; err != nil {
				return err
			}
			for _, section := range sections {
				if err := tx.Where("section_id = ?", section.ID).Delete(&models.Element{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("page_id = ?", page.ID).Delete(&models.Section{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&page).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("site_id = ?", site.ID).Delete(&models.Domain{}).Error; err != nil {
			return err
		}
		return tx.Delete(site).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete site"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (b *BuilderModule) getStructure(c *gin.Context) {
	site := b.site(c)

	ps, err := structure.GetStructure(b.db, site.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	c.JSON(http.StatusOK, ps)
}

func (b *BuilderModule) updateStructure(c *gin.Context) {
	site := b.site(c)

	var input structure.SyncInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ps, err := structure.SyncStructure(b.db, site.ID, input)
	if err != nil {
		if errors.Is(err, structure.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save structure"})
		return
	}

	c.JSON(http.StatusOK, ps)
}

func (b *BuilderModule) publish(c *gin.Context) {
	site := b.site(c)

	result, err := b.publisher.Publish(site.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish site"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// servePublished serves a file from a slug's published bundle. Only plain
// file names are honored, so a request can never escape the bundle dir.
func (b *BuilderModule) servePublished(c *gin.Context) {
	slug := c.Param("slug")
	if !slugRe.MatchString(slug) {
		c.Status(http.StatusNotFound)
		return
	}

	name := filepath.Base(c.Param("file"))
	if name == "." || name == "/" || name == "" {
		name = "index.html"
	}

	path := filepath.Join(b.publisher.BundleDir(slug), name)
	if _, err := os.Stat(path); err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.File(path)
}
