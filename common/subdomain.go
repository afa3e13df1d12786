package common

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SubdomainMiddleware handles subdomain routing for published sites.
// Converts slug.{base} requests to /@/slug format and re-dispatches them
// through the engine, since routing has already been resolved by the time
// middleware run.
func SubdomainMiddleware(engine *gin.Engine, base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Already a bundle path, either direct or re-dispatched.
		if strings.HasPrefix(c.Request.URL.Path, "/@/") {
			c.Next()
			return
		}

		host := c.Request.Host

		// Remove port if present (for local development)
		if strings.Contains(host, ":") {
			host = strings.Split(host, ":")[0]
		}

		if !strings.HasSuffix(host, "."+base) {
			c.Next()
			return
		}
		slug := strings.TrimSuffix(host, "."+base)

		// Skip reserved subdomains - only rewrite published site slugs
		if slug == "" || strings.Contains(slug, ".") ||
			slug == "www" || slug == "admin" || slug == "api" ||
			slug == "mail" || slug == "ftp" || slug == "smtp" {
			c.Next()
			return
		}

		c.Request.URL.Path = "/@/" + slug + c.Request.URL.Path
		engine.HandleContext(c)
		c.Abort()
	}
}
