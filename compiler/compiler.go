// Package compiler renders a site's page structure into a standalone
// static bundle: one HTML document, one stylesheet and one behavior script.
// Compile is pure and total: it performs no I/O and malformed element props
// degrade to documented defaults instead of failing a publish.
package compiler

import (
	"fmt"
	"strings"

	"pagefab/models"
	"pagefab/structure"
)

const defaultMaxWidth = "1200px"

type Bundle struct {
	HTML string
	CSS  string
	JS   string
}

func Compile(site models.Site, ps *structure.PageStructure) Bundle {
	if ps == nil {
		ps = &structure.PageStructure{}
	}

	return Bundle{
		HTML: buildHTML(site, ps),
		CSS:  buildCSS(boxedMaxWidth(ps)),
		JS:   behaviorScript,
	}
}

func boxedMaxWidth(ps *structure.PageStructure) string {
	if ps.LayoutConfig != nil && ps.LayoutConfig.MaxWidth != "" {
		return ps.LayoutConfig.MaxWidth
	}
	return defaultMaxWidth
}

// backgroundStyle maps a background config to its CSS declaration. Video
// backgrounds are accepted in stored configs but emit no declaration here.
func backgroundStyle(bg *models.BackgroundConfig) string {
	if bg == nil {
		return ""
	}

	switch bg.Type {
	case "color":
		return fmt.Sprintf("background-color: %s;", bg.Value)
	case "gradient":
		return fmt.Sprintf("background: %s;", bg.Value)
	case "image":
		return fmt.Sprintf("background-image: url('%s'); background-size: cover; background-position: center;", bg.Value)
	case "video":
		return ""
	default:
		return ""
	}
}

func renderSection(section structure.SectionNode) string {
	sectionBg := ""
	if section.BackgroundOverride != nil {
		sectionBg = backgroundStyle(section.BackgroundOverride)
	}

	elements := make([]string, 0, len(section.Elements))
	for _, element := range section.Elements {
		elements = append(elements, RenderElement(element))
	}

	paddingStyle := fmt.Sprintf("padding: %s %s %s %s;",
		section.Padding.Top, section.Padding.Right, section.Padding.Bottom, section.Padding.Left)

	return fmt.Sprintf(`
    <section class="section section-%s" style="%s%s">
      <div class="section-content">
        %s
      </div>
    </section>`, section.Layout, sectionBg, paddingStyle, strings.Join(elements, "\n"))
}

func buildHTML(site models.Site, ps *structure.PageStructure) string {
	settings := site.Settings

	sections := make([]string, 0, len(ps.Sections))
	for _, section := range ps.Sections {
		sections = append(sections, renderSection(section))
	}

	metaTags := make([]string, 0, len(settings.MetaTags))
	for _, tag := range settings.MetaTags {
		metaTags = append(metaTags, "  "+tag)
	}

	faviconTag := ""
	if settings.FaviconURL != "" {
		faviconTag = fmt.Sprintf(`  <link rel="icon" type="image/png" href="%s">`, settings.FaviconURL)
	}

	analyticsScript := ""
	if settings.AnalyticsID != "" {
		analyticsScript = fmt.Sprintf(`
  <script async src="https://www.googletagmanager.com/gtag/js?id=%s"></script>
  <script>
    window.dataLayer = window.dataLayer || [];
    function gtag(){dataLayer.push(arguments);}
    gtag('js', new Date());
    gtag('config', '%s');
  </script>`, settings.AnalyticsID, settings.AnalyticsID)
	}

	title := settings.Title
	if title == "" {
		title = site.Name
	}

	language := settings.Language
	if language == "" {
		language = "en"
	}

	ogImage := ""
	if settings.SocialPreviewImage != "" {
		ogImage = fmt.Sprintf(`<meta property="og:image" content="%s">`, settings.SocialPreviewImage)
	}
	ogTags := fmt.Sprintf(`
  <meta property="og:title" content="%s">
  <meta property="og:description" content="%s">
  %s
  <meta property="og:type" content="website">`, title, settings.Description, ogImage)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <meta name="description" content="%s">
%s
%s
%s
  <link rel="stylesheet" href="styles.css">
%s
</head>
<body style="%s">
  <div class="page-container">
%s
  </div>
  <script src="script.js"></script>
</body>
</html>`,
		language,
		title,
		settings.Description,
		strings.Join(metaTags, "\n"),
		ogTags,
		faviconTag,
		analyticsScript,
		backgroundStyle(ps.BackgroundConfig),
		strings.Join(sections, "\n"))
}
