package compiler

import (
	"regexp"
	"strings"

	"pagefab/models"
)

var upperRe = regexp.MustCompile(`([A-Z])`)

// SerializeStyle turns a style bag into an inline CSS string, converting
// camelCase property names to kebab-case and keeping declaration order:
// {backgroundColor: #fff, fontSize: 16px} -> "background-color: #fff; font-size: 16px".
// Shared by every element renderer.
func SerializeStyle(style models.StyleMap) string {
	if len(style) == 0 {
		return ""
	}

	parts := make([]string, 0, len(style))
	for _, prop := range style {
		name := strings.ToLower(upperRe.ReplaceAllString(prop.Name, "-$1"))
		parts = append(parts, name+": "+prop.Value)
	}
	return strings.Join(parts, "; ")
}
