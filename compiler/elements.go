package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"pagefab/models"
)

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

// Per-element-type props schemas. Each renderer consumes only its own
// schema; missing fields fall back to documented defaults so a half-filled
// element never aborts a publish.

type textProps struct {
	Content string `json:"content"` // default ""
	Format  string `json:"format"`  // "markdown" opts into markdown rendering
}

type imageProps struct {
	Src string `json:"src"` // default ""
	Alt string `json:"alt"` // default ""
}

type buttonProps struct {
	Label  string `json:"label"`  // default "Button"
	URL    string `json:"url"`    // default "#"
	Target string `json:"target"` // default "_self"
}

type formField struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	Type     string `json:"type"` // default "text"
	Required bool   `json:"required"`
}

type formProps struct {
	Fields  []formField `json:"fields"`
	Handler string      `json:"handler"` // default "email"
}

type socialIcon struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type socialProps struct {
	Icons []socialIcon `json:"icons"`
}

type embedProps struct {
	EmbedType string `json:"embedType"` // "iframe" or raw html
	URL       string `json:"url"`
	HTML      string `json:"html"`
}

type timerProps struct {
	TargetDate string `json:"targetDate"` // empty target renders a dormant timer
}

type containerProps struct {
	Content string `json:"content"`
}

func decodeProps[T any](bag map[string]any) T {
	var out T
	if bag == nil {
		return out
	}
	data, err := json.Marshal(bag)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}

type renderFunc func(el models.Element) string

// renderers is the closed dispatch table over element types, one render
// function per variant.
var renderers = map[models.ElementType]renderFunc{
	models.ElementText:      renderText,
	models.ElementImage:     renderImage,
	models.ElementButton:    renderButton,
	models.ElementForm:      renderForm,
	models.ElementSocial:    renderSocial,
	models.ElementEmbed:     renderEmbed,
	models.ElementTimer:     renderTimer,
	models.ElementContainer: renderContainer,
}

// RenderElement renders one element to its HTML contribution. Unrecognized
// types contribute an empty string so future type additions degrade instead
// of breaking publish.
func RenderElement(el models.Element) string {
	render, ok := renderers[el.Type]
	if !ok {
		return ""
	}
	return render(el)
}

// idAttr returns the optional id attribute shared by all element types.
func idAttr(el models.Element) string {
	if id, ok := el.Props["elementId"].(string); ok && id != "" {
		return fmt.Sprintf(" id=%q", id)
	}
	return ""
}

func renderText(el models.Element) string {
	props := decodeProps[textProps](el.Props)
	content := props.Content
	if props.Format == "markdown" {
		content = renderMarkdown(content)
	}
	return fmt.Sprintf(`<div class="element element-text"%s style="%s">%s</div>`,
		idAttr(el), SerializeStyle(el.Style), content)
}

func renderImage(el models.Element) string {
	props := decodeProps[imageProps](el.Props)
	return fmt.Sprintf(`<img class="element element-image"%s src="%s" alt="%s" style="%s">`,
		idAttr(el), props.Src, props.Alt, SerializeStyle(el.Style))
}

func renderButton(el models.Element) string {
	props := decodeProps[buttonProps](el.Props)
	if props.Label == "" {
		props.Label = "Button"
	}
	if props.URL == "" {
		props.URL = "#"
	}
	if props.Target == "" {
		props.Target = "_self"
	}
	return fmt.Sprintf(`<a class="element element-button"%s href="%s" target="%s" style="%s">%s</a>`,
		idAttr(el), props.URL, props.Target, SerializeStyle(el.Style), props.Label)
}

func renderForm(el models.Element) string {
	props := decodeProps[formProps](el.Props)
	if props.Handler == "" {
		props.Handler = "email"
	}

	fields := make([]string, 0, len(props.Fields))
	for _, field := range props.Fields {
		if field.Type == "" {
			field.Type = "text"
		}
		required := ""
		if field.Required {
			required = "required"
		}
		fields = append(fields, fmt.Sprintf(`<div class="form-field">
          <label>%s</label>
          <input type="%s" name="%s" %s>
        </div>`, field.Label, field.Type, field.Name, required))
	}

	return fmt.Sprintf(`<form class="element element-form"%s style="%s" data-handler="%s">
        %s
        <button type="submit">Submit</button>
      </form>`, idAttr(el), SerializeStyle(el.Style), props.Handler, strings.Join(fields, "\n"))
}

func renderSocial(el models.Element) string {
	props := decodeProps[socialProps](el.Props)

	icons := make([]string, 0, len(props.Icons))
	for _, icon := range props.Icons {
		icons = append(icons, fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" class="social-icon social-%s">
          <span>%s</span>
        </a>`, icon.URL, icon.Platform, icon.Platform))
	}

	return fmt.Sprintf(`<div class="element element-social"%s style="%s">
        %s
      </div>`, idAttr(el), SerializeStyle(el.Style), strings.Join(icons, "\n"))
}

func renderEmbed(el models.Element) string {
	props := decodeProps[embedProps](el.Props)

	if props.EmbedType == "iframe" {
		return fmt.Sprintf(`<div class="element element-embed"%s style="%s">
          <iframe src="%s" frameborder="0" allowfullscreen></iframe>
        </div>`, idAttr(el), SerializeStyle(el.Style), props.URL)
	}
	return fmt.Sprintf(`<div class="element element-embed"%s style="%s">
          %s
        </div>`, idAttr(el), SerializeStyle(el.Style), props.HTML)
}

func renderTimer(el models.Element) string {
	props := decodeProps[timerProps](el.Props)
	return fmt.Sprintf(`<div class="element element-timer"%s style="%s" data-target="%s">
        <div class="timer-display">00:00:00</div>
      </div>`, idAttr(el), SerializeStyle(el.Style), props.TargetDate)
}

func renderContainer(el models.Element) string {
	props := decodeProps[containerProps](el.Props)
	return fmt.Sprintf(`<div class="element element-container"%s style="%s">
        %s
      </div>`, idAttr(el), SerializeStyle(el.Style), props.Content)
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// On conversion failure fall back to the raw content
		return content
	}
	return buf.String()
}
