package widgets

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/view"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

var contentTemplates = map[string]string{
	"text": `<p class="uir-text uir-text-{{ variant }}">{{ content }}</p>`,

	"heading": `<h{{ level }} class="uir-heading">{{ text }}</h{{ level }}>`,

	"alert": `<div class="uir-alert uir-alert-{{ variant }}" role="{% if variant == "error" or variant == "warning" %}alert{% else %}status{% endif %}">` +
		`{% if title %}<strong class="uir-alert-title">{{ title }}</strong>{% endif %}` +
		`{% if message %}<p class="uir-alert-message">{{ message }}</p>{% endif %}` +
		`{{ children|safe }}</div>`,

	"code": `<pre class="uir-code"{% if language %} data-language="{{ language }}"{% endif %}><code>{{ code }}</code></pre>`,

	"html": `<div class="uir-html">{{ markup|safe }}</div>`,

	"image": `<figure class="uir-image">{{ img|safe }}{% if caption %}<figcaption>{{ caption }}</figcaption>{% endif %}</figure>`,

	"image_tag": `<img src="{{ src }}" alt="{{ alt }}"{% if width %} width="{{ width }}"{% endif %}{% if height %} height="{{ height }}"{% endif %}>`,

	"divider": `<hr class="uir-divider{% if label %} uir-divider-labeled{% endif %}"{% if label %} data-label="{{ label }}"{% endif %}>`,

	"badge": `<span class="uir-badge uir-badge-{{ variant }}">{{ label }}</span>`,
}

var (
	// ugcPolicy cleans agent-supplied markup
	ugcPolicy = bluemonday.UGCPolicy()
	// imagePolicy keeps a single img element with safe attributes
	imagePolicy = newImagePolicy()
)

func newImagePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowDataURIImages()
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("width", "height").Matching(bluemonday.Integer).OnElements("img")
	return p
}

// Content returns the content capability module
func Content() registry.Module {
	return module{
		name: "content",
		entries: []types.Entry{
			{
				Identifier:     "text",
				Capability:     text,
				Category:       types.CategoryContent,
				Tags:           []string{"typography", "paragraph"},
				Description:    "Paragraph of plain text",
				PropertySchema: map[string]string{"content": "string", "variant": "body|caption|muted|strong"},
			},
			{
				Identifier:     "heading",
				Capability:     heading,
				Category:       types.CategoryContent,
				Tags:           []string{"typography", "title"},
				Description:    "Section heading, levels 1 to 6",
				PropertySchema: map[string]string{"text": "string", "level": "number"},
			},
			{
				Identifier:     "alert",
				Capability:     alert,
				Category:       types.CategoryContent,
				Tags:           []string{"feedback", "status"},
				Description:    "Highlighted message with a severity",
				PropertySchema: map[string]string{"variant": "info|success|warning|error", "title": "string", "message": "string"},
			},
			{
				Identifier:     "code",
				Capability:     code,
				Category:       types.CategoryContent,
				Tags:           []string{"preformatted", "source"},
				Description:    "Preformatted source code block",
				PropertySchema: map[string]string{"code": "string", "language": "string"},
			},
			{
				Identifier:     "html",
				Capability:     rawHTML,
				Category:       types.CategoryContent,
				Tags:           []string{"markup", "rich-text"},
				Description:    "Sanitized free-form HTML",
				PropertySchema: map[string]string{"html": "string"},
			},
			{
				Identifier:     "image",
				Capability:     image,
				Category:       types.CategoryContent,
				Tags:           []string{"media"},
				Description:    "Image with optional caption",
				PropertySchema: map[string]string{"src": "url", "alt": "string", "caption": "string", "width": "number", "height": "number"},
			},
			{
				Identifier:  "divider",
				Capability:  divider,
				Category:    types.CategoryContent,
				Tags:        []string{"separator"},
				Description: "Horizontal rule",
			},
			{
				Identifier:     "badge",
				Capability:     badge,
				Category:       types.CategoryContent,
				Tags:           []string{"label", "status"},
				Description:    "Small inline label",
				PropertySchema: map[string]string{"label": "string", "variant": "neutral|info|success|warning|error"},
			},
		},
	}
}

func text(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	content := getString(props, "", "content", "text", "value")
	if content == "" && len(children) == 0 {
		return "", nil
	}
	body, err := render("text", view.Context{
		"variant": oneOf(getString(props, "body", "variant"), "body", "body", "caption", "muted", "strong"),
		"content": content,
	})
	return body + template.HTML(childrenHTML(children)), err
}

func heading(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("heading", view.Context{
		"level": getInt(props, "level", 2, 1, 6),
		"text":  getString(props, "", "text", "content", "title"),
	})
}

func alert(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("alert", view.Context{
		"variant":  oneOf(getString(props, "info", "variant", "severity"), "info", "info", "success", "warning", "error"),
		"title":    getString(props, "", "title"),
		"message":  getString(props, "", "message", "content", "text"),
		"children": childrenHTML(children),
	})
}

func code(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("code", view.Context{
		"language": getString(props, "", "language", "lang"),
		"code":     getString(props, "", "code", "content"),
	})
}

func rawHTML(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	markup := getString(props, "", "html", "content", "markup")
	return render("html", view.Context{"markup": ugcPolicy.Sanitize(markup)})
}

func image(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	src := getString(props, "", "src", "url")
	if src == "" {
		return emptyState("No image"), nil
	}
	tag, err := render("image_tag", view.Context{
		"src":    src,
		"alt":    getString(props, "", "alt", "caption"),
		"width":  getInt(props, "width", 0, 0, 4096),
		"height": getInt(props, "height", 0, 0, 4096),
	})
	if err != nil {
		return "", err
	}
	return render("image", view.Context{
		"img":     imagePolicy.Sanitize(string(tag)),
		"caption": getString(props, "", "caption"),
	})
}

func divider(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("divider", view.Context{"label": getString(props, "", "label")})
}

func badge(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	label := getString(props, "", "label", "text", "content", "value")
	if label == "" {
		return "", nil
	}
	return render("badge", view.Context{
		"label":   label,
		"variant": oneOf(getString(props, "neutral", "variant"), "neutral", "neutral", "info", "success", "warning", "error"),
	})
}
