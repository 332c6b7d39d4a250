package renderer

import (
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/view"
)

const (
	tmplNode        = "node"
	tmplFallback    = "fallback"
	tmplError       = "error"
	tmplDepth       = "depth"
	tmplDocument    = "document"
	tmplPage        = "page"
	placeholderBase = "uir-placeholder"
)

var templates = map[string]string{
	tmplNode: `<div class="uir-node" data-key="{{ key }}" data-component="{{ identifier }}">{{ body|safe }}</div>`,

	tmplFallback: `<div class="` + placeholderBase + ` uir-fallback" role="note" data-key="{{ key }}" data-component="{{ identifier }}" data-status="fallback">` +
		`<strong class="uir-placeholder-title">Unknown component: {{ identifier|default:"(none)" }}</strong>` +
		`<p class="uir-placeholder-catalog">{{ registered }} components registered` +
		`{% if categories %} in {{ categories|join:", " }}{% endif %}</p>` +
		`{% if properties %}<pre class="uir-placeholder-props">{{ properties }}</pre>{% endif %}` +
		`</div>`,

	tmplError: `<div class="` + placeholderBase + ` uir-error" role="alert" data-key="{{ key }}" data-component="{{ identifier }}" data-status="error">` +
		`<strong class="uir-placeholder-title">Failed to render {{ identifier }}</strong>` +
		`<p class="uir-placeholder-message">{{ message }}</p>` +
		`{% if trace %}<details><summary>Trace</summary><pre class="uir-placeholder-trace">{{ trace }}</pre></details>{% endif %}` +
		`</div>`,

	tmplDepth: `<div class="` + placeholderBase + ` uir-depth" role="note" data-key="{{ key }}" data-component="{{ identifier }}" data-status="error">` +
		`<strong class="uir-placeholder-title">{{ message }}</strong>` +
		`</div>`,

	tmplDocument: `<div class="uir-document">{% for fragment in fragments %}{{ fragment|safe }}{% endfor %}</div>`,

	tmplPage: `<!DOCTYPE html><html><head><meta charset="utf-8"><title>{{ title }}</title></head>` +
		`<body>{{ body|safe }}</body></html>`,
}

func newEngine() *view.Engine {
	engine := view.New("renderer")
	if err := engine.RegisterAll(templates); err != nil {
		panic(err)
	}
	return engine
}
