package widgets

import (
	"html/template"
	"strconv"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/view"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

var layoutTemplates = map[string]string{
	"container": `<div class="uir-container uir-{{ layout }}" style="display:flex;flex-direction:{{ direction }};gap:{{ gap }}px;padding:{{ padding }}px">{{ children|safe }}</div>`,

	"row": `<div class="uir-row" style="display:flex;flex-direction:row;gap:{{ gap }}px;align-items:{{ align }}">{{ children|safe }}</div>`,

	"column": `<div class="uir-column" style="display:flex;flex-direction:column;gap:{{ gap }}px{% if span %};flex:{{ span }}{% endif %}">{{ children|safe }}</div>`,

	"card": `<article class="uir-card">` +
		`{% if title %}<header class="uir-card-header"><h3>{{ title }}</h3>{% if subtitle %}<p class="uir-card-subtitle">{{ subtitle }}</p>{% endif %}</header>{% endif %}` +
		`<div class="uir-card-body">{% if content %}<p>{{ content }}</p>{% endif %}{{ children|safe }}</div>` +
		`{% if footer %}<footer class="uir-card-footer">{{ footer }}</footer>{% endif %}` +
		`</article>`,

	"grid": `<div class="uir-grid" style="display:grid;grid-template-columns:repeat({{ columns }}, minmax(0, 1fr));gap:{{ gap }}px">{{ children|safe }}</div>`,

	"section": `<section class="uir-section">` +
		`{% if heading %}<h2 class="uir-section-heading">{{ heading }}</h2>{% endif %}` +
		`{% if description %}<p class="uir-section-description">{{ description }}</p>{% endif %}` +
		`{{ children|safe }}</section>`,

	"tabs": `<div class="uir-tabs">` +
		`<ul class="uir-tab-list" role="tablist">{% for tab in tabs %}<li role="tab" data-index="{{ tab.index }}" aria-selected="{% if tab.active %}true{% else %}false{% endif %}">{{ tab.label }}</li>{% endfor %}</ul>` +
		`{% for tab in tabs %}<div class="uir-tab-panel" role="tabpanel" data-index="{{ tab.index }}"{% if not tab.active %} hidden{% endif %}>{{ tab.body|safe }}</div>{% endfor %}` +
		`</div>`,
}

// Layout returns the layout capability module
func Layout() registry.Module {
	return module{
		name: "layout",
		entries: []types.Entry{
			{
				Identifier:     "container",
				Capability:     container,
				Category:       types.CategoryLayout,
				Tags:           []string{"flex", "stack"},
				Description:    "Stacks children vertically or horizontally",
				PropertySchema: map[string]string{"layout": "vertical|horizontal", "gap": "number", "padding": "number"},
			},
			{
				Identifier:     "row",
				Capability:     row,
				Category:       types.CategoryLayout,
				Tags:           []string{"flex", "horizontal"},
				Description:    "Lays children out in a horizontal row",
				PropertySchema: map[string]string{"gap": "number", "align": "start|center|end|stretch"},
			},
			{
				Identifier:     "column",
				Capability:     column,
				Category:       types.CategoryLayout,
				Tags:           []string{"flex", "vertical"},
				Description:    "Lays children out in a vertical column",
				PropertySchema: map[string]string{"gap": "number", "span": "number"},
			},
			{
				Identifier:     "card",
				Capability:     card,
				Category:       types.CategoryLayout,
				Tags:           []string{"surface", "panel"},
				Description:    "Bordered surface with optional header and footer",
				PropertySchema: map[string]string{"title": "string", "subtitle": "string", "content": "string", "footer": "string"},
			},
			{
				Identifier:     "grid",
				Capability:     grid,
				Category:       types.CategoryLayout,
				Tags:           []string{"grid"},
				Description:    "Places children on an evenly sized column grid",
				PropertySchema: map[string]string{"columns": "number", "gap": "number"},
			},
			{
				Identifier:     "section",
				Capability:     section,
				Category:       types.CategoryLayout,
				Tags:           []string{"group"},
				Description:    "Titled group of children",
				PropertySchema: map[string]string{"title": "string", "description": "string"},
			},
			{
				Identifier:     "tabs",
				Capability:     tabs,
				Category:       types.CategoryLayout,
				Tags:           []string{"navigation", "panels"},
				Description:    "Shows one child panel at a time behind a tab list",
				PropertySchema: map[string]string{"labels": "array", "active": "number"},
			},
		},
	}
}

func container(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	layout := oneOf(getString(props, "vertical", "layout", "direction"), "vertical", "vertical", "horizontal")
	direction := "column"
	if layout == "horizontal" {
		direction = "row"
	}
	return render("container", view.Context{
		"layout":    layout,
		"direction": direction,
		"gap":       getInt(props, "gap", 8, 0, 256),
		"padding":   getInt(props, "padding", 0, 0, 256),
		"children":  childrenHTML(children),
	})
}

func row(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("row", view.Context{
		"gap":      getInt(props, "gap", 8, 0, 256),
		"align":    oneOf(getString(props, "stretch", "align"), "stretch", "start", "center", "end", "stretch"),
		"children": childrenHTML(children),
	})
}

func column(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("column", view.Context{
		"gap":      getInt(props, "gap", 8, 0, 256),
		"span":     getInt(props, "span", 0, 0, 12),
		"children": childrenHTML(children),
	})
}

func card(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("card", view.Context{
		"title":    getString(props, "", "title"),
		"subtitle": getString(props, "", "subtitle"),
		"content":  getString(props, "", "content", "text"),
		"footer":   getString(props, "", "footer"),
		"children": childrenHTML(children),
	})
}

func grid(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("grid", view.Context{
		"columns":  getInt(props, "columns", 2, 1, 12),
		"gap":      getInt(props, "gap", 12, 0, 256),
		"children": childrenHTML(children),
	})
}

func section(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("section", view.Context{
		"heading":     getString(props, "", "title", "heading"),
		"description": getString(props, "", "description"),
		"children":    childrenHTML(children),
	})
}

// tabs labels panels from the labels prop, falling back to the child
// component name and then to its position
func tabs(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	if len(children) == 0 {
		return emptyState("No tabs"), nil
	}
	labels := getArray(props, "labels", "tabs")
	active := getInt(props, "active", 0, 0, len(children)-1)

	items := make([]map[string]any, len(children))
	for i, child := range children {
		label := ""
		if i < len(labels) {
			label = labelOf(labels[i])
		}
		if label == "" {
			label = child.Identifier
		}
		if label == "" {
			label = "Tab " + strconv.Itoa(i+1)
		}
		items[i] = map[string]any{
			"index":  i,
			"label":  label,
			"active": i == active,
			"body":   string(child.HTML),
		}
	}
	return render("tabs", view.Context{"tabs": items})
}
