package widgets

import (
	"html/template"
	"strings"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/view"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

var inputTemplates = map[string]string{
	"button": `<button type="{{ type }}" class="uir-button uir-button-{{ variant }}"` +
		`{% if action %} data-action="{{ action }}"{% endif %}{% if disabled %} disabled{% endif %}>{{ label }}</button>`,

	"input": `<label class="uir-field">{% if label %}<span class="uir-field-label">{{ label }}</span>{% endif %}` +
		`<input type="{{ type }}"{% if name %} name="{{ name }}"{% endif %}{% if placeholder %} placeholder="{{ placeholder }}"{% endif %}` +
		`{% if value %} value="{{ value }}"{% endif %}{% if required %} required{% endif %}></label>`,

	"form": `<form class="uir-form" method="{{ method }}"{% if action %} action="{{ action }}"{% endif %}>` +
		`{% if title %}<h3 class="uir-form-title">{{ title }}</h3>{% endif %}` +
		`{{ children|safe }}` +
		`<button type="submit" class="uir-button uir-button-primary">{{ submit }}</button></form>`,

	"select": `<label class="uir-field">{% if label %}<span class="uir-field-label">{{ label }}</span>{% endif %}` +
		`<select{% if name %} name="{{ name }}"{% endif %}>` +
		`{% if placeholder %}<option value="" disabled{% if not has_selection %} selected{% endif %}>{{ placeholder }}</option>{% endif %}` +
		`{% for opt in options %}<option value="{{ opt.value }}"{% if opt.selected %} selected{% endif %}>{{ opt.label }}</option>{% endfor %}` +
		`</select></label>`,

	"checkbox": `<label class="uir-checkbox"><input type="checkbox"{% if name %} name="{{ name }}"{% endif %}{% if checked %} checked{% endif %}>` +
		`{% if label %}<span>{{ label }}</span>{% endif %}</label>`,
}

var inputTypes = []string{"text", "email", "password", "number", "date", "search", "tel", "url", "textarea"}

// Input returns the form input capability module
func Input() registry.Module {
	return module{
		name: "input",
		entries: []types.Entry{
			{
				Identifier:     "button",
				Capability:     button,
				Category:       types.CategoryInput,
				Tags:           []string{"action"},
				Description:    "Clickable button bound to an action name",
				PropertySchema: map[string]string{"label": "string", "action": "string", "variant": "primary|secondary|danger", "disabled": "boolean"},
			},
			{
				Identifier:     "input",
				Capability:     input,
				Category:       types.CategoryInput,
				Tags:           []string{"field", "text"},
				Description:    "Labelled single-line input field",
				PropertySchema: map[string]string{"name": "string", "label": "string", "inputType": "string", "placeholder": "string", "value": "string"},
			},
			{
				Identifier:     "form",
				Capability:     form,
				Category:       types.CategoryInput,
				Tags:           []string{"field", "submit"},
				Description:    "Form wrapping child fields with a submit button",
				PropertySchema: map[string]string{"action": "url", "method": "get|post", "submitLabel": "string"},
			},
			{
				Identifier:     "select",
				Capability:     selectField,
				Category:       types.CategoryInput,
				Tags:           []string{"field", "choice"},
				Description:    "Drop-down choice from a list of options",
				PropertySchema: map[string]string{"name": "string", "label": "string", "options": "array", "value": "string"},
			},
			{
				Identifier:     "checkbox",
				Capability:     checkbox,
				Category:       types.CategoryInput,
				Tags:           []string{"field", "toggle"},
				Description:    "Labelled checkbox",
				PropertySchema: map[string]string{"name": "string", "label": "string", "checked": "boolean"},
			},
		},
	}
}

func button(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("button", view.Context{
		"type":     oneOf(getString(props, "button", "type", "buttonType"), "button", "button", "submit", "reset"),
		"variant":  oneOf(getString(props, "primary", "variant"), "primary", "primary", "secondary", "danger", "link"),
		"label":    getString(props, "Button", "label", "text", "content"),
		"action":   getString(props, "", "action", "onClick"),
		"disabled": getBool(props, "disabled", false),
	})
}

func input(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("input", view.Context{
		"type":        oneOf(getString(props, "text", "inputType", "type"), "text", inputTypes...),
		"name":        getString(props, "", "name", "id"),
		"label":       getString(props, "", "label"),
		"placeholder": getString(props, "", "placeholder"),
		"value":       getString(props, "", "value", "defaultValue"),
		"required":    getBool(props, "required", false),
	})
}

func form(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("form", view.Context{
		"method":   oneOf(getString(props, "post", "method"), "post", "get", "post"),
		"action":   safeURL(getString(props, "", "action")),
		"title":    getString(props, "", "title"),
		"submit":   getString(props, "Submit", "submitLabel", "submitText"),
		"children": childrenHTML(children),
	})
}

func selectField(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	selected := getString(props, "", "value", "defaultValue")
	raw := getArray(props, "options", "items")

	options := make([]map[string]any, 0, len(raw))
	hasSelection := false
	for _, item := range raw {
		value, label := "", ""
		if obj, ok := item.(map[string]any); ok {
			value = getString(obj, "", "value", "id", "key")
			label = getString(obj, value, "label", "text", "name")
		} else {
			value = formatValue(item)
			label = value
		}
		if value == "" && label == "" {
			continue
		}
		if value == "" {
			value = label
		}
		isSelected := selected != "" && strings.EqualFold(value, selected)
		hasSelection = hasSelection || isSelected
		options = append(options, map[string]any{"value": value, "label": label, "selected": isSelected})
	}

	return render("select", view.Context{
		"name":          getString(props, "", "name", "id"),
		"label":         getString(props, "", "label"),
		"placeholder":   getString(props, "", "placeholder"),
		"options":       options,
		"has_selection": hasSelection,
	})
}

func checkbox(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	return render("checkbox", view.Context{
		"name":    getString(props, "", "name", "id"),
		"label":   getString(props, "", "label", "text"),
		"checked": getBool(props, "checked", false) || getBool(props, "value", false),
	})
}
