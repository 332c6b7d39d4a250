package widgets

import (
	"html/template"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/view"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

var dataTemplates = map[string]string{
	"list": `<{{ tag }} class="uir-list">` +
		`{% for item in items %}<li>{% if item.html %}{{ item.html|safe }}{% else %}<span class="uir-list-label">{{ item.label }}</span>{% if item.description %}<span class="uir-list-description">{{ item.description }}</span>{% endif %}{% endif %}</li>{% endfor %}` +
		`</{{ tag }}>`,

	"table": `<table class="uir-table">{% if caption %}<caption>{{ caption }}</caption>{% endif %}` +
		`<thead><tr>{% for col in columns %}<th scope="col">{{ col.label }}</th>{% endfor %}</tr></thead>` +
		`<tbody>{% for row in rows %}<tr>{% for cell in row %}<td>{{ cell }}</td>{% endfor %}</tr>{% endfor %}</tbody>` +
		`</table>`,

	"stat": `<div class="uir-stat">` +
		`<span class="uir-stat-label">{{ label }}</span>` +
		`<span class="uir-stat-value">{{ value }}{% if unit %}<small class="uir-stat-unit">{{ unit }}</small>{% endif %}</span>` +
		`{% if delta %}<span class="uir-stat-delta uir-stat-{{ trend }}">{{ delta }}</span>{% endif %}` +
		`</div>`,

	"chart": `<figure class="uir-chart" data-kind="{{ kind }}">` +
		`{% if title %}<figcaption>{{ title }}</figcaption>{% endif %}` +
		`<ol class="uir-chart-bars">{% for bar in bars %}<li data-value="{{ bar.value }}"><span class="uir-chart-label">{{ bar.label }}</span><span class="uir-chart-bar" style="width:{{ bar.percent }}%"></span><span class="uir-chart-value">{{ bar.value }}</span></li>{% endfor %}</ol>` +
		`<dl class="uir-chart-summary">` +
		`<dt>Min</dt><dd data-stat="min">{{ summary.min }}</dd>` +
		`<dt>Max</dt><dd data-stat="max">{{ summary.max }}</dd>` +
		`<dt>Mean</dt><dd data-stat="mean">{{ summary.mean }}</dd>` +
		`<dt>Std dev</dt><dd data-stat="stddev">{{ summary.stddev }}</dd>` +
		`</dl></figure>`,

	"keyvalue": `<dl class="uir-keyvalue">{% for pair in pairs %}<dt>{{ pair.key }}</dt><dd>{{ pair.value }}</dd>{% endfor %}</dl>`,
}

// Data returns the data display capability module
func Data() registry.Module {
	return module{
		name: "data",
		entries: []types.Entry{
			{
				Identifier:     "list",
				Capability:     list,
				Category:       types.CategoryData,
				Tags:           []string{"collection"},
				Description:    "Bulleted or numbered list of items and children",
				PropertySchema: map[string]string{"items": "array", "ordered": "boolean"},
			},
			{
				Identifier:     "table",
				Capability:     table,
				Category:       types.CategoryData,
				Tags:           []string{"collection", "tabular"},
				Description:    "Table of rows given as arrays or objects",
				PropertySchema: map[string]string{"columns": "array", "rows": "array", "caption": "string"},
			},
			{
				Identifier:     "stat",
				Capability:     statistic,
				Category:       types.CategoryData,
				Tags:           []string{"metric", "kpi"},
				Description:    "Single headline number with optional change",
				PropertySchema: map[string]string{"label": "string", "value": "number|string", "delta": "number", "unit": "string"},
			},
			{
				Identifier:     "chart",
				Capability:     chart,
				Category:       types.CategoryData,
				Tags:           []string{"visualization", "series"},
				Description:    "Bar list of a numeric series with summary statistics",
				PropertySchema: map[string]string{"data": "array", "labels": "array", "title": "string", "kind": "bar|line"},
			},
			{
				Identifier:     "keyvalue",
				Capability:     keyValue,
				Category:       types.CategoryData,
				Tags:           []string{"details", "properties"},
				Description:    "Definition list of labelled values",
				PropertySchema: map[string]string{"items": "object|array"},
			},
		},
	}
}

func list(props map[string]any, children []types.Output, _ types.RenderFunc) (template.HTML, error) {
	raw := getArray(props, "items", "data")
	items := make([]map[string]any, 0, len(raw)+len(children))
	for _, item := range raw {
		entry := map[string]any{"label": labelOf(item)}
		if obj, ok := item.(map[string]any); ok {
			entry["description"] = getString(obj, "", "description", "subtitle")
		}
		items = append(items, entry)
	}
	for _, fragment := range fragments(children) {
		items = append(items, map[string]any{"html": fragment})
	}
	if len(items) == 0 {
		return emptyState("No items"), nil
	}

	tag := "ul"
	if getBool(props, "ordered", false) {
		tag = "ol"
	}
	return render("list", view.Context{"tag": tag, "items": items})
}

type tableColumn struct {
	Key   string
	Label string
}

func table(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	rawRows := getArray(props, "rows", "data")
	columns := tableColumns(getArray(props, "columns", "headers"), rawRows)
	if len(columns) == 0 || len(rawRows) == 0 {
		return emptyState("No data"), nil
	}

	rows := make([][]string, 0, len(rawRows))
	for _, raw := range rawRows {
		cells := make([]string, len(columns))
		switch r := raw.(type) {
		case []any:
			for i := range columns {
				if i < len(r) {
					cells[i] = formatValue(r[i])
				}
			}
		case map[string]any:
			for i, col := range columns {
				cells[i] = formatValue(r[col.Key])
			}
		default:
			cells[0] = formatValue(r)
		}
		rows = append(rows, cells)
	}

	cols := make([]map[string]any, len(columns))
	for i, c := range columns {
		cols[i] = map[string]any{"key": c.Key, "label": c.Label}
	}
	return render("table", view.Context{
		"caption": getString(props, "", "caption", "title"),
		"columns": cols,
		"rows":    rows,
	})
}

// tableColumns reads declared columns, or derives them from the sorted
// union of object row keys
func tableColumns(declared []any, rows []any) []tableColumn {
	var columns []tableColumn
	for _, c := range declared {
		switch v := c.(type) {
		case map[string]any:
			key := getString(v, "", "key", "field", "name")
			columns = append(columns, tableColumn{Key: key, Label: getString(v, key, "label", "title")})
		default:
			name := formatValue(v)
			columns = append(columns, tableColumn{Key: name, Label: name})
		}
	}
	if len(columns) > 0 {
		return columns
	}

	seen := make(map[string]struct{})
	width := 0
	for _, row := range rows {
		switch r := row.(type) {
		case map[string]any:
			for k := range r {
				seen[k] = struct{}{}
			}
		case []any:
			if len(r) > width {
				width = len(r)
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		columns = append(columns, tableColumn{Key: k, Label: k})
	}
	for i := len(columns); i < width; i++ {
		label := "Column " + strconv.Itoa(i+1)
		columns = append(columns, tableColumn{Key: label, Label: label})
	}
	return columns
}

func statistic(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	trend, delta := "flat", ""
	if d, ok := getNumber(props, "delta"); ok {
		switch {
		case d > 0:
			trend, delta = "up", "+"+formatValue(d)
		case d < 0:
			trend, delta = "down", formatValue(d)
		default:
			delta = "0"
		}
	}
	return render("stat", view.Context{
		"label": getString(props, "", "label", "title"),
		"value": getString(props, "—", "value"),
		"unit":  getString(props, "", "unit"),
		"delta": delta,
		"trend": trend,
	})
}

// seriesSummary holds formatted descriptive statistics
type seriesSummary struct {
	Min, Max, Mean, StdDev float64
}

func summarize(values []float64) seriesSummary {
	mean, std := stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return seriesSummary{
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   mean,
		StdDev: std,
	}
}

func chart(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	raw := getArray(props, "data", "series", "values")
	labels := getArray(props, "labels")

	values := make([]float64, 0, len(raw))
	names := make([]string, 0, len(raw))
	for i, item := range raw {
		var (
			v     float64
			ok    bool
			label string
		)
		if obj, isObj := item.(map[string]any); isObj {
			v, ok = toNumber(obj["value"])
			if !ok {
				v, ok = toNumber(obj["y"])
			}
			label = getString(obj, "", "label", "name", "x")
		} else {
			v, ok = toNumber(item)
		}
		if !ok {
			continue
		}
		if label == "" && i < len(labels) {
			label = labelOf(labels[i])
		}
		if label == "" {
			label = strconv.Itoa(len(values) + 1)
		}
		values = append(values, v)
		names = append(names, label)
	}
	if len(values) == 0 {
		return emptyState("No data to chart"), nil
	}

	summary := summarize(values)
	scale := math.Max(math.Abs(summary.Max), math.Abs(summary.Min))

	bars := make([]map[string]any, len(values))
	for i, v := range values {
		percent := 0.0
		if scale > 0 {
			percent = math.Abs(v) / scale * 100
		}
		bars[i] = map[string]any{
			"label":   names[i],
			"value":   formatValue(v),
			"percent": strconv.FormatFloat(percent, 'f', 1, 64),
		}
	}

	return render("chart", view.Context{
		"title": getString(props, "", "title"),
		"kind":  oneOf(getString(props, "bar", "kind", "chartType"), "bar", "bar", "line"),
		"bars":  bars,
		"summary": map[string]string{
			"min":    formatStat(summary.Min),
			"max":    formatStat(summary.Max),
			"mean":   formatStat(summary.Mean),
			"stddev": formatStat(summary.StdDev),
		},
	})
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func keyValue(props map[string]any, _ []types.Output, _ types.RenderFunc) (template.HTML, error) {
	var pairs []map[string]string
	switch items := props["items"].(type) {
	case map[string]any:
		for _, k := range sortedKeys(items) {
			pairs = append(pairs, map[string]string{"key": k, "value": formatValue(items[k])})
		}
	case []any:
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			pairs = append(pairs, map[string]string{
				"key":   getString(obj, "", "key", "label", "name"),
				"value": formatValue(obj["value"]),
			})
		}
	}
	if data := getMap(props, "data"); len(pairs) == 0 && data != nil {
		for _, k := range sortedKeys(data) {
			pairs = append(pairs, map[string]string{"key": k, "value": formatValue(data[k])})
		}
	}
	if len(pairs) == 0 {
		return emptyState("No details"), nil
	}
	return render("keyvalue", view.Context{"pairs": pairs})
}
