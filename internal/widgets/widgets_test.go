package widgets

import (
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/renderer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

func doc(t *testing.T, html template.HTML) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	require.NoError(t, err)
	return d
}

func call(t *testing.T, capability types.Capability, props map[string]any, children ...types.Output) *goquery.Document {
	t.Helper()
	html, err := capability(props, children, nil)
	require.NoError(t, err)
	return doc(t, html)
}

func child(html string) types.Output {
	return types.Output{Key: "k", Identifier: "text", Status: types.StatusRendered, HTML: template.HTML(html)}
}

func TestModulesRegisterEveryCapability(t *testing.T) {
	reg := registry.New(nil)
	report := registry.NewSeeder(reg, nil).SeedModules(Modules()...)

	assert.Equal(t, 4, report.Modules)
	assert.Zero(t, report.Failed)
	assert.Equal(t, 25, reg.Len())
	assert.Equal(t, []string{types.CategoryContent, types.CategoryData, types.CategoryInput, types.CategoryLayout}, reg.Categories())

	for _, m := range Modules() {
		for _, e := range m.Entries() {
			assert.NotNil(t, e.Capability, e.Identifier)
			assert.NotEmpty(t, e.Description, e.Identifier)
		}
	}
}

func TestCapabilitiesHandleEmptyProps(t *testing.T) {
	for _, m := range Modules() {
		for _, e := range m.Entries() {
			t.Run(e.Identifier, func(t *testing.T) {
				assert.NotPanics(t, func() {
					_, err := e.Capability(map[string]any{}, nil, nil)
					assert.NoError(t, err)
				})
				assert.NotPanics(t, func() {
					_, err := e.Capability(map[string]any{"items": "nope", "data": 3.0, "level": "x", "columns": true}, nil, nil)
					assert.NoError(t, err)
				})
			})
		}
	}
}

func TestContainerLayout(t *testing.T) {
	d := call(t, container, map[string]any{"layout": "horizontal", "gap": 4.0}, child("<span>a</span>"), child("<span>b</span>"))

	sel := d.Find("div.uir-container")
	assert.True(t, sel.HasClass("uir-horizontal"))
	style, _ := sel.Attr("style")
	assert.Contains(t, style, "flex-direction:row")
	assert.Contains(t, style, "gap:4px")
	assert.Equal(t, 2, sel.Find("span").Length())
}

func TestCardEscapesTitle(t *testing.T) {
	html, err := card(map[string]any{"title": "<i>T</i>", "subtitle": "sub", "footer": "f"}, []types.Output{child("<em>body</em>")}, nil)
	require.NoError(t, err)

	assert.Contains(t, string(html), "&lt;i&gt;T&lt;/i&gt;")
	d := doc(t, html)
	assert.Equal(t, "sub", d.Find(".uir-card-subtitle").Text())
	assert.Equal(t, 1, d.Find(".uir-card-body em").Length())
	assert.Equal(t, "f", d.Find("footer").Text())
}

func TestGridClampsColumns(t *testing.T) {
	d := call(t, grid, map[string]any{"columns": 40.0})
	style, _ := d.Find(".uir-grid").Attr("style")
	assert.Contains(t, style, "repeat(12,")
}

func TestTabsLabels(t *testing.T) {
	first := child("<p>one</p>")
	second := types.Output{Identifier: "list", HTML: "<p>two</p>"}
	d := call(t, tabs, map[string]any{"labels": []any{"Overview"}, "active": 1.0}, first, second)

	labels := d.Find("[role=tab]").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Overview", "list"}, labels)

	selected, _ := d.Find("[role=tab]").Eq(1).Attr("aria-selected")
	assert.Equal(t, "true", selected)
	_, hidden := d.Find("[role=tabpanel]").Eq(0).Attr("hidden")
	assert.True(t, hidden)
}

func TestHeadingLevel(t *testing.T) {
	d := call(t, heading, map[string]any{"text": "Title", "level": 9.0})
	assert.Equal(t, "Title", d.Find("h6").Text())

	d = call(t, heading, map[string]any{"content": "Default"})
	assert.Equal(t, "Default", d.Find("h2").Text())
}

func TestAlertVariants(t *testing.T) {
	d := call(t, alert, map[string]any{"variant": "error", "title": "Unable to render", "message": "bad"})
	sel := d.Find(".uir-alert")
	assert.True(t, sel.HasClass("uir-alert-error"))
	role, _ := sel.Attr("role")
	assert.Equal(t, "alert", role)
	assert.Equal(t, "bad", d.Find(".uir-alert-message").Text())

	d = call(t, alert, map[string]any{"variant": "sparkly", "message": "x"})
	assert.True(t, d.Find(".uir-alert").HasClass("uir-alert-info"))
}

func TestHTMLIsSanitized(t *testing.T) {
	html, err := rawHTML(map[string]any{"html": `<p onclick="steal()">hi<script>alert(1)</script></p>`}, nil, nil)
	require.NoError(t, err)

	assert.NotContains(t, string(html), "script")
	assert.NotContains(t, string(html), "onclick")
	assert.Equal(t, "hi", doc(t, html).Find(".uir-html p").Text())
}

func TestImageSource(t *testing.T) {
	d := call(t, image, map[string]any{"src": "https://example.com/a.png", "alt": "A", "caption": "Cap"})
	src, _ := d.Find("img").Attr("src")
	assert.Equal(t, "https://example.com/a.png", src)
	assert.Equal(t, "Cap", d.Find("figcaption").Text())

	html, err := image(map[string]any{"src": "javascript:alert(1)"}, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "javascript")

	d = call(t, image, map[string]any{})
	assert.Equal(t, 1, d.Find(".uir-empty").Length())
}

func TestListItemsAndChildren(t *testing.T) {
	d := call(t, list, map[string]any{
		"items":   []any{"plain", map[string]any{"label": "rich", "description": "desc"}, 3.0},
		"ordered": true,
	}, child("<b>child</b>"))

	items := d.Find("ol.uir-list > li")
	require.Equal(t, 4, items.Length())
	assert.Equal(t, "plain", items.Eq(0).Text())
	assert.Equal(t, "desc", items.Eq(1).Find(".uir-list-description").Text())
	assert.Equal(t, "3", items.Eq(2).Text())
	assert.Equal(t, 1, items.Eq(3).Find("b").Length())

	d = call(t, list, map[string]any{})
	assert.Equal(t, "No items", d.Find(".uir-empty").Text())
}

func TestTableFromObjects(t *testing.T) {
	d := call(t, table, map[string]any{
		"rows": []any{
			map[string]any{"name": "a", "qty": 1.0},
			map[string]any{"name": "b", "price": 2.5},
		},
	})

	headers := d.Find("th").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"name", "price", "qty"}, headers)
	cells := d.Find("tbody tr").Eq(1).Find("td").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"b", "2.5", ""}, cells)
}

func TestTableWithDeclaredColumns(t *testing.T) {
	d := call(t, table, map[string]any{
		"columns": []any{map[string]any{"key": "id", "label": "ID"}, "name"},
		"rows":    []any{[]any{1.0, "first"}, map[string]any{"id": 2.0, "name": "second"}},
	})

	headers := d.Find("th").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"ID", "name"}, headers)
	assert.Equal(t, "second", d.Find("tbody tr").Eq(1).Find("td").Eq(1).Text())
}

func TestStatTrend(t *testing.T) {
	d := call(t, statistic, map[string]any{"label": "Users", "value": 1200.0, "delta": -3.5})
	assert.Equal(t, "1200", d.Find(".uir-stat-value").Text())
	assert.True(t, d.Find(".uir-stat-delta").HasClass("uir-stat-down"))
	assert.Equal(t, "-3.5", d.Find(".uir-stat-delta").Text())
}

func TestChartSummary(t *testing.T) {
	d := call(t, chart, map[string]any{
		"title":  "Sales",
		"data":   []any{2.0, 4.0, map[string]any{"label": "Wed", "value": 6.0}, "skip"},
		"labels": []any{"Mon", "Tue"},
	})

	stat := func(name string) string { return d.Find(`[data-stat="` + name + `"]`).Text() }
	assert.Equal(t, "2.00", stat("min"))
	assert.Equal(t, "6.00", stat("max"))
	assert.Equal(t, "4.00", stat("mean"))
	assert.Equal(t, "2.00", stat("stddev"))

	labels := d.Find(".uir-chart-label").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Mon", "Tue", "Wed"}, labels)
	style, _ := d.Find(".uir-chart-bar").Last().Attr("style")
	assert.Equal(t, "width:100.0%", style)

	d = call(t, chart, map[string]any{"data": []any{}})
	assert.Equal(t, 1, d.Find(".uir-empty").Length())
}

func TestKeyValueSortsObjectKeys(t *testing.T) {
	d := call(t, keyValue, map[string]any{"items": map[string]any{"b": 2.0, "a": "x"}})
	keys := d.Find("dt").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestButtonAndInputs(t *testing.T) {
	d := call(t, button, map[string]any{"label": "Save", "action": "save", "variant": "danger"})
	btn := d.Find("button")
	assert.Equal(t, "Save", btn.Text())
	action, _ := btn.Attr("data-action")
	assert.Equal(t, "save", action)
	assert.True(t, btn.HasClass("uir-button-danger"))

	d = call(t, input, map[string]any{"name": "email", "inputType": "email", "value": `"quoted"`})
	typ, _ := d.Find("input").Attr("type")
	assert.Equal(t, "email", typ)
	value, _ := d.Find("input").Attr("value")
	assert.Equal(t, `"quoted"`, value)

	d = call(t, input, map[string]any{"inputType": "hidden"})
	typ, _ = d.Find("input").Attr("type")
	assert.Equal(t, "text", typ)
}

func TestFormRejectsScriptAction(t *testing.T) {
	d := call(t, form, map[string]any{"action": "javascript:alert(1)", "submitLabel": "Go"}, child(`<input name="q">`))
	_, hasAction := d.Find("form").Attr("action")
	assert.False(t, hasAction)
	assert.Equal(t, "Go", d.Find("button[type=submit]").Text())
	assert.Equal(t, 1, d.Find(`form input[name="q"]`).Length())

	d = call(t, form, map[string]any{"action": "/submit", "method": "GET"})
	action, _ := d.Find("form").Attr("action")
	method, _ := d.Find("form").Attr("method")
	assert.Equal(t, "/submit", action)
	assert.Equal(t, "get", method)
}

func TestSelectOptions(t *testing.T) {
	d := call(t, selectField, map[string]any{
		"name":    "size",
		"value":   "m",
		"options": []any{"s", map[string]any{"value": "m", "label": "Medium"}, "l"},
	})

	opts := d.Find("option")
	require.Equal(t, 3, opts.Length())
	assert.Equal(t, "Medium", opts.Eq(1).Text())
	_, selected := opts.Eq(1).Attr("selected")
	assert.True(t, selected)
}

func TestCheckbox(t *testing.T) {
	d := call(t, checkbox, map[string]any{"name": "agree", "label": "I agree", "checked": true})
	_, checked := d.Find("input[type=checkbox]").Attr("checked")
	assert.True(t, checked)
	assert.Equal(t, "I agree", d.Find("label span").Text())
}

func TestRenderedThroughRegistry(t *testing.T) {
	reg := registry.New(nil)
	registry.NewSeeder(reg, nil).SeedModules(Modules()...)
	reg.Freeze()
	r := renderer.New(reg)

	spec := &types.Spec{
		Identifier: "card",
		Properties: map[string]any{"title": "Profile"},
		Children: []*types.Spec{
			{Identifier: "text", Properties: map[string]any{"content": "hello"}},
			{Identifier: "hologram", Properties: map[string]any{}},
			{Identifier: "button", Properties: map[string]any{"label": "Edit"}},
		},
	}

	out := r.Render(spec)
	require.Equal(t, types.StatusRendered, out.Status)

	d := doc(t, out.HTML)
	assert.Equal(t, "Profile", d.Find("article.uir-card h3").Text())
	assert.Equal(t, "hello", d.Find(".uir-card-body p.uir-text").Text())
	assert.Equal(t, 1, d.Find(`.uir-card-body [data-status="fallback"]`).Length())
	assert.Equal(t, "Edit", d.Find(".uir-card-body button").Text())
}
