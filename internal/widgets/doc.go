/*
Package widgets provides the built-in component capabilities.

Capabilities are grouped into four seeder modules:

  - layout: container, row, column, card, grid, section, tabs
  - content: text, heading, alert, code, html, image, divider, badge
  - data: list, table, stat, chart, keyvalue
  - input: button, input, form, select, checkbox

Every capability renders an empty state for missing or mistyped data rather
than failing. Markup is produced by pongo2 templates with autoescaping;
free-form HTML and image sources pass through bluemonday.

# Usage

	seeder := registry.NewSeeder(reg, logger)
	seeder.SeedModules(widgets.Modules()...)
	reg.Freeze()
*/
package widgets
