// Package main renders UI specification files to a standalone HTML page.
//
// Inputs are doublestar glob patterns or directories. Directories are
// walked for .json, .yaml and .yml files. Each file is normalized, or
// searched for embedded specs with -discover, and rendered through the
// built-in component catalog.
//
// Usage:
//
//	# Render every spec under ./specs
//	./uirender ./specs
//
//	# Extract specs from agent responses and write a page
//	./uirender -discover -out page.html 'responses/**/*.json'
//
// Exit status is 1 when an input cannot be read. Specs that fail to
// normalize render as error panels and do not affect the status.
package main
