package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, *goquery.Document, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(stdout.String()))
	require.NoError(t, err)
	return code, doc, stderr.String()
}

func TestRenderDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"type":"heading","props":{"text":"From JSON","level":1}}`)
	writeFile(t, dir, "nested/b.yaml", "type: heading\nprops:\n  text: From YAML\n  level: 3\n")
	writeFile(t, dir, "notes.txt", "type: heading")

	code, doc, stderr := runCLI(t, "-title", "Specs", dir)

	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "Specs", doc.Find("title").Text())
	assert.Equal(t, "From JSON", doc.Find("h1.uir-heading").Text())
	assert.Equal(t, "From YAML", doc.Find("h3.uir-heading").Text())
	assert.Equal(t, 2, doc.Find(".uir-heading").Length())
}

func TestRenderGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x/one.json", `{"type":"heading","props":{"text":"one"}}`)
	writeFile(t, dir, "x/y/two.json", `{"type":"heading","props":{"text":"two"}}`)
	writeFile(t, dir, "x/y/skip.yaml", "type: heading\nprops:\n  text: skip\n")

	code, doc, _ := runCLI(t, filepath.Join(dir, "**", "*.json"))

	assert.Equal(t, exitOK, code)
	var texts []string
	doc.Find(".uir-heading").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	assert.Equal(t, []string{"one", "two"}, texts)
}

func TestDiscoverWrappedResponse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "response.json",
		`{"status":"ok","result":{"type":"heading","props":{"text":"Found"}}}`)

	code, doc, _ := runCLI(t, "-discover", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Found", doc.Find(".uir-heading").Text())

	// Without discovery the wrapper itself has no identifier
	code, doc, _ = runCLI(t, path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, 1, doc.Find(".uir-alert-error").Length())
}

func TestUndecodableFileRendersFallback(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.json", "{not json")

	code, doc, _ := runCLI(t, path)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, 1, doc.Find(".uir-alert-error").Length())
}

func TestUnknownComponentRendersPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "odd.json", `{"type":"hologram","props":{"beam":1}}`)

	code, doc, _ := runCLI(t, path)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "hologram", doc.Find(".uir-fallback").AttrOr("data-component", ""))
}

func TestMissingFileFailsRun(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"type":"heading","props":{"text":"still here"}}`)

	code, doc, stderr := runCLI(t, good, filepath.Join(dir, "missing.json"))

	assert.Equal(t, exitRead, code)
	assert.Contains(t, stderr, "missing.json")
	assert.Equal(t, "still here", doc.Find(".uir-heading").Text())
}

func TestWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", `{"type":"text","props":{"content":"hello"}}`)
	out := filepath.Join(dir, "page.html")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-out", out, path}, &stdout, &stderr)

	require.Equal(t, exitOK, code, stderr.String())
	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "hello")
}

func TestManifestAlias(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "catalog.yaml", "aliases:\n  banner: heading\n")
	path := writeFile(t, dir, "a.json", `{"type":"banner","props":{"text":"aliased"}}`)

	code, doc, stderr := runCLI(t, "-manifest", manifest, path)

	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "aliased", doc.Find(".uir-heading").Text())
}

func TestUsageErrors(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: uirender")

	code, _, stderr = runCLI(t, "-log-level", "loud", "x.json")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "invalid log level")

	code, _, _ = runCLI(t, "-manifest", filepath.Join(t.TempDir(), "none.yaml"), "x.json")
	assert.Equal(t, exitRead, code)
}
