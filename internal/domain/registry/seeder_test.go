package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

type testModule struct {
	name    string
	entries []types.Entry
}

func (m testModule) Name() string           { return m.name }
func (m testModule) Entries() []types.Entry { return m.entries }

func seeded(t *testing.T) (*Registry, *Seeder) {
	t.Helper()
	r := New(nil)
	s := NewSeeder(r, nil)
	report := s.SeedModules(
		testModule{name: "layout", entries: []types.Entry{entry("card", types.CategoryLayout), entry("container", types.CategoryLayout)}},
		testModule{name: "content", entries: []types.Entry{entry("text", types.CategoryContent), {Identifier: "broken"}}},
	)
	require.Equal(t, 2, report.Modules)
	require.Equal(t, 3, report.Registered)
	require.Equal(t, 1, report.Failed)
	return r, s
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedModules(t *testing.T) {
	r, _ := seeded(t)

	assert.Equal(t, []string{"card", "container", "text"}, r.Names())
	assert.False(t, r.Has("broken"))
}

func TestSeedManifestYAML(t *testing.T) {
	r, s := seeded(t)
	path := writeFile(t, "catalog.yaml", `
aliases:
  box: container
  paragraph: text
  ghost: missing
overrides:
  card:
    description: Bordered panel
    tags: [panel, surface]
`)

	report, err := s.SeedManifestFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Aliases)
	assert.Equal(t, 1, report.Overrides)
	assert.Equal(t, 2, report.Failed)

	box, ok := r.Entry("box")
	require.True(t, ok)
	assert.Equal(t, types.CategoryLayout, box.Category)
	assert.Contains(t, box.Tags, "alias:container")

	card, _ := r.Entry("card")
	assert.Equal(t, "Bordered panel", card.Description)
	assert.Equal(t, []string{"panel", "surface"}, card.Tags)
}

func TestSeedManifestTOML(t *testing.T) {
	r, s := seeded(t)
	path := writeFile(t, "catalog.toml", `
[aliases]
box = "container"

[overrides.text]
category = "typography"
`)

	_, err := s.SeedManifestFile(path)
	require.NoError(t, err)

	assert.True(t, r.Has("box"))
	text, _ := r.Entry("text")
	assert.Equal(t, "typography", text.Category)
}

func TestSeedManifestJSON(t *testing.T) {
	r, s := seeded(t)
	path := writeFile(t, "catalog.json", `{"aliases": {"panel": "card"}}`)

	_, err := s.SeedManifestFile(path)
	require.NoError(t, err)
	assert.True(t, r.Has("panel"))
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unknown extension", file: "catalog.ini", content: "x=1"},
		{name: "malformed yaml", file: "catalog.yaml", content: "aliases: [unterminated"},
		{name: "self alias", file: "catalog.yaml", content: "aliases:\n  card: card\n"},
		{name: "bad alias identifier", file: "catalog.yaml", content: "aliases:\n  \"two words\": card\n"},
		{name: "bad category", file: "catalog.yaml", content: "overrides:\n  card:\n    category: Upper\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestManifestAfterFreezeFails(t *testing.T) {
	r, s := seeded(t)
	r.Freeze()

	report := s.ApplyManifest(&Manifest{Aliases: map[string]string{"box": "container"}})
	assert.Equal(t, 0, report.Aliases)
	assert.False(t, r.Has("box"))
}
