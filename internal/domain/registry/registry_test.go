package registry

import (
	"errors"
	"html/template"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

func staticCapability(html string) types.Capability {
	return func(map[string]any, []types.Output, types.RenderFunc) (template.HTML, error) {
		return template.HTML(html), nil
	}
}

func entry(identifier, category string) types.Entry {
	return types.Entry{
		Identifier: identifier,
		Capability: staticCapability("<" + identifier + ">"),
		Category:   category,
		Tags:       []string{"test"},
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register(entry("card", types.CategoryLayout)))

	capability, ok := r.Get("card")
	require.True(t, ok)
	html, err := capability(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<card>"), html)
	assert.True(t, r.Has("card"))
}

func TestGetUnknownIsAbsent(t *testing.T) {
	r := New(nil)

	capability, ok := r.Get("does-not-exist")
	assert.False(t, ok)
	assert.Nil(t, capability)
	assert.False(t, r.Has("does-not-exist"))
}

func TestRegisterRejectsInvalidEntries(t *testing.T) {
	r := New(nil)

	err := r.Register(types.Entry{Capability: staticCapability("")})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	err = r.Register(types.Entry{Identifier: "card"})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	assert.Equal(t, 0, r.Len())
}

func TestOverwriteWarnsAndLastWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := New(zap.New(core))

	require.NoError(t, r.Register(entry("text", types.CategoryContent)))
	second := entry("text", types.CategoryLayout)
	second.Capability = staticCapability("<second>")
	require.NoError(t, r.Register(second))

	capability, ok := r.Get("text")
	require.True(t, ok)
	html, _ := capability(nil, nil, nil)
	assert.Equal(t, template.HTML("<second>"), html)
	assert.Equal(t, 1, r.Len())

	warnings := logs.FilterMessage("Overwriting registered component").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "text", warnings[0].ContextMap()["identifier"])
}

func TestIntrospection(t *testing.T) {
	r := New(nil)
	r.MustRegister(entry("row", types.CategoryLayout))
	r.MustRegister(entry("card", types.CategoryLayout))
	r.MustRegister(entry("table", types.CategoryData))

	assert.Equal(t, []string{"card", "row", "table"}, r.Names())
	assert.Equal(t, []string{types.CategoryData, types.CategoryLayout}, r.Categories())

	layout := r.ByCategory(types.CategoryLayout)
	require.Len(t, layout, 2)
	assert.Equal(t, "card", layout[0].Identifier)
	assert.Equal(t, "row", layout[1].Identifier)
	assert.Empty(t, r.ByCategory("missing"))

	stats := r.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{types.CategoryLayout: 2, types.CategoryData: 1}, stats.PerCategory)
}

func TestEntryReturnsCopy(t *testing.T) {
	r := New(nil)
	r.MustRegister(entry("card", types.CategoryLayout))

	e, ok := r.Entry("card")
	require.True(t, ok)
	e.Tags[0] = "mutated"

	again, _ := r.Entry("card")
	assert.Equal(t, []string{"test"}, again.Tags)
}

func TestFreezeAndReset(t *testing.T) {
	r := New(nil)
	r.MustRegister(entry("card", types.CategoryLayout))
	r.Freeze()

	assert.True(t, r.Frozen())
	err := r.Register(entry("text", types.CategoryContent))
	assert.True(t, errors.Is(err, ErrFrozen))
	assert.True(t, r.Has("card"))

	r.Reset()
	assert.False(t, r.Frozen())
	assert.Equal(t, 0, r.Len())
	assert.NoError(t, r.Register(entry("text", types.CategoryContent)))
}

func TestConcurrentReadsAfterFreeze(t *testing.T) {
	r := New(nil)
	r.MustRegister(entry("card", types.CategoryLayout))
	r.Freeze()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, ok := r.Get("card")
				assert.True(t, ok)
				_ = r.Stats()
			}
		}()
	}
	wg.Wait()
}
