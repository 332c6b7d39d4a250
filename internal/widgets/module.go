package widgets

import (
	"html/template"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/view"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

// module is a named group of capability entries
type module struct {
	name    string
	entries []types.Entry
}

func (m module) Name() string           { return m.name }
func (m module) Entries() []types.Entry { return m.entries }

var _ registry.Module = module{}

// Modules returns every built-in capability module
func Modules() []registry.Module {
	return []registry.Module{Layout(), Content(), Data(), Input()}
}

var views = newViews()

func newViews() *view.Engine {
	engine := view.New("widgets")
	for _, set := range []map[string]string{layoutTemplates, contentTemplates, dataTemplates, inputTemplates} {
		if err := engine.RegisterAll(set); err != nil {
			panic(err)
		}
	}
	return engine
}

func render(name string, ctx view.Context) (template.HTML, error) {
	return views.Render(name, ctx)
}
