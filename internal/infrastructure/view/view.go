// Package view compiles and executes the pongo2 templates that produce HTML
// fragments. Autoescaping is on; trusted markup must be passed through the
// safe filter.
package view

import (
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// ErrUnknownTemplate is returned when rendering a name that was never registered
var ErrUnknownTemplate = errors.New("view: unknown template")

// Context is the data passed to a template
type Context = pongo2.Context

// Engine holds a named set of compiled templates
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// New creates an empty engine
func New(name string) *Engine {
	set := pongo2.NewSet(name, pongo2.MustNewLocalFileSystemLoader(""))
	set.Globals = pongo2.Context{}
	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
	}
}

// Register compiles source and stores it under name, replacing any previous
// template with the same name
func (e *Engine) Register(name, source string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("view: template name required")
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return fmt.Errorf("view: parse template %q: %w", name, err)
	}

	e.mu.Lock()
	e.templates[name] = tmpl
	e.mu.Unlock()
	return nil
}

// MustRegister is like Register but panics on parse errors
func (e *Engine) MustRegister(name, source string) {
	if err := e.Register(name, source); err != nil {
		panic(err)
	}
}

// RegisterAll compiles every template in sources
func (e *Engine) RegisterAll(sources map[string]string) error {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.Register(name, sources[name]); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether a template is registered under name
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.templates[name]
	return ok
}

// Render executes the named template
func (e *Engine) Render(name string, ctx Context) (template.HTML, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[name]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("view: execute template %q: %w", name, err)
	}
	return template.HTML(out), nil
}

// Join concatenates fragments without escaping them
func Join(fragments ...template.HTML) template.HTML {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(string(f))
	}
	return template.HTML(b.String())
}
