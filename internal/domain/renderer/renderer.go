package renderer

import (
	"fmt"
	"html"
	"html/template"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/view"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
)

// Catalog is the read-only view of the registry the renderer dispatches through
type Catalog interface {
	Get(identifier string) (types.Capability, bool)
	Len() int
	Categories() []string
}

// Recorder receives render metrics
type Recorder interface {
	RecordNode(identifier string, status types.Status)
	ObserveRender(duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordNode(string, types.Status) {}
func (nopRecorder) ObserveRender(time.Duration)     {}

// Renderer turns Spec trees into HTML output
type Renderer struct {
	catalog  Catalog
	views    *view.Engine
	metrics  Recorder
	maxDepth int
	logger   *zap.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(recorder Recorder) Option {
	return func(r *Renderer) {
		if recorder != nil {
			r.metrics = recorder
		}
	}
}

// WithMaxDepth bounds how deep a tree is rendered
func WithMaxDepth(depth int) Option {
	return func(r *Renderer) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// New creates a renderer dispatching through catalog
func New(catalog Catalog, opts ...Option) *Renderer {
	r := &Renderer{
		catalog:  catalog,
		views:    newEngine(),
		metrics:  nopRecorder{},
		maxDepth: utils.MaxSpecDepth,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders a whole tree. The root is keyed by its metadata ID or
// "child-0".
func (r *Renderer) Render(spec *types.Spec) types.Output {
	start := time.Now()
	out := r.renderNode(spec, 0, 0)
	r.metrics.ObserveRender(time.Since(start))
	return out
}

// RenderAll renders a list of sibling trees, keying each independently
func (r *Renderer) RenderAll(specs []*types.Spec) []types.Output {
	start := time.Now()
	outputs := make([]types.Output, len(specs))
	for i, spec := range specs {
		outputs[i] = r.renderNode(spec, i, 0)
	}
	r.metrics.ObserveRender(time.Since(start))
	return outputs
}

// Document combines rendered outputs into one HTML body fragment
func (r *Renderer) Document(outputs ...types.Output) template.HTML {
	fragments := make([]string, len(outputs))
	for i, out := range outputs {
		fragments[i] = string(out.HTML)
	}
	doc, err := r.views.Render(tmplDocument, view.Context{"fragments": fragments})
	if err != nil {
		r.logger.Error("Failed to assemble document", zap.Error(err))
		return template.HTML(`<div class="uir-document">` + strings.Join(fragments, "") + `</div>`)
	}
	return doc
}

// Page wraps a document in a standalone HTML page
func (r *Renderer) Page(title string, outputs ...types.Output) template.HTML {
	page, err := r.views.Render(tmplPage, view.Context{"title": title, "body": string(r.Document(outputs...))})
	if err != nil {
		r.logger.Error("Failed to assemble page", zap.Error(err))
		return r.Document(outputs...)
	}
	return page
}

func (r *Renderer) renderNode(spec *types.Spec, index, depth int) types.Output {
	key := nodeKey(spec, index)
	name := resolveIdentifier(spec)

	if spec == nil {
		return r.fallback(key, name, nil)
	}
	if depth >= r.maxDepth {
		return r.depthExceeded(key, name)
	}

	capability, ok := r.catalog.Get(name)
	if !ok || capability == nil {
		return r.fallback(key, name, spec.Properties)
	}

	children := make([]types.Output, len(spec.Children))
	for i, child := range spec.Children {
		children[i] = r.renderNode(child, i, depth+1)
	}

	extra := len(spec.Children)
	renderMore := func(s *types.Spec) types.Output {
		out := r.renderNode(s, extra, depth+1)
		extra++
		return out
	}

	body, trace, err := invoke(capability, props(spec), children, renderMore)
	if err != nil {
		return r.failure(key, name, err, trace)
	}

	wrapped, err := r.views.Render(tmplNode, view.Context{"key": key, "identifier": name, "body": string(body)})
	if err != nil {
		return r.failure(key, name, err, "")
	}

	r.metrics.RecordNode(name, types.StatusRendered)
	return types.Output{
		Key:        key,
		Identifier: name,
		Status:     types.StatusRendered,
		HTML:       wrapped,
	}
}

// invoke calls a capability inside an error boundary
func invoke(capability types.Capability, properties map[string]any, children []types.Output, render types.RenderFunc) (body template.HTML, trace string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			trace = string(debug.Stack())
			if e, ok := recovered.(error); ok {
				err = fmt.Errorf("capability panicked: %w", e)
			} else {
				err = fmt.Errorf("capability panicked: %v", recovered)
			}
		}
	}()
	body, err = capability(properties, children, render)
	return body, "", err
}

func (r *Renderer) fallback(key, name string, properties map[string]any) types.Output {
	serialized := serializeProps(properties)
	categories := r.catalog.Categories()
	registered := r.catalog.Len()

	r.logger.Warn("Unknown component",
		zap.String("identifier", name),
		zap.String("key", key),
		zap.Int("registered", registered),
	)
	r.metrics.RecordNode(name, types.StatusFallback)

	body, err := r.views.Render(tmplFallback, view.Context{
		"key":        key,
		"identifier": name,
		"registered": registered,
		"categories": categories,
		"properties": serialized,
	})
	if err != nil {
		body = plainPlaceholder("Unknown component: " + name)
	}

	return types.Output{
		Key:        key,
		Identifier: name,
		Status:     types.StatusFallback,
		HTML:       body,
		Diagnostic: &types.Diagnostic{
			Kind:       types.KindUnknownCapability,
			Identifier: name,
			Properties: serialized,
			Message:    fmt.Sprintf("no capability registered for %q", name),
			Registered: registered,
			Categories: categories,
		},
	}
}

func (r *Renderer) failure(key, name string, cause error, trace string) types.Output {
	r.logger.Error("Component render failed",
		zap.String("identifier", name),
		zap.String("key", key),
		zap.Error(cause),
	)
	r.metrics.RecordNode(name, types.StatusError)

	body, err := r.views.Render(tmplError, view.Context{
		"key":        key,
		"identifier": name,
		"message":    cause.Error(),
		"trace":      trace,
	})
	if err != nil {
		body = plainPlaceholder("Failed to render " + name + ": " + cause.Error())
	}

	return types.Output{
		Key:        key,
		Identifier: name,
		Status:     types.StatusError,
		HTML:       body,
		Diagnostic: &types.Diagnostic{
			Kind:       types.KindRenderFailure,
			Identifier: name,
			Message:    cause.Error(),
			Trace:      trace,
		},
	}
}

func (r *Renderer) depthExceeded(key, name string) types.Output {
	message := "Maximum render depth of " + strconv.Itoa(r.maxDepth) + " exceeded"
	r.logger.Warn("Render depth exceeded",
		zap.String("identifier", name),
		zap.Int("max_depth", r.maxDepth),
	)
	r.metrics.RecordNode(name, types.StatusError)

	body, err := r.views.Render(tmplDepth, view.Context{"key": key, "identifier": name, "message": message})
	if err != nil {
		body = plainPlaceholder(message)
	}

	return types.Output{
		Key:        key,
		Identifier: name,
		Status:     types.StatusError,
		HTML:       body,
		Diagnostic: &types.Diagnostic{
			Kind:       types.KindDepthExceeded,
			Identifier: name,
			Message:    message,
		},
	}
}

// resolveIdentifier accepts either canonical field so partially normalized
// specs still dispatch
func resolveIdentifier(spec *types.Spec) string {
	if spec == nil {
		return ""
	}
	if spec.Identifier != "" {
		return spec.Identifier
	}
	for _, key := range []string{"type", "name"} {
		if s, ok := spec.Properties[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func nodeKey(spec *types.Spec, index int) string {
	if spec != nil && spec.Metadata.ID != "" {
		return spec.Metadata.ID
	}
	return "child-" + strconv.Itoa(index)
}

// props hands each capability its own copy so the canonical tree is never
// mutated by rendering
func props(spec *types.Spec) map[string]any {
	return types.CloneMap(spec.Properties)
}

func serializeProps(properties map[string]any) string {
	if len(properties) == 0 {
		return ""
	}
	data, err := sonic.ConfigStd.MarshalIndent(properties, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", properties)
	}
	return string(data)
}

func plainPlaceholder(message string) template.HTML {
	return template.HTML(`<div class="` + placeholderBase + `">` + html.EscapeString(message) + `</div>`)
}
