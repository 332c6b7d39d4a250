package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/agent"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/normalizer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/renderer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
)

// ErrNoAgent is returned by Generate when no agent is configured
var ErrNoAgent = errors.New("no agent configured")

// Result pairs a canonical spec with its rendered output
type Result = types.RenderResponse

// Pipeline orchestrates spec normalization and rendering
type Pipeline struct {
	normalizer *normalizer.Normalizer
	renderer   *renderer.Renderer
	fetcher    agent.Fetcher
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

// New creates a pipeline. fetcher may be nil when no agent is available.
func New(n *normalizer.Normalizer, r *renderer.Renderer, fetcher agent.Fetcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		normalizer: n,
		renderer:   r,
		fetcher:    fetcher,
		logger:     logger,
	}
}

// WithMetrics adds metrics tracking to the pipeline
func (p *Pipeline) WithMetrics(metrics *monitoring.Metrics) *Pipeline {
	p.metrics = metrics
	return p
}

// HasAgent reports whether Generate can reach an agent
func (p *Pipeline) HasAgent() bool {
	return p.fetcher != nil
}

// Normalizer exposes the underlying normalizer
func (p *Pipeline) Normalizer() *normalizer.Normalizer {
	return p.normalizer
}

// Renderer exposes the underlying renderer
func (p *Pipeline) Renderer() *renderer.Renderer {
	return p.renderer
}

// Normalize resolves raw into a canonical spec
func (p *Pipeline) Normalize(raw any) (*types.Spec, error) {
	spec, err := p.normalizer.Normalize(raw)
	if err != nil {
		p.record("invalid")
		return nil, err
	}
	p.record("ok")
	return spec, nil
}

// Resolve normalizes raw, substituting the fallback spec when it cannot
// be resolved
func (p *Pipeline) Resolve(raw any) *types.Spec {
	spec, err := p.normalizer.Normalize(raw)
	if err != nil {
		p.logger.Warn("Substituting fallback for unresolvable spec", zap.Error(err))
		p.record("fallback")
		return p.normalizer.Fallback(err)
	}
	p.record("ok")
	return spec
}

// ResolveDiscovered returns every spec discovered inside raw, or a single
// fallback spec when nothing is found
func (p *Pipeline) ResolveDiscovered(raw any) []*types.Spec {
	specs := p.normalizer.Discover(raw)
	if len(specs) == 0 {
		p.record("fallback")
		return []*types.Spec{p.normalizer.Fallback(normalizer.ErrUnresolvableSpec)}
	}
	for range specs {
		p.record("ok")
	}
	return specs
}

// RenderRaw resolves raw and renders the result
func (p *Pipeline) RenderRaw(raw any) Result {
	return p.RenderSpec(p.Resolve(raw))
}

// RenderSpec renders an already canonical spec
func (p *Pipeline) RenderSpec(spec *types.Spec) Result {
	return Result{
		Spec:     spec,
		Output:   p.renderer.Render(spec),
		Fallback: normalizer.IsFallback(spec),
	}
}

// RenderSpecs renders sibling trees in one renderer pass, order preserved
func (p *Pipeline) RenderSpecs(specs []*types.Spec) []Result {
	outputs := p.renderer.RenderAll(specs)
	results := make([]Result, len(specs))
	for i, spec := range specs {
		results[i] = Result{
			Spec:     spec,
			Output:   outputs[i],
			Fallback: normalizer.IsFallback(spec),
		}
	}
	return results
}

// RenderBatch resolves each raw value independently and renders them as
// siblings. Unresolvable items become fallback results in place.
func (p *Pipeline) RenderBatch(raws []any) []Result {
	specs := make([]*types.Spec, len(raws))
	for i, raw := range raws {
		specs[i] = p.Resolve(raw)
	}
	return p.RenderSpecs(specs)
}

// RenderDiscovered renders every spec discovered inside raw. When nothing
// is found a single fallback result is returned.
func (p *Pipeline) RenderDiscovered(raw any) []Result {
	return p.RenderSpecs(p.ResolveDiscovered(raw))
}

// Generate asks the agent for a UI and renders the first spec found in
// its answer
func (p *Pipeline) Generate(ctx context.Context, prompt string) (Result, error) {
	if p.fetcher == nil {
		return Result{}, ErrNoAgent
	}
	if err := utils.ValidatePrompt(prompt); err != nil {
		return Result{}, fmt.Errorf("invalid prompt: %w", err)
	}

	raw, err := p.fetcher.Fetch(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("agent fetch: %w", err)
	}

	spec, ok := p.normalizer.DiscoverFirst(raw)
	if !ok {
		p.logger.Warn("Agent answer contained no UI specification", zap.Int("prompt_length", len(prompt)))
		p.record("fallback")
		return p.RenderSpec(p.normalizer.Fallback(normalizer.ErrUnresolvableSpec)), nil
	}
	p.record("ok")
	return p.RenderSpec(spec), nil
}

func (p *Pipeline) record(result string) {
	if p.metrics != nil {
		p.metrics.RecordNormalize(result)
	}
}
