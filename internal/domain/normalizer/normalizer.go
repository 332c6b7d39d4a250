package normalizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
)

var (
	// ErrUnresolvableSpec means the input carries no usable identifier
	ErrUnresolvableSpec = errors.New("unresolvable spec")
	// ErrInvalidProps means props or templateProps is present but not an object
	ErrInvalidProps = errors.New("invalid props")
)

// Normalizer converts raw JSON values into canonical Spec trees
type Normalizer struct {
	now            func() time.Time
	ids            *id.Generator
	maxDepth       int
	discoveryDepth int
	validator      *utils.JSONSizeValidator
	logger         *zap.Logger
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithClock sets the time source used for synthesized metadata
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithIDGenerator sets the generator used for synthesized metadata IDs
func WithIDGenerator(gen *id.Generator) Option {
	return func(n *Normalizer) {
		if gen != nil {
			n.ids = gen
		}
	}
}

// WithMaxDepth bounds the height of normalized trees
func WithMaxDepth(depth int) Option {
	return func(n *Normalizer) {
		if depth > 0 {
			n.maxDepth = depth
		}
	}
}

// WithDiscoveryDepth bounds how many wrapper levels Discover searches
func WithDiscoveryDepth(depth int) Option {
	return func(n *Normalizer) {
		if depth >= 0 {
			n.discoveryDepth = depth
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		now:            time.Now,
		ids:            id.Default(),
		maxDepth:       utils.MaxSpecDepth,
		discoveryDepth: utils.DiscoveryDepth,
		validator:      utils.NewJSONSizeValidator(utils.MaxJSONSize),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts raw into a canonical Spec. raw may be a decoded JSON
// object, a JSON document as string or []byte, or an existing Spec.
func (n *Normalizer) Normalize(raw any) (*types.Spec, error) {
	obj, err := n.asObject(raw)
	if err != nil {
		return nil, err
	}
	return n.normalize(obj, 0)
}

// NormalizeOrFallback normalizes raw and substitutes the error-display spec
// when no spec can be produced
func (n *Normalizer) NormalizeOrFallback(raw any) *types.Spec {
	spec, err := n.Normalize(raw)
	if err != nil {
		n.logger.Warn("Substituting fallback spec", zap.Error(err))
		return n.Fallback(err)
	}
	return spec
}

// DecodeRaw decodes a JSON payload after checking its size, then bounds
// its nesting relative to the configured max depth
func (n *Normalizer) DecodeRaw(data []byte) (any, error) {
	if err := n.validator.ValidateSize(data); err != nil {
		return nil, err
	}
	var raw any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	// Reject pathological nesting before anything walks the value
	if err := utils.ValidateJSONDepth(raw, utils.MaxJSONDepthFor(n.maxDepth)); err != nil {
		return nil, err
	}
	return raw, nil
}

// Validate checks that raw satisfies the spec predicate: a non-empty
// identifier, and props/templateProps either absent or objects
func (n *Normalizer) Validate(raw map[string]any) error {
	if identifier(raw) == "" {
		return fmt.Errorf("%w: missing \"type\" or \"name\"", ErrUnresolvableSpec)
	}
	for _, key := range []string{fieldProps, fieldTemplateProps} {
		value, present := raw[key]
		if !present || value == nil {
			continue
		}
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("%w: %q must be an object, got %T", ErrInvalidProps, key, value)
		}
	}
	return nil
}

func (n *Normalizer) normalize(raw map[string]any, depth int) (*types.Spec, error) {
	if err := n.Validate(raw); err != nil {
		return nil, err
	}

	spec := &types.Spec{
		Identifier: identifier(raw),
		Properties: mergeProperties(raw),
		Children:   []*types.Spec{},
	}

	for _, rawChild := range extractChildren(raw, spec.Properties, n.logger) {
		if depth+1 >= n.maxDepth {
			n.logger.Warn("Dropping children beyond maximum depth",
				zap.String("identifier", spec.Identifier),
				zap.Int("max_depth", n.maxDepth),
			)
			break
		}
		obj, ok := rawChild.(map[string]any)
		if !ok {
			n.logger.Debug("Dropping non-object child",
				zap.String("parent", spec.Identifier),
				zap.String("kind", fmt.Sprintf("%T", rawChild)),
			)
			continue
		}
		child, err := n.normalize(obj, depth+1)
		if err != nil {
			n.logger.Debug("Dropping unresolvable child",
				zap.String("parent", spec.Identifier),
				zap.Error(err),
			)
			continue
		}
		spec.Children = append(spec.Children, child)
	}

	spec.Metadata = n.metadata(raw, spec.Identifier)
	return spec, nil
}

// asObject turns the accepted input forms into a raw JSON object
func (n *Normalizer) asObject(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case *types.Spec:
		if v == nil {
			return nil, fmt.Errorf("%w: nil spec", ErrUnresolvableSpec)
		}
		return specToRaw(v), nil
	case types.Spec:
		return specToRaw(&v), nil
	case []byte:
		decoded, err := n.DecodeRaw(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnresolvableSpec, err)
		}
		if obj, ok := decoded.(map[string]any); ok {
			return obj, nil
		}
		return nil, fmt.Errorf("%w: JSON document is %T, not an object", ErrUnresolvableSpec, decoded)
	case string:
		return n.asObject([]byte(v))
	case nil:
		return nil, fmt.Errorf("%w: empty input", ErrUnresolvableSpec)
	default:
		return nil, fmt.Errorf("%w: unsupported input %T", ErrUnresolvableSpec, raw)
	}
}

func (n *Normalizer) metadata(raw map[string]any, identifier string) types.Metadata {
	now := n.now()
	meta, ok := raw[fieldMetadata].(map[string]any)
	if !ok {
		return types.Metadata{
			ID:          n.ids.SpecID(identifier, now).String(),
			GeneratedAt: now,
			Description: fmt.Sprintf("Generated %s component", identifier),
		}
	}

	out := types.Metadata{}
	out.ID, _ = meta["id"].(string)
	out.Description, _ = meta["description"].(string)
	out.GeneratedAt = parseTimestamp(meta["generatedAt"])

	if out.ID == "" {
		out.ID = n.ids.SpecID(identifier, now).String()
	}
	if out.GeneratedAt.IsZero() {
		out.GeneratedAt = now
	}
	return out
}

// parseTimestamp accepts RFC 3339 strings, unix milliseconds, or time values
func parseTimestamp(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	case float64:
		return time.UnixMilli(int64(v)).UTC()
	case int64:
		return time.UnixMilli(v).UTC()
	case int:
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Time{}
}

// specToRaw re-expresses a Spec in its canonical JSON field names so it can
// run through the same rules as agent input
func specToRaw(spec *types.Spec) map[string]any {
	children := make([]any, 0, len(spec.Children))
	for _, child := range spec.Children {
		if child != nil {
			children = append(children, specToRaw(child))
		}
	}
	raw := map[string]any{
		fieldType:     spec.Identifier,
		fieldProps:    types.CloneMap(spec.Properties),
		fieldChildren: children,
	}
	if spec.Metadata.ID != "" || !spec.Metadata.GeneratedAt.IsZero() {
		raw[fieldMetadata] = map[string]any{
			"id":          spec.Metadata.ID,
			"generatedAt": spec.Metadata.GeneratedAt,
			"description": spec.Metadata.Description,
		}
	}
	return raw
}
