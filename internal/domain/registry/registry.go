package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

var (
	// ErrFrozen is returned when registering after the catalog was frozen
	ErrFrozen = errors.New("registry is frozen")
	// ErrInvalidEntry is returned for entries without identifier or capability
	ErrInvalidEntry = errors.New("invalid registry entry")
)

// Registry is the catalog mapping component identifiers to capabilities.
// Writes happen during startup; Freeze marks the end of that phase.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]types.Entry
	frozen  atomic.Bool
	logger  *zap.Logger
}

// New creates an empty registry
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: make(map[string]types.Entry),
		logger:  logger,
	}
}

// Register inserts or overwrites an entry keyed by its identifier.
// Overwrites are logged and succeed: the last registration wins.
func (r *Registry) Register(entry types.Entry) error {
	if entry.Identifier == "" {
		return fmt.Errorf("%w: identifier is required", ErrInvalidEntry)
	}
	if entry.Capability == nil {
		return fmt.Errorf("%w: capability for %q is nil", ErrInvalidEntry, entry.Identifier)
	}
	if r.frozen.Load() {
		return fmt.Errorf("register %q: %w", entry.Identifier, ErrFrozen)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.entries[entry.Identifier]; exists {
		r.logger.Warn("Overwriting registered component",
			zap.String("identifier", entry.Identifier),
			zap.String("previous_category", prev.Category),
			zap.String("category", entry.Category),
		)
	}

	entry.Tags = slices.Clone(entry.Tags)
	r.entries[entry.Identifier] = entry
	return nil
}

// MustRegister mirrors Register but panics on error
func (r *Registry) MustRegister(entry types.Entry) {
	if err := r.Register(entry); err != nil {
		panic(err)
	}
}

// Get returns the capability registered under identifier
func (r *Registry) Get(identifier string) (types.Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[identifier]
	if !ok {
		return nil, false
	}
	return entry.Capability, true
}

// Entry returns the full catalog entry for identifier
func (r *Registry) Entry(identifier string) (types.Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[identifier]
	if !ok {
		return types.Entry{}, false
	}
	entry.Tags = slices.Clone(entry.Tags)
	return entry, true
}

// Has reports whether identifier is registered
func (r *Registry) Has(identifier string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[identifier]
	return ok
}

// ByCategory returns the entries of one category sorted by identifier
func (r *Registry) ByCategory(category string) []types.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.Entry
	for _, entry := range r.entries {
		if entry.Category == category {
			entry.Tags = slices.Clone(entry.Tags)
			out = append(out, entry)
		}
	}
	slices.SortFunc(out, func(a, b types.Entry) int {
		return strings.Compare(a.Identifier, b.Identifier)
	})
	return out
}

// Categories returns the sorted set of categories in use
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, entry := range r.entries {
		if _, ok := seen[entry.Category]; ok {
			continue
		}
		seen[entry.Category] = struct{}{}
		categories = append(categories, entry.Category)
	}
	slices.Sort(categories)
	return categories
}

// Names returns the sorted registered identifiers
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered entries
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Stats returns registry statistics
func (r *Registry) Stats() types.CatalogStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	perCategory := make(map[string]int)
	for _, entry := range r.entries {
		perCategory[entry.Category]++
	}
	return types.CatalogStats{
		Total:       len(r.entries),
		PerCategory: perCategory,
	}
}

// Freeze ends the registration phase. Later Register calls fail with ErrFrozen.
func (r *Registry) Freeze() {
	if r.frozen.CompareAndSwap(false, true) {
		r.logger.Info("Component catalog frozen", zap.Int("components", r.Len()))
	}
}

// Frozen reports whether Freeze was called
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Reset removes every entry and unfreezes the registry. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]types.Entry)
	r.frozen.Store(false)
}
