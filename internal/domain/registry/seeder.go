package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
)

// Module is a named group of capabilities registered together at startup
type Module interface {
	Name() string
	Entries() []types.Entry
}

// Manifest adjusts the catalog after modules are registered
type Manifest struct {
	// Aliases maps an extra identifier to an already registered one
	Aliases map[string]string `json:"aliases" yaml:"aliases" toml:"aliases"`
	// Overrides replaces descriptive metadata of registered entries
	Overrides map[string]Override `json:"overrides" yaml:"overrides" toml:"overrides"`
}

// Override holds the metadata fields a manifest may change
type Override struct {
	Category    string   `json:"category" yaml:"category" toml:"category"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Tags        []string `json:"tags" yaml:"tags" toml:"tags"`
}

// SeedReport summarises a seeding run
type SeedReport struct {
	Modules    int `json:"modules"`
	Registered int `json:"registered"`
	Aliases    int `json:"aliases"`
	Overrides  int `json:"overrides"`
	Failed     int `json:"failed"`
}

// Seeder fills a registry from capability modules and an optional manifest
type Seeder struct {
	registry *Registry
	logger   *zap.Logger
	report   SeedReport
}

// NewSeeder creates a new catalog seeder
func NewSeeder(registry *Registry, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		registry: registry,
		logger:   logger,
	}
}

// Report returns the counts accumulated so far
func (s *Seeder) Report() SeedReport {
	return s.report
}

// SeedModules registers every entry of every module. A failing entry is
// logged and counted; it does not stop the remaining registrations.
func (s *Seeder) SeedModules(modules ...Module) SeedReport {
	for _, module := range modules {
		s.report.Modules++
		var loaded int
		for _, entry := range module.Entries() {
			if err := s.registry.Register(entry); err != nil {
				s.logger.Warn("Failed to register component",
					zap.String("module", module.Name()),
					zap.String("identifier", entry.Identifier),
					zap.Error(err),
				)
				s.report.Failed++
				continue
			}
			loaded++
		}
		s.report.Registered += loaded
		s.logger.Debug("Seeded module",
			zap.String("module", module.Name()),
			zap.Int("components", loaded),
		)
	}
	return s.report
}

// SeedManifestFile loads a manifest (.yaml, .yml, .toml or .json) and applies it
func (s *Seeder) SeedManifestFile(path string) (SeedReport, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return s.report, err
	}
	s.ApplyManifest(manifest)
	return s.report, nil
}

// ApplyManifest registers aliases and applies metadata overrides
func (s *Seeder) ApplyManifest(manifest *Manifest) SeedReport {
	if manifest == nil {
		return s.report
	}

	for _, identifier := range sortedKeys(manifest.Overrides) {
		override := manifest.Overrides[identifier]
		entry, ok := s.registry.Entry(identifier)
		if !ok {
			s.logger.Warn("Manifest override for unknown component", zap.String("identifier", identifier))
			s.report.Failed++
			continue
		}
		if override.Category != "" {
			entry.Category = override.Category
		}
		if override.Description != "" {
			entry.Description = override.Description
		}
		if len(override.Tags) > 0 {
			entry.Tags = slices.Clone(override.Tags)
		}
		if err := s.registry.Register(entry); err != nil {
			s.report.Failed++
			continue
		}
		s.report.Overrides++
	}

	for _, alias := range sortedKeys(manifest.Aliases) {
		target := manifest.Aliases[alias]
		entry, ok := s.registry.Entry(target)
		if !ok {
			s.logger.Warn("Manifest alias targets unknown component",
				zap.String("alias", alias),
				zap.String("target", target),
			)
			s.report.Failed++
			continue
		}
		entry.Identifier = alias
		entry.Tags = append(slices.Clone(entry.Tags), "alias:"+target)
		if err := s.registry.Register(entry); err != nil {
			s.report.Failed++
			continue
		}
		s.report.Aliases++
	}

	return s.report
}

// LoadManifest reads and validates a manifest file, choosing the decoder by extension
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &manifest)
	case ".toml":
		err = toml.Unmarshal(data, &manifest)
	case ".json":
		err = sonic.Unmarshal(data, &manifest)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filepath.Base(path), err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// Validate checks identifiers and metadata in the manifest
func (m *Manifest) Validate() error {
	for alias, target := range m.Aliases {
		if err := utils.ValidateIdentifier(alias); err != nil {
			return fmt.Errorf("alias: %w", err)
		}
		if alias == target {
			return fmt.Errorf("alias %q points to itself", alias)
		}
	}
	for identifier, override := range m.Overrides {
		if err := utils.ValidateIdentifier(identifier); err != nil {
			return fmt.Errorf("override: %w", err)
		}
		if err := utils.ValidateCategory(override.Category, false); err != nil {
			return fmt.Errorf("override %q: %w", identifier, err)
		}
		if err := utils.ValidateDescription(override.Description, "description", false); err != nil {
			return fmt.Errorf("override %q: %w", identifier, err)
		}
		if err := utils.ValidateTags(override.Tags); err != nil {
			return fmt.Errorf("override %q: %w", identifier, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
