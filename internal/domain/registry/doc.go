// Package registry provides the component catalog for the UI renderer.
//
// The registry maps a component identifier (the "type" of a spec node) to
// the capability that renders it, together with descriptive metadata used
// by diagnostics and tooling.
//
// Components:
//   - Registry: identifier -> capability catalog with introspection
//   - Seeder: registers capability modules and applies a catalog manifest
//
// Lifecycle:
//   - Capabilities are registered once at startup by the Seeder
//   - Re-registering an identifier overwrites it and logs a warning
//   - Freeze ends the startup phase; the catalog is read-only afterwards
//   - Reset clears everything and exists for tests
//
// Manifest files (.yaml, .toml, .json) may declare aliases for existing
// components and override their category, description, or tags.
//
// Example Usage:
//
//	reg := registry.New(logger)
//	registry.NewSeeder(reg, logger).SeedModules(widgets.Modules()...)
//	reg.Freeze()
//	capability, ok := reg.Get("card")
package registry
