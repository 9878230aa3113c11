// Package catalog implements the application layer for the engine catalog.
//
// This package serves as a facade that bridges the domain layer to
// infrastructure concerns:
//   - Parses engine definitions from YAML catalog files
//   - Ships a built-in catalog embedded in the binary
//   - Publishes validated (registry, tier plan) snapshots atomically
//
// The domain layer (internal/domain/engine) stays free of I/O; everything
// that touches files or YAML lives here.
//
// # Snapshots
//
// A Snapshot is the unit of configuration publication: a registry, its tier
// plan, and identifying metadata, produced together and swapped in as one
// atomic unit. There is no partial-update path: a catalog change is loaded,
// validated, and planned on the side, and only a fully clean result replaces
// the current snapshot. A rejected load leaves the previous snapshot in
// force and surfaces every diagnostic at once.
package catalog
