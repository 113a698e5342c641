// Package domain defines the core business entities for point history
// maintenance.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Observation: One VRS field observation of a survey monument
//   - PointRecord: A survey point entry from the library metadata list
//   - Profile: Connection and directory settings for a document library
//   - RunSummary / PointOutcome: Typed results of a pipeline run
//
// It also holds the pure text transformations the pipelines are built on:
// composing history file content and rewriting dated history lines.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
