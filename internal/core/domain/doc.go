// Package domain defines the core business entities for the split engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Normalised text plus provenance, keyed by content hash
//   - SplitRequest: A request to divide a Document into pieces
//   - Piece: One contiguous fragment of a Document's text
//   - Manifest: The self-describing record of a split operation
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
