// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentRegistry: Content-addressed document storage
//   - ExtractorRegistry: Extension to extractor capability table
//   - ArchivePacker: Serialises pieces and manifest into one artifact
//   - ArchiveReader: Reads an artifact back for inspection
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
