// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SourceAdapter: Queries one procurement notice API
//   - Normaliser: Converts one source's raw records to canonical tenders
//   - NormaliserRegistry: Dispatches raw records to the matching normaliser
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Search-history persistence. Without it, runs are not recorded.
//   - ResultWriter: Result export. Without it, results are only printed.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
