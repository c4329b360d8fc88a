// Package domain contains the core business entities for procura.
// It defines the canonical Tender record, search parameters, per-source
// results and the statistics snapshot computed over a consolidated run.
// The domain layer has no dependencies on adapters or external services.
package domain
