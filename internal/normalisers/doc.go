// Package normalisers provides implementations of the Normaliser interface
// for each procurement API. Each normaliser knows how to map one source's
// native record shape to the canonical Tender.
//
// Normalisers are registered with the Registry at startup. The package also
// carries the lenient field-parsing helpers shared by all sources.
package normalisers
