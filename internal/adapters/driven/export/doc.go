// Package export writes consolidated search results to the local
// filesystem. One writer exists per output format:
//
//   - JSON: the complete result, pretty-printed
//   - CSV: the consolidated tender table
//   - Markdown: a human-readable run summary
//   - DOCX: a Word report of the run summary and top results
//
// The Exporter composes all writers and produces the full result set for a
// run in one call.
package export
