// Package connectors provides the shared HTTP plumbing for the procurement
// source adapters: typed API errors, dual-strategy rate limiting, and a thin
// request helper. The per-source adapters live in subpackages and implement
// the driven.SourceAdapter port.
package connectors
