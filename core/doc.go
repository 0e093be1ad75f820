// Package core defines the domain model for the policy relevance engine:
// companies, policies, and the derived result types produced by the
// deterministic and semantic ranking paths.
//
// Records are treated as immutable once loaded. All derived types
// (RelevanceRow, Candidate, RankedPolicy) are read-only query results,
// recomputed on demand and never written back to storage.
package core
