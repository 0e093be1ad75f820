// Package relevance implements the deterministic half of the engine: the
// jurisdiction-window join of companies against recently updated policies,
// and the per-geography staleness average attached to its rows.
package relevance
