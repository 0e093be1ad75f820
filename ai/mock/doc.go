// Package mock provides test double implementations of the ai service
// interfaces.
//
// The mocks allow tests to run without external AI services and enable
// controlled, deterministic behavior:
//
//   - MockEmbedder: returns deterministic vectors derived from a text hash,
//     so identical text always lands at the same point in vector space
//   - MockJudge: returns an empty JSON array by default; tests script
//     responses (well-formed, fenced, embedded-in-prose, or garbage) via
//     the CompleteFunc field
//   - MockProvider: aggregates both
package mock
