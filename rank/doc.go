// Package rank implements the semantic matching pipeline: retrieve candidate
// policies for a company from the embedding index, then ask a judge model to
// score and rerank them.
//
// The pipeline is deliberately tolerant of the judge. Transport failures and
// unparseable responses degrade to an empty ranking for the affected company
// instead of failing the batch.
package rank
