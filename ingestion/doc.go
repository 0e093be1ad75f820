// Package ingestion loads company and policy CSV files into the record
// store. Each row is parsed and validated independently; bad rows are
// skipped and reported per failing field rather than failing the load.
package ingestion
