// Package index provides an exact in-memory nearest-neighbor index over
// policy description embeddings. The index is rebuilt from the policy store
// on demand and searched with squared L2 distance.
package index
