package index

import (
	"errors"
	"slices"

	"github.com/maivenlabs/relevancy/core"
)

// ErrDimensionMismatch indicates a vector's dimension differs from the
// index's.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Hit is a single nearest-neighbor result. Distance is squared L2; smaller
// is closer.
type Hit struct {
	PolicyId    core.ID
	Description string
	Distance    float32
}

// Flat is an exact (non-approximate) L2 nearest-neighbor index over policy
// description vectors. The id, description, and vector slices are kept
// position-aligned: entry i of each always refers to the same policy.
//
// A Flat is append-only during Build and read-only afterward, so it may be
// shared by concurrent Search calls without locking.
type Flat struct {
	dim     int
	ids     []core.ID
	descs   []string
	vectors [][]float32
}

// NewFlat creates an empty index. The dimension is fixed by the first Add.
func NewFlat() *Flat {
	return &Flat{}
}

// Len returns the number of indexed policies.
func (f *Flat) Len() int {
	return len(f.ids)
}

// Dim returns the vector dimension, or 0 for an empty index.
func (f *Flat) Dim() int {
	return f.dim
}

// Add appends a policy vector to the index.
func (f *Flat) Add(id core.ID, description string, vector []float32) error {
	if f.dim == 0 {
		f.dim = len(vector)
	}
	if len(vector) != f.dim {
		return ErrDimensionMismatch
	}
	f.ids = append(f.ids, id)
	f.descs = append(f.descs, description)
	f.vectors = append(f.vectors, vector)
	return nil
}

// Search returns the k nearest policies to the query vector, ordered by
// ascending squared L2 distance, ties broken by insertion order. When k
// exceeds the index size all indexed policies are returned. Searching an
// empty index returns no hits.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if f.Len() == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != f.dim {
		return nil, ErrDimensionMismatch
	}

	hits := make([]Hit, f.Len())
	for i, vector := range f.vectors {
		hits[i] = Hit{
			PolicyId:    f.ids[i],
			Description: f.descs[i],
			Distance:    squaredL2(query, vector),
		}
	}

	// Stable keeps insertion order for equidistant vectors
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
