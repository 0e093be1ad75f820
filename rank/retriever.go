package rank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maivenlabs/relevancy/ai"
	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/index"
)

// DefaultTopK is the default number of candidate policies retrieved per
// company.
const DefaultTopK = 10

// queryTemplate phrases the company profile as a recommendation request so
// the query embedding lands near policy descriptions rather than near raw
// attribute strings.
const queryTemplate = "Recommend policies for a company operating in %s in the %s sector."

// Retriever finds the policies semantically closest to a company's profile
// by embedding a profile query and searching the policy index.
type Retriever struct {
	index    *index.Flat
	embedder ai.Embedder
	topK     int
	logger   *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithTopK sets how many candidates are retrieved per company.
// Values below 1 fall back to DefaultTopK.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) {
		if k >= 1 {
			r.topK = k
		}
	}
}

// WithRetrieverLogger sets a custom logger.
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a retriever over the given policy index.
func NewRetriever(idx *index.Flat, embedder ai.Embedder, opts ...RetrieverOption) (*Retriever, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		index:    idx,
		embedder: embedder,
		topK:     DefaultTopK,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Query returns the profile query text embedded for the given company.
func (r *Retriever) Query(company *core.Company) string {
	return fmt.Sprintf(queryTemplate, company.OperatingJurisdiction, company.Sector)
}

// Retrieve returns up to topK candidate policies for the company, ordered
// by ascending distance. An empty index yields an empty candidate list.
func (r *Retriever) Retrieve(ctx context.Context, company *core.Company) ([]core.Candidate, error) {
	if r.index.Len() == 0 {
		r.logger.Debug("policy index is empty, nothing to retrieve", "companyId", company.Id)
		return nil, nil
	}

	query := r.Query(company)
	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed company query: %w", err)
	}

	hits, err := r.index.Search(vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search policy index: %w", err)
	}

	candidates := make([]core.Candidate, len(hits))
	for i, hit := range hits {
		candidates[i] = core.Candidate{
			PolicyId:    hit.PolicyId,
			Description: hit.Description,
			Distance:    hit.Distance,
		}
	}

	r.logger.Debug("retrieved candidates",
		"companyId", company.Id,
		"requested", r.topK,
		"returned", len(candidates))
	return candidates, nil
}
