package index

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maivenlabs/relevancy/ai"
	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage"
)

type buildConfig struct {
	logger *slog.Logger
}

// BuildOption configures index construction.
type BuildOption func(*buildConfig)

// WithLogger sets the logger used during index construction.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// Build embeds every stored policy description and assembles a Flat index
// over the results. Policies with an empty description are skipped; they
// cannot be meaningfully embedded. A corpus with no embeddable policies
// yields a valid empty index.
func Build(ctx context.Context, policies storage.PolicyRepository, embedder ai.Embedder, opts ...BuildOption) (*Flat, error) {
	cfg := buildConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	all, err := policies.ListPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies for indexing: %w", err)
	}

	var (
		ids   []core.ID
		descs []string
	)
	for _, policy := range all {
		if policy.Description == "" {
			cfg.logger.Debug("skipping policy with empty description", "policyId", policy.Id)
			continue
		}
		ids = append(ids, policy.Id)
		descs = append(descs, policy.Description)
	}

	flat := NewFlat()
	if len(descs) == 0 {
		cfg.logger.Warn("no embeddable policies found, index is empty")
		return flat, nil
	}

	vectors, err := embedder.EmbedTexts(ctx, descs)
	if err != nil {
		return nil, fmt.Errorf("failed to embed policy descriptions: %w", err)
	}
	if len(vectors) != len(descs) {
		return nil, fmt.Errorf("embedding count mismatch: got %d vectors for %d descriptions", len(vectors), len(descs))
	}

	for i, vector := range vectors {
		if err := flat.Add(ids[i], descs[i], vector); err != nil {
			return nil, fmt.Errorf("failed to index policy %d: %w", ids[i], err)
		}
	}

	cfg.logger.Info("policy index built", "policies", flat.Len(), "dimension", flat.Dim())
	return flat, nil
}
