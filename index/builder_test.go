package index_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maivenlabs/relevancy/ai/mock"
	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/index"
	"github.com/maivenlabs/relevancy/storage/badger"
)

func testPolicy(id core.ID, description string) *core.Policy {
	now := time.Now().UTC()
	return &core.Policy{
		Id:            id,
		Name:          "Test Policy",
		Geography:     "DE",
		Sector:        "Energy",
		PublishedDate: now.AddDate(0, -6, 0),
		UpdatedDate:   now.AddDate(0, 0, -10),
		Active:        true,
		Description:   description,
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes every described policy", func(t *testing.T) {
		_, policies, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, policies.AddPolicies(ctx,
			testPolicy(1, "Carbon pricing for heavy industry."),
			testPolicy(2, "Renewable generation subsidies."),
		))

		flat, err := index.Build(ctx, policies, mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.Equal(t, 2, flat.Len())
		assert.Equal(t, 384, flat.Dim())
	})

	t.Run("skips policies without a description", func(t *testing.T) {
		_, policies, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, policies.AddPolicies(ctx,
			testPolicy(1, "Emission reporting thresholds."),
			testPolicy(2, ""),
		))

		flat, err := index.Build(ctx, policies, mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.Equal(t, 1, flat.Len())
	})

	t.Run("empty corpus yields an empty index", func(t *testing.T) {
		_, policies, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		embedder := mock.NewMockEmbedder()
		flat, err := index.Build(ctx, policies, embedder)
		require.NoError(t, err)
		assert.Equal(t, 0, flat.Len())
		assert.Equal(t, 0, embedder.CallCount())
	})

	t.Run("embedding failure aborts the build", func(t *testing.T) {
		_, policies, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, policies.AddPolicies(ctx, testPolicy(1, "Grid modernization mandates.")))

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding host unreachable")
		}

		_, err = index.Build(ctx, policies, embedder)
		assert.Error(t, err)
	})

	t.Run("vector count mismatch is rejected", func(t *testing.T) {
		_, policies, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, policies.AddPolicies(ctx,
			testPolicy(1, "Building insulation codes."),
			testPolicy(2, "Fleet electrification targets."),
		))

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 2, 3}}, nil
		}

		_, err = index.Build(ctx, policies, embedder)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mismatch")
	})

	t.Run("searching the built index finds the indexed descriptions", func(t *testing.T) {
		_, policies, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		require.NoError(t, policies.AddPolicies(ctx,
			testPolicy(1, "Offshore wind permitting reform."),
			testPolicy(2, "Coal plant retirement schedule."),
		))

		embedder := mock.NewMockEmbedder()
		flat, err := index.Build(ctx, policies, embedder)
		require.NoError(t, err)

		query, err := embedder.EmbedText(ctx, "Offshore wind permitting reform.")
		require.NoError(t, err)

		hits, err := flat.Search(query, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, core.ID(1), hits[0].PolicyId)
		assert.InDelta(t, 0.0, hits[0].Distance, 1e-6)
	})
}
