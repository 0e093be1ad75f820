package badger

import (
	"context"
	"testing"
	"time"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(id core.ID, geography string) *core.Policy {
	return &core.Policy{
		Id:          id,
		Name:        "Policy",
		Geography:   geography,
		Sector:      "Energy",
		UpdatedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Active:      true,
		Description: "A policy description.",
	}
}

func TestPolicyRepository_AddAndGet(t *testing.T) {
	_, policyRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	require.NoError(t, policyRepo.AddPolicies(ctx, testPolicy(7, "DE")))

	got, err := policyRepo.GetPolicy(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, core.ID(7), got.Id)
	assert.Equal(t, "DE", got.Geography)

	_, err = policyRepo.GetPolicy(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPolicyRepository_MissingID(t *testing.T) {
	_, policyRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	err = policyRepo.AddPolicies(context.Background(), testPolicy(0, "DE"))
	assert.ErrorIs(t, err, storage.ErrMissingID)
}

func TestPolicyRepository_GeographyIndex(t *testing.T) {
	_, policyRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	require.NoError(t, policyRepo.AddPolicies(ctx,
		testPolicy(3, "DE"),
		testPolicy(1, "DE"),
		testPolicy(2, "FR"),
		testPolicy(4, ""),
	))

	t.Run("scan returns only matching geography ordered by id", func(t *testing.T) {
		got, err := policyRepo.GetPoliciesByGeography(ctx, "DE")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, core.ID(1), got[0].Id)
		assert.Equal(t, core.ID(3), got[1].Id)
	})

	t.Run("empty geography never matches", func(t *testing.T) {
		got, err := policyRepo.GetPoliciesByGeography(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown geography yields empty result", func(t *testing.T) {
		got, err := policyRepo.GetPoliciesByGeography(ctx, "JP")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("reload with changed geography moves index entry", func(t *testing.T) {
		moved := testPolicy(2, "ES")
		require.NoError(t, policyRepo.AddPolicies(ctx, moved))

		fr, err := policyRepo.GetPoliciesByGeography(ctx, "FR")
		require.NoError(t, err)
		assert.Empty(t, fr)

		es, err := policyRepo.GetPoliciesByGeography(ctx, "ES")
		require.NoError(t, err)
		require.Len(t, es, 1)
		assert.Equal(t, core.ID(2), es[0].Id)
	})
}

func TestPolicyRepository_List(t *testing.T) {
	_, policyRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	require.NoError(t, policyRepo.AddPolicies(ctx,
		testPolicy(10, "DE"),
		testPolicy(2, "FR"),
	))

	got, err := policyRepo.ListPolicies(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, core.ID(2), got[0].Id)
	assert.Equal(t, core.ID(10), got[1].Id)
}

func TestPolicyRepository_StoreNotReadyAfterClose(t *testing.T) {
	_, policyRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = policyRepo.ListPolicies(context.Background())
	assert.ErrorIs(t, err, storage.ErrStoreNotReady)
}
