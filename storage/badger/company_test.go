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

func testCompany(id core.ID, jurisdiction string) *core.Company {
	return &core.Company{
		Id:                    id,
		Name:                  "Company",
		OperatingJurisdiction: jurisdiction,
		Sector:                "Energy",
		LastLogin:             time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCompanyRepository_AddAndGet(t *testing.T) {
	companyRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	require.NoError(t, companyRepo.AddCompanies(ctx, testCompany(5, "DE")))

	got, err := companyRepo.GetCompany(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "DE", got.OperatingJurisdiction)

	_, err = companyRepo.GetCompany(ctx, 6)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCompanyRepository_ListOrderedByID(t *testing.T) {
	companyRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	require.NoError(t, companyRepo.AddCompanies(ctx,
		testCompany(12, "DE"),
		testCompany(3, "FR"),
		testCompany(7, "DE"),
	))

	got, err := companyRepo.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, core.ID(3), got[0].Id)
	assert.Equal(t, core.ID(7), got[1].Id)
	assert.Equal(t, core.ID(12), got[2].Id)
}

func TestCompanyRepository_StoreNotReadyAfterClose(t *testing.T) {
	companyRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = companyRepo.ListCompanies(context.Background())
	assert.ErrorIs(t, err, storage.ErrStoreNotReady)
}
