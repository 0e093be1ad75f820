package ingestion_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/ingestion"
	"github.com/maivenlabs/relevancy/storage"
	"github.com/maivenlabs/relevancy/storage/badger"
)

const companyHeader = "company_id,name,operating_jurisdiction,sector,last_login\n"

const policyHeader = "id,name,geography,sectors,published_date,updated_date,status,description,topics,source_url\n"

func newLoader(t *testing.T) (*ingestion.Loader, storage.CompanyRepository, storage.PolicyRepository) {
	t.Helper()
	companies, policies, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	loader, err := ingestion.NewLoader(companies, policies)
	require.NoError(t, err)
	return loader, companies, policies
}

func TestLoadCompanies(t *testing.T) {
	ctx := context.Background()

	t.Run("loads valid rows", func(t *testing.T) {
		loader, companies, _ := newLoader(t)

		csv := companyHeader +
			"1,Nordwind Energy,DE,Energy,2024-11-02T09:30:00Z\n" +
			"2,Vollan Shipping,NO,Transport,2024-10-15T16:00:00Z\n"
		report, err := loader.LoadCompanies(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 2, report.Loaded)
		assert.Empty(t, report.Failures)

		company, err := companies.GetCompany(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Nordwind Energy", company.Name)
		assert.Equal(t, "DE", company.OperatingJurisdiction)
		assert.Equal(t, time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC), company.LastLogin.UTC())
	})

	t.Run("skips bad rows and reports the failing field", func(t *testing.T) {
		loader, companies, _ := newLoader(t)

		csv := companyHeader +
			"1,Nordwind Energy,DE,Energy,2024-11-02T09:30:00Z\n" +
			"oops,Broken Id,DE,Energy,2024-11-02T09:30:00Z\n" +
			"3,,DE,Energy,2024-11-02T09:30:00Z\n" +
			"4,Bad Region,Germany,Energy,2024-11-02T09:30:00Z\n" +
			"5,Bad Login,DE,Energy,yesterday\n"
		report, err := loader.LoadCompanies(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 5, report.Total)
		assert.Equal(t, 1, report.Loaded)
		require.Len(t, report.Failures, 4)

		byField := report.FailuresByField()
		assert.Equal(t, 1, byField["company_id"])
		assert.Equal(t, 1, byField["name"])
		assert.Equal(t, 1, byField["operating_jurisdiction"])
		assert.Equal(t, 1, byField["last_login"])

		// Line numbers count from the header line
		assert.Equal(t, 3, report.Failures[0].Line)

		all, err := companies.ListCompanies(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("missing column fails the load", func(t *testing.T) {
		loader, _, _ := newLoader(t)

		csv := "company_id,name,sector,last_login\n1,Acme,Energy,2024-11-02T09:30:00Z\n"
		_, err := loader.LoadCompanies(ctx, strings.NewReader(csv))
		assert.ErrorIs(t, err, ingestion.ErrMissingColumn)
	})
}

func TestLoadPolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("parses all policy fields", func(t *testing.T) {
		loader, _, policies := newLoader(t)

		csv := policyHeader +
			`7,Carbon Levy,DE,Energy,03/02/2024,2024-06-01T08:00:00Z,active,<p>Levy on  industrial emitters.</p>,"[""carbon"", ""industry""]",https://example.org/carbon-levy` + "\n"
		report, err := loader.LoadPolicies(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Loaded)

		policy, err := policies.GetPolicy(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Carbon Levy", policy.Name)
		assert.Equal(t, "DE", policy.Geography)
		assert.Equal(t, "Energy", policy.Sector)
		assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), policy.PublishedDate.UTC())
		assert.Equal(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), policy.UpdatedDate.UTC())
		assert.True(t, policy.Active)
		assert.Equal(t, "Levy on industrial emitters.", policy.Description)
		assert.Equal(t, []string{"carbon", "industry"}, policy.Topics)
		assert.Equal(t, "https://example.org/carbon-levy", policy.SourceURL)
	})

	t.Run("non-numeric id gets a stable content-derived id", func(t *testing.T) {
		loader, _, policies := newLoader(t)

		csv := policyHeader +
			"a8Xk2fQ,Heat Mandate,FR,Buildings,01/03/2024,2024-05-10T00:00:00Z,active,Heat pump rollout.,[],https://example.org/heat\n"
		report, err := loader.LoadPolicies(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 1, report.Loaded)

		all, err := policies.ListPolicies(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, core.IDFromContent("a8Xk2fQ"), all[0].Id)
	})

	t.Run("non-active status loads as inactive", func(t *testing.T) {
		loader, _, policies := newLoader(t)

		csv := policyHeader +
			"1,Old Quota,DE,Energy,01/01/2020,2020-06-01T00:00:00Z,superseded,Quota scheme.,[],https://example.org/quota\n"
		report, err := loader.LoadPolicies(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 1, report.Loaded)

		policy, err := policies.GetPolicy(ctx, 1)
		require.NoError(t, err)
		assert.False(t, policy.Active)
	})

	t.Run("skips rows with bad dates topics or urls", func(t *testing.T) {
		loader, _, _ := newLoader(t)

		csv := policyHeader +
			"1,Bad Published,DE,Energy,2024-02-03,2024-06-01T08:00:00Z,active,Text.,[],https://example.org/a\n" +
			"2,Bad Updated,DE,Energy,03/02/2024,last tuesday,active,Text.,[],https://example.org/b\n" +
			"3,Bad Topics,DE,Energy,03/02/2024,2024-06-01T08:00:00Z,active,Text.,not-json,https://example.org/c\n" +
			"4,Bad URL,DE,Energy,03/02/2024,2024-06-01T08:00:00Z,active,Text.,[],ftp://example.org/d\n"
		report, err := loader.LoadPolicies(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 4, report.Total)
		assert.Equal(t, 0, report.Loaded)

		byField := report.FailuresByField()
		assert.Equal(t, 1, byField["published_date"])
		assert.Equal(t, 1, byField["updated_date"])
		assert.Equal(t, 1, byField["topics"])
		assert.Equal(t, 1, byField["source_url"])
	})

	t.Run("updated date without zone is tolerated", func(t *testing.T) {
		loader, _, policies := newLoader(t)

		csv := policyHeader +
			"9,Zoneless,DE,Energy,03/02/2024,2024-06-01T08:00:00,active,Text.,[],https://example.org/z\n"
		report, err := loader.LoadPolicies(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 1, report.Loaded)

		policy, err := policies.GetPolicy(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), policy.UpdatedDate.UTC())
	})
}
