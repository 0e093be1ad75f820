package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage/badger"
)

var dbPath = flag.String("db", "./relevancy_db", "path to the BadgerDB database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

type seedPolicy struct {
	id             core.ID
	name           string
	geography      string
	sector         string
	updatedDaysAgo int
	active         bool
	description    string
	topics         []string
}

var seedCompanies = []*core.Company{
	{Id: 1, Name: "Nordwind Energy", OperatingJurisdiction: "DE", Sector: "Energy"},
	{Id: 2, Name: "Vollan Shipping", OperatingJurisdiction: "NO", Sector: "Transport"},
	{Id: 3, Name: "Brightpath Homes", OperatingJurisdiction: "GB", Sector: "Buildings"},
	{Id: 4, Name: "Silvagro Foods", OperatingJurisdiction: "FR", Sector: "Agriculture"},
	{Id: 5, Name: "Helios Components", OperatingJurisdiction: "DE", Sector: "Manufacturing"},
}

var seedPolicies = []seedPolicy{
	{1, "Industrial Carbon Levy", "DE", "Energy", 20, true,
		"A levy on carbon emissions from heavy industry, with rebates for verified abatement investments.",
		[]string{"carbon pricing", "industry"}},
	{2, "Renewable Generation Subsidy", "DE", "Energy", 45, true,
		"Feed-in premiums for new onshore wind and solar generation capacity.",
		[]string{"renewables", "subsidies"}},
	{3, "Coal Phase-out Schedule", "DE", "Energy", 300, true,
		"Binding retirement dates for remaining coal-fired generation plants.",
		[]string{"coal", "phase-out"}},
	{4, "Maritime Fuel Standard", "NO", "Transport", 15, true,
		"Progressive greenhouse gas intensity limits for marine fuels sold in Norwegian ports.",
		[]string{"shipping", "fuels"}},
	{5, "Fjord Zero-Emission Zones", "NO", "Transport", 90, true,
		"Zero-emission requirements for vessels operating in designated world heritage fjords.",
		[]string{"shipping", "zero-emission"}},
	{6, "Home Insulation Grant Scheme", "GB", "Buildings", 30, true,
		"Means-tested grants covering loft and cavity wall insulation for residential properties.",
		[]string{"buildings", "efficiency"}},
	{7, "Boiler Replacement Mandate", "GB", "Buildings", 200, false,
		"Superseded requirement to replace gas boilers with heat pumps in new builds.",
		[]string{"heating", "heat pumps"}},
	{8, "Agricultural Methane Reduction Plan", "FR", "Agriculture", 60, true,
		"Targets and advisory support for reducing enteric methane from livestock farming.",
		[]string{"methane", "livestock"}},
	{9, "Pesticide Use Reporting Rule", "FR", "Agriculture", 150, true,
		"Mandatory digital reporting of pesticide application by farm holdings.",
		[]string{"pesticides", "reporting"}},
	{10, "Factory Efficiency Audit Requirement", "DE", "Manufacturing", 75, true,
		"Periodic energy efficiency audits for manufacturing sites above a consumption threshold.",
		[]string{"audits", "efficiency"}},
}

func main() {
	ctx := context.Background()
	now := time.Now().UTC()

	backend, err := badger.OpenBackend(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer backend.Close()

	companyRepo, err := badger.NewCompanyRepository(backend)
	if err != nil {
		panic(err)
	}
	defer companyRepo.Close()

	policyRepo, err := badger.NewPolicyRepository(backend)
	if err != nil {
		panic(err)
	}
	defer policyRepo.Close()

	for _, company := range seedCompanies {
		company.LastLogin = now.AddDate(0, 0, -int(company.Id))
	}
	if err := companyRepo.AddCompanies(ctx, seedCompanies...); err != nil {
		panic(err)
	}

	policies := make([]*core.Policy, len(seedPolicies))
	for i, sp := range seedPolicies {
		updated := now.AddDate(0, 0, -sp.updatedDaysAgo)
		policies[i] = &core.Policy{
			Id:            sp.id,
			Name:          sp.name,
			Geography:     sp.geography,
			Sector:        sp.sector,
			PublishedDate: updated.AddDate(0, -6, 0),
			UpdatedDate:   updated,
			Active:        sp.active,
			Description:   sp.description,
			Topics:        sp.topics,
			SourceURL:     fmt.Sprintf("https://example.org/policies/%d", sp.id),
		}
	}
	if err := policyRepo.AddPolicies(ctx, policies...); err != nil {
		panic(err)
	}

	slog.Info("seeded store", "db", *dbPath, "companies", len(seedCompanies), "policies", len(policies))
}
