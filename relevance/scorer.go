// Copyright 2025 Maiven Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package relevance

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage"
)

const (
	// DefaultEligibilityWindowDays bounds how old a policy update may be
	// for the policy to still count as relevant to a company.
	DefaultEligibilityWindowDays = 100

	// DefaultStalenessWindowDays bounds which policy updates contribute to
	// a geography's freshness average.
	DefaultStalenessWindowDays = 365
)

// Scorer produces the deterministic jurisdiction-window relevance rows and
// the per-geography staleness averages.
type Scorer struct {
	companies       storage.CompanyRepository
	policies        storage.PolicyRepository
	eligibilityDays int
	stalenessDays   int
	logger          *slog.Logger
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithEligibilityWindow sets the policy-age window, in days, for relevance
// rows. Values below 0 are ignored.
func WithEligibilityWindow(days int) ScorerOption {
	return func(s *Scorer) {
		if days >= 0 {
			s.eligibilityDays = days
		}
	}
}

// WithStalenessWindow sets the policy-age window, in days, for the
// staleness average. Values below 0 are ignored.
func WithStalenessWindow(days int) ScorerOption {
	return func(s *Scorer) {
		if days >= 0 {
			s.stalenessDays = days
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ScorerOption {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScorer creates a scorer over the given repositories.
func NewScorer(companies storage.CompanyRepository, policies storage.PolicyRepository, opts ...ScorerOption) (*Scorer, error) {
	if companies == nil {
		return nil, ErrCompanyRepositoryRequired
	}
	if policies == nil {
		return nil, ErrPolicyRepositoryRequired
	}

	s := &Scorer{
		companies:       companies,
		policies:        policies,
		eligibilityDays: DefaultEligibilityWindowDays,
		stalenessDays:   DefaultStalenessWindowDays,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Score joins every company against the active policies of its operating
// jurisdiction whose last update falls inside the eligibility window, and
// attaches the geography's staleness average to each row.
//
// Rows are ordered by geography ascending, then updated date descending,
// with policy id and company id as tie-breaks, so repeated runs over the
// same store produce identical output.
func (s *Scorer) Score(ctx context.Context, now time.Time) ([]core.RelevanceRow, error) {
	companies, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	staleness, err := s.StalenessByGeography(ctx, now)
	if err != nil {
		return nil, err
	}

	// Companies sharing a jurisdiction reuse one policy lookup
	byJurisdiction := make(map[string][]*core.Company)
	for _, company := range companies {
		if company.OperatingJurisdiction == "" {
			s.logger.Debug("company has no operating jurisdiction", "companyId", company.Id)
			continue
		}
		byJurisdiction[company.OperatingJurisdiction] = append(byJurisdiction[company.OperatingJurisdiction], company)
	}

	var rows []core.RelevanceRow
	for jurisdiction, group := range byJurisdiction {
		policies, err := s.policies.GetPoliciesByGeography(ctx, jurisdiction)
		if err != nil {
			return nil, fmt.Errorf("failed to load policies for %s: %w", jurisdiction, err)
		}

		for _, policy := range policies {
			if !policy.Active {
				continue
			}
			age := daysBetweenDates(policy.UpdatedDate, now)
			if age < 0 || age > s.eligibilityDays {
				continue
			}

			var avg *float64
			if v, ok := staleness[jurisdiction]; ok {
				avg = &v
			}
			for _, company := range group {
				rows = append(rows, core.RelevanceRow{
					CompanyId:          company.Id,
					PolicyId:           policy.Id,
					Geography:          policy.Geography,
					UpdatedDate:        policy.UpdatedDate,
					AvgDaysSinceUpdate: avg,
				})
			}
		}
	}

	slices.SortFunc(rows, compareRows)

	s.logger.Debug("scored companies against policies",
		"companies", len(companies),
		"rows", len(rows))
	return rows, nil
}

// StalenessByGeography computes, for each geography with at least one
// active policy updated inside the staleness window, the mean fractional
// days since update. The fraction measures from the update's UTC date
// (midnight) to the now instant. Geographies with no qualifying policy are
// absent from the map.
func (s *Scorer) StalenessByGeography(ctx context.Context, now time.Time) (map[string]float64, error) {
	policies, err := s.policies.ListPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, policy := range policies {
		if !policy.Active || policy.Geography == "" {
			continue
		}
		age := daysBetweenDates(policy.UpdatedDate, now)
		if age < 0 || age > s.stalenessDays {
			continue
		}
		sums[policy.Geography] += fractionalDaysSince(policy.UpdatedDate, now)
		counts[policy.Geography]++
	}

	averages := make(map[string]float64, len(counts))
	for geography, count := range counts {
		averages[geography] = sums[geography] / float64(count)
	}
	return averages, nil
}

// daysBetweenDates returns the whole-day difference between the UTC dates
// of from and to, ignoring time of day. Negative when from is in the
// future.
func daysBetweenDates(from, to time.Time) int {
	return int(truncateToDate(to).Sub(truncateToDate(from)).Hours() / 24)
}

// fractionalDaysSince measures from the UTC midnight of from to the to
// instant, in days.
func fractionalDaysSince(from, to time.Time) float64 {
	return to.Sub(truncateToDate(from)).Hours() / 24
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func compareRows(a, b core.RelevanceRow) int {
	if c := strings.Compare(a.Geography, b.Geography); c != 0 {
		return c
	}
	if c := b.UpdatedDate.Compare(a.UpdatedDate); c != 0 {
		return c
	}
	if a.PolicyId != b.PolicyId {
		if a.PolicyId < b.PolicyId {
			return -1
		}
		return 1
	}
	switch {
	case a.CompanyId < b.CompanyId:
		return -1
	case a.CompanyId > b.CompanyId:
		return 1
	default:
		return 0
	}
}
