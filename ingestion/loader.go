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

package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage"
)

var (
	// ErrCompanyRepositoryRequired is returned when a company repository is
	// not provided.
	ErrCompanyRepositoryRequired = errors.New("company repository required")

	// ErrPolicyRepositoryRequired is returned when a policy repository is
	// not provided.
	ErrPolicyRepositoryRequired = errors.New("policy repository required")

	// ErrMissingColumn is returned when a CSV header lacks a required
	// column.
	ErrMissingColumn = errors.New("missing required column")
)

var companyColumns = []string{"company_id", "name", "operating_jurisdiction", "sector", "last_login"}

var policyColumns = []string{"name", "geography", "sectors", "published_date",
	"updated_date", "status", "description", "topics", "source_url"}

// Loader reads company and policy CSV files into the store. Rows that fail
// parsing or validation are skipped and reported, never fatal to the load.
type Loader struct {
	companies storage.CompanyRepository
	policies  storage.PolicyRepository
	logger    *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader writing to the given repositories.
func NewLoader(companies storage.CompanyRepository, policies storage.PolicyRepository, opts ...LoaderOption) (*Loader, error) {
	if companies == nil {
		return nil, ErrCompanyRepositoryRequired
	}
	if policies == nil {
		return nil, ErrPolicyRepositoryRequired
	}

	l := &Loader{
		companies: companies,
		policies:  policies,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadCompanies reads a company CSV from r and stores every valid row.
func (l *Loader) LoadCompanies(ctx context.Context, r io.Reader) (*Report, error) {
	report := &Report{}
	var batch []*core.Company

	err := l.forEachRow(r, companyColumns, func(line int, rec row) {
		report.Total++
		company, ferr := parseCompanyRow(rec)
		if ferr != nil {
			l.logger.Warn("company row skipped", "line", line, "field", ferr.field, "reason", ferr.reason)
			report.Failures = append(report.Failures, RowFailure{Line: line, Field: ferr.field, Reason: ferr.reason})
			return
		}
		batch = append(batch, company)
	})
	if err != nil {
		return nil, err
	}

	if len(batch) > 0 {
		if err := l.companies.AddCompanies(ctx, batch...); err != nil {
			return nil, fmt.Errorf("failed to store companies: %w", err)
		}
	}
	report.Loaded = len(batch)

	l.logger.Info("companies loaded",
		"total", report.Total,
		"loaded", report.Loaded,
		"skipped", len(report.Failures))
	return report, nil
}

// LoadPolicies reads a policy CSV from r and stores every valid row.
func (l *Loader) LoadPolicies(ctx context.Context, r io.Reader) (*Report, error) {
	report := &Report{}
	var batch []*core.Policy

	err := l.forEachRow(r, policyColumns, func(line int, rec row) {
		report.Total++
		policy, ferr := parsePolicyRow(rec)
		if ferr != nil {
			l.logger.Warn("policy row skipped", "line", line, "field", ferr.field, "reason", ferr.reason)
			report.Failures = append(report.Failures, RowFailure{Line: line, Field: ferr.field, Reason: ferr.reason})
			return
		}
		batch = append(batch, policy)
	})
	if err != nil {
		return nil, err
	}

	if len(batch) > 0 {
		if err := l.policies.AddPolicies(ctx, batch...); err != nil {
			return nil, fmt.Errorf("failed to store policies: %w", err)
		}
	}
	report.Loaded = len(batch)

	l.logger.Info("policies loaded",
		"total", report.Total,
		"loaded", report.Loaded,
		"skipped", len(report.Failures))
	return report, nil
}

// forEachRow streams CSV records to fn as header-keyed maps. The line
// number passed to fn counts from 1 at the header, matching what an editor
// shows.
func (l *Loader) forEachRow(r io.Reader, required []string, fn func(line int, rec row)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		rec := make(row, len(columns))
		for name, i := range columns {
			if i < len(record) {
				rec[name] = record[i]
			}
		}
		fn(line, rec)
	}
}
