package storage

import (
	"context"

	"github.com/maivenlabs/relevancy/core"
)

// CompanyRepository provides read and load operations for company records.
// Implementations must be thread-safe and support concurrent access.
type CompanyRepository interface {
	// AddCompanies adds one or more company records to storage.
	// Records must carry a non-zero ID; existing records with the same ID
	// are overwritten (loads are full-snapshot replacements).
	AddCompanies(ctx context.Context, companies ...*core.Company) error

	// GetCompany retrieves a single company by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetCompany(ctx context.Context, id core.ID) (*core.Company, error)

	// ListCompanies retrieves all company records, ordered by ID.
	ListCompanies(ctx context.Context) ([]*core.Company, error)

	// Close releases resources held by the repository.
	Close() error
}

// PolicyRepository provides read and load operations for policy records.
// Implementations must be thread-safe and support concurrent access.
type PolicyRepository interface {
	// AddPolicies adds one or more policy records to storage.
	// Records must carry a non-zero ID; existing records with the same ID
	// are overwritten (loads are full-snapshot replacements).
	AddPolicies(ctx context.Context, policies ...*core.Policy) error

	// GetPolicy retrieves a single policy by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetPolicy(ctx context.Context, id core.ID) (*core.Policy, error)

	// ListPolicies retrieves all policy records, ordered by ID.
	ListPolicies(ctx context.Context) ([]*core.Policy, error)

	// GetPoliciesByGeography retrieves all policies whose geography equals
	// the given normalized region code, ordered by ID. An empty geography
	// never matches and yields an empty result.
	GetPoliciesByGeography(ctx context.Context, geography string) ([]*core.Policy, error)

	// Close releases resources held by the repository.
	Close() error
}
