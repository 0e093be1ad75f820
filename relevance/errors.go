package relevance

import "errors"

var (
	// ErrCompanyRepositoryRequired is returned when a company repository is
	// not provided.
	ErrCompanyRepositoryRequired = errors.New("company repository required")

	// ErrPolicyRepositoryRequired is returned when a policy repository is
	// not provided.
	ErrPolicyRepositoryRequired = errors.New("policy repository required")
)
