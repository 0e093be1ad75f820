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


package core

import (
	"fmt"
	"time"
)

// ValidateCompany validates a Company according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - OperatingJurisdiction must be a normalized 2-letter region code
//   - Sector must not be empty
//   - LastLogin must not be in the future
//
// NOT validated:
//   - Id (0 is rejected by storage, not here)
func ValidateCompany(company *Company) error {
	if company == nil {
		return fmt.Errorf("%w: company is nil", ErrInvalidCompany)
	}

	if company.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCompany, ErrEmptyName)
	}

	if !IsRegionCode(company.OperatingJurisdiction) {
		return fmt.Errorf("%w: %w", ErrInvalidCompany, ErrInvalidRegionCode)
	}

	if company.Sector == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCompany, ErrEmptySector)
	}

	if !IsValidTimestamp(company.LastLogin) {
		return fmt.Errorf("%w: %w", ErrInvalidCompany, ErrInvalidTimestamp)
	}

	return nil
}

// ValidatePolicy validates a Policy according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Geography, when present, must be a normalized 2-letter region code
//     (an empty geography is storable but never matches any jurisdiction)
//   - Sector must not be empty
//
// NOT validated:
//   - Description (empty descriptions are excluded from the semantic index,
//     not rejected)
//   - SourceURL reachability (ingestion checks syntax only)
func ValidatePolicy(policy *Policy) error {
	if policy == nil {
		return fmt.Errorf("%w: policy is nil", ErrInvalidPolicy)
	}

	if policy.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, ErrEmptyName)
	}

	if policy.Geography != "" && !IsRegionCode(policy.Geography) {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, ErrInvalidRegionCode)
	}

	if policy.Sector == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, ErrEmptySector)
	}

	return nil
}

// IsRegionCode checks whether s is a normalized ISO 3166-1 alpha-2 style
// code: exactly two uppercase ASCII letters. Normalization from country
// names happens upstream of this module.
func IsRegionCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
