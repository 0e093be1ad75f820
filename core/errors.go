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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCompany indicates a Company failed validation.
	ErrInvalidCompany = errors.New("invalid company")

	// ErrInvalidPolicy indicates a Policy failed validation.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptySector indicates the Sector field is empty.
	ErrEmptySector = errors.New("sector cannot be empty")

	// ErrInvalidRegionCode indicates a region code is not a normalized
	// 2-letter uppercase code.
	ErrInvalidRegionCode = errors.New("region code must be a 2-letter uppercase code")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
