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


package storage

import (
	"github.com/maivenlabs/relevancy/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalCompany serializes a Company to bytes.
func MarshalCompany(company *core.Company) []byte {
	buf := make([]byte, core.CompanyMUS.Size(*company))
	core.CompanyMUS.Marshal(*company, buf)
	return buf
}

// UnmarshalCompany deserializes a Company from bytes.
func UnmarshalCompany(data []byte) (*core.Company, error) {
	company, _, err := core.CompanyMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// MarshalPolicy serializes a Policy to bytes.
func MarshalPolicy(policy *core.Policy) []byte {
	buf := make([]byte, core.PolicyMUS.Size(*policy))
	core.PolicyMUS.Marshal(*policy, buf)
	return buf
}

// UnmarshalPolicy deserializes a Policy from bytes.
func UnmarshalPolicy(data []byte) (*core.Policy, error) {
	policy, _, err := core.PolicyMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &policy, nil
}
