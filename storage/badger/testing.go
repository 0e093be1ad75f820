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


package badger

import "github.com/maivenlabs/relevancy/storage"

// NewMemoryRepositories creates in-memory company and policy repositories
// for testing. Returns companyRepo, policyRepo, backend, and error.
// Caller must close both repos and the backend when done.
func NewMemoryRepositories() (storage.CompanyRepository, storage.PolicyRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	companyRepo, err := NewCompanyRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	policyRepo, err := NewPolicyRepository(backend)
	if err != nil {
		companyRepo.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return companyRepo, policyRepo, backend, nil
}
