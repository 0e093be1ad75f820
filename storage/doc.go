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


// Package storage provides the storage abstraction layer for the relevance
// engine.
//
// It defines repository interfaces over validated Company and Policy records
// so that the scoring and retrieval packages depend on abstractions rather
// than a concrete backend. The storage/badger subpackage implements the
// interfaces on BadgerDB; tests use its in-memory mode.
//
// The engine only reads records. The Add* operations exist for the ingestion
// path and the seeder; nothing in the scoring or retrieval packages mutates
// stored records.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
