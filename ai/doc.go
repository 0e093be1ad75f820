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


// Package ai provides abstractions for the external AI services the
// relevance engine depends on.
//
// Two capabilities are defined:
//
//   - Embedder: turns text into fixed-dimension dense vectors
//   - Judge: scores candidate policies via a chat-completion model
//
// Both are injected dependencies, never module-level singletons, so the
// indexing and ranking packages can substitute fakes in tests.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and make assertions.
package ai
