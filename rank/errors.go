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

package rank

import "errors"

var (
	// ErrJudgeCall is returned when the judge model cannot be reached or
	// fails to produce a completion.
	ErrJudgeCall = errors.New("judge call failed")

	// ErrJudgeParse is returned when the judge's response cannot be parsed
	// into a score list.
	ErrJudgeParse = errors.New("failed to parse judge response")

	// ErrIndexRequired is returned when a policy index is not provided.
	ErrIndexRequired = errors.New("policy index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrJudgeRequired is returned when a judge is not provided.
	ErrJudgeRequired = errors.New("judge required")

	// ErrCompanyRepositoryRequired is returned when a company repository is
	// not provided.
	ErrCompanyRepositoryRequired = errors.New("company repository required")

	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrRerankerRequired is returned when a reranker is not provided.
	ErrRerankerRequired = errors.New("reranker required")
)
