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

package relevancy

import (
	"context"
	"log/slog"

	"github.com/maivenlabs/relevancy/ai"
	"github.com/maivenlabs/relevancy/ai/openai"
	"github.com/maivenlabs/relevancy/index"
	"github.com/maivenlabs/relevancy/ingestion"
	"github.com/maivenlabs/relevancy/rank"
	"github.com/maivenlabs/relevancy/relevance"
	"github.com/maivenlabs/relevancy/storage"
	"github.com/maivenlabs/relevancy/storage/badger"
)

// Engine bundles the record store, the AI provider, and factories for the
// scoring and matching pipelines.
type Engine struct {
	backend     *badger.Backend
	companyRepo storage.CompanyRepository
	policyRepo  storage.PolicyRepository
	provider    ai.AIProvider
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider substitutes a pre-built AI provider, bypassing the
// OpenAI-compatible default. Used by tests and embedders-free tooling.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemoryStore opens the record store in memory instead of on disk.
func WithInMemoryStore() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens (or creates) the record store at filePath and wires the
// AI provider.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	companyRepo, err := badger.NewCompanyRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	policyRepo, err := badger.NewPolicyRepository(backend)
	if err != nil {
		companyRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			policyRepo.Close()
			companyRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:     backend,
		companyRepo: companyRepo,
		policyRepo:  policyRepo,
		provider:    provider,
		logger:      slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.policyRepo.Close(); err != nil {
		e.logger.Error("error closing policy repository", "err", err)
		return err
	}
	if err := e.companyRepo.Close(); err != nil {
		e.logger.Error("error closing company repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) CompanyRepository() storage.CompanyRepository {
	return e.companyRepo
}

func (e *Engine) PolicyRepository() storage.PolicyRepository {
	return e.policyRepo
}

func (e *Engine) NewLoader(opts ...ingestion.LoaderOption) (*ingestion.Loader, error) {
	return ingestion.NewLoader(e.companyRepo, e.policyRepo, opts...)
}

func (e *Engine) NewScorer(opts ...relevance.ScorerOption) (*relevance.Scorer, error) {
	return relevance.NewScorer(e.companyRepo, e.policyRepo, opts...)
}

// NewMatcher builds the full semantic pipeline: the policy index, a
// retriever over it, a reranker on the judge, and the fan-out matcher.
func (e *Engine) NewMatcher(ctx context.Context, retrieverOpts []rank.RetrieverOption, rerankerOpts []rank.RerankerOption, matcherOpts ...rank.MatcherOption) (*rank.Matcher, error) {
	flat, err := index.Build(ctx, e.policyRepo, e.provider.Embedder())
	if err != nil {
		return nil, err
	}

	retriever, err := rank.NewRetriever(flat, e.provider.Embedder(), retrieverOpts...)
	if err != nil {
		return nil, err
	}

	reranker, err := rank.NewReranker(e.provider.Judge(), rerankerOpts...)
	if err != nil {
		return nil, err
	}

	return rank.NewMatcher(e.companyRepo, retriever, reranker, matcherOpts...)
}
