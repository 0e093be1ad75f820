package rank

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/storage"
)

// Matcher runs the retrieve-then-rerank pipeline for companies, fanning the
// per-company work out over a bounded worker pool.
//
// A judge or parse failure for one company never aborts the batch: the
// failing company gets an empty ranking and the rest proceed.
type Matcher struct {
	companies storage.CompanyRepository
	retriever *Retriever
	reranker  *Reranker
	pool      *ants.Pool
	monitor   MatchMonitor
	logger    *slog.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher) error

// WithPoolSize sets the worker pool size for concurrent matching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) MatcherOption {
	return func(m *Matcher) error {
		if size < 1 {
			size = 1
		}
		if m.pool != nil {
			m.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// WithMonitor sets a monitor receiving per-company progress hooks.
func WithMonitor(monitor MatchMonitor) MatcherOption {
	return func(m *Matcher) error {
		if monitor != nil {
			m.monitor = monitor
		}
		return nil
	}
}

// WithMatcherLogger sets a custom logger.
func WithMatcherLogger(logger *slog.Logger) MatcherOption {
	return func(m *Matcher) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// NewMatcher creates a matcher over the given company repository, retriever,
// and reranker.
func NewMatcher(companies storage.CompanyRepository, retriever *Retriever, reranker *Reranker, opts ...MatcherOption) (*Matcher, error) {
	if companies == nil {
		return nil, ErrCompanyRepositoryRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if reranker == nil {
		return nil, ErrRerankerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	m := &Matcher{
		companies: companies,
		retriever: retriever,
		reranker:  reranker,
		pool:      pool,
		monitor:   &noopMonitor{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(m); optErr != nil {
			m.Release()
			return nil, optErr
		}
	}
	return m, nil
}

// Match runs the pipeline for a single company by ID.
func (m *Matcher) Match(ctx context.Context, companyId core.ID) (*core.CompanyRanking, error) {
	company, err := m.companies.GetCompany(ctx, companyId)
	if err != nil {
		return nil, err
	}
	return m.matchOne(ctx, company), nil
}

// MatchAll runs the pipeline for every stored company. Results are returned
// in the repository's listing order (ascending company ID), one ranking per
// company regardless of individual failures.
func (m *Matcher) MatchAll(ctx context.Context) ([]*core.CompanyRanking, error) {
	companies, err := m.companies.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*core.CompanyRanking, len(companies))
	var wg sync.WaitGroup
	for i, company := range companies {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = m.matchOne(ctx, company)
		}
		if err := m.pool.Submit(task); err != nil {
			// Pool rejected the task, run it on the caller
			task()
		}
	}
	wg.Wait()

	return results, nil
}

// matchOne never fails: any error is logged and yields an empty ranking so
// batch callers always get one result per company.
func (m *Matcher) matchOne(ctx context.Context, company *core.Company) *core.CompanyRanking {
	m.monitor.Start(company)
	ranking := &core.CompanyRanking{CompanyId: company.Id}

	candidates, err := m.retriever.Retrieve(ctx, company)
	if err != nil {
		m.logger.Warn("candidate retrieval failed", "companyId", company.Id, "err", err)
		m.monitor.MatchFailed(company, err)
		m.monitor.Finish(ranking)
		return ranking
	}
	m.monitor.AfterRetrieval(company, candidates)

	if len(candidates) == 0 {
		m.logger.Debug("no candidates for company", "companyId", company.Id)
		m.monitor.Finish(ranking)
		return ranking
	}

	ranked, err := m.reranker.Rerank(ctx, company, candidates)
	if err != nil {
		m.logger.Warn("reranking failed", "companyId", company.Id, "err", err)
		m.monitor.MatchFailed(company, err)
		m.monitor.Finish(ranking)
		return ranking
	}
	m.monitor.AfterJudge(company, ranked)

	ranking.Ranked = ranked
	m.monitor.Finish(ranking)
	return ranking
}

// Release releases the worker pool. The matcher should not be used after
// calling Release.
func (m *Matcher) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}
