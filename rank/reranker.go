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

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/maivenlabs/relevancy/ai"
	"github.com/maivenlabs/relevancy/core"
)

// DefaultTopN is the default number of ranked policies kept per company.
const DefaultTopN = 3

// Reranker asks a judge model to score retrieved candidate policies for a
// specific company and keeps the top N.
type Reranker struct {
	judge        ai.Judge
	topN         int
	scoreMin     int
	scoreMax     int
	judgeTimeout time.Duration
	logger       *slog.Logger
}

// RerankerOption configures a Reranker.
type RerankerOption func(*Reranker)

// WithTopN sets how many ranked policies are kept per company.
// Values below 1 fall back to DefaultTopN.
func WithTopN(n int) RerankerOption {
	return func(r *Reranker) {
		if n >= 1 {
			r.topN = n
		}
	}
}

// WithScoreBounds sets the score range the judge is instructed to use.
// The bounds shape the prompt only; out-of-range scores in the response
// are kept as returned.
func WithScoreBounds(minScore, maxScore int) RerankerOption {
	return func(r *Reranker) {
		if minScore < maxScore {
			r.scoreMin = minScore
			r.scoreMax = maxScore
		}
	}
}

// WithJudgeTimeout bounds each judge call. Zero disables the bound.
func WithJudgeTimeout(timeout time.Duration) RerankerOption {
	return func(r *Reranker) {
		r.judgeTimeout = timeout
	}
}

// WithRerankerLogger sets a custom logger.
func WithRerankerLogger(logger *slog.Logger) RerankerOption {
	return func(r *Reranker) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReranker creates a reranker backed by the given judge.
func NewReranker(judge ai.Judge, opts ...RerankerOption) (*Reranker, error) {
	if judge == nil {
		return nil, ErrJudgeRequired
	}

	r := &Reranker{
		judge:        judge,
		topN:         DefaultTopN,
		scoreMin:     1,
		scoreMax:     10,
		judgeTimeout: 2 * time.Minute,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Prompt builds the judge prompt for one company and its candidates.
func (r *Reranker) Prompt(company *core.Company, candidates []core.Candidate) string {
	var b strings.Builder
	b.WriteString("You are a policy assistant.\n")
	fmt.Fprintf(&b, "Company: %s\n", company.Name)
	fmt.Fprintf(&b, "Jurisdiction: %s\n", company.OperatingJurisdiction)
	fmt.Fprintf(&b, "Sector: %s\n\n", company.Sector)
	fmt.Fprintf(&b, "Score each policy description from %d to %d for relevance to the company.\n", r.scoreMin, r.scoreMax)
	b.WriteString("Respond with EXACTLY a JSON array of objects of the form ")
	b.WriteString(`{"policy_id": <id>, "score": <number>}, sorted by score descending.`)
	b.WriteString("\n\nCandidate policies:\n\n")
	for _, candidate := range candidates {
		fmt.Fprintf(&b, "ID: %d\n%s\n\n---\n\n", candidate.PolicyId, candidate.Description)
	}
	return b.String()
}

// Rerank scores the candidates for the company and returns the top N in
// descending score order with 1-based ranks. Judge transport failures are
// reported as ErrJudgeCall, unusable responses as ErrJudgeParse.
func (r *Reranker) Rerank(ctx context.Context, company *core.Company, candidates []core.Candidate) ([]core.RankedPolicy, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	if r.judgeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.judgeTimeout)
		defer cancel()
	}

	prompt := r.Prompt(company, candidates)
	response, err := r.judge.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJudgeCall, err)
	}

	items, err := parseScores(response)
	if err != nil {
		r.logger.Warn("unusable judge response",
			"companyId", company.Id,
			"response", response,
			"err", err)
		return nil, fmt.Errorf("%w: %w", ErrJudgeParse, err)
	}

	// The judge is told to sort, but small models don't always comply
	slices.SortStableFunc(items, func(a, b scoredItem) int {
		return b.Score - a.Score
	})
	if len(items) > r.topN {
		items = items[:r.topN]
	}

	ranked := make([]core.RankedPolicy, len(items))
	for i, item := range items {
		ranked[i] = core.RankedPolicy{
			PolicyId: item.PolicyId,
			Rank:     i + 1,
			Score:    item.Score,
		}
	}

	r.logger.Debug("reranked candidates",
		"companyId", company.Id,
		"candidates", len(candidates),
		"kept", len(ranked))
	return ranked, nil
}
