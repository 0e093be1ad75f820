package rank_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maivenlabs/relevancy/ai/mock"
	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/rank"
)

func testCompany() *core.Company {
	return &core.Company{
		Id:                    42,
		Name:                  "Nordwind Energy",
		OperatingJurisdiction: "DE",
		Sector:                "Energy",
	}
}

func testCandidates() []core.Candidate {
	return []core.Candidate{
		{PolicyId: 1, Description: "Carbon pricing for heavy industry.", Distance: 0.1},
		{PolicyId: 2, Description: "Renewable generation subsidies.", Distance: 0.2},
		{PolicyId: 3, Description: "Fleet electrification targets.", Distance: 0.3},
		{PolicyId: 4, Description: "Building insulation codes.", Distance: 0.4},
	}
}

func TestRerankerRerank(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a judge", func(t *testing.T) {
		_, err := rank.NewReranker(nil)
		assert.ErrorIs(t, err, rank.ErrJudgeRequired)
	})

	t.Run("keeps the top N in descending score order", func(t *testing.T) {
		judge := mock.NewMockJudge()
		judge.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return `[{"policy_id": 2, "score": 4}, {"policy_id": 1, "score": 9}, {"policy_id": 4, "score": 7}, {"policy_id": 3, "score": 2}]`, nil
		}
		reranker, err := rank.NewReranker(judge)
		require.NoError(t, err)

		ranked, err := reranker.Rerank(ctx, testCompany(), testCandidates())
		require.NoError(t, err)
		require.Len(t, ranked, 3)
		assert.Equal(t, core.RankedPolicy{PolicyId: 1, Rank: 1, Score: 9}, ranked[0])
		assert.Equal(t, core.RankedPolicy{PolicyId: 4, Rank: 2, Score: 7}, ranked[1])
		assert.Equal(t, core.RankedPolicy{PolicyId: 2, Rank: 3, Score: 4}, ranked[2])
	})

	t.Run("fewer scores than top N keeps them all", func(t *testing.T) {
		judge := mock.NewMockJudge()
		judge.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return `[{"policy_id": 3, "score": 6}]`, nil
		}
		reranker, err := rank.NewReranker(judge)
		require.NoError(t, err)

		ranked, err := reranker.Rerank(ctx, testCompany(), testCandidates())
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, 1, ranked[0].Rank)
	})

	t.Run("no candidates skips the judge", func(t *testing.T) {
		judge := mock.NewMockJudge()
		reranker, err := rank.NewReranker(judge)
		require.NoError(t, err)

		ranked, err := reranker.Rerank(ctx, testCompany(), nil)
		require.NoError(t, err)
		assert.Empty(t, ranked)
		assert.Equal(t, 0, judge.CallCount())
	})

	t.Run("judge failure is ErrJudgeCall", func(t *testing.T) {
		judge := mock.NewMockJudge()
		judge.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("connection refused")
		}
		reranker, err := rank.NewReranker(judge)
		require.NoError(t, err)

		_, err = reranker.Rerank(ctx, testCompany(), testCandidates())
		assert.ErrorIs(t, err, rank.ErrJudgeCall)
	})

	t.Run("stalled judge trips the per-call timeout", func(t *testing.T) {
		judge := mock.NewMockJudge()
		judge.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}
		reranker, err := rank.NewReranker(judge, rank.WithJudgeTimeout(10*time.Millisecond))
		require.NoError(t, err)

		ranked, err := reranker.Rerank(ctx, testCompany(), testCandidates())
		assert.ErrorIs(t, err, rank.ErrJudgeCall)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Empty(t, ranked)
	})

	t.Run("unusable response is ErrJudgeParse", func(t *testing.T) {
		judge := mock.NewMockJudge()
		judge.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return "I cannot rank these policies.", nil
		}
		reranker, err := rank.NewReranker(judge)
		require.NoError(t, err)

		_, err = reranker.Rerank(ctx, testCompany(), testCandidates())
		assert.ErrorIs(t, err, rank.ErrJudgeParse)
	})

	t.Run("custom top N is honored", func(t *testing.T) {
		judge := mock.NewMockJudge()
		judge.CompleteFunc = func(ctx context.Context, prompt string) (string, error) {
			return `[{"policy_id": 1, "score": 9}, {"policy_id": 2, "score": 8}, {"policy_id": 3, "score": 7}]`, nil
		}
		reranker, err := rank.NewReranker(judge, rank.WithTopN(1))
		require.NoError(t, err)

		ranked, err := reranker.Rerank(ctx, testCompany(), testCandidates())
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, core.ID(1), ranked[0].PolicyId)
	})
}

func TestRerankerPrompt(t *testing.T) {
	judge := mock.NewMockJudge()
	reranker, err := rank.NewReranker(judge, rank.WithScoreBounds(1, 5))
	require.NoError(t, err)

	prompt := reranker.Prompt(testCompany(), testCandidates()[:2])

	assert.Contains(t, prompt, "Company: Nordwind Energy")
	assert.Contains(t, prompt, "Jurisdiction: DE")
	assert.Contains(t, prompt, "Sector: Energy")
	assert.Contains(t, prompt, "from 1 to 5")
	assert.Contains(t, prompt, "ID: 1\nCarbon pricing for heavy industry.")
	assert.Contains(t, prompt, "ID: 2\nRenewable generation subsidies.")
	assert.Equal(t, 2, strings.Count(prompt, "---"))
}
