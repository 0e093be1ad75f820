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

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	relevancy "github.com/maivenlabs/relevancy"
	"github.com/maivenlabs/relevancy/ai"
	"github.com/maivenlabs/relevancy/core"
	"github.com/maivenlabs/relevancy/ingestion"
	"github.com/maivenlabs/relevancy/rank"
	"github.com/maivenlabs/relevancy/relevance"
)

// noopProvider satisfies ai.AIProvider for commands that never touch the
// embedding or judge services (load, score).
type noopProvider struct{}

func (noopProvider) Embedder() ai.Embedder { return nil }
func (noopProvider) Judge() ai.Judge       { return nil }
func (noopProvider) Close() error          { return nil }

func main() {
	app := &cli.App{
		Name:  "relevancy",
		Usage: "Match companies to climate and regulatory policies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Load company and policy CSV files into the store",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "companies",
						Usage: "Path to the company CSV file",
					},
					&cli.StringFlag{
						Name:  "policies",
						Usage: "Path to the policy CSV file",
					},
				},
			},
			{
				Name:   "score",
				Usage:  "Print the deterministic jurisdiction-window relevance table",
				Action: scoreCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "eligibility-window",
						Usage: "Policy-age window for relevance rows, in days",
						Value: relevance.DefaultEligibilityWindowDays,
					},
					&cli.IntFlag{
						Name:  "staleness-window",
						Usage: "Policy-age window for the staleness average, in days",
						Value: relevance.DefaultStalenessWindowDays,
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Rank policies per company with retrieval and LLM reranking",
				Action: matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL for embeddings and the judge",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "judge-model",
						Usage: "Judge model name",
						Value: "qwen2.5:3b",
					},
					&cli.Uint64Flag{
						Name:  "company",
						Usage: "Match a single company by ID instead of all companies",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Candidates retrieved per company",
						Value: rank.DefaultTopK,
					},
					&cli.IntFlag{
						Name:  "top-n",
						Usage: "Ranked policies kept per company",
						Value: rank.DefaultTopN,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for the company fan-out (0 = half the CPUs)",
					},
					&cli.DurationFlag{
						Name:  "judge-timeout",
						Usage: "Per-call judge timeout",
						Value: 2 * time.Minute,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	companiesPath := c.String("companies")
	policiesPath := c.String("policies")
	if companiesPath == "" && policiesPath == "" {
		return fmt.Errorf("provide --companies, --policies, or both")
	}

	engine, err := relevancy.NewEngine(c.String("db"), relevancy.WithProvider(noopProvider{}))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer engine.Close()

	loader, err := engine.NewLoader()
	if err != nil {
		return err
	}

	if companiesPath != "" {
		report, err := loadFile(ctx, companiesPath, loader.LoadCompanies)
		if err != nil {
			return fmt.Errorf("failed to load companies: %w", err)
		}
		printReport("companies", report)
	}

	if policiesPath != "" {
		report, err := loadFile(ctx, policiesPath, loader.LoadPolicies)
		if err != nil {
			return fmt.Errorf("failed to load policies: %w", err)
		}
		printReport("policies", report)
	}

	return nil
}

func loadFile(ctx context.Context, path string, load func(context.Context, io.Reader) (*ingestion.Report, error)) (*ingestion.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return load(ctx, f)
}

func printReport(kind string, report *ingestion.Report) {
	fmt.Printf("Loaded %d of %d %s\n", report.Loaded, report.Total, kind)
	for field, count := range report.FailuresByField() {
		fmt.Printf("  skipped on %s: %d\n", field, count)
	}
}

func scoreCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := relevancy.NewEngine(c.String("db"), relevancy.WithProvider(noopProvider{}))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer engine.Close()

	scorer, err := engine.NewScorer(
		relevance.WithEligibilityWindow(c.Int("eligibility-window")),
		relevance.WithStalenessWindow(c.Int("staleness-window")),
	)
	if err != nil {
		return err
	}

	rows, err := scorer.Score(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("No results returned.")
		return nil
	}

	fmt.Println("company_id\tpolicy_id\tgeography\tupdated_date\tavg_days_since_update")
	fmt.Println(strings.Repeat("-", 80))
	for _, row := range rows {
		avg := ""
		if row.AvgDaysSinceUpdate != nil {
			avg = fmt.Sprintf("%.1f", *row.AvgDaysSinceUpdate)
		}
		fmt.Printf("%d\t%d\t%s\t%s\t%s\n",
			row.CompanyId,
			row.PolicyId,
			row.Geography,
			row.UpdatedDate.UTC().Format(time.RFC3339),
			avg)
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithJudgeModel(c.String("judge-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := relevancy.NewEngine(c.String("db"), relevancy.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer engine.Close()

	var matcherOpts []rank.MatcherOption
	if c.Int("pool-size") > 0 {
		matcherOpts = append(matcherOpts, rank.WithPoolSize(c.Int("pool-size")))
	}

	matcher, err := engine.NewMatcher(ctx,
		[]rank.RetrieverOption{rank.WithTopK(c.Int("top-k"))},
		[]rank.RerankerOption{
			rank.WithTopN(c.Int("top-n")),
			rank.WithJudgeTimeout(c.Duration("judge-timeout")),
		},
		matcherOpts...)
	if err != nil {
		return fmt.Errorf("failed to build matcher: %w", err)
	}
	defer matcher.Release()

	var rankings []*core.CompanyRanking
	if c.IsSet("company") {
		ranking, err := matcher.Match(ctx, core.ID(c.Uint64("company")))
		if err != nil {
			return fmt.Errorf("matching failed: %w", err)
		}
		rankings = append(rankings, ranking)
	} else {
		rankings, err = matcher.MatchAll(ctx)
		if err != nil {
			return fmt.Errorf("matching failed: %w", err)
		}
	}

	for _, ranking := range rankings {
		if err := printRanking(ctx, engine, c.Int("top-n"), ranking); err != nil {
			return err
		}
	}
	return nil
}

func printRanking(ctx context.Context, engine *relevancy.Engine, topN int, ranking *core.CompanyRanking) error {
	company, err := engine.CompanyRepository().GetCompany(ctx, ranking.CompanyId)
	if err != nil {
		return err
	}

	fmt.Printf("The top %d for %s (ID %d)\n", topN, company.Name, company.Id)
	if len(ranking.Ranked) == 0 {
		fmt.Println(" • no recommendations")
		return nil
	}
	for _, rp := range ranking.Ranked {
		name := fmt.Sprintf("policy %d", rp.PolicyId)
		if policy, err := engine.PolicyRepository().GetPolicy(ctx, rp.PolicyId); err == nil {
			name = policy.Name
		}
		fmt.Printf(" • %d (%s): %d/10\n", rp.PolicyId, name, rp.Score)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
