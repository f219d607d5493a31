// Copyright 2026 Sokbolag AB
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
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sokbolag/branschmatch"
	"github.com/sokbolag/branschmatch/ai"
	"github.com/sokbolag/branschmatch/ai/openai"
	"github.com/sokbolag/branschmatch/match"
	"github.com/sokbolag/branschmatch/precompute"
	"github.com/sokbolag/branschmatch/storage/badger"
	"github.com/sokbolag/branschmatch/taxonomy"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "branschmatch",
		Usage: "Match free-text industry descriptions to taxonomy codes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "match",
				Usage:     "Match an industry description against the taxonomy",
				ArgsUsage: "<description>",
				Action:    matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "taxonomy",
						Aliases:  []string{"t"},
						Usage:    "Path to the taxonomy JSON dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "strategy",
						Usage: "Ranking strategy (embedding, refine, lexical)",
						Value: "embedding",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "refiner-model",
						Usage: "Refiner model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to the BadgerDB vector cache directory",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of codes to return",
						Value: match.DefaultMaxResults,
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Show taxonomy and vector cache statistics",
				Action: inspectCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "taxonomy",
						Aliases:  []string{"t"},
						Usage:    "Path to the taxonomy JSON dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to the BadgerDB vector cache directory",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name to count cached vectors for",
						Value: "embeddinggemma",
					},
				},
			},
			{
				Name:   "precompute",
				Usage:  "Embed the full taxonomy into the vector cache",
				Action: precomputeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "taxonomy",
						Aliases:  []string{"t"},
						Usage:    "Path to the taxonomy JSON dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "cache",
						Aliases:  []string{"c"},
						Usage:    "Path to the BadgerDB vector cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries to embed in each batch",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent embedding workers",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("an industry description is required")
	}

	strategy, err := parseStrategy(c.String("strategy"))
	if err != nil {
		return err
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRefinerModel(c.String("refiner-model")),
	)

	opts := []branschmatch.ServiceOption{
		branschmatch.WithAIConfig(aiConfig),
		branschmatch.WithStrategy(strategy),
		branschmatch.WithMaxResults(c.Int("max-results")),
	}
	if cachePath := c.String("cache"); cachePath != "" {
		opts = append(opts, branschmatch.WithVectorCachePath(cachePath))
	}

	svc, err := branschmatch.NewService(c.String("taxonomy"), opts...)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer svc.Close()

	codes := svc.MatchIndustries(ctx, query)
	if len(codes) == 0 {
		fmt.Println("No matching industries found")
		return nil
	}

	for i, code := range codes {
		fmt.Printf("%d: %s\n", i+1, code)
	}
	return nil
}

func inspectCommand(c *cli.Context) error {
	ctx := context.Background()

	entries, err := taxonomy.Load(c.String("taxonomy"))
	if err != nil {
		return fmt.Errorf("failed to load taxonomy: %w", err)
	}

	enriched := 0
	for _, entry := range entries {
		if entry.Description != entry.Name || len(entry.Keywords) > 0 {
			enriched++
		}
	}

	fmt.Printf("Taxonomy: %s\n", c.String("taxonomy"))
	fmt.Printf("Entries: %d (%d enriched)\n", len(entries), enriched)

	cachePath := c.String("cache")
	if cachePath == "" {
		return nil
	}

	backend, err := badger.OpenBackend(cachePath, false)
	if err != nil {
		return fmt.Errorf("failed to open vector cache: %w", err)
	}
	defer backend.Close()

	cache, err := badger.NewVectorCache(backend)
	if err != nil {
		return fmt.Errorf("failed to create vector cache: %w", err)
	}

	model := c.String("embedding-model")
	count, err := cache.Count(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to count cached vectors: %w", err)
	}

	fmt.Printf("Cached vectors for %s: %d of %d\n", model, count, len(entries))
	return nil
}

func precomputeCommand(c *cli.Context) error {
	ctx := context.Background()

	entries, err := taxonomy.Load(c.String("taxonomy"))
	if err != nil {
		return fmt.Errorf("failed to load taxonomy: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("cache"), false)
	if err != nil {
		return fmt.Errorf("failed to open vector cache: %w", err)
	}
	defer backend.Close()

	cache, err := badger.NewVectorCache(backend)
	if err != nil {
		return fmt.Errorf("failed to create vector cache: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	config := precompute.DefaultConfig()
	config.BatchSize = c.Int("batch-size")
	config.ReportInterval = c.Int("report-interval")
	config.MaxRetries = c.Int("max-retries")
	config.RetryDelay = c.Duration("retry-delay")
	if workers := c.Int("workers"); workers > 0 {
		config.PoolSize = workers
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	p, err := precompute.NewPrecomputer(entries, embedder, cache,
		c.String("embedding-model"), config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create precomputer: %w", err)
	}
	defer p.Release()

	fmt.Fprintf(os.Stderr, "Taxonomy: %s (%d entries)\n", c.String("taxonomy"), len(entries))
	fmt.Fprintf(os.Stderr, "Cache: %s\n", c.String("cache"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("precompute failed: %w", err)
	}

	return nil
}

func parseStrategy(name string) (match.Strategy, error) {
	switch strings.ToLower(name) {
	case "embedding":
		return match.StrategyEmbedding, nil
	case "refine":
		return match.StrategyRefine, nil
	case "lexical":
		return match.StrategyLexical, nil
	default:
		return 0, fmt.Errorf("invalid strategy %q: must be one of embedding, refine, lexical", name)
	}
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
