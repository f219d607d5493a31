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


package precompute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sokbolag/branschmatch/ai"
	"github.com/sokbolag/branschmatch/core"
	"github.com/sokbolag/branschmatch/storage"
)

// Config holds configuration for the precomputation run.
type Config struct {
	// BatchSize is the number of entries sent to the embedder per request
	BatchSize int

	// PoolSize is the number of concurrent embedding workers.
	// Default is runtime.NumCPU() / 2, with a minimum of 1.
	PoolSize int

	// ReportInterval is how often to report progress (number of entries)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Config{
		BatchSize:      50,
		PoolSize:       poolSize,
		ReportInterval: 50,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Precomputer embeds an entire taxonomy into the vector cache ahead of
// serving, so the first match of a process never pays the embedding cost.
type Precomputer struct {
	entries   []*core.TaxonomyEntry
	cache     storage.VectorCache
	model     string
	config    *Config
	progress  io.Writer
	processor *batchProcessor
	pool      *ants.Pool
	logger    *slog.Logger
}

// NewPrecomputer creates a new precomputer.
// progress: where to write progress output (typically os.Stderr)
func NewPrecomputer(entries []*core.TaxonomyEntry, embedder ai.Embedder, cache storage.VectorCache, model string, config *Config, progress io.Writer) (*Precomputer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	pool, err := ants.NewPool(config.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	return &Precomputer{
		entries:   entries,
		cache:     cache,
		model:     model,
		config:    config,
		progress:  progress,
		processor: newBatchProcessor(embedder, cache, model, config.MaxRetries, config.RetryDelay),
		pool:      pool,
		logger:    slog.Default().With("component", "precompute"),
	}, nil
}

// Release frees the worker pool. The precomputer cannot be reused after.
func (p *Precomputer) Release() {
	p.pool.Release()
}

// Run embeds every taxonomy entry whose vector is not already cached.
// Batches run concurrently on the worker pool; progress is reported to the
// configured writer. Already-cached entries are skipped, so interrupted runs
// resume where they left off.
func (p *Precomputer) Run(ctx context.Context) error {
	missing, err := p.findMissing(ctx)
	if err != nil {
		return err
	}

	if len(missing) == 0 {
		fmt.Fprintf(p.progress, "All %d vectors already cached for model %s\n",
			len(p.entries), p.model)
		return nil
	}

	fmt.Fprintf(p.progress, "Embedding %d of %d entries (batch size: %d, workers: %d)\n",
		len(missing), len(p.entries), p.config.BatchSize, p.config.PoolSize)

	tracker := NewProgressTracker(p.progress, len(missing), p.config.ReportInterval)
	tracker.Start()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		batchErrs []error
	)

	for start := 0; start < len(missing); start += p.config.BatchSize {
		end := start + p.config.BatchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			if err := p.processor.process(ctx, batch); err != nil {
				p.logger.Error("batch embedding failed", "size", len(batch), "err", err)
				mu.Lock()
				batchErrs = append(batchErrs, err)
				mu.Unlock()
				return
			}
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			batchErrs = append(batchErrs, fmt.Errorf("submitting batch: %w", submitErr))
			mu.Unlock()
		}
	}

	wg.Wait()
	tracker.Finish()

	if len(batchErrs) > 0 {
		return fmt.Errorf("%d of %d batches failed: %w",
			len(batchErrs), (len(missing)+p.config.BatchSize-1)/p.config.BatchSize,
			errors.Join(batchErrs...))
	}

	elapsed := tracker.Elapsed()
	fmt.Fprintf(p.progress, "Precompute complete. Embedded %d entries in %v (%.1f vectors/sec)\n",
		len(missing), elapsed.Round(time.Second), float64(len(missing))/elapsed.Seconds())

	return nil
}

// findMissing returns the entries without a cached vector for the model.
func (p *Precomputer) findMissing(ctx context.Context) ([]*core.TaxonomyEntry, error) {
	missing := make([]*core.TaxonomyEntry, 0, len(p.entries))
	for _, entry := range p.entries {
		_, err := p.cache.Get(ctx, entry.Fingerprint(), p.model)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("checking cache for %s: %w", entry.Code, err)
		}
		missing = append(missing, entry)
	}
	return missing, nil
}
