// Package precompute warms the vector cache by embedding the full taxonomy
// ahead of serving.
//
// This package supports concurrent batch processing on a worker pool,
// progress tracking, retry logic with exponential backoff, and vector
// normalization so similarity ranking can use plain dot products. Runs are
// resumable: entries that already have a cached vector are skipped.
package precompute
