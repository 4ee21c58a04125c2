package api

import (
	"context"
	"encoding/json"
)

// GetBenchmarks returns the aggregate benchmark summary across all
// completed jobs.
func (c *Client) GetBenchmarks(ctx context.Context) (*BenchmarkSummary, error) {
	var out BenchmarkSummary
	if err := c.get(ctx, "/api/benchmarks/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJobBenchmarks returns phase timing and success-rate data for one
// job.
func (c *Client) GetJobBenchmarks(ctx context.Context, jobID int) (*JobBenchmarks, error) {
	var out JobBenchmarks
	if err := c.get(ctx, "/api/benchmarks/job/"+itoa(jobID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportBenchmarks returns the full benchmark dump as raw JSON for
// writing to disk; the export shape nests per-job question detail the
// client has no reason to re-type.
func (c *Client) ExportBenchmarks(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, "/api/benchmarks/export", &out); err != nil {
		return nil, err
	}
	return out, nil
}
