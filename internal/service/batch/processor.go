// Package batch runs the extraction pipeline over many transcripts with
// bounded concurrency.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/extract"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/observability/metrics"
)

// DefaultConcurrency bounds the number of transcripts processed in parallel.
const DefaultConcurrency = 8

// Result pairs one input transcript with its extraction outcome. Record is
// nil when the transcript yielded no quote.
type Result struct {
	Transcript string          `json:"transcript"`
	Record     *extract.Record `json:"record"`
}

// Processor extracts quotes from transcript batches.
type Processor struct {
	concurrency int
	metrics     *metrics.Metrics
}

// NewProcessor creates a batch processor. A concurrency of zero or less
// falls back to DefaultConcurrency.
func NewProcessor(concurrency int) *Processor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Processor{
		concurrency: concurrency,
		metrics:     metrics.DefaultMetrics,
	}
}

// Process runs detailed extraction over all transcripts. Results keep the
// input order. The only error source is context cancellation; individual
// extraction misses are reported as nil records, not errors.
func (p *Processor) Process(ctx context.Context, transcripts []string) ([]Result, error) {
	results := make([]Result, len(transcripts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, transcript := range transcripts {
		i, transcript := i, transcript
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			rec := extract.Detailed(transcript)
			outcome := "hit"
			if rec == nil {
				outcome = "miss"
			}
			p.metrics.RecordExtraction("batch", outcome, time.Since(start).Seconds())

			results[i] = Result{Transcript: transcript, Record: rec}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
