package dupscan

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/PratikDhanave/sponsorship-service/internal/content"
)

// Fetcher loads one bounded batch of person records.
type Fetcher interface {
	FetchPersons(ctx context.Context, pageSize int) (content.Batch, error)
}

// Runner performs one fetch-and-detect pass.
type Runner struct {
	fetcher  Fetcher
	pageSize int
	log      *zap.Logger
}

// NewRunner creates a Runner that asks for up to pageSize records.
func NewRunner(f Fetcher, pageSize int, log *zap.Logger) (*Runner, error) {
	if f == nil {
		return nil, errors.New("fetcher is required")
	}
	if pageSize <= 0 {
		return nil, errors.New("page size must be positive")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{fetcher: f, pageSize: pageSize, log: log}, nil
}

// Run fetches a single batch and reports duplicates in it. Fetch failures
// are returned unchanged and never retried. A response without a record
// collection is an empty report, not an error.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	batch, err := r.fetcher.FetchPersons(ctx, r.pageSize)
	if err != nil {
		r.log.Error("duplicate scan fetch failed", zap.Error(err))
		return Report{}, err
	}

	if !batch.Present {
		r.log.Info("no record collection in response")
		return Detect(nil), nil
	}

	report := Detect(batch.Records)
	if batch.Truncated() {
		report.Truncated = true
		r.log.Warn("batch may be truncated; more records may exist beyond the page size",
			zap.Int("page_size", r.pageSize),
			zap.Int("returned", len(batch.Records)),
			zap.Int("reported_total", batch.Total),
		)
	}

	r.log.Info("duplicate scan complete",
		zap.Int("records", report.Total),
		zap.Int("duplicates", len(report.Groups)),
	)
	return report, nil
}
