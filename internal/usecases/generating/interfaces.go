package generating

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/extractor"
)

// Extractor reads the input workbooks of one period.
type Extractor interface {
	Extract(ctx context.Context, period domain.Period, snapshot time.Time) (*extractor.Result, error)
}

// Deriver turns extracted data into archive documents.
type Deriver interface {
	Derive(data *domain.SourceData) (*domain.Bundle, error)
}

// Archiver publishes a period atomically.
type Archiver interface {
	Exists(period domain.Period) (bool, error)
	Publish(ctx context.Context, bundle *domain.Bundle, opts archive.PublishOptions) error
}

// RunRecorder keeps an audit trail of runs. Failures to record never fail a
// run.
type RunRecorder interface {
	Start(ctx context.Context, run *domain.GenerationRun) error
	Finish(ctx context.Context, run *domain.GenerationRun) error
}

// Observer receives the outcome of every run, for metrics.
type Observer interface {
	ObserveGeneration(status domain.GenerationStatus, duration time.Duration, skipped int)
}

// Generator is what the CLI, the scheduler and the HTTP layer drive.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
