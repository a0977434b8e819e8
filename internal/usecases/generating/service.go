// Package generating runs one period end to end: extract, derive, publish.
// A run either publishes a complete archive or nothing.
package generating

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/extractor"
	"github.com/durabrake/financial-dashboard/pkg/log"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

var ErrBusy = errors.New("a generation run is already in progress")

type Request struct {
	Period    domain.Period
	Overwrite bool
	// SnapshotDate defaults to the last day of Period.
	SnapshotDate time.Time
}

type Result struct {
	RunID          string
	Period         domain.Period
	SnapshotDate   time.Time
	SkippedRecords int
	Skipped        extractor.ParseErrors
	Bundle         *domain.Bundle
	Duration       time.Duration
}

type Service struct {
	extractor   Extractor
	deriver     Deriver
	archiver    Archiver
	recorder    RunRecorder
	observer    Observer
	skipInvalid bool

	mu    sync.Mutex
	now   func() time.Time
	newID func() (string, error)
}

func NewService(cfg *config.Config, ext Extractor, deriver Deriver, archiver Archiver) *Service {
	return &Service{
		extractor:   ext,
		deriver:     deriver,
		archiver:    archiver,
		skipInvalid: cfg.SkipInvalidRecords(),
		now:         time.Now,
		newID:       utils.GenerateID,
	}
}

// WithRecorder enables the run ledger.
func (s *Service) WithRecorder(recorder RunRecorder) *Service {
	s.recorder = recorder
	return s
}

func (s *Service) WithObserver(observer Observer) *Service {
	s.observer = observer
	return s
}

// Generate runs req. Only one run proceeds at a time; a concurrent call gets
// ErrBusy.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Period.IsZero() {
		return nil, errors.Wrap(domain.ErrInvalidPeriod, "period is required")
	}
	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()

	runID, err := s.newID()
	if err != nil {
		return nil, errors.Wrap(err, "generate run id")
	}
	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx).WithField("period", req.Period.String())

	snapshot := req.SnapshotDate
	if snapshot.IsZero() {
		snapshot = req.Period.EndDate()
	}

	started := s.now()
	run := &domain.GenerationRun{
		ID:        runID,
		Period:    req.Period.String(),
		Status:    domain.GenerationRunning,
		Overwrite: req.Overwrite,
		StartedAt: started,
	}
	s.recordStart(ctx, run)
	logger.Infof("generation started, snapshot %s", snapshot.Format(utils.DateLayout))

	result, err := s.run(ctx, req, runID, snapshot)

	finished := s.now()
	run.FinishedAt = &finished
	run.Status = domain.GenerationSucceeded
	if result != nil {
		run.SkippedRecords = result.SkippedRecords
	}
	if err != nil {
		run.Status = domain.GenerationFailed
		msg := err.Error()
		run.ErrorMessage = &msg
	}
	s.recordFinish(ctx, run)
	if s.observer != nil {
		s.observer.ObserveGeneration(run.Status, finished.Sub(started), run.SkippedRecords)
	}

	if err != nil {
		logger.WithError(err).Error("generation failed, nothing published")
		return nil, err
	}

	result.Duration = finished.Sub(started)
	logger.Infof("generation succeeded in %s", result.Duration)
	return result, nil
}

func (s *Service) run(ctx context.Context, req Request, runID string, snapshot time.Time) (*Result, error) {
	logger := log.ForContext(ctx).WithField("period", req.Period.String())

	if !req.Overwrite {
		exists, err := s.archiver.Exists(req.Period)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.Wrapf(archive.ErrPeriodExists, "%s (use overwrite to replace it)", req.Period)
		}
	}

	extracted, err := s.extractor.Extract(ctx, req.Period, snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "extract")
	}

	result := &Result{RunID: runID, Period: req.Period, SnapshotDate: snapshot}
	if n := len(extracted.Failures); n > 0 {
		if !s.skipInvalid {
			return nil, errors.Wrapf(extracted.Failures, "%d invalid records", n)
		}
		for _, f := range extracted.Failures {
			logger.WithFields(log.Fields{
				"file":   f.File,
				"sheet":  f.Sheet,
				"row":    f.Row,
				"column": f.Column,
			}).Warnf("skipping record: %s", f.Reason)
		}
		result.Skipped = extracted.Failures
		result.SkippedRecords = n
		extracted.Data.SkippedRecords = n
	}

	bundle, err := s.deriver.Derive(extracted.Data)
	if err != nil {
		return result, errors.Wrap(err, "derive")
	}

	if err := s.archiver.Publish(ctx, bundle, archive.PublishOptions{RunID: runID, Overwrite: req.Overwrite}); err != nil {
		return result, errors.Wrap(err, "publish")
	}

	result.Bundle = bundle
	return result, nil
}

func (s *Service) recordStart(ctx context.Context, run *domain.GenerationRun) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Start(ctx, run); err != nil {
		log.ForContext(ctx).WithError(err).Warn("could not record run start")
	}
}

func (s *Service) recordFinish(ctx context.Context, run *domain.GenerationRun) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Finish(ctx, run); err != nil {
		log.ForContext(ctx).WithError(err).Warn("could not record run result")
	}
}
