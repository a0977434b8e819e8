package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

var ErrRunInProgress = errors.New("a generation run is already in progress")

type GenerationConfig struct {
	CronSchedule string
	Enabled      bool
}

// GenerationService runs the generator on a cron schedule for the month
// just closed, and on demand.
type GenerationService struct {
	scheduler *gocron.Scheduler
	config    GenerationConfig
	generator generating.Generator
	now       func() time.Time

	runMutex           sync.Mutex
	running            bool
	wg                 sync.WaitGroup
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastPeriod         string
	lastRunID          string
	lastError          string
}

func NewGenerationService(generator generating.Generator, appConfig *config.Config) *GenerationService {
	cfg := GenerationConfig{
		CronSchedule: appConfig.Generation.CronSchedule,
		Enabled:      appConfig.Generation.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.CronSchedule,
		"enabled":       cfg.Enabled,
	}).Info("generation scheduler configured")

	return &GenerationService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cfg,
		generator: generator,
		now:       time.Now,
	}
}

// Start schedules the monthly run and stops the scheduler when ctx ends.
func (s *GenerationService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduled generation disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting generation scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule generation: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping generation scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// ScheduledPeriod is the period a scheduled run at now generates: the
// previous calendar month.
func ScheduledPeriod(now time.Time) domain.Period {
	return domain.PeriodOf(now).Prev(1)
}

func (s *GenerationService) runScheduled(ctx context.Context) {
	period := ScheduledPeriod(s.now())
	if !s.acquire() {
		logrus.WithField("period", period.String()).Info("generation already running, skipping scheduled run")
		return
	}
	s.run(ctx, generating.Request{Period: period})
}

// TriggerManualRun starts req in the background. It fails fast when a run
// is already going.
func (s *GenerationService) TriggerManualRun(ctx context.Context, req generating.Request) error {
	if req.Period.IsZero() {
		return errors.Wrap(domain.ErrInvalidPeriod, "period is required")
	}
	if !s.acquire() {
		return ErrRunInProgress
	}

	log.ForContext(ctx).WithField("period", req.Period.String()).Info("manual generation triggered")
	go s.run(context.WithoutCancel(ctx), req)
	return nil
}

// Wait blocks until the current run, if any, is done.
func (s *GenerationService) Wait() {
	s.wg.Wait()
}

// acquire marks a run as started. A successful caller must call run, which
// releases the WaitGroup slot taken here.
func (s *GenerationService) acquire() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	if s.running {
		return false
	}
	s.running = true
	s.wg.Add(1)
	s.lastRunStartedAt = s.now()
	return true
}

func (s *GenerationService) run(ctx context.Context, req generating.Request) {
	defer s.wg.Done()
	logger := log.ForContext(ctx).WithField("period", req.Period.String())

	result, err := s.generator.Generate(ctx, req)

	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	s.running = false
	s.lastRunCompletedAt = s.now()
	s.lastPeriod = req.Period.String()
	s.lastError = ""
	s.lastRunID = ""

	switch {
	case err == nil:
		s.lastRunID = result.RunID
		logger.WithField("run_id", result.RunID).Infof("generation finished, %d records skipped", result.SkippedRecords)
	case errors.Is(err, archive.ErrPeriodExists):
		s.lastError = err.Error()
		logger.Info("period already archived, nothing to do")
	case errors.Is(err, generating.ErrBusy):
		s.lastError = err.Error()
		logger.Warn("generator busy with a run started elsewhere")
	default:
		s.lastError = err.Error()
		logger.WithError(err).Error("generation failed")
	}
}

func (s *GenerationService) IsRunning() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.running
}

func (s *GenerationService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"running":               s.running,
		"cron":                  s.config.CronSchedule,
		"enabled":               s.config.Enabled,
		"scheduled_period":      ScheduledPeriod(s.now()).String(),
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_period":           s.lastPeriod,
		"last_run_id":           s.lastRunID,
		"last_error":            s.lastError,
	}
}
