package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/durabrake/financial-dashboard/infrastructure/database/postgres"
	"github.com/durabrake/financial-dashboard/infrastructure/repository"
	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/extractor"
	"github.com/durabrake/financial-dashboard/internal/usecases/deriving"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

// loadConfig reads the configuration and installs the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log.Setup(cfg.App.LogLevel)
	return cfg, nil
}

// periodOrDefault resolves a -p flag, falling back to PERIOD and then to
// the newest archived period.
func periodOrDefault(flagValue string, cfg *config.Config, arch *archive.Archive) (domain.Period, error) {
	value := flagValue
	if value == "" {
		value = cfg.Generation.Period
	}
	if value != "" {
		return domain.ParsePeriod(value)
	}

	periods, err := arch.ListPeriods()
	if err != nil {
		return domain.Period{}, err
	}
	if len(periods) == 0 {
		return domain.Period{}, archive.ErrNoData
	}
	return periods[0], nil
}

// openLedger connects the run ledger when it is enabled. The returned close
// func is never nil.
func openLedger(ctx context.Context, cfg *config.Config) (repository.GenerationRunRepository, func(), error) {
	if !cfg.Generation.RunLedgerEnabled {
		return nil, func() {}, nil
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, func() {}, err
	}
	logrus.Info("run ledger connected")

	return repository.NewGenerationRunRepository(conn), func() { _ = conn.Close() }, nil
}

// newGenerator wires the pipeline. observer may be nil.
func newGenerator(ctx context.Context, cfg *config.Config, observer generating.Observer) (*generating.Service, func(), error) {
	service := generating.NewService(
		cfg,
		extractor.New(cfg),
		deriving.NewService(),
		archive.New(cfg.Paths.OutputDir),
	)

	ledger, closeLedger, err := openLedger(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Warn("run ledger unavailable, runs will not be recorded")
	} else if ledger != nil {
		service.WithRecorder(ledger)
	}
	if observer != nil {
		service.WithObserver(observer)
	}

	return service, closeLedger, nil
}

func printMarkdown(w io.Writer, md string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
