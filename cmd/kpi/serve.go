package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/durabrake/financial-dashboard/internal/api"
	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/metrics"
	"github.com/durabrake/financial-dashboard/internal/scheduler"
	"github.com/durabrake/financial-dashboard/internal/usecases/authenticating"
	"github.com/durabrake/financial-dashboard/internal/usecases/presenting"
)

type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard and the JSON API" }
func (*serveCmd) Usage() string {
	return `kpi serve [-port n]

  Serves the dashboard behind the configured account. With
  GENERATION_ENABLED, also generates last month on GENERATION_CRON.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Listen port (overrides PORT)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	if c.port != "" {
		cfg.Server.Port = c.port
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	arch := archive.New(cfg.Paths.OutputDir)

	m := metrics.New()
	m.WatchArchive(func() (int, error) {
		periods, err := arch.ListPeriods()
		return len(periods), err
	})

	authenticator, err := authenticating.NewService(cfg)
	if err != nil {
		return fail(err)
	}

	generator, closeLedger, err := newGenerator(ctx, cfg, m)
	if err != nil {
		return fail(err)
	}

	generation := scheduler.NewGenerationService(generator, cfg)
	if err := generation.Start(ctx); err != nil {
		logrus.WithError(err).Error("generation scheduler not started")
	}

	server, err := api.New(cfg, api.Dependencies{
		Presenter:     presenting.NewService(cfg, arch),
		Documents:     arch,
		Authenticator: authenticator,
		Generation:    generation,
		Metrics:       m,
	})
	if err != nil {
		closeLedger()
		return fail(err)
	}
	server.OnShutdown(generation.Wait)
	server.OnShutdown(closeLedger)

	if err := server.Run(ctx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
