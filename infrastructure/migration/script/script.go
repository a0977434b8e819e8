// Command script creates the generation_runs table and records an
// "imported" run for every period already present in the archive, so the
// ledger covers periods generated before it was enabled.
package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/durabrake/financial-dashboard/infrastructure/database/postgres"
	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/log"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

const createGenerationRuns = `
	CREATE TABLE generation_runs (
		id              VARCHAR(16) PRIMARY KEY,
		period          CHAR(5)     NOT NULL,
		status          VARCHAR(16) NOT NULL,
		overwrite       BOOLEAN     NOT NULL DEFAULT FALSE,
		skipped_records INTEGER     NOT NULL DEFAULT 0,
		error_message   TEXT,
		started_at      TIMESTAMPTZ NOT NULL,
		finished_at     TIMESTAMPTZ
	)`

const createPeriodIndex = `CREATE INDEX generation_runs_period_idx ON generation_runs (period, started_at DESC)`

// ensureSchema creates the ledger table unless it already exists.
func ensureSchema(ctx context.Context, q postgres.Queryer) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = 'generation_runs'
		)
	`).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "checking generation_runs")
	}

	if exists {
		return false, nil
	}

	if _, err := q.ExecContext(ctx, createGenerationRuns); err != nil {
		return false, errors.Wrap(err, "creating generation_runs")
	}
	if _, err := q.ExecContext(ctx, createPeriodIndex); err != nil {
		return false, errors.Wrap(err, "creating generation_runs index")
	}

	return true, nil
}

// backfill inserts an imported run for each period with no ledger entry.
// It returns the number of rows inserted.
func backfill(ctx context.Context, q postgres.Queryer, periods []domain.Period, now time.Time, newID func() (string, error)) (int, error) {
	inserted := 0
	for _, period := range periods {
		var count int
		err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM generation_runs WHERE period = $1`, period.String()).Scan(&count)
		if err != nil {
			return inserted, errors.Wrapf(err, "counting runs for %s", period)
		}
		if count > 0 {
			logrus.WithField("period", period.String()).Debug("period already in ledger")
			continue
		}

		id, err := newID()
		if err != nil {
			return inserted, errors.Wrap(err, "generating run id")
		}

		query, args, err := squirrel.
			Insert("generation_runs").
			Columns("id", "period", "status", "started_at", "finished_at").
			Values(id, period.String(), string(domain.GenerationImported), now, now).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return inserted, errors.Wrap(err, "building insert")
		}

		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return inserted, errors.Wrapf(err, "importing %s", period)
		}
		inserted++
		logrus.WithFields(logrus.Fields{"period": period.String(), "run_id": id}).Info("period imported")
	}

	return inserted, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	periods, err := archive.New(cfg.Paths.OutputDir).ListPeriods()
	if err != nil {
		return err
	}
	logrus.WithField("periods", len(periods)).Info("archived periods found")

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer conn.Close()

	created, err := ensureSchema(ctx, conn)
	if err != nil {
		return err
	}
	if created {
		logrus.Info("generation_runs table created")
	}

	start := time.Now()
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		inserted, err := backfill(ctx, tx, periods, start.UTC(), utils.GenerateID)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"inserted": inserted,
			"elapsed":  time.Since(start).String(),
		}).Info("ledger bootstrap finished")
		return nil
	})
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("loading configuration")
	}
	log.Setup(cfg.App.LogLevel)

	if err := run(context.Background(), cfg); err != nil {
		logrus.WithError(err).Error("ledger bootstrap failed")
		os.Exit(1)
	}
}
