package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/infrastructure/database/postgres"
	"github.com/durabrake/financial-dashboard/internal/domain"
)

const generationRunsTable = "generation_runs"

var generationRunColumns = []string{
	"id", "period", "status", "overwrite", "skipped_records", "error_message", "started_at", "finished_at",
}

type GenerationRunRepository interface {
	Start(ctx context.Context, run *domain.GenerationRun) error
	Finish(ctx context.Context, run *domain.GenerationRun) error
	Recent(ctx context.Context, limit uint64) ([]*domain.GenerationRun, error)
	LastSucceeded(ctx context.Context, period string) (*domain.GenerationRun, error)
}

type generationRunRepository struct {
	conn postgres.Queryer
}

func NewGenerationRunRepository(conn postgres.Queryer) GenerationRunRepository {
	return &generationRunRepository{
		conn: conn,
	}
}

func (r *generationRunRepository) Start(ctx context.Context, run *domain.GenerationRun) error {
	query, args, err := squirrel.
		Insert(generationRunsTable).
		Columns("id", "period", "status", "overwrite", "started_at").
		Values(run.ID, run.Period, string(run.Status), run.Overwrite, run.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building insert")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapPQ(err, "inserting generation run")
	}

	return nil
}

func (r *generationRunRepository) Finish(ctx context.Context, run *domain.GenerationRun) error {
	query, args, err := squirrel.
		Update(generationRunsTable).
		Set("status", string(run.Status)).
		Set("skipped_records", run.SkippedRecords).
		Set("error_message", run.ErrorMessage).
		Set("finished_at", run.FinishedAt).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building update")
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapPQ(err, "updating generation run")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if affected == 0 {
		return errors.Errorf("generation run %s not found", run.ID)
	}

	return nil
}

// Recent returns the latest runs, newest first.
func (r *generationRunRepository) Recent(ctx context.Context, limit uint64) ([]*domain.GenerationRun, error) {
	query, args, err := squirrel.
		Select(generationRunColumns...).
		From(generationRunsTable).
		OrderBy("started_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPQ(err, "listing generation runs")
	}
	defer rows.Close()

	runs := make([]*domain.GenerationRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating generation runs")
	}

	return runs, nil
}

// LastSucceeded returns nil when period was never generated successfully.
func (r *generationRunRepository) LastSucceeded(ctx context.Context, period string) (*domain.GenerationRun, error) {
	query, args, err := squirrel.
		Select(generationRunColumns...).
		From(generationRunsTable).
		Where(squirrel.Eq{
			"period": period,
			"status": []string{string(domain.GenerationSucceeded), string(domain.GenerationImported)},
		}).
		OrderBy("started_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select")
	}

	run, err := scanRun(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.GenerationRun, error) {
	var (
		run        domain.GenerationRun
		status     string
		errMessage sql.NullString
		finishedAt sql.NullTime
	)

	err := row.Scan(
		&run.ID,
		&run.Period,
		&status,
		&run.Overwrite,
		&run.SkippedRecords,
		&errMessage,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scanning generation run")
	}

	run.Status = domain.GenerationStatus(status)
	if errMessage.Valid {
		run.ErrorMessage = &errMessage.String
	}
	if finishedAt.Valid {
		t := finishedAt.Time.In(time.UTC)
		run.FinishedAt = &t
	}
	run.StartedAt = run.StartedAt.In(time.UTC)

	return &run, nil
}

func wrapPQ(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(err, "%s (code %s)", msg, pqErr.Code)
	}
	return errors.Wrap(err, msg)
}
