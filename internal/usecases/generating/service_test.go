package generating_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/extractor"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating/mocks"
	"github.com/durabrake/financial-dashboard/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

var period = domain.MustParsePeriod("25.12")

func extraction(failures ...*extractor.ParseError) *extractor.Result {
	return &extractor.Result{
		Data:     &domain.SourceData{Period: period, SnapshotDate: period.EndDate()},
		Failures: failures,
	}
}

func TestService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExtractor := mocks.NewMockExtractor(ctrl)
	mockDeriver := mocks.NewMockDeriver(ctrl)
	mockArchiver := mocks.NewMockArchiver(ctrl)
	mockRecorder := mocks.NewMockRunRecorder(ctrl)
	mockObserver := mocks.NewMockObserver(ctrl)

	bundle := &domain.Bundle{Period: period}
	badRow := &extractor.ParseError{File: "customer_sales.xlsx", Sheet: "Sales Detail", Row: 7, Column: "date", Value: "soon", Reason: "unrecognized date"}

	tests := []struct {
		name     string
		policy   string
		request  generating.Request
		setup    func()
		validate func(t *testing.T, result *generating.Result, err error)
	}{
		{
			name:    "publishes a new period",
			request: generating.Request{Period: period},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *domain.GenerationRun) error {
					assert.Equal(t, domain.GenerationRunning, run.Status)
					assert.Equal(t, "25.12", run.Period)
					assert.NotEmpty(t, run.ID)
					return nil
				})
				mockArchiver.EXPECT().Exists(period).Return(false, nil)
				mockExtractor.EXPECT().Extract(gomock.Any(), period, period.EndDate()).Return(extraction(), nil)
				mockDeriver.EXPECT().Derive(gomock.Any()).Return(bundle, nil)
				mockArchiver.EXPECT().Publish(gomock.Any(), bundle, gomock.Any()).DoAndReturn(func(_ context.Context, _ *domain.Bundle, opts archive.PublishOptions) error {
					assert.False(t, opts.Overwrite)
					assert.NotEmpty(t, opts.RunID)
					return nil
				})
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *domain.GenerationRun) error {
					assert.Equal(t, domain.GenerationSucceeded, run.Status)
					assert.NotNil(t, run.FinishedAt)
					assert.Nil(t, run.ErrorMessage)
					return nil
				})
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationSucceeded, gomock.Any(), 0)
			},
			validate: func(t *testing.T, result *generating.Result, err error) {
				require.NoError(t, err)
				assert.Same(t, bundle, result.Bundle)
				assert.Equal(t, period.EndDate(), result.SnapshotDate)
				assert.NotEmpty(t, result.RunID)
			},
		},
		{
			name:    "refuses an archived period without overwrite",
			request: generating.Request{Period: period},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
				mockArchiver.EXPECT().Exists(period).Return(true, nil)
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *domain.GenerationRun) error {
					assert.Equal(t, domain.GenerationFailed, run.Status)
					require.NotNil(t, run.ErrorMessage)
					assert.Contains(t, *run.ErrorMessage, "already archived")
					return nil
				})
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationFailed, gomock.Any(), 0)
			},
			validate: func(t *testing.T, result *generating.Result, err error) {
				assert.ErrorIs(t, err, archive.ErrPeriodExists)
				assert.Nil(t, result)
			},
		},
		{
			name:    "overwrite skips the existence check",
			request: generating.Request{Period: period, Overwrite: true, SnapshotDate: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
				mockExtractor.EXPECT().Extract(gomock.Any(), period, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)).Return(extraction(), nil)
				mockDeriver.EXPECT().Derive(gomock.Any()).Return(bundle, nil)
				mockArchiver.EXPECT().Publish(gomock.Any(), bundle, gomock.Any()).DoAndReturn(func(_ context.Context, _ *domain.Bundle, opts archive.PublishOptions) error {
					assert.True(t, opts.Overwrite)
					return nil
				})
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationSucceeded, gomock.Any(), 0)
			},
			validate: func(t *testing.T, result *generating.Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, 15, result.SnapshotDate.Day())
			},
		},
		{
			name:    "missing input aborts before deriving",
			request: generating.Request{Period: period},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
				mockArchiver.EXPECT().Exists(period).Return(false, nil)
				mockExtractor.EXPECT().Extract(gomock.Any(), period, gomock.Any()).
					Return(nil, &extractor.MissingRequiredInputError{File: "financial_statements.xlsx", Sheet: "PL YTD"})
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationFailed, gomock.Any(), 0)
			},
			validate: func(t *testing.T, _ *generating.Result, err error) {
				var missing *extractor.MissingRequiredInputError
				require.True(t, errors.As(err, &missing))
				assert.Equal(t, "PL YTD", missing.Sheet)
			},
		},
		{
			name:    "invalid records abort under the default policy",
			request: generating.Request{Period: period},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
				mockArchiver.EXPECT().Exists(period).Return(false, nil)
				mockExtractor.EXPECT().Extract(gomock.Any(), period, gomock.Any()).Return(extraction(badRow), nil)
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationFailed, gomock.Any(), 0)
			},
			validate: func(t *testing.T, _ *generating.Result, err error) {
				assert.ErrorIs(t, err, extractor.ErrInvalidCell)
				assert.Contains(t, err.Error(), "1 invalid records")
				assert.Contains(t, err.Error(), "row 7")
			},
		},
		{
			name:    "invalid records are dropped and counted under the skip policy",
			policy:  config.ParseFailureSkip,
			request: generating.Request{Period: period},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
				mockArchiver.EXPECT().Exists(period).Return(false, nil)
				mockExtractor.EXPECT().Extract(gomock.Any(), period, gomock.Any()).Return(extraction(badRow, badRow), nil)
				mockDeriver.EXPECT().Derive(gomock.Any()).DoAndReturn(func(data *domain.SourceData) (*domain.Bundle, error) {
					assert.Equal(t, 2, data.SkippedRecords)
					return bundle, nil
				})
				mockArchiver.EXPECT().Publish(gomock.Any(), bundle, gomock.Any()).Return(nil)
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *domain.GenerationRun) error {
					assert.Equal(t, 2, run.SkippedRecords)
					return nil
				})
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationSucceeded, gomock.Any(), 2)
			},
			validate: func(t *testing.T, result *generating.Result, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, result.SkippedRecords)
				assert.Len(t, result.Skipped, 2)
			},
		},
		{
			name:    "publish failure fails the run",
			request: generating.Request{Period: period},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
				mockArchiver.EXPECT().Exists(period).Return(false, nil)
				mockExtractor.EXPECT().Extract(gomock.Any(), period, gomock.Any()).Return(extraction(), nil)
				mockDeriver.EXPECT().Derive(gomock.Any()).Return(bundle, nil)
				mockArchiver.EXPECT().Publish(gomock.Any(), bundle, gomock.Any()).Return(errors.New("disk full"))
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationFailed, gomock.Any(), 0)
			},
			validate: func(t *testing.T, result *generating.Result, err error) {
				assert.EqualError(t, err, "publish: disk full")
				assert.Nil(t, result)
			},
		},
		{
			name:    "ledger errors do not fail the run",
			request: generating.Request{Period: period},
			setup: func() {
				mockRecorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
				mockArchiver.EXPECT().Exists(period).Return(false, nil)
				mockExtractor.EXPECT().Extract(gomock.Any(), period, gomock.Any()).Return(extraction(), nil)
				mockDeriver.EXPECT().Derive(gomock.Any()).Return(bundle, nil)
				mockArchiver.EXPECT().Publish(gomock.Any(), bundle, gomock.Any()).Return(nil)
				mockRecorder.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
				mockObserver.EXPECT().ObserveGeneration(domain.GenerationSucceeded, gomock.Any(), 0)
			},
			validate: func(t *testing.T, _ *generating.Result, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			cfg := &config.Config{Generation: config.Generation{ParseFailurePolicy: tt.policy}}
			service := generating.NewService(cfg, mockExtractor, mockDeriver, mockArchiver).
				WithRecorder(mockRecorder).
				WithObserver(mockObserver)

			result, err := service.Generate(context.Background(), tt.request)
			tt.validate(t, result, err)
		})
	}
}

func TestService_GenerateRequiresPeriod(t *testing.T) {
	service := generating.NewService(&config.Config{}, nil, nil, nil)
	_, err := service.Generate(context.Background(), generating.Request{})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestService_GenerateOneRunAtATime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExtractor := mocks.NewMockExtractor(ctrl)
	mockArchiver := mocks.NewMockArchiver(ctrl)
	service := generating.NewService(&config.Config{}, mockExtractor, mocks.NewMockDeriver(ctrl), mockArchiver)

	entered := make(chan struct{})
	release := make(chan struct{})
	mockArchiver.EXPECT().Exists(period).Return(false, nil)
	mockExtractor.EXPECT().Extract(gomock.Any(), period, gomock.Any()).DoAndReturn(func(context.Context, domain.Period, time.Time) (*extractor.Result, error) {
		close(entered)
		<-release
		return nil, errors.New("stop")
	})

	done := make(chan error)
	go func() {
		_, err := service.Generate(context.Background(), generating.Request{Period: period})
		done <- err
	}()

	<-entered
	_, err := service.Generate(context.Background(), generating.Request{Period: period})
	assert.ErrorIs(t, err, generating.ErrBusy)

	close(release)
	assert.EqualError(t, <-done, "extract: stop")
}
