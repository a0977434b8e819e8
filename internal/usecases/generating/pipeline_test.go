package generating_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/extractor"
	"github.com/durabrake/financial-dashboard/internal/extractor/extractortest"
	"github.com/durabrake/financial-dashboard/internal/usecases/deriving"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating"
)

func pipelineConfig(input, output string) *config.Config {
	return &config.Config{
		Paths: config.Paths{
			InputDir:       input,
			OutputDir:      output,
			FinancialsFile: extractortest.FinancialsFile,
			ProductsFile:   extractortest.ProductsFile,
			CustomersFile:  extractortest.CustomersFile,
			BacklogFile:    extractortest.BacklogFile,
			NotesFile:      extractortest.NotesFile,
		},
		Generation: config.Generation{ParseFailurePolicy: config.ParseFailureAbort},
	}
}

func newPipeline(cfg *config.Config) (*generating.Service, *archive.Archive) {
	store := archive.New(cfg.Paths.OutputDir)
	return generating.NewService(cfg, extractor.New(cfg), deriving.NewService(), store), store
}

func archiveFiles(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	files := map[string][]byte{}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = data
	}
	return files
}

func TestPipelineIsDeterministic(t *testing.T) {
	input := t.TempDir()
	extractortest.WriteSampleInputs(t, input, period)

	first, firstStore := newPipeline(pipelineConfig(input, t.TempDir()))
	second, secondStore := newPipeline(pipelineConfig(input, t.TempDir()))

	_, err := first.Generate(context.Background(), generating.Request{Period: period})
	require.NoError(t, err)
	_, err = second.Generate(context.Background(), generating.Request{Period: period})
	require.NoError(t, err)

	a := archiveFiles(t, firstStore.PeriodDir(period))
	b := archiveFiles(t, secondStore.PeriodDir(period))
	assert.Len(t, a, 5)
	assert.Equal(t, a, b)

	dashboard, err := firstStore.LoadDashboard(period)
	require.NoError(t, err)
	assert.Equal(t, "55", dashboard.CurrentMonth.GrossMarginPct.String())
	assert.Equal(t, "9", dashboard.CurrentMonth.DSO.String())

	backlog, err := firstStore.LoadBacklog(period)
	require.NoError(t, err)
	assert.Equal(t, 6, backlog.Summary.TotalOrders)
	assert.Equal(t, 2, backlog.Summary.OldOrdersCount)
}

func TestPipelineMissingSheetPublishesNothing(t *testing.T) {
	input := t.TempDir()
	dir := extractortest.WriteSampleInputs(t, input, period)
	sheets := extractortest.FinancialSheets(period.Month())
	extractortest.WriteWorkbook(t, filepath.Join(dir, extractortest.FinancialsFile), sheets[1:]...)

	output := t.TempDir()
	service, store := newPipeline(pipelineConfig(input, output))

	_, err := service.Generate(context.Background(), generating.Request{Period: period})
	var missing *extractor.MissingRequiredInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, extractor.SheetProfitAndLoss, missing.Sheet)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	assert.Empty(t, entries)

	exists, err := store.Exists(period)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPipelineKeepsHistory(t *testing.T) {
	input := t.TempDir()
	extractortest.WriteSampleInputs(t, input, period)
	service, store := newPipeline(pipelineConfig(input, t.TempDir()))

	_, err := service.Generate(context.Background(), generating.Request{Period: period})
	require.NoError(t, err)
	before := archiveFiles(t, store.PeriodDir(period))

	_, err = service.Generate(context.Background(), generating.Request{Period: period})
	assert.ErrorIs(t, err, archive.ErrPeriodExists)
	assert.Equal(t, before, archiveFiles(t, store.PeriodDir(period)))

	_, err = service.Generate(context.Background(), generating.Request{Period: period, Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, before, archiveFiles(t, store.PeriodDir(period)))
}
