package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/durabrake/financial-dashboard/internal/archive"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errNotQueryable = errors.New("document cannot be queried")

type queryCmd struct {
	period   string
	document string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression against an archived document" }
func (*queryCmd) Usage() string {
	return `kpi query [-p YY.MM] [-d document] <jsonpath>

  Documents: dashboard, customers, backlog, rfm. The rfm CSV is queried as
  an array of row objects keyed by header.

  Examples:
    kpi query '$.current_month.revenue'
    kpi query -d customers -p 25.11 '$.top_15_customers[0:3].customer'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period (defaults to the newest archive)")
	f.StringVar(&c.document, "d", "dashboard", "Archive document")
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one JSONPath expression is required")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}

	arch := archive.New(cfg.Paths.OutputDir)
	period, err := periodOrDefault(c.period, cfg, arch)
	if err != nil {
		return fail(err)
	}

	data, file, err := arch.ReadDocument(period, c.document)
	if err != nil {
		return fail(err)
	}

	result, err := queryDocument(file, data, f.Arg(0))
	if err != nil {
		return fail(err)
	}

	fmt.Println(utils.PrettyJson(result))
	return subcommands.ExitSuccess
}

func queryDocument(file string, data []byte, expr string) (any, error) {
	doc, err := decodeDocument(file, data)
	if err != nil {
		return nil, err
	}

	result, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %q", expr)
	}
	return result, nil
}

func decodeDocument(file string, data []byte) (any, error) {
	switch filepath.Ext(file) {
	case ".json":
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", file)
		}
		return doc, nil
	case ".csv":
		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", file)
		}
		rows := []any{}
		if len(records) == 0 {
			return rows, nil
		}
		header := records[0]
		for _, rec := range records[1:] {
			row := make(map[string]any, len(header))
			for i, col := range header {
				if i < len(rec) {
					row[col] = rec[i]
				}
			}
			rows = append(rows, row)
		}
		return rows, nil
	}
	return nil, errors.Wrapf(errNotQueryable, "%s", file)
}
