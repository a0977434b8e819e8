// Package archive stores one directory of derived documents per reporting
// period under the output root, and reads them back for presentation.
// Published periods are immutable unless a run explicitly overwrites them.
package archive

import (
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

var (
	ErrPeriodExists    = errors.New("period already archived")
	ErrNoData          = errors.New("no data for this period")
	ErrUnknownDocument = errors.New("unknown archive document")
)

const (
	stagingPrefix  = ".staging-"
	replacedPrefix = ".replaced-"
)

// json sorts map keys, which keeps documents byte-identical across runs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Documents maps the public document names to their archive files.
var Documents = map[string]string{
	"dashboard": domain.DashboardFile,
	"customers": domain.CustomerFile,
	"backlog":   domain.BacklogFile,
	"rfm":       domain.CustomerRFMFile,
	"notes":     domain.NotesFile,
}

type Archive struct {
	root string
}

func New(root string) *Archive {
	return &Archive{root: root}
}

func (a *Archive) Root() string {
	return a.root
}

func (a *Archive) PeriodDir(period domain.Period) string {
	return filepath.Join(a.root, period.String())
}

// Exists reports whether period has a published directory.
func (a *Archive) Exists(period domain.Period) (bool, error) {
	info, err := os.Stat(a.PeriodDir(period))
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat archive %s", period)
}

// Encode renders v the way archive documents are stored.
func Encode(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
