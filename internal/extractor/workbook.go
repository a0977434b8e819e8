package extractor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type workbook struct {
	name string
	file *excelize.File
}

func openWorkbook(path string) (*workbook, error) {
	name := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingRequiredInputError{File: name}
		}
		return nil, errors.Wrapf(err, "stat %s", name)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", name)
	}

	return &workbook{name: name, file: f}, nil
}

func (w *workbook) Close() error {
	return w.file.Close()
}

// rows returns the raw cell values of sheet, matched case-insensitively.
// ok is false when the sheet does not exist.
func (w *workbook) rows(sheet string) ([][]string, bool, error) {
	actual := ""
	for _, name := range w.file.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(name), sheet) {
			actual = name
			break
		}
	}
	if actual == "" {
		return nil, false, nil
	}

	rows, err := w.file.GetRows(actual, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, false, errors.Wrapf(err, "read sheet %q of %s", sheet, w.name)
	}

	return rows, true, nil
}

func (w *workbook) requiredRows(sheet string) ([][]string, error) {
	rows, ok, err := w.rows(sheet)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &MissingRequiredInputError{File: w.name, Sheet: sheet}
	}
	return rows, nil
}
