package extractor

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var monthNames = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		monthNames[full] = m
		monthNames[full[:3]] = m
	}
	monthNames["sept"] = time.September
}

// headerMonth reads "Jan", "January", "Jan-25" or "Jan 2025" as a month.
func headerMonth(raw string) (time.Month, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	end := 0
	for end < len(s) && s[end] >= 'a' && s[end] <= 'z' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	rest := strings.TrimLeft(s[end:], " -'/.")
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	m, ok := monthNames[s[:end]]
	return m, ok
}

// statementSheet is a label-by-month grid such as "PL YTD".
type statementSheet struct {
	file    string
	sheet   string
	columns map[time.Month]int
	labels  []string
	cells   [][]string
	rowNums []int
}

// serialMonth reads a month header stored as an Excel date. Only whole
// serials falling on the first or last day of a month count.
func serialMonth(raw string) (time.Month, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || serial != math.Trunc(serial) || serial < minHeaderSerial || serial > maxHeaderSerial {
		return 0, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return 0, false
	}
	if t.Day() != 1 && t.AddDate(0, 0, 1).Day() != 1 {
		return 0, false
	}
	return t.Month(), true
}

// 1990-01-01 and 2099-12-31.
const (
	minHeaderSerial = 32874
	maxHeaderSerial = 73050
)

// headerColumns maps the month columns of row. Column A holds labels and is
// never a month column. A row mixing serial months with other numbers is a
// data row, not a header.
func headerColumns(row []string) map[time.Month]int {
	found := map[time.Month]int{}
	serials, numbers := 0, 0
	for j := 1; j < len(row); j++ {
		c := strings.TrimSpace(row[j])
		if c == "" {
			continue
		}
		m, ok := headerMonth(c)
		if !ok {
			if m, ok = serialMonth(c); ok {
				serials++
			} else if _, numeric, _ := parseAmount(c); numeric {
				numbers++
			}
		}
		if !ok {
			continue
		}
		if _, dup := found[m]; !dup {
			found[m] = j
		}
	}
	if serials > 0 && numbers > 0 {
		return nil
	}
	return found
}

// parseStatementSheet takes the row naming the most months as the header.
// The earliest such row wins a tie.
func parseStatementSheet(file, sheet string, rows [][]string) (*statementSheet, error) {
	header := -1
	var columns map[time.Month]int
	for i, row := range rows {
		if found := headerColumns(row); len(found) > len(columns) {
			header = i
			columns = found
		}
	}
	if header < 0 {
		return nil, &MissingRequiredInputError{File: file, Sheet: sheet, Label: "month header row"}
	}

	first := len(rows[header])
	for _, j := range columns {
		if j < first {
			first = j
		}
	}

	s := &statementSheet{file: file, sheet: sheet, columns: columns}
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		label := ""
		for j := 0; j < first && j < len(row); j++ {
			if c := strings.TrimSpace(row[j]); c != "" {
				label = c
				break
			}
		}
		if label == "" {
			continue
		}
		s.labels = append(s.labels, label)
		s.cells = append(s.cells, row)
		s.rowNums = append(s.rowNums, i+1)
	}

	return s, nil
}

func (s *statementSheet) hasMonth(m time.Month) bool {
	_, ok := s.columns[m]
	return ok
}

// find returns the row index matching spec, or -1.
func (s *statementSheet) find(spec labelSpec) int {
	return spec.match(s.labels, nil)
}

// value reads the matched row in month m. Missing rows and blank cells are
// zero; malformed cells are fatal.
func (s *statementSheet) value(row int, m time.Month) (decimal.Decimal, error) {
	if row < 0 {
		return decimal.Zero, nil
	}
	col, ok := s.columns[m]
	if !ok {
		return decimal.Zero, nil
	}

	raw := cell(s.cells[row], col)
	d, _, err := parseAmount(raw)
	if err != nil {
		return decimal.Zero, &ParseError{
			File:   s.file,
			Sheet:  s.sheet,
			Row:    s.rowNums[row],
			Column: columnName(col),
			Value:  raw,
			Reason: err.Error(),
		}
	}
	return d, nil
}

// lookup resolves spec and reads it for month m. A required spec that matches
// no row is a MissingRequiredInputError.
func (s *statementSheet) lookup(spec labelSpec, m time.Month, required bool) (decimal.Decimal, bool, error) {
	row := s.find(spec)
	if row < 0 {
		if required {
			return decimal.Zero, false, &MissingRequiredInputError{File: s.file, Sheet: s.sheet, Label: spec.name + " row"}
		}
		return decimal.Zero, false, nil
	}
	d, err := s.value(row, m)
	return d, true, err
}
