package extractor

const headerSearchDepth = 25

type columnSpec struct {
	labelSpec
	required bool
}

// lineTable is a sheet with one header row followed by one record per row.
type lineTable struct {
	file   string
	sheet  string
	header int
	cols   map[string]int
	rows   [][]string
}

// locateColumns finds the first row carrying every required column. Specs
// are resolved in order so that a more specific header ("Order Date") is
// claimed before a general one ("Order").
func locateColumns(file, sheet string, rows [][]string, specs []columnSpec) (*lineTable, error) {
	bestMissing := ""
	bestFound := -1

	for i := 0; i < len(rows) && i < headerSearchDepth; i++ {
		taken := map[int]bool{}
		cols := map[string]int{}
		found := 0
		missing := ""
		for _, spec := range specs {
			idx := spec.match(rows[i], taken)
			if idx < 0 {
				if spec.required && missing == "" {
					missing = spec.name
				}
				continue
			}
			taken[idx] = true
			cols[spec.name] = idx
			if spec.required {
				found++
			}
		}

		if missing == "" {
			return &lineTable{file: file, sheet: sheet, header: i, cols: cols, rows: rows}, nil
		}
		if found > bestFound {
			bestFound = found
			bestMissing = missing
		}
	}

	if bestMissing == "" {
		bestMissing = "header row"
	} else {
		bestMissing += " column"
	}
	return nil, &MissingRequiredInputError{File: file, Sheet: sheet, Label: bestMissing}
}

func (t *lineTable) col(name string) int {
	if idx, ok := t.cols[name]; ok {
		return idx
	}
	return -1
}

func (t *lineTable) has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// each visits every non-blank data row with its 1-based sheet row number.
func (t *lineTable) each(fn func(row []string, rowNum int)) {
	for i := t.header + 1; i < len(t.rows); i++ {
		if blankRow(t.rows[i]) {
			continue
		}
		fn(t.rows[i], i+1)
	}
}

func (t *lineTable) parseError(rowNum int, column, value, reason string) *ParseError {
	return &ParseError{
		File:   t.file,
		Sheet:  t.sheet,
		Row:    rowNum,
		Column: column,
		Value:  value,
		Reason: reason,
	}
}
