package extractor

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingRequiredInput = errors.New("missing required input")
	ErrInvalidCell          = errors.New("invalid cell")
)

// MissingRequiredInputError names the workbook, sheet, row or column that a
// run cannot proceed without.
type MissingRequiredInputError struct {
	File  string
	Sheet string
	Label string
}

func (e *MissingRequiredInputError) Error() string {
	switch {
	case e.Sheet == "":
		return fmt.Sprintf("missing required workbook %s", e.File)
	case e.Label == "":
		return fmt.Sprintf("missing required sheet %q in %s", e.Sheet, e.File)
	default:
		return fmt.Sprintf("missing required %s in sheet %q of %s", e.Label, e.Sheet, e.File)
	}
}

func (e *MissingRequiredInputError) Unwrap() error {
	return ErrMissingRequiredInput
}

// ParseError is a malformed numeric or date cell. Row is 1-based as shown in
// the spreadsheet.
type ParseError struct {
	File   string
	Sheet  string
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s!%s row %d column %q: %s (value %q)", e.File, e.Sheet, e.Row, e.Column, e.Reason, e.Value)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidCell
}

// ParseErrors is the set of line items rejected during one extraction.
type ParseErrors []*ParseError

func (p ParseErrors) Error() string {
	if len(p) == 0 {
		return "no parse errors"
	}
	if len(p) == 1 {
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more invalid records)", p[0].Error(), len(p)-1)
}

func (p ParseErrors) Unwrap() error {
	return ErrInvalidCell
}
