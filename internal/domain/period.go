package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var (
	periodPattern = regexp.MustCompile(`^\d{2}\.\d{2}$`)

	ErrInvalidPeriod = errors.New("invalid period")
)

// Period identifies one monthly reporting cycle in YY.MM form.
type Period struct {
	year  int
	month time.Month
}

func ParsePeriod(s string) (Period, error) {
	if !periodPattern.MatchString(s) {
		return Period{}, errors.Wrapf(ErrInvalidPeriod, "%q must be YY.MM", s)
	}

	yy, _ := strconv.Atoi(s[:2])
	mm, _ := strconv.Atoi(s[3:])
	if mm < 1 || mm > 12 {
		return Period{}, errors.Wrapf(ErrInvalidPeriod, "%q has month out of range", s)
	}

	return Period{year: 2000 + yy, month: time.Month(mm)}, nil
}

func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{year: t.Year(), month: t.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%02d.%02d", p.year%100, int(p.month))
}

func (p Period) IsZero() bool { return p.year == 0 }

func (p Period) Year() int { return p.year }

func (p Period) Month() time.Month { return p.month }

// Quarter returns 1..4.
func (p Period) Quarter() int { return (int(p.month)-1)/3 + 1 }

// Prev returns the period n months earlier.
func (p Period) Prev(n int) Period {
	t := time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
	return PeriodOf(t)
}

// StartDate is the first calendar day of the period.
func (p Period) StartDate() time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC)
}

// EndDate is the last calendar day of the period. It is the default snapshot date.
func (p Period) EndDate() time.Time {
	return p.StartDate().AddDate(0, 1, -1)
}

// DisplayName renders "December 2025".
func (p Period) DisplayName() string {
	return fmt.Sprintf("%s %d", p.month, p.year)
}

// ShortName renders "Dec 2025".
func (p Period) ShortName() string {
	return fmt.Sprintf("%s %d", p.month.String()[:3], p.year)
}

func (p Period) Before(o Period) bool {
	if p.year != o.year {
		return p.year < o.year
	}
	return p.month < o.month
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
