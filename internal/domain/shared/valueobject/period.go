package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// periodLayout is the canonical year-month format, e.g. "2024-03"
const periodLayout = "2006-01"

// Period is a value object representing a billing period (calendar month).
// It is immutable and totally ordered.
type Period struct {
	year  int
	month time.Month
}

// NewPeriod creates a Period for the given year and month
func NewPeriod(year int, month time.Month) (Period, error) {
	if year < 2000 || year > 2200 {
		return Period{}, fmt.Errorf("year %d out of range", year)
	}
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("invalid month %d", month)
	}
	return Period{year: year, month: month}, nil
}

// ParsePeriod parses a period from its canonical "YYYY-MM" form
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return Period{year: t.Year(), month: t.Month()}, nil
}

// PeriodOf returns the period containing the given time
func PeriodOf(t time.Time) Period {
	return Period{year: t.Year(), month: t.Month()}
}

// CurrentPeriod returns the period containing now
func CurrentPeriod() Period {
	return PeriodOf(time.Now())
}

// Year returns the calendar year
func (p Period) Year() int {
	return p.year
}

// Month returns the calendar month
func (p Period) Month() time.Month {
	return p.month
}

// IsZero returns true for the zero value
func (p Period) IsZero() bool {
	return p.year == 0 && p.month == 0
}

// Next returns the following calendar month
func (p Period) Next() Period {
	if p.month == time.December {
		return Period{year: p.year + 1, month: time.January}
	}
	return Period{year: p.year, month: p.month + 1}
}

// Previous returns the preceding calendar month
func (p Period) Previous() Period {
	if p.month == time.January {
		return Period{year: p.year - 1, month: time.December}
	}
	return Period{year: p.year, month: p.month - 1}
}

// Equal returns true if both periods denote the same month
func (p Period) Equal(other Period) bool {
	return p.year == other.year && p.month == other.month
}

// Before returns true if p precedes other
func (p Period) Before(other Period) bool {
	if p.year != other.year {
		return p.year < other.year
	}
	return p.month < other.month
}

// After returns true if p follows other
func (p Period) After(other Period) bool {
	return other.Before(p)
}

// Start returns midnight UTC on the first day of the period
func (p Period) Start() time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC)
}

// DueDate returns midnight UTC on the given day of the period, clamped to the
// last day of the month (a due day of 31 in February yields the 28th/29th).
func (p Period) DueDate(day int) time.Time {
	if day < 1 {
		day = 1
	}
	last := p.Start().AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(p.year, p.month, day, 0, 0, 0, 0, time.UTC)
}

// String returns the canonical "YYYY-MM" form
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}

// MarshalJSON implements json.Marshaler
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Period) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("period must be a JSON string")
	}
	parsed, err := ParsePeriod(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer so Period is stored as "YYYY-MM"
func (p Period) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner
func (p *Period) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParsePeriod(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case []byte:
		parsed, err := ParsePeriod(string(v))
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	default:
		return fmt.Errorf("failed to scan Period: unsupported type %T", value)
	}
}
