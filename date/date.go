// Package date provides day granularity dates, inclusive day ranges and
// daily value series.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the ISO-8601 layout of dates.
const Layout = "2006-01-02"

// lenient layout accepted on read, "2025-7-1" is valid.
const readLayout = "2006-1-2"

// Date is a civil day, without time or location.
type Date struct {
	y int
	m time.Month
	d int
}

// midnight UTC of the day, comparable with ==.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns the normalized Date of year, month and day: New(2024, 12, 32)
// is 1 January 2025.
func New(year int, month time.Month, day int) Date {
	y, m, dd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, dd}
}

// Of returns the day of t, in t's location.
func Of(t time.Time) Date { return New(t.Date()) }

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) compare(x Date) int { return d.time().Compare(x.time()) }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.compare(x) < 0 }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.compare(x) > 0 }

func (d Date) Year() int { return d.y }

func (d Date) String() string { return d.time().Format(Layout) }

// Format formats the day using a time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// Parse parses a Date, single digit months and days are accepted.
func Parse(str string) (Date, error) {
	on, err := time.Parse(readLayout, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Layout, err)
	}
	return Of(on), nil
}

// UnmarshalJSON reads a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
