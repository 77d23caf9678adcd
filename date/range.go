package date

import (
	"fmt"
	"time"
)

// Range is an inclusive interval of days.
type Range struct{ From, To Date }

// Year returns the range of a civil year, 1 January to 31 December.
func Year(year int) Range {
	return Range{From: New(year, time.January, 1), To: New(year, time.December, 31)}
}

// Contains reports whether d is in the range, boundaries included.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// IsYear reports whether r covers exactly one civil year.
func (r Range) IsYear() bool { return r == Year(r.From.Year()) }

func (r Range) String() string {
	if r.IsYear() {
		return r.From.Format("2006")
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}
