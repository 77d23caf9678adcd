// Package renderer renders the reports of the k4tax command as markdown.
package renderer

import (
	"time"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
)

// day formats the day of a time, synthetic events have no day.
func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return date.Of(t).String()
}

// gain formats a gain with its sign.
func gain(m cryptotax.Money) string { return m.SignedString() }
