package cryptotax

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

// SEK is a helper for test to create swedish crown money from const
func SEK(v float64) Money { return M(v, "SEK") }

// at is a helper for test to create a trade time.
func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// ptr returns a pointer to v.
func ptr[T any](v T) *T { return &v }

// exact compares Quantity and Money by value.
var exact = cmp.Options{
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
}
