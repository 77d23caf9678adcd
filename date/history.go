package date

import "slices"

// History is a series of daily values, kept sorted by day with at most one
// value per day.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of days with a value.
func (h *History[T]) Len() int { return len(h.days) }

// First returns the earliest day of the series, or the zero Date.
func (h *History[T]) First() Date {
	if len(h.days) == 0 {
		return Date{}
	}
	return h.days[0]
}

func (h *History[T]) search(on Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, on, Date.compare)
}

// Append sets the value of a day, replacing any previous one.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// ValueAsOf returns the value of the latest day on or before on. It is false
// when on precedes the series.
func (h *History[T]) ValueAsOf(on Date) (T, bool) {
	i, found := h.search(on)
	switch {
	case found:
		return h.values[i], true
	case i == 0:
		var zero T
		return zero, false
	default:
		return h.values[i-1], true
	}
}
