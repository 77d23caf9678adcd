package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2024, time.December, 32), New(2025, time.January, 1); got != want {
		t.Errorf("New(2024, 12, 32) = %v, want %v", got, want)
	}
}

func TestOf(t *testing.T) {
	ts := time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)
	if got, want := Of(ts), New(2024, time.December, 31); got != want {
		t.Errorf("Of(%v) = %v, want %v", ts, got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "01.07.2025", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestBeforeAfter(t *testing.T) {
	d, x := New(2024, time.May, 17), New(2024, time.May, 18)
	if !d.Before(x) || d.After(x) {
		t.Errorf("%v.Before(%v) = %v, After = %v, want true, false", d, x, d.Before(x), d.After(x))
	}
	if d.Before(d) || d.After(d) {
		t.Errorf("%v is before or after itself", d)
	}
}

func TestDate_JSON(t *testing.T) {
	d := New(2025, time.March, 4)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2025-03-04"` {
		t.Errorf("Marshal() = %s, want %q", b, "2025-03-04")
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
}
