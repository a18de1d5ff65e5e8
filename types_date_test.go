package finanzas

import (
	"testing"
	"time"
)

func TestDate_AddMonths(t *testing.T) {
	testCases := []struct {
		name   string
		date   string
		months int
		want   string
	}{
		{name: "simple step", date: "2025-01-15", months: 1, want: "2025-02-15"},
		{name: "month end clamps to february", date: "2025-01-31", months: 1, want: "2025-02-28"},
		{name: "leap year february", date: "2024-01-31", months: 1, want: "2024-02-29"},
		{name: "clamp does not stick", date: "2025-03-31", months: 1, want: "2025-04-30"},
		{name: "quarter step", date: "2025-11-30", months: 3, want: "2026-02-28"},
		{name: "year step", date: "2024-02-29", months: 12, want: "2025-02-28"},
		{name: "backwards", date: "2025-03-31", months: -1, want: "2025-02-28"},
		{name: "zero", date: "2025-06-10", months: 0, want: "2025-06-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MustParseDate(tc.date).AddMonths(tc.months)
			if got.String() != tc.want {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", tc.date, tc.months, got, tc.want)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"2025-01-01", "2025-01-31", 0},
		{"2025-01-15", "2025-02-01", 1},
		{"2025-01-01", "2025-12-31", 11},
		{"2024-06-01", "2025-05-31", 11},
		{"2025-03-01", "2025-01-15", -2},
	}

	for _, tc := range testCases {
		got := MonthsBetween(MustParseDate(tc.a), MustParseDate(tc.b))
		if got != tc.want {
			t.Errorf("MonthsBetween(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDate_MonthBounds(t *testing.T) {
	d := NewDate(2025, time.February, 14)
	if got := d.StartOfMonth().String(); got != "2025-02-01" {
		t.Errorf("StartOfMonth() = %s, want 2025-02-01", got)
	}
	if got := d.EndOfMonth().String(); got != "2025-02-28" {
		t.Errorf("EndOfMonth() = %s, want 2025-02-28", got)
	}
}

func TestParseFrequency(t *testing.T) {
	valid := map[string]Frequency{
		"weekly":     Weekly,
		"monthly":    Monthly,
		"quarter":    Quarterly,
		"semiannual": Semiannual,
		"yearly":     Annual,
	}
	for in, want := range valid {
		got, err := ParseFrequency(in)
		if err != nil {
			t.Errorf("ParseFrequency(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFrequency(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseFrequency("fortnightly"); err == nil {
		t.Error("ParseFrequency(fortnightly) expected error, got nil")
	}
}

func TestFrequency_Next(t *testing.T) {
	start := MustParseDate("2025-01-31")

	testCases := []struct {
		freq Frequency
		want string
	}{
		{Weekly, "2025-02-07"},
		{Monthly, "2025-02-28"},
		{Quarterly, "2025-04-30"},
		{Semiannual, "2025-07-31"},
		{Annual, "2026-01-31"},
	}
	for _, tc := range testCases {
		got, ok := tc.freq.Next(start)
		if !ok {
			t.Errorf("%v.Next() ok = false, want true", tc.freq)
		}
		if got.String() != tc.want {
			t.Errorf("%v.Next(%s) = %s, want %s", tc.freq, start, got, tc.want)
		}
	}

	// An out-of-range value must refuse to step instead of looping forever.
	if _, ok := Frequency(42).Next(start); ok {
		t.Error("unknown frequency Next() ok = true, want false")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-7-1")
	if err != nil {
		t.Fatalf("ParseDate(2025-7-1) error = %v", err)
	}
	if got.String() != "2025-07-01" {
		t.Errorf("ParseDate(2025-7-1) = %s, want 2025-07-01", got)
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("ParseDate(not-a-date) expected error, got nil")
	}

	// Relative dates are anchored on today.
	yesterday, err := ParseDate("-1d")
	if err != nil {
		t.Fatalf("ParseDate(-1d) error = %v", err)
	}
	if want := Today().Add(-1); yesterday != want {
		t.Errorf("ParseDate(-1d) = %s, want %s", yesterday, want)
	}
}
