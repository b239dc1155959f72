package dateparse

import (
	"testing"
	"time"
)

var now = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func TestSinceRelative(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"empty defaults to one year", "", now.AddDate(-1, 0, 0)},
		{"ytd", "YTD", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"ytd lowercase", "ytd", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"short months", "3m", now.AddDate(0, -3, 0)},
		{"short years", "2y", now.AddDate(-2, 0, 0)},
		{"long days", "30 days", now.AddDate(0, 0, -30)},
		{"long weeks", "last 2 weeks", now.AddDate(0, 0, -14)},
		{"long months ago", "6 months ago", now.AddDate(0, -6, 0)},
		{"long years", "last 5 yrs", now.AddDate(-5, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Since(tt.input, now)
			if err != nil {
				t.Fatalf("Since(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Since(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSinceMax(t *testing.T) {
	got, err := Since("max", now)
	if err != nil {
		t.Fatalf("Since(max) error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("Since(max) = %v, want zero time", got)
	}
}

func TestSinceAbsolute(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Jan 2 2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := Since(tt.input, now)
		if err != nil {
			t.Fatalf("Since(%q) error: %v", tt.input, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Since(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSinceInvalid(t *testing.T) {
	for _, input := range []string{"notadate", "3q", "soon"} {
		if _, err := Since(input, now); err == nil {
			t.Errorf("Since(%q) succeeded, want error", input)
		}
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "1d"},
		{"1d", "1d"},
		{"1w", "1wk"},
		{"3m", "3mo"},
		{"day", "1d"},
		{"week", "1wk"},
		{"month", "1mo"},
		{"1h", "1h"},
	}

	for _, tt := range tests {
		if got := Interval(tt.input); got != tt.want {
			t.Errorf("Interval(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDays(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"3m", 90},
		{"6m", 180},
		{"1y", 365},
		{"2w", 14},
		{"30d", 30},
		{"", 180},
		{"garbage", 180},
	}

	for _, tt := range tests {
		if got := Days(tt.input); got != tt.want {
			t.Errorf("Days(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
