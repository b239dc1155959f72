// Package dateparse interprets the loose date and period expressions
// accepted by the CLI: "YTD", "max", "3m", "last 2 weeks", absolute
// dates, and the option-expiry short forms like "6m".
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	shortForm = regexp.MustCompile(`^(\d+)(m|y)$`)
	longForm  = regexp.MustCompile(`^(?:last\s*)?(\d+)\s*(m|mo|mos|mths|months?|d|days?|y|yrs?|years?|w|wks?|weeks?)\s*(?:ago)?$`)
	expiry    = regexp.MustCompile(`^(\d+)([mdwy])$`)
)

// absoluteLayouts are tried in order for explicit dates.
var absoluteLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"Jan 2 2006",
	"Jan 2006",
	"2 Jan 2006",
}

// Since resolves a --since expression to a start date. Empty input
// defaults to one year ago; "max" returns the zero time (no lower
// bound); "YTD" is January 1st of the current year.
func Since(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return now.AddDate(-1, 0, 0), nil
	}
	if strings.EqualFold(input, "max") {
		return time.Time{}, nil
	}
	if strings.EqualFold(input, "ytd") {
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	}

	lower := strings.ToLower(input)
	if m := shortForm.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if m[2] == "m" {
			return now.AddDate(0, -n, 0), nil
		}
		return now.AddDate(-n, 0, 0), nil
	}
	if m := longForm.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2][0] {
		case 'm':
			return now.AddDate(0, -n, 0), nil
		case 'd':
			return now.AddDate(0, 0, -n), nil
		case 'y':
			return now.AddDate(-n, 0, 0), nil
		case 'w':
			return now.AddDate(0, 0, -7*n), nil
		}
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", input)
}

// intervalCorrections maps common interval mistakes to the provider's
// accepted spellings.
var intervalCorrections = map[string]string{
	"1w":    "1wk",
	"3m":    "3mo",
	"day":   "1d",
	"week":  "1wk",
	"month": "1mo",
}

// Interval normalizes an interval flag value.
func Interval(input string) string {
	if input == "" {
		return "1d"
	}
	if corrected, ok := intervalCorrections[input]; ok {
		return corrected
	}
	return input
}

// defaultExpiryDays backs the --max flag: six months.
const defaultExpiryDays = 180

// Days converts an expiry period expression ("3m", "2w", "30d", "1y")
// to days. Empty or unparseable input falls back to the six-month
// default; months are approximated as 30 days, years as 365.
func Days(input string) int {
	input = strings.ToLower(strings.TrimSpace(input))
	m := expiry.FindStringSubmatch(input)
	if m == nil {
		return defaultExpiryDays
	}
	n, _ := strconv.Atoi(m[1])
	switch m[2] {
	case "d":
		return n
	case "w":
		return n * 7
	case "m":
		return n * 30
	case "y":
		return n * 365
	}
	return defaultExpiryDays
}
