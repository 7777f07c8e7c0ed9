package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var monthNumbers = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

var monthNames = [...]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// MonthName returns the venue's three-letter uppercase name for a month.
func MonthName(m time.Month) string {
	return monthNames[int(m)-1]
}

// ExpiryDescriptor is one expiry derived for an underlying during a run.
type ExpiryDescriptor struct {
	DisplayText  string
	ExpiryKey    string // canonical YYYY-MM-DD
	SymbolExpiry string // compact venue form, e.g. 26JAN
}

// Date parses the canonical key back into a calendar date.
func (e *ExpiryDescriptor) Date() (time.Time, error) {
	d, err := time.Parse("2006-01-02", e.ExpiryKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("ExpiryDescriptor: Date: failed to parse %q: %w", e.ExpiryKey, err)
	}

	return d, nil
}

// ParseExpiryLabel parses a two-token "day month" label such as "26 JAN" into
// an expiry descriptor. The year is inferred from now, rolling into the next
// year when the label's month precedes the current month. A label in the
// current month keeps the current year even if its day has passed; the recency
// filter removes it downstream. Returns false for labels that do not match the
// expected shape.
func ParseExpiryLabel(text string, now time.Time) (*ExpiryDescriptor, bool) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return nil, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return nil, false
	}

	mon := strings.ToUpper(parts[1])
	month, ok := monthNumbers[mon]
	if !ok {
		return nil, false
	}

	year := now.Year()
	if month < now.Month() {
		year++
	}

	return &ExpiryDescriptor{
		DisplayText:  text,
		ExpiryKey:    fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
		SymbolExpiry: fmt.Sprintf("%02d%s", year%100, mon),
	}, true
}

// FilterExpiries applies the retention policy: deduplicate by display text in
// first-seen order, sort ascending by expiry key, keep at most maxCount, then
// drop expiries in the past or more than maxDaysAhead calendar days out.
func FilterExpiries(expiries []*ExpiryDescriptor, now time.Time, maxCount int, maxDaysAhead int) []*ExpiryDescriptor {
	seen := make(map[string]bool, len(expiries))
	deduped := make([]*ExpiryDescriptor, 0, len(expiries))

	for _, exp := range expiries {
		if seen[exp.DisplayText] {
			continue
		}

		seen[exp.DisplayText] = true
		deduped = append(deduped, exp)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].ExpiryKey < deduped[j].ExpiryKey
	})

	if maxCount > 0 && len(deduped) > maxCount {
		deduped = deduped[:maxCount]
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, maxDaysAhead)

	out := make([]*ExpiryDescriptor, 0, len(deduped))
	for _, exp := range deduped {
		d, err := exp.Date()
		if err != nil {
			continue
		}

		if d.Before(today) || d.After(horizon) {
			continue
		}

		out = append(out, exp)
	}

	return out
}
