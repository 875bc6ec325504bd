package dataprocessing

import (
	"time"
)

// maxWindowDays spans more than the four digit years ParseDate accepts, so a
// longer window keeps exactly the same rows.
const maxWindowDays = 10000 * 366

// DateLayouts are the order date formats understood by the window filter.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
}

// ParseDate parses s with the first matching layout. Layouts without a zone
// are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterByWindow keeps the rows of t whose dateColumn falls within the last
// days before now. Rows with a missing or unparsable date are always kept.
//
// When nothing survives the filter the original table is returned and
// fellBack is true, so a view never goes blank because the demo data is
// older than the window.
func FilterByWindow(t *Table, dateColumn string, days int, now time.Time) (filtered *Table, fellBack bool) {
	if t.Len() == 0 {
		if t == nil {
			return EmptyTable(), false
		}
		return t.WithRows([]Row{}), false
	}

	if days > maxWindowDays {
		days = maxWindowDays
	}
	start := now.AddDate(0, 0, -days)
	kept := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		value := row[dateColumn]
		if value == "" {
			kept = append(kept, row)
			continue
		}
		date, ok := ParseDate(value)
		if !ok || !date.Before(start) {
			kept = append(kept, row)
		}
	}

	if len(kept) == 0 {
		return t, true
	}
	return t.WithRows(kept), false
}
