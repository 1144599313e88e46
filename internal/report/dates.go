package report

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/workup/datenorm/internal/normalize"
)

// Unknown is shown wherever a date or duration could not be determined.
const Unknown = "N/I"

// SortNewestFirst orders items by descending date, placing items without a
// date last. The sort is stable.
func SortNewestFirst[T any](items []T, date func(T) *normalize.Date) {
	slices.SortStableFunc(items, func(a, b T) int {
		da, db := date(a), date(b)
		switch {
		case da == nil && db == nil:
			return 0
		case da == nil:
			return 1
		case db == nil:
			return -1
		}
		return db.Compare(*da)
	})
}

// Duration describes the span between two dates: "N/I" when either is
// missing, whole days under 30 days, otherwise months of 30.44 days.
func Duration(start, end *normalize.Date) string {
	if start == nil || end == nil {
		return Unknown
	}
	days := start.DaysUntil(*end)
	if days < 0 {
		days = -days
	}
	if days < 30 {
		return fmt.Sprintf("%d dias", days)
	}
	return fmt.Sprintf("%d meses", int(math.Round(float64(days)/30.44)))
}

// FormatDate renders d as DD/MM/YYYY, or "N/I".
func FormatDate(d *normalize.Date) string {
	if d == nil {
		return Unknown
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.MonthIndex+1, d.Year)
}

// Day converts an optional stored date back to a calendar date.
func Day(t *time.Time) *normalize.Date {
	if t == nil {
		return nil
	}
	d := normalize.DateOf(*t)
	return &d
}
