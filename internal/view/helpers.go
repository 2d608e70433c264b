package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackdzi/informs/internal/models"
)

const daysPerWeek = 5

// UnknownSlotKey groups conflicts whose timeslot reference is missing.
const UnknownSlotKey = "unknown"

// SlotKey builds the canonical grouping key for a timeslot. The
// YYYY-MM-DD|HH:MM|HH:MM shape makes lexicographic order coincide with
// chronological order.
func SlotKey(ts *models.TimeSlot) string {
	if ts == nil {
		return UnknownSlotKey
	}
	return ts.Date + "|" + ts.StartTime + "|" + ts.EndTime
}

// TimeRange renders a timeslot's "start-end" cell coordinate.
func TimeRange(ts models.TimeSlot) string {
	return ts.StartTime + "-" + ts.EndTime
}

// SplitTimeRange splits a "start-end" cell coordinate back into its parts.
func SplitTimeRange(tr string) (start, end string, ok bool) {
	start, end, ok = strings.Cut(tr, "-")
	return start, end, ok && start != "" && end != ""
}

// FormatTime renders an HH:MM 24-hour time as a 12-hour label ("9:00 AM").
// Unparseable input is returned as-is.
func FormatTime(t string) string {
	h, m, ok := strings.Cut(t, ":")
	if !ok {
		return t
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return t
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, m, ampm)
}

// FormatDate renders a YYYY-MM-DD date as a short label ("Mon, May 6").
func FormatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 2")
}

// ShortCourse trims a course name at its " - " separator, keeping the code.
func ShortCourse(name string) string {
	if idx := strings.Index(name, " - "); idx > -1 {
		return name[:idx]
	}
	return name
}

// Weeks returns the distinct timeslot dates, sorted and chunked into the
// 5-day blocks that form the calendar grid's columns.
func Weeks(timeslots []models.TimeSlot) [][]string {
	seen := make(map[string]struct{}, len(timeslots))
	var dates []string
	for _, ts := range timeslots {
		if _, ok := seen[ts.Date]; ok {
			continue
		}
		seen[ts.Date] = struct{}{}
		dates = append(dates, ts.Date)
	}
	sort.Strings(dates)

	var weeks [][]string
	for i := 0; i < len(dates); i += daysPerWeek {
		end := i + daysPerWeek
		if end > len(dates) {
			end = len(dates)
		}
		weeks = append(weeks, dates[i:end])
	}
	return weeks
}

// TimeRanges returns the distinct "start-end" ranges, sorted, forming the
// calendar grid's rows.
func TimeRanges(timeslots []models.TimeSlot) []string {
	seen := make(map[string]struct{}, len(timeslots))
	var ranges []string
	for _, ts := range timeslots {
		tr := TimeRange(ts)
		if _, ok := seen[tr]; ok {
			continue
		}
		seen[tr] = struct{}{}
		ranges = append(ranges, tr)
	}
	sort.Strings(ranges)
	return ranges
}
