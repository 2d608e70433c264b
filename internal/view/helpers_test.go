package view

import (
	"reflect"
	"testing"

	"github.com/jackdzi/informs/internal/models"
)

func TestSlotKey(t *testing.T) {
	ts := &models.TimeSlot{Date: "2026-05-11", StartTime: "09:00", EndTime: "11:00"}
	if got := SlotKey(ts); got != "2026-05-11|09:00|11:00" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := SlotKey(nil); got != UnknownSlotKey {
		t.Fatalf("nil timeslot: expected %q, got %q", UnknownSlotKey, got)
	}
}

func TestSplitTimeRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
		ok         bool
	}{
		{"09:00-11:00", "09:00", "11:00", true},
		{"09:00", "", "", false},
		{"-11:00", "", "", false},
		{"09:00-", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range tests {
		start, end, ok := SplitTimeRange(tc.in)
		if ok != tc.ok {
			t.Errorf("%q: expected ok=%v, got %v", tc.in, tc.ok, ok)
			continue
		}
		if ok && (start != tc.start || end != tc.end) {
			t.Errorf("%q: expected (%q, %q), got (%q, %q)", tc.in, tc.start, tc.end, start, end)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := map[string]string{
		"09:00": "9:00 AM",
		"12:30": "12:30 PM",
		"00:15": "12:15 AM",
		"13:45": "1:45 PM",
		"bogus": "bogus",
	}
	for in, want := range tests {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-05-11"); got != "Mon, May 11" {
		t.Errorf("expected %q, got %q", "Mon, May 11", got)
	}
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Errorf("unparseable date should pass through, got %q", got)
	}
}

func TestShortCourse(t *testing.T) {
	if got := ShortCourse("MATH 101 - Calculus I"); got != "MATH 101" {
		t.Errorf("expected %q, got %q", "MATH 101", got)
	}
	if got := ShortCourse("MATH 101"); got != "MATH 101" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestWeeksChunksSortedDates(t *testing.T) {
	var timeslots []models.TimeSlot
	dates := []string{
		"2026-05-15", "2026-05-11", "2026-05-13", "2026-05-12", "2026-05-14",
		"2026-05-18", "2026-05-19",
	}
	for i, d := range dates {
		// Two slots per day; Weeks must deduplicate.
		timeslots = append(timeslots,
			models.TimeSlot{ID: 2 * i, Date: d, StartTime: "09:00", EndTime: "11:00"},
			models.TimeSlot{ID: 2*i + 1, Date: d, StartTime: "13:00", EndTime: "15:00"},
		)
	}

	weeks := Weeks(timeslots)
	want := [][]string{
		{"2026-05-11", "2026-05-12", "2026-05-13", "2026-05-14", "2026-05-15"},
		{"2026-05-18", "2026-05-19"},
	}
	if !reflect.DeepEqual(weeks, want) {
		t.Fatalf("expected %v, got %v", want, weeks)
	}
}

func TestTimeRangesDeduplicatedSorted(t *testing.T) {
	timeslots := []models.TimeSlot{
		{ID: 1, Date: "2026-05-11", StartTime: "13:00", EndTime: "15:00"},
		{ID: 2, Date: "2026-05-12", StartTime: "09:00", EndTime: "11:00"},
		{ID: 3, Date: "2026-05-11", StartTime: "09:00", EndTime: "11:00"},
	}

	got := TimeRanges(timeslots)
	want := []string{"09:00-11:00", "13:00-15:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
