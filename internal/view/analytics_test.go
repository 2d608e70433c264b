package view

import (
	"testing"

	"github.com/jackdzi/informs/internal/models"
)

func TestBuildAnalyticsViewAllGood(t *testing.T) {
	av := BuildAnalyticsView(models.Analytics{
		TotalExams:     10,
		ScheduledExams: 10,
		TotalRooms:     4,
		RoomUsage: []models.RoomUsage{
			{Room: "A-101", Count: 5},
			{Room: "B-202", Count: 5},
		},
	})

	if av.Scheduled.Status != StatusGood {
		t.Errorf("scheduled status: expected %q, got %q", StatusGood, av.Scheduled.Status)
	}
	if av.Conflicts.Status != StatusGood {
		t.Errorf("conflicts status: expected %q, got %q", StatusGood, av.Conflicts.Status)
	}
	if av.Scheduled.Value != 10 || av.Scheduled.Total != 10 {
		t.Errorf("scheduled metric: got %d/%d", av.Scheduled.Value, av.Scheduled.Total)
	}
	if av.Unscheduled.Value != 0 {
		t.Errorf("unscheduled value: expected 0, got %d", av.Unscheduled.Value)
	}
	if av.RoomsUsed != 2 || av.TotalRooms != 4 {
		t.Errorf("rooms: got %d/%d", av.RoomsUsed, av.TotalRooms)
	}
}

func TestBuildAnalyticsViewUnscheduledWarns(t *testing.T) {
	av := BuildAnalyticsView(models.Analytics{
		TotalExams:     10,
		ScheduledExams: 7,
	})

	if av.Unscheduled.Value != 3 {
		t.Fatalf("unscheduled value: expected 3, got %d", av.Unscheduled.Value)
	}
	if av.Scheduled.Status != StatusWarning {
		t.Errorf("scheduled status: expected %q, got %q", StatusWarning, av.Scheduled.Status)
	}
	if av.Unscheduled.Status != StatusWarning {
		t.Errorf("unscheduled status: expected %q, got %q", StatusWarning, av.Unscheduled.Status)
	}
}

func TestBuildAnalyticsViewConflictsFlag(t *testing.T) {
	av := BuildAnalyticsView(models.Analytics{
		TotalExams:       10,
		ScheduledExams:   10,
		ConflictCount:    2,
		AffectedStudents: 3,
		CapacityWarnings: []models.CapacityWarning{
			{Exam: "MATH 101", Students: 120, Room: "A-101", Capacity: 100},
		},
	})

	if av.Conflicts.Status != StatusConflict {
		t.Errorf("conflicts status: expected %q, got %q", StatusConflict, av.Conflicts.Status)
	}
	if av.Conflicts.Value != 2 || av.Conflicts.Total != 10 {
		t.Errorf("conflicts metric: got %d/%d", av.Conflicts.Value, av.Conflicts.Total)
	}
	if av.AffectedStudents != 3 {
		t.Errorf("affected students: expected 3, got %d", av.AffectedStudents)
	}
	if len(av.CapacityWarnings) != 1 {
		t.Errorf("expected 1 capacity warning, got %d", len(av.CapacityWarnings))
	}
}
