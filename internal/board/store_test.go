package board

import (
	"testing"

	"github.com/jackdzi/informs/internal/models"
)

func storeFixture() *Store {
	s := NewStore()
	s.ReplaceTimeslots([]models.TimeSlot{
		{ID: 1, Date: "2026-05-11", StartTime: "09:00", EndTime: "11:00"},
		{ID: 2, Date: "2026-05-11", StartTime: "13:00", EndTime: "15:00"},
	})
	s.ReplaceAssignments([]models.Assignment{
		{
			ID:       10,
			Exam:     &models.Exam{ID: 100, CourseName: "MATH 101"},
			Room:     &models.Room{ID: 200, Name: "A-101"},
			Timeslot: &models.TimeSlot{ID: 1, Date: "2026-05-11", StartTime: "09:00", EndTime: "11:00"},
		},
		{ID: 11, Exam: &models.Exam{ID: 101, CourseName: "CHEM 110"}},
	})
	s.ReplaceConflicts([]models.Conflict{
		{Student: &models.StudentInfo{ID: 1}},
	})
	s.ReplaceAnalytics(&models.Analytics{TotalExams: 2})
	s.ReplaceVersions([]models.ScheduleVersion{{ID: 1, Name: "main"}})
	s.SetActiveVersion(1)
	return s
}

func TestStorePatchTimeslot(t *testing.T) {
	s := storeFixture()
	target := &models.TimeSlot{ID: 2, Date: "2026-05-11", StartTime: "13:00", EndTime: "15:00"}

	if !s.PatchTimeslot(10, target) {
		t.Fatal("expected patch to hit assignment 10")
	}
	a, ok := s.Assignment(10)
	if !ok {
		t.Fatal("assignment 10 missing")
	}
	if a.Timeslot == nil || a.Timeslot.ID != 2 {
		t.Fatalf("expected timeslot 2, got %+v", a.Timeslot)
	}

	if s.PatchTimeslot(999, target) {
		t.Fatal("patching an unknown assignment must report false")
	}
}

func TestStoreAssignmentReturnsCopy(t *testing.T) {
	s := storeFixture()
	a, _ := s.Assignment(10)
	a.Timeslot = nil

	again, _ := s.Assignment(10)
	if again.Timeslot == nil {
		t.Fatal("mutating a returned assignment must not affect the store")
	}
}

func TestStoreClearVersionScoped(t *testing.T) {
	s := storeFixture()
	s.ClearVersionScoped()

	if len(s.Assignments()) != 0 {
		t.Error("assignments should be cleared")
	}
	if len(s.Conflicts()) != 0 {
		t.Error("conflicts should be cleared")
	}
	if s.Analytics() != nil {
		t.Error("analytics should be cleared")
	}
	if len(s.Timeslots()) == 0 {
		t.Error("timeslots are reference data and must survive")
	}
	if len(s.Versions()) == 0 {
		t.Error("version list must survive")
	}
}

func TestStoreResolveCell(t *testing.T) {
	s := storeFixture()

	ts, ok := s.ResolveCell("2026-05-11", "13:00", "15:00")
	if !ok || ts.ID != 2 {
		t.Fatalf("expected slot 2, got %+v ok=%v", ts, ok)
	}

	if _, ok := s.ResolveCell("2026-05-11", "13:00", "16:00"); ok {
		t.Fatal("partial match must not resolve")
	}
	if _, ok := s.ResolveCell("2026-05-12", "13:00", "15:00"); ok {
		t.Fatal("wrong date must not resolve")
	}
}

func TestStoreReplaceAnalyticsNil(t *testing.T) {
	s := storeFixture()
	s.ReplaceAnalytics(nil)
	if s.Analytics() != nil {
		t.Fatal("expected nil analytics after nil replace")
	}
}
