package board

import (
	"testing"

	"github.com/jackdzi/informs/internal/models"
)

func scheduledAssignment(id int) models.Assignment {
	return models.Assignment{
		ID:       id,
		Exam:     &models.Exam{ID: 1},
		Room:     &models.Room{ID: 2},
		Timeslot: &models.TimeSlot{ID: 3},
	}
}

func TestDragControllerLifecycle(t *testing.T) {
	d := NewDragController()

	if _, ok := d.Current(); ok {
		t.Fatal("new controller must be idle")
	}

	if !d.Begin(scheduledAssignment(10)) {
		t.Fatal("scheduled assignment must be draggable")
	}
	if id, ok := d.DraggingID(); !ok || id != 10 {
		t.Fatalf("expected dragging id 10, got %d ok=%v", id, ok)
	}

	d.Cancel()
	if _, ok := d.Current(); ok {
		t.Fatal("cancel must return the controller to idle")
	}
}

func TestDragControllerRejectsUnscheduled(t *testing.T) {
	d := NewDragController()
	unscheduled := models.Assignment{ID: 10, Exam: &models.Exam{ID: 1}}

	if d.Begin(unscheduled) {
		t.Fatal("unscheduled assignment must not be draggable")
	}
	if _, ok := d.Current(); ok {
		t.Fatal("failed begin must leave the controller idle")
	}
}

func TestDragControllerBeginReplacesCurrent(t *testing.T) {
	d := NewDragController()
	d.Begin(scheduledAssignment(10))
	d.Begin(scheduledAssignment(11))

	if id, _ := d.DraggingID(); id != 11 {
		t.Fatalf("expected latest gesture to win, got %d", id)
	}
}

func TestDragControllerCopiesSource(t *testing.T) {
	d := NewDragController()
	a := scheduledAssignment(10)
	d.Begin(a)
	a.Timeslot = nil

	cur, _ := d.Current()
	if cur.Timeslot == nil {
		t.Fatal("controller must hold its own copy of the source")
	}
}
