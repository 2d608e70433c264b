package board

import "github.com/jackdzi/informs/internal/models"

// DragController tracks the one drag gesture the board allows at a time.
// The single-slot current field is owned exclusively by this controller;
// the Board reads it only through these methods, under its own lock.
//
// Lifecycle: idle -> dragging -> idle. Both the global drag-ended signal
// and any drop attempt (valid or not) end the gesture, so a release outside
// every cell can never leave a stuck in-flight marker.
type DragController struct {
	current *models.Assignment
}

// NewDragController returns an idle controller.
func NewDragController() *DragController {
	return &DragController{}
}

// Begin records the source assignment of a new gesture. Unscheduled entries
// are not draggable; for those Begin is a silent no-op and reports false.
// Starting a new drag while a prior drop is still settling is allowed; the
// settling operation owns its own snapshot and is not touched here.
func (d *DragController) Begin(a models.Assignment) bool {
	if !a.Scheduled() {
		return false
	}
	copied := a
	d.current = &copied
	return true
}

// Current returns the in-flight source assignment, if any.
func (d *DragController) Current() (models.Assignment, bool) {
	if d.current == nil {
		return models.Assignment{}, false
	}
	return *d.current, true
}

// DraggingID returns the id of the assignment being dragged, for the UI's
// in-flight marker.
func (d *DragController) DraggingID() (int, bool) {
	if d.current == nil {
		return 0, false
	}
	return d.current.ID, true
}

// Cancel forces the controller back to idle.
func (d *DragController) Cancel() {
	d.current = nil
}
