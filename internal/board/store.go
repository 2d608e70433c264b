package board

import "github.com/jackdzi/informs/internal/models"

// Store holds the last-known-good collections for the active schedule
// version. It is a plain data holder: callers replace whole collections or
// patch a single assignment's timeslot, nothing else. All access happens
// under the owning Board's lock.
type Store struct {
	assignments []models.Assignment
	timeslots   []models.TimeSlot
	students    []models.StudentInfo
	conflicts   []models.Conflict
	analytics   *models.Analytics
	versions    []models.ScheduleVersion

	activeVersion int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAssignments swaps the assignment collection wholesale.
func (s *Store) ReplaceAssignments(assignments []models.Assignment) {
	s.assignments = append([]models.Assignment(nil), assignments...)
}

// ReplaceTimeslots swaps the timeslot grid.
func (s *Store) ReplaceTimeslots(timeslots []models.TimeSlot) {
	s.timeslots = append([]models.TimeSlot(nil), timeslots...)
}

// ReplaceStudents swaps the student roster.
func (s *Store) ReplaceStudents(students []models.StudentInfo) {
	s.students = append([]models.StudentInfo(nil), students...)
}

// ReplaceConflicts swaps the derived conflict collection.
func (s *Store) ReplaceConflicts(conflicts []models.Conflict) {
	s.conflicts = append([]models.Conflict(nil), conflicts...)
}

// ReplaceAnalytics swaps the derived analytics snapshot.
func (s *Store) ReplaceAnalytics(analytics *models.Analytics) {
	if analytics == nil {
		s.analytics = nil
		return
	}
	copied := *analytics
	s.analytics = &copied
}

// ReplaceVersions swaps the version list. Versions are not version-scoped
// data: they survive a context switch.
func (s *Store) ReplaceVersions(versions []models.ScheduleVersion) {
	s.versions = append([]models.ScheduleVersion(nil), versions...)
}

// ClearVersionScoped tears down every collection owned by the active
// version. Reference data (timeslots, students) and the version list stay.
func (s *Store) ClearVersionScoped() {
	s.assignments = nil
	s.conflicts = nil
	s.analytics = nil
}

// SetActiveVersion records which version the store's scoped collections
// belong to.
func (s *Store) SetActiveVersion(id int) {
	s.activeVersion = id
}

// ActiveVersion returns the id the scoped collections belong to.
func (s *Store) ActiveVersion() int {
	return s.activeVersion
}

// Assignment looks up one assignment by id, returning a copy.
func (s *Store) Assignment(id int) (models.Assignment, bool) {
	for _, a := range s.assignments {
		if a.ID == id {
			return a, true
		}
	}
	return models.Assignment{}, false
}

// PatchTimeslot swaps the timeslot reference of one assignment. This is the
// only mutation the store supports below whole-collection granularity.
func (s *Store) PatchTimeslot(id int, ts *models.TimeSlot) bool {
	for i := range s.assignments {
		if s.assignments[i].ID == id {
			s.assignments[i].Timeslot = ts
			return true
		}
	}
	return false
}

// ResolveCell maps a calendar cell (date plus "start-end" range) to the
// concrete timeslot occupying it, by exact match on all three parts.
func (s *Store) ResolveCell(date, start, end string) (models.TimeSlot, bool) {
	for _, ts := range s.timeslots {
		if ts.Date == date && ts.StartTime == start && ts.EndTime == end {
			return ts, true
		}
	}
	return models.TimeSlot{}, false
}

// Assignments returns a copy of the assignment collection.
func (s *Store) Assignments() []models.Assignment {
	return append([]models.Assignment(nil), s.assignments...)
}

// Timeslots returns a copy of the timeslot grid.
func (s *Store) Timeslots() []models.TimeSlot {
	return append([]models.TimeSlot(nil), s.timeslots...)
}

// Students returns a copy of the roster.
func (s *Store) Students() []models.StudentInfo {
	return append([]models.StudentInfo(nil), s.students...)
}

// Conflicts returns a copy of the conflict collection.
func (s *Store) Conflicts() []models.Conflict {
	return append([]models.Conflict(nil), s.conflicts...)
}

// Analytics returns a copy of the analytics snapshot, or nil before the
// first fetch completes.
func (s *Store) Analytics() *models.Analytics {
	if s.analytics == nil {
		return nil
	}
	copied := *s.analytics
	return &copied
}

// Versions returns a copy of the version list.
func (s *Store) Versions() []models.ScheduleVersion {
	return append([]models.ScheduleVersion(nil), s.versions...)
}
