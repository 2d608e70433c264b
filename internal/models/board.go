package models

// Room is an examination room. Reference data, never mutated by the board.
type Room struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Building string `json:"building"`
}

// Exam is a single course examination. Reference data, never mutated by the board.
type Exam struct {
	ID              int    `json:"id"`
	CourseName      string `json:"course_name"`
	StudentCount    int    `json:"student_count"`
	DurationMinutes int    `json:"duration_minutes"`
}

// TimeSlot is a bookable slot on the calendar grid. The grid identity of a
// slot is the (Date, StartTime, EndTime) triple, not the ID.
type TimeSlot struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Assignment places an exam into a room and timeslot. Nil references mean
// the entry is (partially) unscheduled. The ID is stable across moves; a
// reschedule only swaps the Timeslot reference.
type Assignment struct {
	ID       int       `json:"id"`
	Exam     *Exam     `json:"exam"`
	Room     *Room     `json:"room"`
	Timeslot *TimeSlot `json:"timeslot"`
}

// Scheduled reports whether the assignment has all three references set.
// Only fully scheduled assignments are draggable or included in bulk saves.
func (a Assignment) Scheduled() bool {
	return a.Exam != nil && a.Room != nil && a.Timeslot != nil
}

// StudentInfo identifies a student on the roster.
type StudentInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Conflict is one student holding two or more exams in the same timeslot,
// as computed upstream. Read-only on the client side.
type Conflict struct {
	Student  *StudentInfo `json:"student"`
	Timeslot *TimeSlot    `json:"timeslot"`
	Exams    []Exam       `json:"exams"`
}

// ScheduleVersion is a named, independent what-if copy of the schedule.
type ScheduleVersion struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// CapacityWarning flags an exam whose enrolment exceeds its room capacity.
type CapacityWarning struct {
	Exam     string `json:"exam"`
	Students int    `json:"students"`
	Room     string `json:"room"`
	Capacity int    `json:"capacity"`
}

// RoomUsage counts exams placed in a room.
type RoomUsage struct {
	Room  string `json:"room"`
	Count int    `json:"count"`
}

// Analytics is the upstream-computed summary for one schedule version.
type Analytics struct {
	TotalExams       int               `json:"total_exams"`
	ScheduledExams   int               `json:"scheduled_exams"`
	TotalRooms       int               `json:"total_rooms"`
	TotalStudents    int               `json:"total_students"`
	TotalTimeslots   int               `json:"total_timeslots"`
	ConflictCount    int               `json:"conflict_count"`
	AffectedStudents int               `json:"affected_students"`
	CapacityWarnings []CapacityWarning `json:"capacity_warnings"`
	RoomUsage        []RoomUsage       `json:"room_usage"`
}

// ScheduleWrite is the upstream write payload describing the full target
// state for one assignment.
type ScheduleWrite struct {
	ExamID     int `json:"exam_id"`
	RoomID     int `json:"room_id"`
	TimeslotID int `json:"timeslot_id"`
}

// SaveStatus is the transient UI feedback state for pending writes. It never
// gates new operations.
type SaveStatus string

const (
	SaveIdle   SaveStatus = "idle"
	SaveSaving SaveStatus = "saving"
	SaveSaved  SaveStatus = "saved"
	SaveError  SaveStatus = "error"
)
