package view

import "github.com/jackdzi/informs/internal/models"

// Metric classification for chart coloring.
const (
	StatusGood     = "good"
	StatusWarning  = "warning"
	StatusConflict = "conflict"
)

// Metric is one chart-ready (value, total) pair with its classification.
type Metric struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Total  int    `json:"total"`
	Status string `json:"status"`
}

// AnalyticsView is the display-ready aggregation of an analytics snapshot.
// Capacity warnings and room usage are already-derived summaries and pass
// through untouched.
type AnalyticsView struct {
	Scheduled        Metric                   `json:"scheduled"`
	Unscheduled      Metric                   `json:"unscheduled"`
	Conflicts        Metric                   `json:"conflicts"`
	AffectedStudents int                      `json:"affected_students"`
	RoomsUsed        int                      `json:"rooms_used"`
	TotalRooms       int                      `json:"total_rooms"`
	CapacityWarnings []models.CapacityWarning `json:"capacity_warnings"`
	RoomUsage        []models.RoomUsage       `json:"room_usage"`
}

// BuildAnalyticsView derives the chart metrics from a raw snapshot.
func BuildAnalyticsView(a models.Analytics) AnalyticsView {
	unscheduled := a.TotalExams - a.ScheduledExams

	return AnalyticsView{
		Scheduled: Metric{
			Label:  "Scheduled",
			Value:  a.ScheduledExams,
			Total:  a.TotalExams,
			Status: classify(unscheduled, StatusWarning),
		},
		Unscheduled: Metric{
			Label:  "Unscheduled",
			Value:  unscheduled,
			Total:  a.TotalExams,
			Status: classify(unscheduled, StatusWarning),
		},
		Conflicts: Metric{
			Label: "Conflicts",
			Value: a.ConflictCount,
			// conflicts vs conflicting + non-conflicting exams
			Total:  a.ConflictCount + (a.TotalExams - a.ConflictCount),
			Status: classify(a.ConflictCount, StatusConflict),
		},
		AffectedStudents: a.AffectedStudents,
		RoomsUsed:        len(a.RoomUsage),
		TotalRooms:       a.TotalRooms,
		CapacityWarnings: a.CapacityWarnings,
		RoomUsage:        a.RoomUsage,
	}
}

func classify(bad int, nonZero string) string {
	if bad == 0 {
		return StatusGood
	}
	return nonZero
}
