package view

import (
	"sort"

	"github.com/jackdzi/informs/internal/models"
)

// ConflictGroup is the set of conflicts sharing one timeslot.
type ConflictGroup struct {
	Key       string            `json:"key"`
	Label     string            `json:"label"`
	ExamNames []string          `json:"exam_names"`
	Conflicts []models.Conflict `json:"conflicts"`
}

// GroupConflicts partitions conflicts by timeslot. Every input conflict
// lands in exactly one group, group keys are unique, and the output is
// sorted by key, which is chronological given the key shape. Conflicts without a
// timeslot collect under the "unknown" sentinel.
func GroupConflicts(conflicts []models.Conflict) []ConflictGroup {
	byKey := make(map[string][]models.Conflict)
	for _, c := range conflicts {
		key := SlotKey(c.Timeslot)
		byKey[key] = append(byKey[key], c)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]ConflictGroup, 0, len(keys))
	for _, key := range keys {
		members := byKey[key]
		groups = append(groups, ConflictGroup{
			Key:       key,
			Label:     groupLabel(key, members),
			ExamNames: uniqueExamNames(members),
			Conflicts: members,
		})
	}
	return groups
}

// ConflictSlotIDs returns the set of timeslot ids that carry at least one
// conflict, for highlighting grid cells.
func ConflictSlotIDs(conflicts []models.Conflict) map[int]bool {
	ids := make(map[int]bool)
	for _, c := range conflicts {
		if c.Timeslot != nil {
			ids[c.Timeslot.ID] = true
		}
	}
	return ids
}

// ConflictsForStudent filters the conflicts belonging to one student.
func ConflictsForStudent(conflicts []models.Conflict, studentID int) []models.Conflict {
	var out []models.Conflict
	for _, c := range conflicts {
		if c.Student != nil && c.Student.ID == studentID {
			out = append(out, c)
		}
	}
	return out
}

func groupLabel(key string, members []models.Conflict) string {
	if key == UnknownSlotKey || len(members) == 0 || members[0].Timeslot == nil {
		return "Unknown timeslot"
	}
	ts := members[0].Timeslot
	return FormatDate(ts.Date) + " " + FormatTime(ts.StartTime) + " - " + FormatTime(ts.EndTime)
}

// uniqueExamNames preserves first-seen order across the group's members.
func uniqueExamNames(members []models.Conflict) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, c := range members {
		for _, e := range c.Exams {
			if _, ok := seen[e.CourseName]; ok {
				continue
			}
			seen[e.CourseName] = struct{}{}
			names = append(names, e.CourseName)
		}
	}
	return names
}
