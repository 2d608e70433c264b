package handler

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jackdzi/informs/internal/board"
	"github.com/jackdzi/informs/internal/view"
	appErrors "github.com/jackdzi/informs/pkg/errors"
	"github.com/jackdzi/informs/pkg/export"
	"github.com/jackdzi/informs/pkg/response"
)

type snapshotService interface {
	Snapshot() board.Snapshot
}

// ExportHandler renders the current board as downloadable files.
type ExportHandler struct {
	service snapshotService
	title   string
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc snapshotService, title string) *ExportHandler {
	return &ExportHandler{service: svc, title: title}
}

// CSV godoc
// @Summary Export the board as CSV
// @Tags Export
// @Produce text/csv
// @Success 200
// @Router /export/schedule.csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	data, ok := h.dataset(c)
	if !ok {
		return
	}
	payload, err := export.RenderCSV(data)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// PDF godoc
// @Summary Export the board as PDF
// @Tags Export
// @Produce application/pdf
// @Success 200
// @Router /export/schedule.pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	data, ok := h.dataset(c)
	if !ok {
		return
	}
	payload, err := export.RenderPDF(data, h.title)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

func (h *ExportHandler) dataset(c *gin.Context) (export.Dataset, bool) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return export.Dataset{}, false
	}
	snap := h.service.Snapshot()
	if !snap.Loaded {
		response.Error(c, appErrors.ErrNotLoaded)
		return export.Dataset{}, false
	}
	return ScheduleDataset(snap), true
}

// ScheduleDataset flattens the board's scheduled assignments into rows,
// ordered chronologically then by course.
func ScheduleDataset(snap board.Snapshot) export.Dataset {
	headers := []string{"Date", "Start", "End", "Course", "Room", "Building", "Students"}

	scheduled := make([]int, 0, len(snap.Assignments))
	for i, a := range snap.Assignments {
		if a.Scheduled() {
			scheduled = append(scheduled, i)
		}
	}
	sort.Slice(scheduled, func(x, y int) bool {
		a, b := snap.Assignments[scheduled[x]], snap.Assignments[scheduled[y]]
		ka, kb := view.SlotKey(a.Timeslot), view.SlotKey(b.Timeslot)
		if ka != kb {
			return ka < kb
		}
		return a.Exam.CourseName < b.Exam.CourseName
	})

	rows := make([]map[string]string, 0, len(scheduled))
	for _, i := range scheduled {
		a := snap.Assignments[i]
		rows = append(rows, map[string]string{
			"Date":     a.Timeslot.Date,
			"Start":    view.FormatTime(a.Timeslot.StartTime),
			"End":      view.FormatTime(a.Timeslot.EndTime),
			"Course":   a.Exam.CourseName,
			"Room":     a.Room.Name,
			"Building": a.Room.Building,
			"Students": strconv.Itoa(a.Exam.StudentCount),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
