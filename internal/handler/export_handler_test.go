package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackdzi/informs/internal/board"
	"github.com/jackdzi/informs/internal/models"
)

func exportSnapshot() board.Snapshot {
	ts1 := &models.TimeSlot{ID: 1, Date: "2026-05-11", StartTime: "09:00", EndTime: "11:00"}
	ts2 := &models.TimeSlot{ID: 2, Date: "2026-05-11", StartTime: "13:00", EndTime: "15:00"}
	return board.Snapshot{
		Loaded: true,
		Assignments: []models.Assignment{
			{
				ID:       11,
				Exam:     &models.Exam{ID: 101, CourseName: "PHYS 201", StudentCount: 25},
				Room:     &models.Room{ID: 201, Name: "B-202", Building: "Science"},
				Timeslot: ts2,
			},
			{
				ID:       10,
				Exam:     &models.Exam{ID: 100, CourseName: "MATH 101", StudentCount: 30},
				Room:     &models.Room{ID: 200, Name: "A-101", Building: "Main"},
				Timeslot: ts1,
			},
			{ID: 12, Exam: &models.Exam{ID: 102, CourseName: "CHEM 110"}},
		},
	}
}

func TestScheduleDatasetOrdersChronologically(t *testing.T) {
	data := ScheduleDataset(exportSnapshot())

	require.Len(t, data.Rows, 2, "unscheduled entries must be excluded")
	assert.Equal(t, "MATH 101", data.Rows[0]["Course"])
	assert.Equal(t, "PHYS 201", data.Rows[1]["Course"])
	assert.Equal(t, "9:00 AM", data.Rows[0]["Start"])
	assert.Equal(t, "Main", data.Rows[0]["Building"])
	assert.Equal(t, "30", data.Rows[0]["Students"])
}

func TestExportHandlerCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeBoardSrv{snap: exportSnapshot()}, "Exam Schedule")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/schedule.csv", nil)

	h.CSV(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "schedule.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Start,End,Course,Room,Building,Students", lines[0])
	assert.Contains(t, lines[1], "MATH 101")
}

func TestExportHandlerPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeBoardSrv{snap: exportSnapshot()}, "Exam Schedule")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/schedule.pdf", nil)

	h.PDF(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestExportHandlerNotLoaded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeBoardSrv{}, "Exam Schedule")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/schedule.csv", nil)

	h.CSV(c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
