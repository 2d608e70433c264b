package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jackdzi/informs/internal/models"
	appErrors "github.com/jackdzi/informs/pkg/errors"
	"github.com/jackdzi/informs/pkg/response"
)

type studentService interface {
	Students(search string) []models.StudentInfo
	StudentSchedule(ctx context.Context, studentID int) ([]models.Assignment, []models.Conflict, error)
}

// StudentHandler exposes the roster and per-student schedules.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(svc studentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Substring of student id or email"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	search := strings.TrimSpace(c.Query("search"))
	response.JSON(c, http.StatusOK, h.service.Students(search))
}

// Schedule godoc
// @Summary One student's schedule for the active version
// @Tags Students
// @Produce json
// @Param id path int true "Student id"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/schedule [get]
func (h *StudentHandler) Schedule(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	schedules, conflicts, err := h.service.StudentSchedule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"schedules": schedules,
		"conflicts": conflicts,
	})
}
