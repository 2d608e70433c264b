package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jackdzi/informs/internal/board"
	appErrors "github.com/jackdzi/informs/pkg/errors"
	"github.com/jackdzi/informs/pkg/response"
)

type boardService interface {
	Snapshot() board.Snapshot
	BeginDrag(assignmentID int) error
	EndDrag()
	Drop(date, timeRange string) error
	BulkSave(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// BeginDragRequest starts a drag gesture from one assignment.
type BeginDragRequest struct {
	AssignmentID int `json:"assignment_id" validate:"required"`
}

// DropRequest identifies the calendar cell a gesture was released on.
type DropRequest struct {
	Date      string `json:"date" validate:"required"`
	TimeRange string `json:"time_range" validate:"required"`
}

// BoardHandler wires the synchronization engine to HTTP endpoints.
type BoardHandler struct {
	service  boardService
	validate *validator.Validate
}

// NewBoardHandler constructs the handler.
func NewBoardHandler(svc boardService, validate *validator.Validate) *BoardHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &BoardHandler{service: svc, validate: validate}
}

// Snapshot godoc
// @Summary Full board snapshot
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board [get]
func (h *BoardHandler) Snapshot(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot())
}

// BeginDrag godoc
// @Summary Begin a drag gesture
// @Tags Board
// @Accept json
// @Produce json
// @Param body body BeginDragRequest true "Source assignment"
// @Success 200 {object} response.Envelope
// @Router /board/drag [post]
func (h *BoardHandler) BeginDrag(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req BeginDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid drag payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid drag payload"))
		return
	}
	if err := h.service.BeginDrag(req.AssignmentID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot())
}

// EndDrag godoc
// @Summary Global drag-ended signal
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/drag/end [post]
func (h *BoardHandler) EndDrag(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	h.service.EndDrag()
	response.JSON(c, http.StatusOK, h.service.Snapshot())
}

// Drop godoc
// @Summary Drop the dragged assignment on a cell
// @Tags Board
// @Accept json
// @Produce json
// @Param body body DropRequest true "Target cell"
// @Success 200 {object} response.Envelope
// @Router /board/drop [post]
func (h *BoardHandler) Drop(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid drop payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid drop payload"))
		return
	}
	if err := h.service.Drop(req.Date, req.TimeRange); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot())
}

// BulkSave godoc
// @Summary Commit the whole board upstream
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/save [put]
func (h *BoardHandler) BulkSave(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.service.BulkSave(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot())
}

// Refresh godoc
// @Summary Re-fetch the active version's collections
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/refresh [post]
func (h *BoardHandler) Refresh(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot())
}
