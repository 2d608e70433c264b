package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jackdzi/informs/internal/board"
	"github.com/jackdzi/informs/internal/models"
	appErrors "github.com/jackdzi/informs/pkg/errors"
	"github.com/jackdzi/informs/pkg/response"
)

type versionService interface {
	Snapshot() board.Snapshot
	SwitchVersion(ctx context.Context, versionID int) error
	RefreshVersions(ctx context.Context) error
	CreateVersion(ctx context.Context, name string) (*models.ScheduleVersion, error)
	DuplicateVersion(ctx context.Context, id int, name string) (*models.ScheduleVersion, error)
	DeleteVersion(ctx context.Context, id int) error
}

// VersionRequest names a version to create or duplicate into.
type VersionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// VersionHandler exposes what-if version management.
type VersionHandler struct {
	service  versionService
	validate *validator.Validate
}

// NewVersionHandler constructs the handler.
func NewVersionHandler(svc versionService, validate *validator.Validate) *VersionHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &VersionHandler{service: svc, validate: validate}
}

// List godoc
// @Summary List schedule versions
// @Tags Versions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /versions [get]
func (h *VersionHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.service.RefreshVersions(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	snap := h.service.Snapshot()
	response.JSON(c, http.StatusOK, gin.H{
		"versions":          snap.Versions,
		"active_version_id": snap.ActiveVersionID,
	})
}

// Create godoc
// @Summary Create an empty version
// @Tags Versions
// @Accept json
// @Produce json
// @Param body body VersionRequest true "Version name"
// @Success 201 {object} response.Envelope
// @Router /versions [post]
func (h *VersionHandler) Create(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req, ok := h.bindName(c)
	if !ok {
		return
	}
	v, err := h.service.CreateVersion(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, v)
}

// Duplicate godoc
// @Summary Duplicate a version under a new name
// @Tags Versions
// @Accept json
// @Produce json
// @Param id path int true "Source version id"
// @Param body body VersionRequest true "New version name"
// @Success 201 {object} response.Envelope
// @Router /versions/{id}/duplicate [post]
func (h *VersionHandler) Duplicate(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := h.bindName(c)
	if !ok {
		return
	}
	v, err := h.service.DuplicateVersion(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, v)
}

// Activate godoc
// @Summary Switch the board to another version
// @Tags Versions
// @Produce json
// @Param id path int true "Version id"
// @Success 200 {object} response.Envelope
// @Router /versions/{id}/activate [post]
func (h *VersionHandler) Activate(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.SwitchVersion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot())
}

// Delete godoc
// @Summary Delete a version
// @Tags Versions
// @Produce json
// @Param id path int true "Version id"
// @Success 204
// @Router /versions/{id} [delete]
func (h *VersionHandler) Delete(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteVersion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *VersionHandler) bindName(c *gin.Context) (VersionRequest, bool) {
	var req VersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid version payload"))
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid version payload"))
		return req, false
	}
	return req, true
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be an integer"))
		return 0, false
	}
	return id, true
}
