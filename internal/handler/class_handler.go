package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type classService interface {
	Get(ctx context.Context, caller models.User, id int64) (*models.Class, error)
	Create(ctx context.Context, caller models.User, req dto.ClassRequest) error
	Update(ctx context.Context, caller models.User, id int64, req dto.ClassRequest) error
	Delete(ctx context.Context, id int64) error
	Students(ctx context.Context, id int64) ([]models.ClassStudent, error)
	ReplaceStudents(ctx context.Context, id int64, studentIDs []string) error
}

type classSummarySource interface {
	ClassSummaries(ctx context.Context, caller models.User, query string) ([]models.ClassSummary, error)
}

// ClassHandler exposes class CRUD and roster endpoints.
type ClassHandler struct {
	classes   classService
	summaries classSummarySource
}

// NewClassHandler constructs a class handler.
func NewClassHandler(classes classService, summaries classSummarySource) *ClassHandler {
	return &ClassHandler{classes: classes, summaries: summaries}
}

// List godoc
// @Summary List class summaries visible to the caller
// @Tags Classes
// @Produce json
// @Param q query string false "Search keyword"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	rows, err := h.summaries.ClassSummaries(c.Request.Context(), user, searchQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Get godoc
// @Summary Get class detail
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	class, err := h.classes.Get(c.Request.Context(), user, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.ClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req dto.ClassRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.classes.Create(c.Request.Context(), user, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// Update godoc
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body dto.ClassRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ClassRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.classes.Update(c.Request.Context(), user, id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}

// Delete godoc
// @Summary Delete class
// @Tags Classes
// @Param id path int true "Class ID"
// @Success 204
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.classes.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Students godoc
// @Summary Class roster
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students [get]
func (h *ClassHandler) Students(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	roster, err := h.classes.Students(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// ReplaceStudents godoc
// @Summary Replace class roster
// @Tags Classes
// @Accept json
// @Param id path int true "Class ID"
// @Param payload body dto.ClassStudentsRequest true "Student ids"
// @Success 204
// @Router /classes/{id}/students [put]
func (h *ClassHandler) ReplaceStudents(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ClassStudentsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.classes.ReplaceStudents(c.Request.Context(), id, req.StudentIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
