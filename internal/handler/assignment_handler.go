package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type assignmentService interface {
	List(ctx context.Context, caller models.User, query string) ([]models.Assignment, error)
	Create(ctx context.Context, req dto.AssignmentRequest) error
	Submit(ctx context.Context, assignmentID int64, filename string, content io.Reader) error
}

// AssignmentHandler exposes assignment listing, creation and submission.
type AssignmentHandler struct {
	assignments assignmentService
}

// NewAssignmentHandler constructs an AssignmentHandler.
func NewAssignmentHandler(assignments assignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary List assignments visible to the caller
// @Tags Assignments
// @Produce json
// @Param q query string false "Search"
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	items, err := h.assignments.List(c.Request.Context(), user, searchQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.AssignmentRequest true "Assignment"
// @Success 201 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.AssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.assignments.Create(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// Submit godoc
// @Summary Upload a submission
// @Tags Assignments
// @Accept multipart/form-data
// @Param id path int true "Assignment ID"
// @Param file formData file true "Submission"
// @Success 204
// @Router /assignments/{id}/submit [post]
func (h *AssignmentHandler) Submit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is unreadable"))
		return
	}
	defer file.Close() //nolint:errcheck

	if err := h.assignments.Submit(c.Request.Context(), id, header.Filename, file); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
