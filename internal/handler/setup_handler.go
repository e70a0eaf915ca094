package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type setupService interface {
	List(ctx context.Context, caller models.User) ([]models.ClassSubjectSetup, error)
	ForClass(ctx context.Context, caller models.User, classID int64) ([]models.ClassSubjectSetup, error)
	Options(ctx context.Context, caller models.User, classID int64) (*models.SetupOptions, error)
	Save(ctx context.Context, caller models.User, classID int64, req dto.SaveSetupsRequest) ([]models.ClassSubjectSetupDraft, error)
}

type enrollmentService interface {
	Update(ctx context.Context, caller models.User, classID int64, studentID string, courseIDs []int64) ([]models.ClassSubjectSetupDraft, error)
}

// SetupHandler exposes the class subject setup editor and per-student
// enrollment.
type SetupHandler struct {
	setups      setupService
	enrollments enrollmentService
}

// NewSetupHandler constructs a SetupHandler.
func NewSetupHandler(setups setupService, enrollments enrollmentService) *SetupHandler {
	return &SetupHandler{setups: setups, enrollments: enrollments}
}

// List godoc
// @Summary All class subject setups
// @Tags Setups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /class-setups [get]
func (h *SetupHandler) List(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	setups, err := h.setups.List(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setups, nil)
}

// ForClass godoc
// @Summary Class subject setups of one class
// @Tags Setups
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/setups [get]
func (h *SetupHandler) ForClass(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	setups, err := h.setups.ForClass(c.Request.Context(), user, classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setups, nil)
}

// Options godoc
// @Summary Courses and teachers selectable for a class
// @Tags Setups
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/setup-options [get]
func (h *SetupHandler) Options(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	options, err := h.setups.Options(c.Request.Context(), user, classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Save godoc
// @Summary Replace the offerings of a class
// @Tags Setups
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body dto.SaveSetupsRequest true "Offerings"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes/{id}/setups [put]
func (h *SetupHandler) Save(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.SaveSetupsRequest
	if !bindJSON(c, &req) {
		return
	}
	drafts, err := h.setups.Save(c.Request.Context(), user, classID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, drafts, nil)
}

// Enroll godoc
// @Summary Set the offerings a student takes in a class
// @Tags Setups
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param studentId path string true "Student ID"
// @Param payload body dto.EnrollmentRequest true "Selected course ids"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /classes/{id}/enrollments/{studentId} [put]
func (h *SetupHandler) Enroll(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	classID, ok := idParam(c, "id")
	if !ok {
		return
	}
	studentID := c.Param("studentId")
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId required"))
		return
	}
	var req dto.EnrollmentRequest
	if !bindJSON(c, &req) {
		return
	}
	drafts, err := h.enrollments.Update(c.Request.Context(), user, classID, studentID, req.CourseIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, drafts, nil)
}
